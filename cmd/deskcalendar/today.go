package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"desk-calendar/internal/notify"
	"desk-calendar/internal/service"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Remind about today's notes",
	Long:  `Print today's notes and ring the terminal bell when there are any.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		notes := openNotes(loadConfig(), false)
		reminders := service.NewReminderService(notes)

		sent, err := reminders.Notify(cmd.Context(), time.Now(), notify.NewTerminal(os.Stdout))
		if err != nil {
			fatal("Failed to send reminder", err)
		}
		if !sent {
			fmt.Println("No tasks for today.")
		}
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
}
