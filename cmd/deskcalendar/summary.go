package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"desk-calendar/internal/service"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show today's notes and the note totals",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		notes := openNotes(loadConfig(), false)
		fmt.Println(service.NewReminderService(notes).DailySummary(time.Now()))
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
