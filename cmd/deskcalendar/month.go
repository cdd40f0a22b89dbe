package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"desk-calendar/internal/model"
	"desk-calendar/internal/service"
)

var monthCmd = &cobra.Command{
	Use:   "month [YYYY-MM]",
	Short: "Print a month grid marking the days that have notes",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		today := model.DateOf(time.Now())
		year, month := today.Year, today.Month
		if len(args) == 1 {
			t, err := time.Parse("2006-01", args[0])
			if err != nil {
				fatal("Invalid month", err)
			}
			year, month = t.Year(), t.Month()
		}

		notes := openNotes(loadConfig(), false)
		fmt.Println(service.FormatMonth(year, month, notes.Month(year, month), today))
		fmt.Println(service.FormatSummary(notes.Summary()))
	},
}

func init() {
	rootCmd.AddCommand(monthCmd)
}
