package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list [date]",
	Aliases: []string{"ls"},
	Short:   "List notes for a date, or every date that has notes",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		notes := openNotes(loadConfig(), false)

		if len(args) == 1 {
			date := parseDateArg(args[0])
			printNotes(date, notes.List(date))
			return
		}

		printed := 0
		for _, date := range notes.Dates() {
			list := notes.List(date)
			if len(list) == 0 {
				continue
			}
			printNotes(date, list)
			printed++
		}
		if printed == 0 {
			fmt.Println("No notes.")
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
