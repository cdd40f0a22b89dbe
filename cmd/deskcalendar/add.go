package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addColor string

var addCmd = &cobra.Command{
	Use:   "add <date> <title...>",
	Short: "Add a note to a date",
	Long:  `Add a note to a date. The date is YYYY-MM-DD, today, tomorrow or yesterday.`,
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		date := parseDateArg(args[0])
		title := strings.Join(args[1:], " ")

		notes := openNotes(cfg, true)
		note, err := notes.Add(date, title, addColor)
		if err != nil {
			fatal("Failed to add note", err)
		}
		commit(notes)

		fmt.Printf("Added note #%d to %s.\n", note.ID, date)
	},
}

func init() {
	addCmd.Flags().StringVar(&addColor, "color", "", "Note color (default from NOTE_COLOR)")
	rootCmd.AddCommand(addCmd)
}
