package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <date> <number>",
	Aliases: []string{"rm"},
	Short:   "Remove a note by its position in the day's list",
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		date := parseDateArg(args[0])
		position, err := strconv.Atoi(args[1])
		if err != nil || position < 1 {
			fatal("Invalid note number", fmt.Errorf("%q is not a positive number", args[1]))
		}

		notes := openNotes(cfg, true)
		note, err := notes.RemoveAt(date, position-1)
		if err != nil {
			fatal("Failed to remove note", err)
		}
		commit(notes)

		fmt.Printf("Removed %q from %s.\n", note.Title, date)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
