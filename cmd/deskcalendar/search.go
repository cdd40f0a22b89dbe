package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <term...>",
	Short: "Search archived notes by title",
	Long:  `Search the SQLite archive for notes whose title contains the term. Run "archive" first to refresh it.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		archive, closeDB := openArchive(loadConfig())
		defer closeDB()

		term := strings.Join(args, " ")
		records, err := archive.Search(cmd.Context(), term)
		if err != nil {
			fatal("Failed to search archive", err)
		}
		if len(records) == 0 {
			fmt.Printf("No notes match %q.\n", term)
			return
		}
		for _, rec := range records {
			fmt.Printf("%s  %d. %s\n", rec.Date, rec.Position+1, rec.Title)
		}
	},
}

func init() {
	searchCmd.Flags().StringVar(&archiveDSN, "dsn", "", "SQLite DSN (default ARCHIVE_DSN)")
	rootCmd.AddCommand(searchCmd)
}
