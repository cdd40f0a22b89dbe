package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"desk-calendar/internal/config"
	"desk-calendar/internal/repository"
)

var archiveDSN string

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Mirror the notes file into the SQLite archive",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		notes := openNotes(cfg, false)

		archive, closeDB := openArchive(cfg)
		defer closeDB()

		count, err := archive.Replace(cmd.Context(), notes.Snapshot())
		if err != nil {
			fatal("Failed to archive notes", err)
		}
		dates, err := archive.CountDates(cmd.Context())
		if err != nil {
			fatal("Failed to count archived dates", err)
		}
		fmt.Printf("Archived %d notes over %d dates.\n", count, dates)
	},
}

func init() {
	archiveCmd.Flags().StringVar(&archiveDSN, "dsn", "", "SQLite DSN (default ARCHIVE_DSN)")
	rootCmd.AddCommand(archiveCmd)
}

func openArchive(cfg config.Config) (*repository.ArchiveRepository, func()) {
	dsn := cfg.ArchiveDSN
	if archiveDSN != "" {
		dsn = archiveDSN
	}
	db, err := repository.NewDB(dsn)
	if err != nil {
		fatal("Failed to open archive", err)
	}
	closeDB := func() {}
	if sqlDB, err := db.DB(); err == nil {
		closeDB = func() { sqlDB.Close() }
	}
	return repository.NewArchiveRepository(db), closeDB
}
