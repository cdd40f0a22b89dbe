package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"desk-calendar/internal/config"
	"desk-calendar/internal/model"
	"desk-calendar/internal/service"
	"desk-calendar/internal/store"
)

var (
	verbose    bool
	configPath string
	notesFile  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "deskcalendar",
	Short: "Calendar notes with a same-day reminder",
	Long: `deskcalendar attaches short notes to calendar dates and keeps them in a
single JSON file. It reminds you at session start when today has notes.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $DESKCALENDAR_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&notesFile, "file", "f", "", "Notes file (overrides NOTES_FILE)")
}

func loadConfig() config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fatal("Failed to load config", err)
	}
	if notesFile != "" {
		cfg.NotesFile = notesFile
	}
	return cfg
}

// openNotes loads the notes file. Commands that write back refuse to run over a
// file that failed to parse, so it is not replaced by an empty store.
func openNotes(cfg config.Config, writable bool) *service.NoteService {
	notes, err := service.OpenNoteService(cfg.NotesFile, cfg.NoteColor, slog.Default())
	if err != nil && writable && !errors.Is(err, store.ErrEmptyFile) {
		fatal("Refusing to modify notes", err)
	}
	return notes
}

func commit(notes *service.NoteService) {
	if err := notes.Commit(); err != nil {
		fatal("Failed to save notes", err)
	}
}

func parseDateArg(arg string) model.Date {
	date, err := model.ResolveDate(arg, model.DateOf(time.Now()))
	if err != nil {
		fatal("Invalid date", err)
	}
	return date
}

func printNotes(date model.Date, notes []model.Note) {
	fmt.Printf("%s\n", date)
	if len(notes) == 0 {
		fmt.Println("  (no notes)")
		return
	}
	for i, note := range notes {
		fmt.Printf("  %d. %s\n", i+1, note.Title)
	}
}
