package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"desk-calendar/internal/service"
)

var (
	exportFrom   string
	exportTo     string
	exportAlarm  string
	exportName   string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export notes as an iCalendar (.ics) file",
	Long: `Export notes as all-day iCalendar events, one event per note.
Use --alarm HH:MM to add a display alarm on the day of each note.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts := service.ExportOptions{
			AlarmTime: exportAlarm,
			Name:      exportName,
			Now:       time.Now(),
		}
		if exportFrom != "" {
			opts.From = parseDateArg(exportFrom)
		}
		if exportTo != "" {
			opts.To = parseDateArg(exportTo)
		}
		if !opts.From.IsZero() && !opts.To.IsZero() && opts.To.Before(opts.From) {
			fatal("Invalid range", fmt.Errorf("--to %s is before --from %s", opts.To, opts.From))
		}

		notes := openNotes(loadConfig(), false)
		exporter := service.NewExportService(notes)

		var out io.Writer = os.Stdout
		if exportOutput != "" && exportOutput != "-" {
			f, err := os.Create(exportOutput)
			if err != nil {
				fatal("Failed to create output file", err)
			}
			defer f.Close()
			out = f
		}

		count, err := exporter.Export(out, opts)
		if err != nil {
			fatal("Failed to export notes", err)
		}
		if out != os.Stdout {
			fmt.Printf("Exported %d notes to %s.\n", count, exportOutput)
		}
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "First date to export")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Last date to export")
	exportCmd.Flags().StringVar(&exportAlarm, "alarm", "", "Add a same-day alarm at HH:MM")
	exportCmd.Flags().StringVar(&exportName, "name", "", "Calendar name")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
