package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"schedchat/internal/ics"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the schedule as an iCalendar file",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default stdout)")
	exportCmd.Flags().StringVar(&chatSchedule, "schedule", "", "Schedule file path (overrides config)")
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	w := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := ics.Export(w, store.Snapshot()); err != nil {
		return err
	}
	if exportOut != "" {
		fmt.Printf("Exported %d events to %s\n", len(store.Events()), exportOut)
	}
	return nil
}
