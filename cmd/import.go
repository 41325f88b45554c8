package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"schedchat/internal/ics"
)

var importHorizon int

var importCmd = &cobra.Command{
	Use:   "import <file.ics>",
	Short: "Import events from an iCalendar file",
	Long: `Import appends the events of an iCalendar file to the schedule.
Recurring events (RRULE) are expanded into concrete dated entries from today
up to the horizon; the schedule itself keeps no recurrence information.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().IntVar(&importHorizon, "horizon", 90, "Days ahead to expand recurring events")
	importCmd.Flags().StringVar(&chatSchedule, "schedule", "", "Schedule file path (overrides config)")
}

func runImport(cmd *cobra.Command, args []string) error {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, importHorizon)

	events, err := ics.ReadFile(args[0], from, to)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No events found in the given range.")
		return nil
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	if err := store.Append(events...); err != nil {
		return err
	}
	fmt.Printf("Imported %d events from %s\n", len(events), args[0])
	return nil
}
