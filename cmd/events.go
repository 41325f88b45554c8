package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"schedchat/internal/config"
	"schedchat/internal/model"
	"schedchat/internal/schedule"
	"schedchat/internal/tools"
)

var (
	eventsDate        string
	eventsDescription string
	eventsTime        string
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect and edit the schedule directly",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events, optionally filtered by date",
	Args:  cobra.NoArgs,
	RunE:  runEventsList,
}

var eventsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a single event",
	Args:  cobra.NoArgs,
	RunE:  runEventsAdd,
}

var eventsRemoveCmd = &cobra.Command{
	Use:   "remove <index>",
	Short: "Remove an event by its full-list index",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventsRemove,
}

func init() {
	eventsCmd.PersistentFlags().StringVar(&chatSchedule, "schedule", "", "Schedule file path (overrides config)")
	eventsListCmd.Flags().StringVar(&eventsDate, "date", "", "Only show events on this date (YYYY-MM-DD)")
	eventsAddCmd.Flags().StringVar(&eventsDescription, "description", "", "Event description")
	eventsAddCmd.Flags().StringVar(&eventsDate, "date", "", "Event date (YYYY-MM-DD)")
	eventsAddCmd.Flags().StringVar(&eventsTime, "time", "", "Event time")
	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsAddCmd)
	eventsCmd.AddCommand(eventsRemoveCmd)
}

// openStore resolves the schedule path (flag over config) and opens it.
func openStore() (*schedule.Store, error) {
	path := chatSchedule
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		path = cfg.SchedulePath
	}
	return schedule.Open(path), nil
}

func runEventsList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	disp := tools.NewDispatcher(store, time.Now)

	callArgs := map[string]any{}
	if eventsDate != "" {
		callArgs["date"] = eventsDate
	}
	result, err := disp.Dispatch("list_events", callArgs)
	if err != nil {
		return err
	}
	fmt.Println(result)
	return nil
}

func runEventsAdd(cmd *cobra.Command, args []string) error {
	if eventsDescription == "" || eventsDate == "" || eventsTime == "" {
		return fmt.Errorf("events add requires --description, --date and --time")
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	event := model.Event{Description: eventsDescription, Date: eventsDate, Time: eventsTime}
	if err := store.Append(event); err != nil {
		return err
	}
	fmt.Printf("Added event: %s on %s at %s\n", event.Description, event.Date, event.Time)
	return nil
}

func runEventsRemove(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[0])
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	removed, err := store.RemoveAt(index)
	if err != nil {
		return err
	}
	fmt.Printf("Removed event: %s\n", removed.Description)
	return nil
}
