package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"schedchat/internal/agenda"
	"schedchat/internal/config"
	"schedchat/internal/model"
	"schedchat/internal/schedule"
)

var agendaWatch bool

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Print today's agenda",
	Long: `Agenda prints today's events. With --watch it keeps running and
reprints the agenda on the configured cron schedule (agenda_cron) until
interrupted.`,
	Args: cobra.NoArgs,
	RunE: runAgenda,
}

func init() {
	agendaCmd.Flags().BoolVar(&agendaWatch, "watch", false, "Keep running and reprint on the configured cron schedule")
	agendaCmd.Flags().StringVar(&chatSchedule, "schedule", "", "Schedule file path (overrides config)")
}

func runAgenda(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	path := cfg.SchedulePath
	if chatSchedule != "" {
		path = chatSchedule
	}

	today := func() string { return time.Now().Format("2006-01-02") }
	load := func() model.Schedule { return schedule.Open(path).Snapshot() }

	if !agendaWatch {
		agenda.Render(os.Stdout, load(), today())
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return agenda.Watch(ctx, os.Stdout, load, cfg.AgendaCron, today)
}
