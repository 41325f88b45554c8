package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"schedchat/internal/chat"
	"schedchat/internal/config"
	"schedchat/internal/gemini"
	"schedchat/internal/schedule"
	"schedchat/internal/tools"
)

var (
	chatModel    string
	chatSchedule string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive scheduling conversation",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatModel, "model", "", "Gemini model name (overrides config)")
	chatCmd.Flags().StringVar(&chatSchedule, "schedule", "", "Schedule file path (overrides config)")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if chatModel != "" {
		cfg.Gemini.Model = chatModel
	}
	if chatSchedule != "" {
		cfg.SchedulePath = chatSchedule
	}

	// Credential problems are fatal before any conversation state exists.
	ctx := context.Background()
	client, err := newGeminiClient(ctx, cfg)
	if err != nil {
		return err
	}

	store := schedule.Open(cfg.SchedulePath)
	disp := tools.NewDispatcher(store, nil)
	session := chat.NewSession(client, disp, store, "Gemini", os.Stdin, os.Stdout, nil)

	return session.Run(ctx)
}

// newGeminiClient resolves the credential: the GEMINI_API_KEY environment
// variable first, the configured OAuth2 device flow second. Neither present
// is a startup error.
func newGeminiClient(ctx context.Context, cfg config.Config) (*gemini.Client, error) {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return gemini.NewClient(cfg.Gemini.Model, key), nil
	}
	if cfg.Gemini.OAuthClientID != "" {
		httpClient, err := gemini.OAuthHTTPClient(ctx, cfg.Gemini.OAuthClientID, cfg.Gemini.OAuthClientSecret)
		if err != nil {
			return nil, err
		}
		return gemini.NewClientWithHTTP(httpClient, cfg.Gemini.Model), nil
	}
	return nil, fmt.Errorf("please set the GEMINI_API_KEY environment variable (or configure an OAuth client in the config file)")
}
