package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "schedchat",
	Short: "schedchat – a Gemini-backed scheduling assistant",
	Long: `schedchat is a single-binary conversational scheduling assistant.
A Gemini model manages a plain JSON schedule through function calls; the
same schedule can be inspected, imported and exported from the command line.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(agendaCmd)
}
