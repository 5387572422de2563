package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"wikibrief/demo/client"
	"wikibrief/demo/tui"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Interactive client for a running server",
	Long: `Open a terminal UI that sends queries to a running wikibrief server.

Examples:
  wikibrief demo
  wikibrief demo --url http://localhost:9090`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().String("url", "", "server base URL (default http://localhost:$PORT)")
}

func runDemo(cmd *cobra.Command, args []string) error {
	baseURL, _ := cmd.Flags().GetString("url")
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Port
	}

	m := tui.NewModel(client.NewClient(baseURL))
	program := tea.NewProgram(m, tea.WithContext(cmd.Context()))

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
