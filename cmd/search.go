package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"wikibrief/api"
)

// errLookupFailed is returned when the lookup ends in an internal failure.
var errLookupFailed = errors.New("lookup failed")

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Run one lookup and print the JSON payload",
	Long: `Resolve the query against Wikipedia without starting the server and print
the same JSON body the HTTP API would return.

Examples:
  wikibrief search internet
  wikibrief search tour eiffel --compact`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().Bool("compact", false, "print JSON on a single line")
}

func runSearch(cmd *cobra.Command, args []string) error {
	compact, _ := cmd.Flags().GetBool("compact")

	rt, err := newLookupRuntime(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := rt.Close(ctx); err != nil {
			logger.Warn("failed to flush lookup events", "error", err)
		}
	}()

	out := rt.pipeline.Search(cmd.Context(), strings.Join(args, " "))
	status, body := api.Response(out)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	if !compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(body); err != nil {
		return err
	}

	if status >= http.StatusInternalServerError {
		return errLookupFailed
	}
	return nil
}
