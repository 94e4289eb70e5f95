// ABOUTME: The search command: one-shot catalog matching from the terminal.
// ABOUTME: Prints the same payload the MCP search tool would return.

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/jfeddern/CatalogScout/internal/metrics"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search NAME...",
	Short: "Search the DHI catalog for one or more image names",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig()
		if err != nil {
			return err
		}

		logger := newLogger(cfg)
		eng, err := newEngine(cfg, (*metrics.Collector)(nil), logger)
		if err != nil {
			return err
		}

		result, err := eng.SearchImages(cmd.Context(), args)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}
