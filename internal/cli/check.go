// ABOUTME: The check command: end-to-end connectivity self-test.
// ABOUTME: Probes catalog fetch, tag listing, compliance, and support lookup.

package cli

import (
	"fmt"

	"github.com/jfeddern/CatalogScout/internal/metrics"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Test connectivity to the DHI catalog and exit",
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

		ctx := cmd.Context()

		fmt.Println("Testing DHI catalog connectivity...")

		stats, err := eng.Statistics(ctx)
		if err != nil {
			return err
		}
		fmt.Println("Successfully connected to DHI catalog!")
		fmt.Printf("Catalog contains %d items.\n", stats.Total())
		for itemType, count := range stats {
			fmt.Printf("  - %s: %d\n", itemType, count)
		}

		images, err := eng.ListImages(ctx, "")
		if err != nil {
			return err
		}
		if len(images) == 0 {
			return nil
		}

		first := images[0]
		fmt.Printf("\nTesting tag retrieval for: %s\n", first)
		tags, err := eng.ListTags(ctx, first)
		if err != nil {
			return err
		}
		fmt.Printf("Found %d tags.\n", len(tags))

		report, err := eng.Compliance(ctx, first)
		if err != nil {
			return err
		}
		fmt.Printf("Compliance: FIPS=%t, STIG=%t\n", report.Compliance.FIPS, report.Compliance.STIG)

		if len(tags) > 0 {
			fmt.Printf("\nTesting support info for: %s:%s\n", first, tags[0])
			info, err := eng.SupportInfo(ctx, first, tags[0])
			if err != nil {
				return err
			}
			if info.Info != "" {
				fmt.Printf("Support info: %s\n", info.Info)
			} else {
				fmt.Printf("Support info: %s (EOL %s, EOS %s)\n", info.DisplayName, info.EndOfLife, info.EndOfSupport)
			}
		}

		return nil
	},
}
