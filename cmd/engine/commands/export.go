package commands

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"apptrack-engine/internal/analytics"
	"apptrack-engine/internal/config"
	"apptrack-engine/internal/export"
	"apptrack-engine/internal/store"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the current metrics summary as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := computeSummary(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		return export.WriteCSV(out, s)
	},
}

// computeSummary loads records and config from the data dir and runs the
// analytics engine once. Shared by the export and insights subcommands.
func computeSummary(ctx context.Context) (analytics.Summary, config.Config, error) {
	userCfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		return analytics.Summary{}, config.Config{}, err
	}
	cfg, err := config.Load(userCfgPath)
	if err != nil {
		return analytics.Summary{}, cfg, err
	}

	db, err := store.Open(dbPath())
	if err != nil {
		return analytics.Summary{}, cfg, err
	}
	defer db.Close()

	records, err := store.ListRecords(ctx, db.Pool)
	if err != nil {
		return analytics.Summary{}, cfg, err
	}

	s := analytics.Compute(records, analytics.Options{
		Now:        time.Now().UTC(),
		Months:     cfg.Analytics.Months,
		Weeks:      cfg.Analytics.Weeks,
		GroupLimit: cfg.Analytics.GroupLimit,
		Dimension:  analytics.Dimension(cfg.Analytics.Dimension),
	})
	return s, cfg, nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
