package commands

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"apptrack-engine/internal/logging"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	dataDir string
)

var rootCmd = &cobra.Command{
	Use:   "apptrack-engine",
	Short: "Local analytics engine for a job application tracker",
	Long: `apptrack-engine keeps job application records in a local sqlite database and
serves funnel metrics, grouped breakdowns, time series, and plain-language
insights over a localhost HTTP API.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if dataDir == "" {
			dataDir = os.Getenv("APPTRACK_DATA_DIR")
		}
		if dataDir == "" {
			dataDir = "."
		}
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return err
		}
		logging.Init(dataDir, verbose)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("dataDir", dataDir).
			Msg("apptrack-engine starting")
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare invocation behaves like `serve`.
		return runServe(cmd.Context())
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func dbPath() string {
	return filepath.Join(dataDir, "apptrack.db")
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default $APPTRACK_DATA_DIR or .)")
}
