package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"apptrack-engine/internal/domain"
	"apptrack-engine/internal/importer"
	"apptrack-engine/internal/store"
)

var (
	importFile   string
	importFormat string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import application records from a CSV or HTML export",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(importFile)
		if err != nil {
			return err
		}
		defer f.Close()

		var (
			records []domain.Record
			skipped int
		)
		switch importFormat {
		case "csv":
			records, skipped, err = importer.ReadCSV(f)
		case "html":
			records, skipped, err = importer.ReadHTML(f)
		default:
			return fmt.Errorf("format must be csv or html, got %q", importFormat)
		}
		if err != nil {
			return err
		}

		db, err := store.Open(dbPath())
		if err != nil {
			return err
		}
		defer db.Close()

		added := 0
		for _, rec := range records {
			_, ok, err := store.InsertRecord(cmd.Context(), db.Pool, rec)
			if err != nil {
				return err
			}
			if ok {
				added++
			}
		}

		log.Info().Int("parsed", len(records)).Int("added", added).Int("skipped", skipped).
			Str("file", importFile).Msg("import finished")
		fmt.Fprintf(cmd.OutOrStdout(), "parsed %d, added %d, skipped %d\n", len(records), added, skipped)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "path to the export file")
	importCmd.Flags().StringVar(&importFormat, "format", "csv", "file format: csv or html")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}
