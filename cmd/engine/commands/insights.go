package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"apptrack-engine/internal/insights"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Print plain-language insights for the current data",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cfg, err := computeSummary(cmd.Context())
		if err != nil {
			return err
		}

		list := insights.Generate(s, insights.Inputs{
			WeeklyGoal:    cfg.Analytics.WeeklyGoal,
			ThisWeekCount: s.ThisWeekCount,
		}, cfg.Policy())

		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No insights: everything looks healthy.")
			return nil
		}
		for _, line := range list {
			fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}
