package cmd

import (
	"github.com/spf13/cobra"
)

var summaryFilters filterFlags

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show headline KPIs and the course summary",
	Long: `Display the headline counters (distinct courses, assignments, completions,
compliance rate and average score of completed assignments) followed by the
per-course summary table.

Compliance rates and averages over an empty group are shown as a placeholder
rather than zero.`,
	Example: `  tlcdash summary
  tlcdash summary --start 2025-04-01 --end 2025-04-30 --department Legal`,
	RunE: runSummary,
}

func init() {
	summaryFilters.register(summaryCmd.Flags())
}

func runSummary(cmd *cobra.Command, args []string) error {
	w, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}

	snap, err := filteredSnapshot(w, &summaryFilters)
	if err != nil {
		return err
	}

	renderSummary(cmd.OutOrStdout(), snap, w.display())
	return nil
}
