package cmd

import (
	"github.com/spf13/cobra"
)

var coursesFilters filterFlags

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Show compliance per course",
	Long: `Display one row per course with its type, assignment and completion counts,
compliance rate, average score of completed assignments and status tier.

Courses are listed in the order they first appear in the export. Rows
without a course are not shown here but still count in the KPIs.`,
	RunE: runCourses,
}

func init() {
	coursesFilters.register(coursesCmd.Flags())
}

func runCourses(cmd *cobra.Command, args []string) error {
	w, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}

	snap, err := filteredSnapshot(w, &coursesFilters)
	if err != nil {
		return err
	}

	renderCourses(cmd.OutOrStdout(), snap, w.display())
	return nil
}
