package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FLFTraining/TLC-Dashboard/internal/report"
)

var (
	departmentsFilters filterFlags
	departmentsList    bool
)

var departmentsCmd = &cobra.Command{
	Use:   "departments",
	Short: "Show compliance per department",
	Long: `Display one row per department with assignment and completion counts,
compliance rate and status tier.

Use --list to print the distinct department names of the whole export, the
values accepted by --department.`,
	RunE: runDepartments,
}

func init() {
	departmentsFilters.register(departmentsCmd.Flags())
	departmentsCmd.Flags().BoolVar(&departmentsList, "list", false, "list department names only")
}

func runDepartments(cmd *cobra.Command, args []string) error {
	w, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}

	if departmentsList {
		out := cmd.OutOrStdout()
		for _, name := range report.DepartmentNames(w.data.Records) {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	snap, err := filteredSnapshot(w, &departmentsFilters)
	if err != nil {
		return err
	}

	renderDepartments(cmd.OutOrStdout(), snap, w.display())
	return nil
}
