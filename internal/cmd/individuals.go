package cmd

import (
	"github.com/spf13/cobra"
)

var individualsFilters filterFlags

var individualsCmd = &cobra.Command{
	Use:   "individuals",
	Short: "List assignments per person",
	Long: `Display one row per assignment with the person's name, department, course,
status and own average score. Rows missing a first name, last name or course
are left out.`,
	Example: `  tlcdash individuals --name ann
  tlcdash individuals --department Intake --start 2025-04-01`,
	RunE: runIndividuals,
}

func init() {
	individualsFilters.register(individualsCmd.Flags())
}

func runIndividuals(cmd *cobra.Command, args []string) error {
	w, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}

	snap, err := filteredSnapshot(w, &individualsFilters)
	if err != nil {
		return err
	}

	renderIndividuals(cmd.OutOrStdout(), snap, w.display())
	return nil
}
