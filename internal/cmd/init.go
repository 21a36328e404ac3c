package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/FLFTraining/TLC-Dashboard/internal/config"
	"github.com/FLFTraining/TLC-Dashboard/internal/output"
)

var (
	initForce   bool
	initDataset string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a tlcdash configuration in the current directory",
	Long: `Create .tlcdash/config.yaml with the default thresholds, labels and course
types, pointing at the training export to report on.

  .tlcdash/
  └── config.yaml

Existing configuration is kept unless --force is given.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing configuration")
	initCmd.Flags().StringVar(&initDataset, "dataset", "", "training export path to record in the config")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	return initProject(cmd, cwd)
}

func initProject(cmd *cobra.Command, dir string) error {
	configPath := filepath.Join(dir, ".tlcdash", "config.yaml")

	if !initForce {
		if _, err := os.Stat(configPath); err == nil {
			cmd.Printf("%s %s already exists\n", output.Color("Warning:", output.Yellow), configPath)
			cmd.Printf("%s\n", output.Color("Use --force to overwrite", output.Dim))
			return NewExitError(1, "configuration already exists")
		}
	}

	cfg := config.DefaultConfig()
	if initDataset != "" {
		cfg.Dashboard.Dataset = initDataset
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}
	cmd.Printf("  %s Created %s\n", output.Checkmark(true), configPath)

	if _, err := os.Stat(cfg.DatasetPath(dir)); err != nil {
		cmd.Printf("  %s Dataset %s not found yet\n", output.Color("!", output.Yellow), cfg.Dashboard.Dataset)
	}

	cmd.Println()
	cmd.Println("Next steps:")
	cmd.Printf("  1. Place the training export at %s\n", cfg.DatasetPath(dir))
	cmd.Println("  2. Run 'tlcdash health' to check the data")
	cmd.Println("  3. Run 'tlcdash summary' to see compliance")
	return nil
}
