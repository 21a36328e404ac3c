package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/FLFTraining/TLC-Dashboard/internal/config"
	"github.com/FLFTraining/TLC-Dashboard/internal/dataset"
	"github.com/FLFTraining/TLC-Dashboard/internal/output"
)

var (
	configValidate bool
	configFormat   string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or validate tlcdash configuration",
	Long: `Display the effective configuration after merging defaults, the config
file and TLCDASH_* environment variables.

Examples:
    tlcdash config                     # Show current config
    tlcdash config --validate          # Check values and the dataset path
    tlcdash config --format yaml       # Output as YAML`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configValidate, "validate", false, "validate configuration and check the dataset path")
	configCmd.Flags().StringVar(&configFormat, "format", "terminal", "output format: terminal, yaml, json")

	rootCmd.AddCommand(configCmd)
}

// effectiveConfig loads the configuration the way every report command
// does, without validating it or touching the dataset.
func effectiveConfig() (cfg *config.Config, source, baseDir string, err error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to get working directory: %w", err)
	}

	source, baseDir = cfgFile, cwd
	if source != "" {
		baseDir = configBaseDir(source)
	} else if found, ferr := config.FindConfig(cwd); ferr == nil {
		source = found
	}

	if source != "" {
		cfg, err = config.Load(source)
	} else {
		cfg = config.DefaultConfig()
	}
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, "", "", err
	}
	if logLevel != "" {
		cfg.Dashboard.LogLevel = logLevel
	}
	return cfg, source, baseDir, nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, source, baseDir, err := effectiveConfig()
	if err != nil {
		return err
	}

	if configValidate {
		return validateConfig(cmd, cfg, source, baseDir)
	}

	switch configFormat {
	case "json":
		data, err := json.MarshalIndent(cfg.Dashboard, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	default:
		displayConfigTerminal(cmd, cfg, source, baseDir)
	}
	return nil
}

func validateConfig(cmd *cobra.Command, cfg *config.Config, source, baseDir string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, output.Header("Configuration Validation", screenWidth))
	fmt.Fprintln(out)

	var errs, warnings []string

	if source == "" {
		warnings = append(warnings, "Config file not found (using defaults)")
	} else {
		fmt.Fprintf(out, "  %s Config file: %s\n", output.Color("[PASS]", output.Green), source)
	}

	if err := cfg.Validate(); err != nil {
		errs = append(errs, err.Error())
	} else {
		fmt.Fprintf(out, "  %s Settings\n", output.Color("[PASS]", output.Green))
	}

	if path, err := resolveDataset(cfg, baseDir); err != nil {
		errs = append(errs, fmt.Sprintf("Dataset not found: %s", cfg.Dashboard.Dataset))
	} else {
		fmt.Fprintf(out, "  %s Dataset: %s\n", output.Color("[PASS]", output.Green), path)
		if _, err := dataset.Load(path, cfg.Dashboard.Sheet); err != nil {
			errs = append(errs, fmt.Sprintf("Dataset unreadable: %v", err))
		}
	}

	fmt.Fprintln(out)
	for _, e := range errs {
		fmt.Fprintf(out, "  %s %s\n", output.Color("[FAIL]", output.Red), e)
	}
	for _, w := range warnings {
		fmt.Fprintf(out, "  %s %s\n", output.Color("[WARN]", output.Yellow), w)
	}
	fmt.Fprintln(out)

	switch {
	case len(errs) > 0:
		fmt.Fprintf(out, "Status: %s\n", output.Color("INVALID", output.Red))
		return NewExitError(1, "configuration validation failed")
	case len(warnings) > 0:
		fmt.Fprintf(out, "Status: %s\n", output.Color("VALID (with warnings)", output.Yellow))
	default:
		fmt.Fprintf(out, "Status: %s\n", output.Color("VALID", output.Green))
	}
	return nil
}

func displayConfigTerminal(cmd *cobra.Command, cfg *config.Config, source, baseDir string) {
	out := cmd.OutOrStdout()
	d := cfg.Dashboard

	if source == "" {
		source = "(defaults)"
	}

	fmt.Fprintln(out, output.Header("tlcdash Configuration", screenWidth))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Paths:")
	fmt.Fprintf(out, "  Config file:  %s\n", source)
	fmt.Fprintf(out, "  Dataset:      %s\n", cfg.DatasetPath(baseDir))
	if d.Sheet != "" {
		fmt.Fprintf(out, "  Sheet:        %s\n", d.Sheet)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Report:")
	fmt.Fprintf(out, "  Thresholds:   top >= %.0f%%, mid >= %.0f%%\n", d.Thresholds.Top, d.Thresholds.Mid)
	fmt.Fprintf(out, "  Course types: %q -> %s, otherwise %s\n", d.CourseTypes.Prefix, d.CourseTypes.Match, d.CourseTypes.Other)
	fmt.Fprintf(out, "  Course:       %s / %s / %s\n", d.Labels.Course.Top, d.Labels.Course.Mid, d.Labels.Course.Low)
	fmt.Fprintf(out, "  Department:   %s / %s / %s\n", d.Labels.Department.Top, d.Labels.Department.Mid, d.Labels.Department.Low)
	fmt.Fprintf(out, "  Placeholder:  %s\n", d.Placeholder)
	fmt.Fprintf(out, "  Log level:    %s\n", d.LogLevel)
}
