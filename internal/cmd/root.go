// Package cmd provides the CLI commands for tlcdash.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/FLFTraining/TLC-Dashboard/internal/config"
	"github.com/FLFTraining/TLC-Dashboard/internal/dataset"
	"github.com/FLFTraining/TLC-Dashboard/internal/logger"
	"github.com/FLFTraining/TLC-Dashboard/internal/output"
	"github.com/FLFTraining/TLC-Dashboard/internal/report"
)

var (
	// Version is set at build time via ldflags.
	Version = "dev"
	// Commit is set at build time via ldflags.
	Commit = "none"
	// Date is set at build time via ldflags.
	Date = "unknown"
)

var (
	cfgFile  string
	dataFile string
	noColor  bool
	logLevel string
)

// ExitError carries a process exit code up to main.
type ExitError struct {
	Code int
	Msg  string
}

// NewExitError creates an ExitError.
func NewExitError(code int, msg string) *ExitError {
	return &ExitError{Code: code, Msg: msg}
}

func (e *ExitError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Msg
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tlcdash",
	Short: "Training compliance dashboard",
	Long: `tlcdash reports training compliance from a course assignment export.

It reads the CSV or Excel export, computes headline KPIs and per-course,
per-department and per-individual views, and renders them to the terminal
or to XLSX, JSON, HTML and CSV files. Every view can be narrowed by
enrollment date range, department and name.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			output.DisableColor()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .tlcdash/config.yaml or tlcdash.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "", "training export to load (overrides the configured dataset)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(departmentsCmd)
	rootCmd.AddCommand(individualsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(healthCmd)
}

// workspace is the loaded configuration and dataset of one invocation.
type workspace struct {
	cfg     *config.Config
	baseDir string
	data    *dataset.Dataset
}

// loadWorkspace reads the configuration, applies environment overrides,
// configures logging and loads the dataset.
func loadWorkspace(cmd *cobra.Command) (*workspace, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	var cfg *config.Config
	baseDir := cwd
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		baseDir = configBaseDir(cfgFile)
	} else {
		cfg, err = config.LoadFromDir(cwd)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Dashboard.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Init(cfg.Dashboard.LogLevel, cmd.ErrOrStderr())

	path, err := resolveDataset(cfg, baseDir)
	if err != nil {
		return nil, err
	}

	data, err := dataset.Load(path, cfg.Dashboard.Sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	log := logger.Named("ingest")
	log.Info().
		Str("path", path).
		Int("rows", data.Len()).
		Int("issues", len(data.Issues)).
		Msg("dataset read")
	if n := len(data.Issues); n > 0 {
		log.Warn().Int("issues", n).Msg("dataset has data quality issues; run 'tlcdash health' for details")
	}

	return &workspace{cfg: cfg, baseDir: baseDir, data: data}, nil
}

// newSession loads the workspace into a ready report session.
func (w *workspace) newSession() (*report.Session, error) {
	s := report.NewSession(
		report.WithAggregator(w.cfg.Aggregator()),
		report.WithLogger(logger.Named("report")),
	)
	if _, err := s.Load(w.data.Records); err != nil {
		return nil, fmt.Errorf("failed to start report session: %w", err)
	}
	return s, nil
}

// placeholder returns the configured text for undefined metrics.
func (w *workspace) placeholder() string {
	return w.cfg.Dashboard.Placeholder
}

func (w *workspace) thresholds() report.Thresholds {
	return w.cfg.Aggregator().Thresholds
}

// resolveDataset returns the --data path, or searches for the configured
// dataset from baseDir upward.
func resolveDataset(cfg *config.Config, baseDir string) (string, error) {
	if dataFile != "" {
		return dataFile, nil
	}

	path, err := dataset.FindDataset(baseDir, cfg.Dashboard.Dataset)
	if err != nil {
		return "", fmt.Errorf("failed to find dataset (set --data or tlcdash.dataset): %w", err)
	}
	return path, nil
}

// configBaseDir returns the project directory of a config file: the parent
// of .tlcdash/ or the file's own directory.
func configBaseDir(path string) string {
	dir := filepath.Dir(path)
	if filepath.Base(dir) == ".tlcdash" {
		return filepath.Dir(dir)
	}
	return dir
}
