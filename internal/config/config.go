// Package config provides configuration management for tlcdash.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/FLFTraining/TLC-Dashboard/internal/report"
)

// EnvPrefix prefixes every environment override, e.g. TLCDASH_DATASET.
const EnvPrefix = "TLCDASH"

// ErrNotFound is returned when no configuration file exists.
var ErrNotFound = errors.New("no tlcdash configuration found")

// Config represents the tlcdash configuration.
type Config struct {
	Dashboard DashboardConfig `yaml:"tlcdash"`
}

// DashboardConfig contains the report settings.
type DashboardConfig struct {
	// Dataset is the path to the training export (CSV or XLSX).
	Dataset string `yaml:"dataset" validate:"required"`

	// Sheet selects the worksheet of an XLSX export; empty means auto-detect.
	Sheet string `yaml:"sheet"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// Placeholder is displayed for undefined rates and averages.
	Placeholder string `yaml:"placeholder" validate:"required"`

	CourseTypes CourseTypesConfig `yaml:"course_types"`
	Thresholds  ThresholdsConfig  `yaml:"thresholds"`
	Labels      LabelsConfig      `yaml:"labels"`
}

// CourseTypesConfig labels courses by name prefix.
type CourseTypesConfig struct {
	Prefix string `yaml:"prefix"`
	Match  string `yaml:"match" validate:"required"`
	Other  string `yaml:"other" validate:"required"`
}

// ThresholdsConfig holds the tier boundaries in percent.
type ThresholdsConfig struct {
	Top float64 `yaml:"top" validate:"gte=0,lte=100,gtefield=Mid"`
	Mid float64 `yaml:"mid" validate:"gte=0,lte=100"`
}

// LabelsConfig holds tier labels per view.
type LabelsConfig struct {
	Course     TierLabels `yaml:"course"`
	Department TierLabels `yaml:"department"`
}

// TierLabels names the three tiers.
type TierLabels struct {
	Top string `yaml:"top" validate:"required"`
	Mid string `yaml:"mid" validate:"required"`
	Low string `yaml:"low" validate:"required"`
}

// envOverrides are read from TLCDASH_* variables.
type envOverrides struct {
	Dataset      string `envconfig:"DATASET"`
	Sheet        string `envconfig:"SHEET"`
	LogLevel     string `envconfig:"LOG_LEVEL"`
	CoursePrefix string `envconfig:"COURSE_PREFIX"`
	Placeholder  string `envconfig:"PLACEHOLDER"`
}

// DefaultConfig returns a configuration with the dashboard defaults.
func DefaultConfig() *Config {
	return &Config{
		Dashboard: DashboardConfig{
			Dataset:     "FLF_Daily_Training_Data.csv",
			LogLevel:    "info",
			Placeholder: report.Placeholder,
			CourseTypes: CourseTypesConfig{
				Prefix: "TLC",
				Match:  "TLC",
				Other:  "CE",
			},
			Thresholds: ThresholdsConfig{Top: 80, Mid: 50},
			Labels: LabelsConfig{
				Course: TierLabels{
					Top: report.CourseLabels.Top,
					Mid: report.CourseLabels.Mid,
					Low: report.CourseLabels.Low,
				},
				Department: TierLabels{
					Top: report.DepartmentLabels.Top,
					Mid: report.DepartmentLabels.Mid,
					Low: report.DepartmentLabels.Low,
				},
			},
		},
	}
}

// Load loads configuration from a file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Save saves the configuration to a file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// FindConfig searches for a configuration file starting from the given path.
func FindConfig(startPath string) (string, error) {
	candidates := []string{
		".tlcdash/config.yaml",
		"tlcdash.yaml",
		"tlcdash.yml",
	}

	// Search from start path upward
	dir := startPath
	for {
		for _, candidate := range candidates {
			path := filepath.Join(dir, candidate)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", ErrNotFound
}

// LoadFromDir loads configuration found from the given directory, or the
// defaults when there is none.
func LoadFromDir(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// ApplyEnv overrides settings from TLCDASH_* environment variables.
func (c *Config) ApplyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	d := &c.Dashboard
	if env.Dataset != "" {
		d.Dataset = env.Dataset
	}
	if env.Sheet != "" {
		d.Sheet = env.Sheet
	}
	if env.LogLevel != "" {
		d.LogLevel = strings.ToLower(env.LogLevel)
	}
	if env.CoursePrefix != "" {
		d.CourseTypes.Prefix = env.CoursePrefix
	}
	if env.Placeholder != "" {
		d.Placeholder = env.Placeholder
	}
	return nil
}

// Validate checks the configuration and reports every invalid field by its
// YAML name.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// DatasetPath returns the dataset path resolved against baseDir.
func (c *Config) DatasetPath(baseDir string) string {
	if filepath.IsAbs(c.Dashboard.Dataset) {
		return c.Dashboard.Dataset
	}
	return filepath.Join(baseDir, c.Dashboard.Dataset)
}

// Aggregator builds the report aggregator described by the configuration.
func (c *Config) Aggregator() report.Aggregator {
	d := c.Dashboard
	return report.Aggregator{
		Thresholds: report.Thresholds{Top: d.Thresholds.Top, Mid: d.Thresholds.Mid},
		CourseLabels: report.Labels{
			Top: d.Labels.Course.Top,
			Mid: d.Labels.Course.Mid,
			Low: d.Labels.Course.Low,
		},
		DepartmentLabels: report.Labels{
			Top: d.Labels.Department.Top,
			Mid: d.Labels.Department.Mid,
			Low: d.Labels.Department.Low,
		},
		CourseTypes: report.CourseTypes{
			Prefix: d.CourseTypes.Prefix,
			Match:  d.CourseTypes.Match,
			Other:  d.CourseTypes.Other,
		},
	}
}
