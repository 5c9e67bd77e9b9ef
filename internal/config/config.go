package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"bpr/internal/domain"
)

// Config holds all configuration for a run. It is resolved once at startup
// and treated as immutable afterwards; the dispatcher receives it by value
// of its fields, never through ambient globals.
type Config struct {
	// Project settings
	ProjectPath string
	BehaveBin   string

	// Execution settings
	Workers     int
	UnitTimeout time.Duration // 0 means no per-unit timeout

	// Output settings
	OutputDir  string
	OutputFile string

	// Directories skipped when expanding feature directories
	IgnoreDirs []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flag values applied on top of file and
// environment configuration.
type Flags struct {
	Workers   int
	Timeout   time.Duration
	BehaveBin string
	Tags      []string
}

// fileConfig mirrors the optional .bpr.yaml project file.
type fileConfig struct {
	Workers     int      `yaml:"workers"`
	BehaveBin   string   `yaml:"behave_bin"`
	UnitTimeout string   `yaml:"unit_timeout"`
	OutputDir   string   `yaml:"output_dir"`
	IgnoreDirs  []string `yaml:"ignore_dirs"`
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath: DefaultProjectPath,
		BehaveBin:   DefaultBehaveBin,
		Workers:     DefaultWorkers,
		OutputDir:   DefaultOutputDir,
		OutputFile:  DefaultOutputFile,
	}
	cfg.IgnoreDirs = make([]string, len(DefaultIgnoreDirs))
	copy(cfg.IgnoreDirs, DefaultIgnoreDirs)
	return cfg
}

// Load resolves configuration in precedence order: defaults, then the
// project's .bpr.yaml (if present), then environment variables (after an
// optional .env load), then command-line flags. Invalid values produce a
// ConfigError before any unit runs.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	cfg.Flags = flags

	if err := cfg.applyFile(); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyFlags()

	if cfg.Workers < 1 {
		return nil, &domain.ConfigError{Field: "workers", Reason: "must be a positive integer"}
	}
	if cfg.UnitTimeout < 0 {
		return nil, &domain.ConfigError{Field: "timeout", Reason: "must not be negative"}
	}
	return cfg, nil
}

func (c *Config) applyFile() error {
	data, err := os.ReadFile(filepath.Join(c.ProjectPath, ConfigFileName))
	if err != nil {
		// The config file is optional
		return nil
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return &domain.ConfigError{Field: ConfigFileName, Reason: "cannot be parsed: " + err.Error()}
	}

	if fc.Workers != 0 {
		c.Workers = fc.Workers
	}
	if fc.BehaveBin != "" {
		c.BehaveBin = fc.BehaveBin
	}
	if fc.OutputDir != "" {
		c.OutputDir = fc.OutputDir
	}
	if len(fc.IgnoreDirs) > 0 {
		c.IgnoreDirs = fc.IgnoreDirs
	}
	if fc.UnitTimeout != "" {
		d, err := time.ParseDuration(fc.UnitTimeout)
		if err != nil {
			return &domain.ConfigError{Field: "unit_timeout", Reason: "is not a valid duration"}
		}
		c.UnitTimeout = d
	}
	return nil
}

func (c *Config) applyEnv() error {
	// .env might not exist, that's okay - use process environment
	_ = godotenv.Load(filepath.Join(c.ProjectPath, ".env"))

	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &domain.ConfigError{Field: EnvWorkers, Reason: "is not an integer"}
		}
		c.Workers = n
	}
	if v := os.Getenv(EnvBehaveBin); v != "" {
		c.BehaveBin = v
	}
	if v := os.Getenv(EnvUnitTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return &domain.ConfigError{Field: EnvUnitTimeout, Reason: "is not a valid duration"}
		}
		c.UnitTimeout = d
	}
	return nil
}

func (c *Config) applyFlags() {
	if c.Flags.Workers > 0 {
		c.Workers = c.Flags.Workers
	}
	if c.Flags.Timeout > 0 {
		c.UnitTimeout = c.Flags.Timeout
	}
	if c.Flags.BehaveBin != "" {
		c.BehaveBin = c.Flags.BehaveBin
	}
}

// GetOutputPath returns the absolute path to the last-run report file so
// run and failures always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputDir, c.OutputFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
