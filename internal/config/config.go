package config

import (
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	TestsDir    string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string
	CoverageDir    string

	// Leak detection
	LeakThresholdKB int64

	// Paths to skip when scanning
	SkipDirs []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags after cobra parsing
type Flags struct {
	Verbose   int
	Quiet     bool
	Exclude   bool
	FailFast  bool
	Catch     bool
	Forever   bool
	FindLeaks bool
	Coverage  bool
	TestsDir  string
	Patterns  []string
	Symbols   bool
}

// New creates a new Config with defaults, then applies the optional
// gosweep.yaml file and a .env file if either is present next to the project.
func New() *Config {
	cfg := &Config{
		ProjectPath:     DefaultProjectPath,
		TestsDir:        DefaultTestsDir,
		OutputJSONFile:  DefaultOutputJSONFile,
		OutputJSONDir:   DefaultOutputJSONDir,
		CoverageDir:     DefaultCoverageDir,
		LeakThresholdKB: DefaultLeakThresholdKB,
	}
	cfg.SkipDirs = make([]string, len(DefaultSkipDirs))
	copy(cfg.SkipDirs, DefaultSkipDirs)

	// Both are optional; absence is not an error. A config file that
	// exists but does not parse must not be skipped silently.
	_ = godotenv.Load(filepath.Join(cfg.ProjectPath, ".env"))
	if err := applyFile(cfg, filepath.Join(cfg.ProjectPath, DefaultConfigFile)); err != nil {
		color.Yellow("Warning: %v, using defaults", err)
	}

	return cfg
}

// Verbosity returns the effective verbosity level: 0 quiet, 1 normal,
// 2 per-test lines, 3+ passes -v through to the test engine.
func (c *Config) Verbosity() int {
	if c.Flags.Quiet {
		return 0
	}
	return c.Flags.Verbose + 1
}

// GetTestsDir returns the tests directory, using the flag if provided
func (c *Config) GetTestsDir() string {
	dir := c.TestsDir
	if c.Flags.TestsDir != "" {
		dir = c.Flags.TestsDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.ProjectPath, dir)
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run and failures always read/write the
// same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetCoverageDir returns the directory the HTML coverage report goes to.
func (c *Config) GetCoverageDir() string {
	if filepath.IsAbs(c.CoverageDir) {
		return c.CoverageDir
	}
	return filepath.Join(c.ProjectPath, c.CoverageDir)
}

// DatabaseDSN returns the MySQL DSN for the run-history store, or "" when
// history should stay in the JSON file only.
func (c *Config) DatabaseDSN() string {
	return os.Getenv(EnvDBDSN)
}
