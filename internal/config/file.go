package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the shape of the optional gosweep.yaml file. Only the
// fields that make sense as project-level defaults are exposed; flags
// still win over the file.
type fileConfig struct {
	TestsDir        string   `yaml:"tests_dir"`
	OutputDir       string   `yaml:"output_dir"`
	CoverageDir     string   `yaml:"coverage_dir"`
	SkipDirs        []string `yaml:"skip_dirs"`
	LeakThresholdKB int64    `yaml:"leak_threshold_kb"`
}

// applyFile overlays settings from the YAML file at path onto cfg.
// A missing file is fine; a malformed one is an error.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if fc.TestsDir != "" {
		cfg.TestsDir = fc.TestsDir
	}
	if fc.OutputDir != "" {
		cfg.OutputJSONDir = fc.OutputDir
	}
	if fc.CoverageDir != "" {
		cfg.CoverageDir = fc.CoverageDir
	}
	if len(fc.SkipDirs) > 0 {
		cfg.SkipDirs = append(cfg.SkipDirs, fc.SkipDirs...)
	}
	if fc.LeakThresholdKB > 0 {
		cfg.LeakThresholdKB = fc.LeakThresholdKB
	}
	return nil
}
