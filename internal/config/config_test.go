package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestConfig_GetTestsDir(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name: "default path",
			config: &Config{
				ProjectPath: ".",
				TestsDir:    "tests",
				Flags:       Flags{},
			},
			expected: "tests",
		},
		{
			name: "with tests flag",
			config: &Config{
				ProjectPath: "/project",
				TestsDir:    "tests",
				Flags: Flags{
					TestsDir: "unit",
				},
			},
			expected: "/project/unit",
		},
		{
			name: "absolute tests flag",
			config: &Config{
				ProjectPath: "/project",
				TestsDir:    "tests",
				Flags: Flags{
					TestsDir: "/absolute/path",
				},
			},
			expected: "/absolute/path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetTestsDir()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_Verbosity(t *testing.T) {
	cfg := &Config{}

	t.Run("default is 1", func(t *testing.T) {
		if v := cfg.Verbosity(); v != 1 {
			t.Errorf("expected verbosity 1, got %d", v)
		}
	})

	t.Run("quiet wins over verbose", func(t *testing.T) {
		cfg.Flags = Flags{Quiet: true, Verbose: 3}
		if v := cfg.Verbosity(); v != 0 {
			t.Errorf("expected verbosity 0, got %d", v)
		}
	})

	t.Run("verbose adds up", func(t *testing.T) {
		cfg.Flags = Flags{Verbose: 2}
		if v := cfg.Verbosity(); v != 3 {
			t.Errorf("expected verbosity 3, got %d", v)
		}
	})
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}

	if cfg.TestsDir != DefaultTestsDir {
		t.Errorf("expected TestsDir %s, got %s", DefaultTestsDir, cfg.TestsDir)
	}

	if len(cfg.SkipDirs) != len(DefaultSkipDirs) {
		t.Errorf("expected %d skip dirs, got %d", len(DefaultSkipDirs), len(cfg.SkipDirs))
	}
}

func TestNew_WarnsOnMalformedConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("tests_dir: [unterminated"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	}()

	var buf bytes.Buffer
	oldOut := color.Output
	color.Output = &buf
	defer func() { color.Output = oldOut }()

	cfg := New()

	if !strings.Contains(buf.String(), "Warning") {
		t.Errorf("expected a warning for the broken config file, got %q", buf.String())
	}
	if cfg.TestsDir != DefaultTestsDir {
		t.Errorf("expected defaults to survive a broken config file, got TestsDir %s", cfg.TestsDir)
	}
}

func TestApplyFile(t *testing.T) {
	t.Run("missing file is not an error", func(t *testing.T) {
		cfg := &Config{TestsDir: DefaultTestsDir}
		if err := applyFile(cfg, filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.TestsDir != DefaultTestsDir {
			t.Errorf("config should be unchanged, got TestsDir %s", cfg.TestsDir)
		}
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gosweep.yaml")
		content := "tests_dir: unit\nskip_dirs:\n  - fixtures\nleak_threshold_kb: 1024\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		cfg := &Config{TestsDir: DefaultTestsDir, LeakThresholdKB: DefaultLeakThresholdKB}
		if err := applyFile(cfg, path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.TestsDir != "unit" {
			t.Errorf("expected TestsDir unit, got %s", cfg.TestsDir)
		}
		if cfg.LeakThresholdKB != 1024 {
			t.Errorf("expected threshold 1024, got %d", cfg.LeakThresholdKB)
		}
		if len(cfg.SkipDirs) == 0 || cfg.SkipDirs[len(cfg.SkipDirs)-1] != "fixtures" {
			t.Errorf("expected fixtures appended to skip dirs, got %v", cfg.SkipDirs)
		}
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gosweep.yaml")
		if err := os.WriteFile(path, []byte("tests_dir: [unterminated"), 0644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if err := applyFile(&Config{}, path); err == nil {
			t.Error("expected error for malformed yaml")
		}
	})
}
