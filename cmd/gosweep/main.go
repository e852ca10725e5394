package main

import (
	"errors"
	"fmt"
	"os"

	"gosweep/internal/cli"
	"gosweep/internal/cli/commands"
	"gosweep/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "gosweep",
		Short:   "Run all unit tests under a directory tree",
		Long:    `A local test sweep runner. Discover test functions across a directory tree, narrow them by include/exclude regex patterns, run them through go test, and report results, optionally with coverage measurement and memory leak detection.`,
		Version: version,
		// main reports errors itself so failures don't print twice
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, commands.ErrTestsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
