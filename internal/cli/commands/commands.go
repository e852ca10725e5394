package commands

import (
	"os"

	"gosweep/internal/cli"
	"gosweep/internal/config"
	"gosweep/internal/discovery"
	"gosweep/internal/execution"
	"gosweep/internal/storage"
	"gosweep/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	scanner := discovery.NewScanner(cfg.SkipDirs)
	parser := discovery.NewParser()
	finder := discovery.NewFinder(scanner, parser, os.Stderr)
	runner := execution.NewRunner(cfg)
	sweeper := execution.NewSweeper(cfg, runner)
	store := storage.ForConfig(cfg)
	formatter := ui.NewFormatter(cfg)
	viewer := ui.NewFailureViewer(cfg, store)

	return &Commands{
		Run:      NewRunCommand(cfg, finder, sweeper, store, formatter),
		List:     NewListCommand(cfg, finder, formatter),
		Failures: NewFailuresCommand(cfg, store, viewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Run command
	runCmd := &cobra.Command{
		Use:   "run [patterns...]",
		Short: "Discover and run tests",
		Long: "Walk the tests directory, collect test functions, narrow them by " +
			"include/exclude regex patterns matched against fully qualified test ids " +
			"(e.g. 'example.com/app/tests.TestUserLogin'), and run them one at a time.",
		RunE:         c.Run.Execute,
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			flags.Patterns = append(flags.Patterns, args...)
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	runCmd.Flags().CountVarP(&flags.Verbose, "verbose", "v", "verbose output (repeat for more)")
	runCmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "quiet output")
	runCmd.Flags().BoolVarP(&flags.Exclude, "exclude", "x", false, "treat the given patterns as excludes")
	runCmd.Flags().StringArrayVar(&flags.Patterns, "pattern", nil, "regex pattern to match test ids (repeatable; default all tests)")
	runCmd.Flags().BoolVarP(&flags.FailFast, "fail-fast", "f", false, "stop on first fail or error")
	runCmd.Flags().BoolVarP(&flags.Catch, "catch", "c", false, "catch control-C: finish the running test and report partial results")
	runCmd.Flags().BoolVar(&flags.Forever, "forever", false, "run tests forever to catch sporadic errors")
	runCmd.Flags().BoolVar(&flags.FindLeaks, "find-leaks", false, "detect tests that leak memory")
	runCmd.Flags().StringVarP(&flags.TestsDir, "tests", "t", "", "tests directory (default \"tests\")")
	runCmd.Flags().BoolVar(&flags.Coverage, "coverage", false, "enable html coverage report")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list [patterns...]",
		Short: "List discovered tests",
		Long:  "Scan and list all tests without executing them",
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			flags.Patterns = append(flags.Patterns, args...)
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	listCmd.Flags().BoolVarP(&flags.Exclude, "exclude", "x", false, "treat the given patterns as excludes")
	listCmd.Flags().StringArrayVar(&flags.Patterns, "pattern", nil, "regex pattern to match test ids (repeatable)")
	listCmd.Flags().StringVarP(&flags.TestsDir, "tests", "t", "", "tests directory (default \"tests\")")
	listCmd.Flags().BoolVarP(&flags.Symbols, "symbols", "s", false, "group tests by file instead of listing ids")
	rootCmd.AddCommand(listCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View test failures interactively",
		Long:  "Display test failures from the last sweep in an interactive viewer",
		RunE:  c.Failures.Execute,
	}
	rootCmd.AddCommand(failuresCmd)
}
