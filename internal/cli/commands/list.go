package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gosweep/internal/config"
	"gosweep/internal/discovery"
	"gosweep/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	finder    *discovery.Finder
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, finder *discovery.Finder, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{
		config:    cfg,
		finder:    finder,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	filter, err := buildFilter(lc.config)
	if err != nil {
		return err
	}

	testsDir := lc.config.GetTestsDir()
	tests, err := lc.finder.Find(testsDir)
	if err != nil {
		if errors.Is(err, discovery.ErrNoTestsDir) {
			fmt.Printf("Tests directory is not found: %s\n\n", testsDir)
			return cmd.Help()
		}
		return err
	}

	tests = filter.Apply(tests)
	if len(tests) == 0 {
		color.Yellow("No tests found")
		return nil
	}

	return lc.formatter.PrintTestList(tests, lc.config.Flags.Symbols)
}
