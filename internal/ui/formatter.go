package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"gosweep/internal/config"
	"gosweep/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// PrintRunSummary displays the statistics of a finished sweep.
func (f *Formatter) PrintRunSummary(output *domain.RunOutput, leaks []domain.Leak) {
	meta := output.Meta

	fmt.Println()
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Test Sweep %s", meta.RunID)
	t.AppendRows([]table.Row{
		{"Total tests", meta.TotalTests},
		{"Passed", meta.Passed},
		{"Failed", meta.Failed},
		{"Errored", meta.Errored},
		{"Skipped", meta.Skipped},
		{"Duration", meta.Duration},
		{"Timestamp", meta.Timestamp},
	})
	if meta.Interrupted {
		t.AppendRow(table.Row{"Interrupted", "yes (partial results)"})
	}
	t.Render()

	fmt.Println()
	if meta.Failed == 0 && meta.Errored == 0 {
		color.Green("✓ All tests passed!")
	} else {
		color.Red("✗ %d test(s) failed, %d errored", meta.Failed, meta.Errored)
		fmt.Println()
		f.printFailureTree(output.Failures)
	}

	if len(leaks) > 0 {
		fmt.Println()
		color.Yellow("%d test(s) leak:", len(leaks))
		for _, leak := range leaks {
			color.Yellow("    %s:", leak.TestID)
			fmt.Printf("        %s\n", leak.Reason)
		}
	}
}

// PrintFailures prints only the failure tree and a closing status line.
// Quiet runs use this so a failing sweep never ends without output.
func (f *Formatter) PrintFailures(output *domain.RunOutput) {
	meta := output.Meta
	color.Red("✗ %d test(s) failed, %d errored", meta.Failed, meta.Errored)
	fmt.Println()
	f.printFailureTree(output.Failures)
}

// printFailureTree groups failures by package and prints them as a tree.
func (f *Formatter) printFailureTree(failures []domain.TestFailure) {
	if len(failures) == 0 {
		return
	}

	byPackage := make(map[string][]domain.TestFailure)
	var packages []string
	for _, failure := range failures {
		if _, ok := byPackage[failure.Package]; !ok {
			packages = append(packages, failure.Package)
		}
		byPackage[failure.Package] = append(byPackage[failure.Package], failure)
	}
	sort.Strings(packages)

	for i, pkg := range packages {
		isLastPkg := i == len(packages)-1
		if isLastPkg {
			color.Cyan("└── %s", pkg)
		} else {
			color.Cyan("├── %s", pkg)
		}

		pkgFailures := byPackage[pkg]
		for j, failure := range pkgFailures {
			isLastCase := j == len(pkgFailures)-1

			var prefix string
			if isLastPkg {
				if isLastCase {
					prefix = "    └── "
				} else {
					prefix = "    ├── "
				}
			} else {
				if isLastCase {
					prefix = "│   └── "
				} else {
					prefix = "│   ├── "
				}
			}

			marker := color.RedString(failure.Name)
			if failure.Status == string(domain.StatusError) {
				marker = color.RedString("%s (error)", failure.Name)
			}
			fmt.Printf("%s%s\n", prefix, marker)
		}
	}
}

// PrintTestList prints the discovered tests, either as flat ids or as a
// per-file symbol tree.
func (f *Formatter) PrintTestList(tests []domain.Test, showSymbols bool) error {
	if showSymbols {
		files := groupByFile(tests)
		color.Green("Found %d test(s) in %d file(s):\n", len(tests), len(files))

		for i, file := range files {
			relPath, err := filepath.Rel(f.config.ProjectPath, file.Path)
			if err != nil {
				relPath = file.Path
			}

			isLastFile := i == len(files)-1
			if isLastFile {
				color.Cyan("└── %s", relPath)
			} else {
				color.Cyan("├── %s", relPath)
			}

			for j, test := range file.Tests {
				isLastCase := j == len(file.Tests)-1

				var prefix string
				if isLastFile {
					if isLastCase {
						prefix = "    └── "
					} else {
						prefix = "    ├── "
					}
				} else {
					if isLastCase {
						prefix = "│   └── "
					} else {
						prefix = "│   ├── "
					}
				}

				fmt.Printf("%s%s\n", prefix, color.YellowString(test.Name))
			}

			if i < len(files)-1 {
				fmt.Println()
			}
		}
		return nil
	}

	color.Green("Found %d test(s):\n", len(tests))
	for _, test := range tests {
		color.Cyan("  %s", test.ID())
	}
	return nil
}

// PrintTestLine prints one per-test result line (verbosity >= 2).
func (f *Formatter) PrintTestLine(result domain.TestResult) {
	switch result.Status {
	case domain.StatusPass:
		fmt.Printf("%s %s (%s)\n", color.GreenString("ok  "), result.Test.ID(), result.Duration.Round(time.Millisecond))
	case domain.StatusSkip:
		fmt.Printf("%s %s\n", color.YellowString("skip"), result.Test.ID())
	default:
		fmt.Printf("%s %s (%s)\n", color.RedString("FAIL"), result.Test.ID(), result.Duration.Round(time.Millisecond))
	}
}

func groupByFile(tests []domain.Test) []domain.TestFile {
	byFile := make(map[string][]domain.Test)
	var paths []string
	for _, test := range tests {
		if _, ok := byFile[test.File]; !ok {
			paths = append(paths, test.File)
		}
		byFile[test.File] = append(byFile[test.File], test)
	}
	sort.Strings(paths)

	files := make([]domain.TestFile, 0, len(paths))
	for _, path := range paths {
		tests := byFile[path]
		sort.Slice(tests, func(i, j int) bool { return tests[i].Name < tests[j].Name })
		files = append(files, domain.TestFile{Path: path, Tests: tests})
	}
	return files
}
