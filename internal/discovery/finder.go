package discovery

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"gosweep/internal/domain"
)

// Finder ties the scanner and parser together: it walks the tests
// directory and produces the list of runnable tests, each discovered
// exactly once.
type Finder struct {
	scanner *Scanner
	parser  *Parser
	errOut  io.Writer // unreadable files are reported here as skips
}

// NewFinder creates a new Finder
func NewFinder(scanner *Scanner, parser *Parser, errOut io.Writer) *Finder {
	return &Finder{scanner: scanner, parser: parser, errOut: errOut}
}

// Find discovers all tests under root. Files that cannot be read are
// skipped with a note on the error stream; files with Go syntax errors
// abort the whole discovery.
func (f *Finder) Find(root string) ([]domain.Test, error) {
	files, err := f.scanner.Scan(root)
	if err != nil {
		return nil, err
	}

	resolver, err := NewModuleResolver(root)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var tests []domain.Test
	for _, file := range files {
		names, err := f.parser.FindTestFuncs(file)
		if err != nil {
			if IsSyntaxError(err) {
				return nil, fmt.Errorf("syntax error in %s: %w", file, err)
			}
			fmt.Fprintf(f.errOut, "Skipping %q: %v\n", file, err)
			continue
		}

		dir := filepath.Dir(file)
		importPath := resolver.ImportPath(dir)
		for _, name := range names {
			test := domain.Test{
				ImportPath: importPath,
				Dir:        dir,
				File:       file,
				Name:       name,
			}
			// The same func can appear once per file at most; dedupe
			// across files guards against build-tagged duplicates.
			if seen[test.ID()] {
				continue
			}
			seen[test.ID()] = true
			tests = append(tests, test)
		}
	}

	sort.Slice(tests, func(i, j int) bool { return tests[i].ID() < tests[j].ID() })
	return tests, nil
}
