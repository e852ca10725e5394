package coverage

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/tools/cover"
)

// FileCoverage is the statement coverage of one source file.
type FileCoverage struct {
	File    string
	Total   int
	Covered int
}

// Percent returns covered statements as a percentage.
func (f FileCoverage) Percent() float64 {
	if f.Total == 0 {
		return 0
	}
	return 100 * float64(f.Covered) / float64(f.Total)
}

// Summarize reads a merged profile and computes per-file statement
// coverage, sorted by file name.
func Summarize(profilePath string) ([]FileCoverage, error) {
	profs, err := cover.ParseProfiles(profilePath)
	if err != nil {
		return nil, fmt.Errorf("parse merged profile: %w", err)
	}

	byFile := make(map[string]*FileCoverage)
	for _, p := range profs {
		fc, ok := byFile[p.FileName]
		if !ok {
			fc = &FileCoverage{File: p.FileName}
			byFile[p.FileName] = fc
		}
		for _, b := range p.Blocks {
			fc.Total += b.NumStmt
			if b.Count > 0 {
				fc.Covered += b.NumStmt
			}
		}
	}

	files := make([]FileCoverage, 0, len(byFile))
	for _, fc := range byFile {
		files = append(files, *fc)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].File < files[j].File })
	return files, nil
}

// WriteReport prints the per-file coverage table to w.
func WriteReport(w io.Writer, files []FileCoverage) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"File", "Stmts", "Covered", "Coverage"})

	var total, covered int
	for _, f := range files {
		t.AppendRow(table.Row{f.File, f.Total, f.Covered, fmt.Sprintf("%.1f%%", f.Percent())})
		total += f.Total
		covered += f.Covered
	}

	overall := FileCoverage{Total: total, Covered: covered}
	t.AppendFooter(table.Row{"total", total, covered, fmt.Sprintf("%.1f%%", overall.Percent())})
	t.Render()
}
