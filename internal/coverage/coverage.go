// Package coverage wraps a sweep with statement coverage measurement.
// Each test invocation writes its own profile; the collector merges them
// into one profile, delegates HTML rendering to go tool cover, and prints
// a per-file console summary.
package coverage

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/cover"

	"gosweep/internal/domain"
)

// Collector accumulates coverage profiles across a sweep.
type Collector struct {
	tmpDir   string
	profiles []string
	next     int
}

// NewCollector creates a collector with a scratch directory for the
// per-test profiles.
func NewCollector() (*Collector, error) {
	dir, err := os.MkdirTemp("", "gosweep-cover-*")
	if err != nil {
		return nil, fmt.Errorf("create coverage dir: %w", err)
	}
	return &Collector{tmpDir: dir}, nil
}

// ArgsFor returns the go test arguments that route one test's profile
// into the scratch directory.
func (c *Collector) ArgsFor(test domain.Test) []string {
	c.next++
	profile := filepath.Join(c.tmpDir, fmt.Sprintf("profile-%04d.out", c.next))
	c.profiles = append(c.profiles, profile)
	return []string{"-covermode", "set", "-coverprofile", profile}
}

// Merge combines all collected profiles into a single profile file and
// returns its path. Profiles that were never written (failed builds) are
// skipped.
func (c *Collector) Merge() (string, error) {
	merged := make(map[string]map[blockKey]int) // file -> block -> count
	var order []string

	for _, path := range c.profiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		profs, err := cover.ParseProfiles(path)
		if err != nil {
			return "", fmt.Errorf("parse profile %s: %w", path, err)
		}
		for _, p := range profs {
			blocks, ok := merged[p.FileName]
			if !ok {
				blocks = make(map[blockKey]int)
				merged[p.FileName] = blocks
				order = append(order, p.FileName)
			}
			for _, b := range p.Blocks {
				key := blockKey{b.StartLine, b.StartCol, b.EndLine, b.EndCol, b.NumStmt}
				if b.Count > blocks[key] {
					blocks[key] = b.Count
				}
			}
		}
	}

	if len(merged) == 0 {
		return "", fmt.Errorf("no coverage profiles were produced")
	}
	sort.Strings(order)

	var sb strings.Builder
	sb.WriteString("mode: set\n")
	for _, file := range order {
		blocks := merged[file]
		keys := make([]blockKey, 0, len(blocks))
		for k := range blocks {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].startLine != keys[j].startLine {
				return keys[i].startLine < keys[j].startLine
			}
			return keys[i].startCol < keys[j].startCol
		})
		for _, k := range keys {
			fmt.Fprintf(&sb, "%s:%d.%d,%d.%d %d %d\n",
				file, k.startLine, k.startCol, k.endLine, k.endCol, k.numStmt, blocks[k])
		}
	}

	out := filepath.Join(c.tmpDir, "merged.out")
	if err := os.WriteFile(out, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("write merged profile: %w", err)
	}
	return out, nil
}

// HTML renders the merged profile into dir/index.html via go tool cover.
func (c *Collector) HTML(mergedProfile, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	out := filepath.Join(dir, "index.html")
	cmd := exec.Command("go", "tool", "cover", "-html", mergedProfile, "-o", out)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("go tool cover: %w: %s", err, output)
	}
	return out, nil
}

// Close removes the scratch directory.
func (c *Collector) Close() {
	if c.tmpDir != "" {
		os.RemoveAll(c.tmpDir)
	}
}

type blockKey struct {
	startLine, startCol int
	endLine, endCol     int
	numStmt             int
}
