package discovery

import (
	"fmt"
	"regexp"

	"gosweep/internal/domain"
)

// Filter narrows a test list by include / exclude regex patterns
// matched against fully qualified test ids.
type Filter struct {
	includes []*regexp.Regexp
	excludes []*regexp.Regexp
}

// NewFilter compiles the given patterns. A pattern that does not compile
// is a user error and fails the run up front.
func NewFilter(includes, excludes []string) (*Filter, error) {
	f := &Filter{}
	for _, pat := range includes {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pat, err)
		}
		f.includes = append(f.includes, re)
	}
	for _, pat := range excludes {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pat, err)
		}
		f.excludes = append(f.excludes, re)
	}
	return f, nil
}

// Apply keeps tests whose id matches at least one include pattern (all
// tests when no includes were given), then removes tests whose id matches
// any exclude pattern.
func (f *Filter) Apply(tests []domain.Test) []domain.Test {
	var filtered []domain.Test
	for _, test := range tests {
		id := test.ID()
		if len(f.includes) > 0 && !matchAny(f.includes, id) {
			continue
		}
		if matchAny(f.excludes, id) {
			continue
		}
		filtered = append(filtered, test)
	}
	return filtered
}

func matchAny(pats []*regexp.Regexp, id string) bool {
	for _, re := range pats {
		if re.MatchString(id) {
			return true
		}
	}
	return false
}
