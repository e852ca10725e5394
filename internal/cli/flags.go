package cli

import "gosweep/internal/config"

// Flags holds command-line flags
type Flags struct {
	Verbose   int
	Quiet     bool
	Exclude   bool
	FailFast  bool
	Catch     bool
	Forever   bool
	FindLeaks bool
	Coverage  bool
	TestsDir  string
	Patterns  []string
	Symbols   bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Verbose:   f.Verbose,
		Quiet:     f.Quiet,
		Exclude:   f.Exclude,
		FailFast:  f.FailFast,
		Catch:     f.Catch,
		Forever:   f.Forever,
		FindLeaks: f.FindLeaks,
		Coverage:  f.Coverage,
		TestsDir:  f.TestsDir,
		Patterns:  f.Patterns,
		Symbols:   f.Symbols,
	}
}
