package execution

import (
	"context"
	"time"

	"gosweep/internal/config"
	"gosweep/internal/domain"
	"gosweep/internal/ui"
)

// Options control a single sweep.
type Options struct {
	FailFast bool
	// ExtraArgs supplies additional go test arguments per test (used by
	// the coverage collector). May be nil.
	ExtraArgs func(domain.Test) []string
	// OnResult is called after each test completes (used for per-test
	// result lines at higher verbosity). May be nil.
	OnResult func(domain.TestResult)
}

// Sweeper runs discovered tests one at a time, in order. Execution is
// deliberately sequential and blocking; the only way out early is
// fail-fast or context cancellation, and the in-progress test always
// finishes.
type Sweeper struct {
	config   *config.Config
	runner   TestRunner
	progress *ui.ProgressBar
	leaks    *LeakDetector
}

// NewSweeper creates a new Sweeper
func NewSweeper(cfg *config.Config, runner TestRunner) *Sweeper {
	return &Sweeper{config: cfg, runner: runner}
}

// SetProgress sets the progress bar for the sweep
func (s *Sweeper) SetProgress(progress *ui.ProgressBar) {
	s.progress = progress
}

// SetLeakDetector enables leak observation during the sweep
func (s *Sweeper) SetLeakDetector(d *LeakDetector) {
	s.leaks = d
}

// Execute runs the tests sequentially. It returns the collected results,
// the wall time of the sweep, and whether the sweep was cut short by
// context cancellation (interrupt). Results collected before the
// interrupt are always returned.
func (s *Sweeper) Execute(ctx context.Context, tests []domain.Test, opts Options) ([]domain.TestResult, time.Duration, bool) {
	startTime := time.Now()
	var results []domain.TestResult
	var passed, failed int
	interrupted := false

	for _, test := range tests {
		if ctx.Err() != nil {
			interrupted = true
			break
		}

		// The test itself runs to completion even if the context is
		// cancelled mid-flight; cancellation is only checked between
		// tests so partial results stay coherent.
		result := s.runner.Run(context.Background(), test, s.extraArgs(opts, test))
		results = append(results, result)

		if result.Failed() {
			failed++
		} else {
			passed++
		}
		if s.leaks != nil {
			s.leaks.Observe(result)
		}
		if s.progress != nil {
			s.progress.Update(len(results), passed, failed)
		}
		if opts.OnResult != nil {
			opts.OnResult(result)
		}

		if opts.FailFast && result.Failed() {
			break
		}
	}

	if s.progress != nil {
		s.progress.Finish()
	}
	return results, time.Since(startTime), interrupted
}

func (s *Sweeper) extraArgs(opts Options, test domain.Test) []string {
	if opts.ExtraArgs == nil {
		return nil
	}
	return opts.ExtraArgs(test)
}
