package execution

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"gosweep/internal/config"
	"gosweep/internal/domain"
	"gosweep/internal/gotest"
)

// TestRunner executes a single test and reports its result.
type TestRunner interface {
	Run(ctx context.Context, test domain.Test, extraArgs []string) domain.TestResult
}

// Runner executes one test at a time through the go test engine.
type Runner struct {
	config   *config.Config
	goBinary string
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{config: cfg, goBinary: "go"}
}

// Run executes go test for a single test function and parses the JSON
// event stream into a result. extraArgs are appended to the command line
// (the coverage collector uses this for -coverprofile).
func (r *Runner) Run(ctx context.Context, test domain.Test, extraArgs []string) domain.TestResult {
	args := []string{"test", ".", "-run", fmt.Sprintf("^%s$", test.Name), "-count", "1", "-json"}
	if r.config.Verbosity() >= 3 {
		args = append(args, "-v")
	}
	args = append(args, extraArgs...)

	cmd := exec.CommandContext(ctx, r.goBinary, args...)
	cmd.Dir = test.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	result := domain.TestResult{
		Test:     test,
		Duration: elapsed,
		MaxRSSKB: maxRSSKB(cmd.ProcessState),
	}

	outcome := gotest.ParseOutcome(stdout.Bytes(), test.Name)
	result.Output = outcome.Output
	if outcome.Duration > 0 {
		result.Duration = outcome.Duration
	}

	switch outcome.Status {
	case gotest.ActionPass:
		result.Status = domain.StatusPass
	case gotest.ActionFail:
		result.Status = domain.StatusFail
	case gotest.ActionSkip:
		result.Status = domain.StatusSkip
	default:
		// No terminal event: the test binary did not build or died
		// before reporting. Surface whatever the engine printed.
		result.Status = domain.StatusError
		msg := stderr.String()
		if msg == "" {
			msg = outcome.Output
		}
		result.Error = fmt.Errorf("test %s produced no result: %s", test.ID(), msg)
		if err != nil {
			result.Error = fmt.Errorf("%w (%v)", result.Error, err)
		}
	}

	return result
}
