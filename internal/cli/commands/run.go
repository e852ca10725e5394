package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"gosweep/internal/config"
	"gosweep/internal/coverage"
	"gosweep/internal/discovery"
	"gosweep/internal/domain"
	"gosweep/internal/execution"
	"gosweep/internal/storage"
	"gosweep/internal/ui"
)

// ErrTestsFailed signals a sweep with at least one failing or erroring
// test; main translates it into exit code 1.
var ErrTestsFailed = errors.New("test sweep failed")

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	finder    *discovery.Finder
	sweeper   *execution.Sweeper
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	finder *discovery.Finder,
	sweeper *execution.Sweeper,
	st storage.Storage,
	formatter *ui.Formatter,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		finder:    finder,
		sweeper:   sweeper,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	filter, err := buildFilter(rc.config)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if rc.config.Flags.Catch {
		var stop func()
		ctx, stop = installInterruptHandler(ctx)
		defer stop()
	}

	var detector *execution.LeakDetector
	if rc.config.Flags.FindLeaks {
		detector = execution.NewLeakDetector(rc.config.LeakThresholdKB)
		rc.sweeper.SetLeakDetector(detector)
	}

	var collector *coverage.Collector
	opts := execution.Options{FailFast: rc.config.Flags.FailFast}
	if rc.config.Flags.Coverage {
		collector, err = coverage.NewCollector()
		if err != nil {
			return err
		}
		defer collector.Close()
		opts.ExtraArgs = collector.ArgsFor
	}

	sweepErr := rc.sweepLoop(ctx, cmd, filter, detector, opts)

	// Coverage is reported even when the sweep failed or was cut short,
	// over whatever profiles the executed tests produced.
	if collector != nil {
		if err := rc.reportCoverage(collector); err != nil {
			color.Yellow("Coverage report failed: %v", err)
		}
	}

	return sweepErr
}

// sweepLoop runs one sweep, or sweeps forever until a run fails or an
// interrupt arrives. Tests are rediscovered each iteration so edits
// between iterations are picked up.
func (rc *RunCommand) sweepLoop(ctx context.Context, cmd *cobra.Command, filter *discovery.Filter, detector *execution.LeakDetector, opts execution.Options) error {
	for {
		tests, err := rc.discover(cmd, filter)
		if err != nil || tests == nil {
			return err
		}

		if rc.config.Verbosity() >= 2 {
			opts.OnResult = rc.formatter.PrintTestLine
		} else if rc.config.Verbosity() >= 1 {
			rc.sweeper.SetProgress(ui.NewProgressBar(len(tests)))
		}

		results, duration, interrupted := rc.sweeper.Execute(ctx, tests, opts)

		var leaks []domain.Leak
		if detector != nil {
			leaks = detector.Leaks()
		}

		output := buildOutput(results, leaks, duration, interrupted)
		if err := rc.storage.Save(output); err != nil {
			return fmt.Errorf("failed to save test results: %w", err)
		}

		if rc.config.Verbosity() >= 1 {
			rc.formatter.PrintRunSummary(output, leaks)
		} else if output.Meta.Failed > 0 || output.Meta.Errored > 0 {
			// Quiet mode still reports what failed.
			rc.formatter.PrintFailures(output)
		}

		if output.Meta.Failed > 0 || output.Meta.Errored > 0 {
			return ErrTestsFailed
		}
		if interrupted || !rc.config.Flags.Forever {
			return nil
		}
		if detector != nil {
			detector.NextIteration()
		}
	}
}

// discover finds and filters the tests. A missing tests directory prints
// usage help and returns (nil, nil), matching the early-exit contract.
func (rc *RunCommand) discover(cmd *cobra.Command, filter *discovery.Filter) ([]domain.Test, error) {
	testsDir := rc.config.GetTestsDir()
	tests, err := rc.finder.Find(testsDir)
	if err != nil {
		if errors.Is(err, discovery.ErrNoTestsDir) {
			fmt.Printf("Tests directory is not found: %s\n\n", testsDir)
			_ = cmd.Help()
			return nil, nil
		}
		return nil, err
	}

	tests = filter.Apply(tests)
	if len(tests) == 0 {
		color.Yellow("No tests to execute")
		return nil, nil
	}
	return tests, nil
}

func (rc *RunCommand) reportCoverage(collector *coverage.Collector) error {
	merged, err := collector.Merge()
	if err != nil {
		return err
	}

	htmlPath, err := collector.HTML(merged, rc.config.GetCoverageDir())
	if err != nil {
		return err
	}

	files, err := coverage.Summarize(merged)
	if err != nil {
		return err
	}

	fmt.Println("\nCoverage report:")
	coverage.WriteReport(os.Stdout, files)
	fmt.Printf("\nFor html report:\nopen file://%s\n", htmlPath)
	return nil
}

// buildFilter splits the configured patterns into includes or excludes
// depending on the -x flag, exactly one of the two pools being active.
func buildFilter(cfg *config.Config) (*discovery.Filter, error) {
	var includes, excludes []string
	if cfg.Flags.Exclude {
		excludes = cfg.Flags.Patterns
	} else {
		includes = cfg.Flags.Patterns
	}
	return discovery.NewFilter(includes, excludes)
}

// installInterruptHandler arranges for the first control-C to let the
// running test finish and report partial results; a second control-C
// exits immediately.
func installInterruptHandler(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
		case <-done:
			return
		}
		color.Yellow("\nInterrupt received: finishing the current test, press control-C again to exit now")
		cancel()
		select {
		case <-sigCh:
			os.Exit(130)
		case <-done:
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		close(done)
		cancel()
	}
}

func buildOutput(results []domain.TestResult, leaks []domain.Leak, duration time.Duration, interrupted bool) *domain.RunOutput {
	var passed, failed, skipped, errored int
	var failures []domain.TestFailure
	for _, r := range results {
		switch r.Status {
		case domain.StatusPass:
			passed++
		case domain.StatusSkip:
			skipped++
		case domain.StatusFail:
			failed++
		case domain.StatusError:
			errored++
		}
		if r.Failed() {
			output := r.Output
			if r.Error != nil {
				output = r.Error.Error() + "\n" + output
			}
			failures = append(failures, domain.TestFailure{
				TestID:   r.Test.ID(),
				Name:     r.Test.Name,
				Package:  r.Test.ImportPath,
				File:     r.Test.File,
				Status:   string(r.Status),
				Output:   output,
				Duration: r.Duration.String(),
			})
		}
	}

	return &domain.RunOutput{
		Meta: domain.RunMeta{
			RunID:        uuid.NewString(),
			TotalTests:   len(results),
			Passed:       passed,
			Failed:       failed,
			Skipped:      skipped,
			Errored:      errored,
			Leaks:        len(leaks),
			Duration:     duration.Round(time.Millisecond).String(),
			DurationSecs: duration.Seconds(),
			Interrupted:  interrupted,
			Timestamp:    time.Now().Format(time.RFC3339),
		},
		Failures: failures,
	}
}
