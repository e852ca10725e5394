package domain

import "time"

// TestStatus is the outcome of a single test execution.
type TestStatus string

const (
	StatusPass  TestStatus = "pass"
	StatusFail  TestStatus = "fail"
	StatusSkip  TestStatus = "skip"
	StatusError TestStatus = "error" // test process died or produced no parseable events
)

// TestResult represents the result of executing a single test.
type TestResult struct {
	Test     Test          // The test that was executed
	Status   TestStatus    // Outcome reported by the test engine
	Output   string        // Captured test output
	Error    error         // Error if the execution itself failed
	Duration time.Duration // Time taken to execute
	MaxRSSKB int64         // Peak resident set size of the test process, in KiB (0 if unknown)
}

// Failed reports whether this result counts against the exit code.
func (r TestResult) Failed() bool {
	return r.Status == StatusFail || r.Status == StatusError
}

// RunMeta contains metadata about a sweep.
type RunMeta struct {
	RunID        string  `json:"run_id"`
	TotalTests   int     `json:"total_tests"`
	Passed       int     `json:"passed"`
	Failed       int     `json:"failed"`
	Skipped      int     `json:"skipped"`
	Errored      int     `json:"errored"`
	Leaks        int     `json:"leaks"`
	Duration     string  `json:"duration"`
	DurationSecs float64 `json:"duration_seconds"`
	Interrupted  bool    `json:"interrupted"`
	Timestamp    string  `json:"timestamp"`
}

// RunOutput is the persisted shape of a sweep: meta plus failure details.
type RunOutput struct {
	Meta     RunMeta       `json:"meta"`
	Failures []TestFailure `json:"failures"`
}
