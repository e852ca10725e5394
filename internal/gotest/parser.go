// Package gotest parses the JSON event stream emitted by `go test -json`.
package gotest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Actions emitted by the test engine.
const (
	ActionRun    = "run"
	ActionPass   = "pass"
	ActionFail   = "fail"
	ActionSkip   = "skip"
	ActionOutput = "output"
	ActionStart  = "start"
)

// Event is a single event from the go test JSON output.
type Event struct {
	Time    time.Time // Time the event occurred
	Action  string    // run, pause, cont, pass, fail, skip, output, start
	Package string    // The package being tested
	Test    string    // The test function name (empty for package events)
	Output  string    // Output text (may be empty)
	Elapsed float64   // Elapsed time in seconds for the specific action
}

// Outcome is the parsed result of one test invocation.
type Outcome struct {
	Status   string        // pass, fail, skip, or "" when no terminal event was seen
	Duration time.Duration // Elapsed time reported by the terminal event
	Output   string        // Concatenated output lines for the test
}

// ParseOutcome scans a -json event stream for the named test's terminal
// event and collects its output. A stream with no terminal event for the
// test yields Status "" so the caller can classify the run as an error.
// Lines are read without a length ceiling: a test that prints one huge
// line must not lose the pass event that follows it.
func ParseOutcome(raw []byte, testName string) Outcome {
	var out Outcome
	var output strings.Builder

	reader := bufio.NewReader(bytes.NewReader(raw))
	for {
		line, readErr := reader.ReadString('\n')
		if trimmed := strings.TrimSuffix(line, "\n"); trimmed != "" {
			var event Event
			if err := json.Unmarshal([]byte(trimmed), &event); err != nil {
				// Interleaved non-JSON lines (build output) are kept
				// so failures still show what went wrong.
				output.WriteString(trimmed)
				output.WriteByte('\n')
			} else if event.Test == testName || strings.HasPrefix(event.Test, testName+"/") {
				// Events for subtests of testName count as its own output.
				switch event.Action {
				case ActionOutput:
					output.WriteString(event.Output)
				case ActionPass, ActionFail, ActionSkip:
					if event.Test == testName {
						out.Status = event.Action
						out.Duration = time.Duration(event.Elapsed * float64(time.Second))
					}
				}
			}
		}
		if readErr != nil {
			break
		}
	}

	out.Output = output.String()
	return out
}
