package domain

// TestFailure represents a failed or errored test, kept for the failures viewer.
type TestFailure struct {
	TestID   string `json:"test_id"`
	Name     string `json:"name"`
	Package  string `json:"package"`
	File     string `json:"file"`
	Status   string `json:"status"`
	Output   string `json:"output"`
	Duration string `json:"duration"`
	Resolved bool   `json:"resolved"` // toggled from the failures viewer
}

// Leak records a test whose process held more memory than the sweep baseline
// allows, or kept growing across forever-mode iterations.
type Leak struct {
	TestID    string `json:"test_id"`
	MaxRSSKB  int64  `json:"max_rss_kb"`
	PrevRSSKB int64  `json:"prev_rss_kb,omitempty"` // previous iteration, when growth triggered the report
	Reason    string `json:"reason"`
}
