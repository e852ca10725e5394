package execution

import (
	"fmt"
	"sort"

	"gosweep/internal/domain"
)

// LeakDetector flags tests whose process held substantially more memory
// than the rest of the sweep, and tests whose footprint keeps growing
// across forever-mode iterations. Peak RSS of the spawned test process
// is the only signal available once execution is delegated to a child
// process.
type LeakDetector struct {
	thresholdKB int64
	observed    map[string]int64 // test id -> peak RSS this iteration
	previous    map[string]int64 // test id -> peak RSS last iteration
	order       []string
}

// NewLeakDetector creates a detector. thresholdKB is how far above the
// sweep median a test's peak RSS must be before it is reported.
func NewLeakDetector(thresholdKB int64) *LeakDetector {
	return &LeakDetector{
		thresholdKB: thresholdKB,
		observed:    make(map[string]int64),
	}
}

// Observe records the peak RSS of one test execution.
func (d *LeakDetector) Observe(result domain.TestResult) {
	if result.MaxRSSKB <= 0 {
		return
	}
	id := result.Test.ID()
	if _, ok := d.observed[id]; !ok {
		d.order = append(d.order, id)
	}
	d.observed[id] = result.MaxRSSKB
}

// Leaks reports the suspicious tests of the current iteration, in
// observation order.
func (d *LeakDetector) Leaks() []domain.Leak {
	median := d.median()
	var leaks []domain.Leak
	for _, id := range d.order {
		rss := d.observed[id]
		if prev, ok := d.previous[id]; ok && growthExceeds(prev, rss) {
			leaks = append(leaks, domain.Leak{
				TestID:    id,
				MaxRSSKB:  rss,
				PrevRSSKB: prev,
				Reason:    fmt.Sprintf("peak RSS grew from %d KiB to %d KiB since the previous iteration", prev, rss),
			})
			continue
		}
		if median > 0 && rss > median+d.thresholdKB {
			leaks = append(leaks, domain.Leak{
				TestID:   id,
				MaxRSSKB: rss,
				Reason:   fmt.Sprintf("peak RSS %d KiB exceeds the sweep median (%d KiB) by more than %d KiB", rss, median, d.thresholdKB),
			})
		}
	}
	return leaks
}

// NextIteration rolls the current observations into the comparison
// baseline for forever mode.
func (d *LeakDetector) NextIteration() {
	d.previous = d.observed
	d.observed = make(map[string]int64)
	d.order = nil
}

func (d *LeakDetector) median() int64 {
	if len(d.observed) == 0 {
		return 0
	}
	values := make([]int64, 0, len(d.observed))
	for _, v := range d.observed {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return values[len(values)/2]
}

// growthExceeds reports whether rss has grown enough over prev to look
// like a leak rather than allocator noise: at least 20% and 16 MiB.
func growthExceeds(prev, rss int64) bool {
	const minGrowthKB = 16384
	return rss-prev >= minGrowthKB && rss >= prev+prev/5
}
