package execution

import (
	"fmt"
	"testing"

	"gosweep/internal/domain"
)

func observeRSS(d *LeakDetector, name string, rssKB int64) {
	d.Observe(domain.TestResult{
		Test:     domain.Test{ImportPath: "example.com/app/tests", Name: name},
		Status:   domain.StatusPass,
		MaxRSSKB: rssKB,
	})
}

func TestLeakDetector_ThresholdOverMedian(t *testing.T) {
	d := NewLeakDetector(1000)

	for i := 0; i < 5; i++ {
		observeRSS(d, fmt.Sprintf("TestNormal%d", i), 10000)
	}
	observeRSS(d, "TestHungry", 20000)

	leaks := d.Leaks()
	if len(leaks) != 1 {
		t.Fatalf("expected 1 leak, got %d: %v", len(leaks), leaks)
	}
	if leaks[0].TestID != "example.com/app/tests.TestHungry" {
		t.Errorf("wrong test flagged: %s", leaks[0].TestID)
	}
	if leaks[0].MaxRSSKB != 20000 {
		t.Errorf("expected RSS 20000, got %d", leaks[0].MaxRSSKB)
	}
}

func TestLeakDetector_WithinThresholdIsQuiet(t *testing.T) {
	d := NewLeakDetector(65536)

	observeRSS(d, "TestA", 10000)
	observeRSS(d, "TestB", 12000)
	observeRSS(d, "TestC", 30000)

	if leaks := d.Leaks(); len(leaks) != 0 {
		t.Errorf("expected no leaks, got %v", leaks)
	}
}

func TestLeakDetector_GrowthAcrossIterations(t *testing.T) {
	d := NewLeakDetector(1 << 40) // threshold effectively off

	observeRSS(d, "TestGrower", 50000)
	observeRSS(d, "TestStable", 50000)
	d.NextIteration()

	observeRSS(d, "TestGrower", 90000) // +80%, well past the floor
	observeRSS(d, "TestStable", 51000)

	leaks := d.Leaks()
	if len(leaks) != 1 {
		t.Fatalf("expected 1 leak, got %d: %v", len(leaks), leaks)
	}
	if leaks[0].PrevRSSKB != 50000 || leaks[0].MaxRSSKB != 90000 {
		t.Errorf("unexpected growth record: %+v", leaks[0])
	}
}

func TestLeakDetector_IgnoresUnknownRSS(t *testing.T) {
	d := NewLeakDetector(1000)
	observeRSS(d, "TestNoData", 0)

	if leaks := d.Leaks(); len(leaks) != 0 {
		t.Errorf("expected no leaks without RSS data, got %v", leaks)
	}
}
