package storage

import (
	"os"
	"testing"

	"gosweep/internal/config"
	"gosweep/internal/domain"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		ProjectPath:    t.TempDir(),
		OutputJSONDir:  ".gosweep",
		OutputJSONFile: "sweep-results.json",
	}
}

func sampleOutput() *domain.RunOutput {
	return &domain.RunOutput{
		Meta: domain.RunMeta{
			RunID:      "7b1d2c9e-322c-4f3a-9c41-000000000000",
			TotalTests: 3,
			Passed:     2,
			Failed:     1,
			Duration:   "1.5s",
		},
		Failures: []domain.TestFailure{
			{
				TestID: "example.com/app/tests.TestCharge",
				Name:   "TestCharge",
				Status: "fail",
				Output: "amount mismatch",
			},
		},
	}
}

func TestJSONStorage_SaveLoad(t *testing.T) {
	store := NewJSONStorage(testConfig(t))

	if err := store.Save(sampleOutput()); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Meta.TotalTests != 3 || loaded.Meta.Failed != 1 {
		t.Errorf("meta did not round-trip: %+v", loaded.Meta)
	}
	if len(loaded.Failures) != 1 || loaded.Failures[0].Name != "TestCharge" {
		t.Errorf("failures did not round-trip: %+v", loaded.Failures)
	}
}

func TestJSONStorage_ResolvedMarkPersists(t *testing.T) {
	store := NewJSONStorage(testConfig(t))

	output := sampleOutput()
	if err := store.Save(output); err != nil {
		t.Fatalf("save: %v", err)
	}

	// The failures viewer marks a failure resolved and saves again
	output.Failures[0].Resolved = true
	if err := store.Save(output); err != nil {
		t.Fatalf("resave: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !loaded.Failures[0].Resolved {
		t.Error("resolved mark should survive save/load")
	}
}

func TestJSONStorage_LoadMissingFile(t *testing.T) {
	store := NewJSONStorage(testConfig(t))
	if _, err := store.Load(); err == nil {
		t.Error("expected error loading before any sweep ran")
	}
}

func TestForConfig_PicksJSONWithoutDSN(t *testing.T) {
	os.Unsetenv(config.EnvDBDSN)
	store := ForConfig(testConfig(t))
	if _, ok := store.(*JSONStorage); !ok {
		t.Errorf("expected JSONStorage without a DSN, got %T", store)
	}
}

func TestForConfig_PicksHistoryWithDSN(t *testing.T) {
	t.Setenv(config.EnvDBDSN, "user:pass@tcp(localhost:3306)/gosweep")
	store := ForConfig(testConfig(t))
	if _, ok := store.(*HistoryStorage); !ok {
		t.Errorf("expected HistoryStorage with a DSN, got %T", store)
	}
}
