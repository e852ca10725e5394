package discovery

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParser_FindTestFuncs(t *testing.T) {
	parser := NewParser()

	t.Run("collects test functions", func(t *testing.T) {
		path := writeTestFile(t, "user_test.go", `package user

import "testing"

func TestCreateUser(t *testing.T) {}

func TestUserLogin(t *testing.T) {
	t.Run("sub", func(t *testing.T) {})
}

func helper() {}

func BenchmarkCreateUser(b *testing.B) {}
`)
		names, err := parser.FindTestFuncs(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected := []string{"TestCreateUser", "TestUserLogin"}
		if !reflect.DeepEqual(names, expected) {
			t.Errorf("expected %v, got %v", expected, names)
		}
	})

	t.Run("ignores non-test shapes", func(t *testing.T) {
		path := writeTestFile(t, "shapes_test.go", `package user

import "testing"

func TestMain(m *testing.M) {}

func Testify(t *testing.T) {}

func TestNoParams() {}

func TestWrongParam(s string) {}

type fixture struct{}

func (f fixture) TestMethod(t *testing.T) {}
`)
		names, err := parser.FindTestFuncs(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(names) != 0 {
			t.Errorf("expected no tests, got %v", names)
		}
	})

	t.Run("test with underscore digit suffix counts", func(t *testing.T) {
		path := writeTestFile(t, "suffix_test.go", `package user

import "testing"

func Test_lowercase(t *testing.T) {}

func Test1(t *testing.T) {}
`)
		names, err := parser.FindTestFuncs(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected := []string{"Test1", "Test_lowercase"}
		if !reflect.DeepEqual(names, expected) {
			t.Errorf("expected %v, got %v", expected, names)
		}
	})

	t.Run("syntax error is distinguishable", func(t *testing.T) {
		path := writeTestFile(t, "broken_test.go", `package user

func TestBroken(t *testing.T) {
`)
		_, err := parser.FindTestFuncs(path)
		if err == nil {
			t.Fatal("expected error for malformed source")
		}
		if !IsSyntaxError(err) {
			t.Errorf("expected a syntax error, got %v", err)
		}
	})

	t.Run("read error is not a syntax error", func(t *testing.T) {
		_, err := parser.FindTestFuncs(filepath.Join(t.TempDir(), "missing_test.go"))
		if err == nil {
			t.Fatal("expected error for missing file")
		}
		if IsSyntaxError(err) {
			t.Error("read error should not classify as syntax error")
		}
	})
}
