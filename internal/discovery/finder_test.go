package discovery

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTree lays out a small module with test files under dir.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestFinder_Find(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"go.mod": "module example.com/app\n\ngo 1.22\n",
		"tests/user_test.go": `package tests

import "testing"

func TestUserLogin(t *testing.T) {}
func TestUserLogout(t *testing.T) {}
`,
		"tests/payment/charge_test.go": `package payment

import "testing"

func TestCharge(t *testing.T) {}
`,
	})

	var errOut bytes.Buffer
	finder := NewFinder(NewScanner(nil), NewParser(), &errOut)

	tests, err := finder.Find(filepath.Join(dir, "tests"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := make([]string, len(tests))
	for i, test := range tests {
		ids[i] = test.ID()
	}

	expected := []string{
		"example.com/app/tests.TestUserLogin",
		"example.com/app/tests.TestUserLogout",
		"example.com/app/tests/payment.TestCharge",
	}
	if len(ids) != len(expected) {
		t.Fatalf("expected %d tests, got %d: %v", len(expected), len(ids), ids)
	}
	for i := range expected {
		if ids[i] != expected[i] {
			t.Errorf("expected id %s, got %s", expected[i], ids[i])
		}
	}
}

func TestFinder_Find_EachTestOnce(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"go.mod": "module example.com/app\n\ngo 1.22\n",
		"tests/a_test.go": `package tests

import "testing"

func TestShared(t *testing.T) {}
`,
		// Build-tagged twin declaring the same func name
		"tests/b_test.go": `//go:build othertag

package tests

import "testing"

func TestShared(t *testing.T) {}
`,
	})

	finder := NewFinder(NewScanner(nil), NewParser(), os.Stderr)
	tests, err := finder.Find(filepath.Join(dir, "tests"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tests) != 1 {
		t.Errorf("expected TestShared discovered exactly once, got %d entries", len(tests))
	}
}

func TestFinder_Find_SyntaxErrorAborts(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"go.mod": "module example.com/app\n\ngo 1.22\n",
		"tests/ok_test.go": `package tests

import "testing"

func TestOK(t *testing.T) {}
`,
		"tests/broken_test.go": "package tests\n\nfunc TestBroken(t *testing.T {\n",
	})

	finder := NewFinder(NewScanner(nil), NewParser(), os.Stderr)
	_, err := finder.Find(filepath.Join(dir, "tests"))
	if err == nil {
		t.Fatal("expected syntax error to abort discovery")
	}
	if !strings.Contains(err.Error(), "syntax error") {
		t.Errorf("expected syntax error, got %v", err)
	}
}

func TestFinder_Find_UnreadableFileSkips(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("file permissions do not apply to root")
	}

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"go.mod": "module example.com/app\n\ngo 1.22\n",
		"tests/ok_test.go": `package tests

import "testing"

func TestOK(t *testing.T) {}
`,
		"tests/secret_test.go": `package tests

import "testing"

func TestSecret(t *testing.T) {}
`,
	})
	if err := os.Chmod(filepath.Join(dir, "tests", "secret_test.go"), 0000); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	var errOut bytes.Buffer
	finder := NewFinder(NewScanner(nil), NewParser(), &errOut)
	tests, err := finder.Find(filepath.Join(dir, "tests"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tests) != 1 || tests[0].Name != "TestOK" {
		t.Errorf("expected only TestOK, got %v", tests)
	}
	if !strings.Contains(errOut.String(), "Skipping") {
		t.Errorf("expected a skip note on the error stream, got %q", errOut.String())
	}
}

func TestModuleResolver_OutsideModule(t *testing.T) {
	dir := t.TempDir()
	resolver, err := NewModuleResolver(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sub := filepath.Join(dir, "pkg")
	if got := resolver.ImportPath(sub); got != "pkg" {
		t.Errorf("expected relative fallback id, got %s", got)
	}
}
