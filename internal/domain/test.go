package domain

// Test represents a single discovered test function.
type Test struct {
	ImportPath string // Import path of the package declaring the test
	Dir        string // Directory containing the package
	File       string // Full path to the _test.go file declaring it
	Name       string // Test function name, e.g. TestUserLogin
}

// ID returns the fully qualified test id, e.g.
// "example.com/app/tests.TestUserLogin". Include and exclude patterns
// are matched against this string.
func (t Test) ID() string {
	return t.ImportPath + "." + t.Name
}

// TestFile groups the tests declared in one source file, for listing.
type TestFile struct {
	Path  string
	Tests []Test
}
