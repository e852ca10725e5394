package discovery

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"os"
	"sort"
	"strings"
)

// Parser extracts test function names from Go test files
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// IsSyntaxError reports whether err came from malformed Go source, as
// opposed to a file that simply could not be read. Syntax errors abort
// the run; read errors only skip the file.
func IsSyntaxError(err error) bool {
	var list scanner.ErrorList
	return errors.As(err, &list)
}

// FindTestFuncs finds all test function names declared in a test file.
// A test function is a top-level func whose name starts with "Test"
// and whose only parameter is *testing.T.
func (p *Parser) FindTestFuncs(filePath string) ([]string, error) {
	src, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filePath, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil {
			continue
		}
		if isTestFunc(fn) {
			seen[fn.Name.Name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func isTestFunc(fn *ast.FuncDecl) bool {
	name := fn.Name.Name
	if !strings.HasPrefix(name, "Test") {
		return false
	}
	// TestMain is the harness entry point, not a test
	if name == "TestMain" {
		return false
	}
	// Test followed by a lowercase letter is not a test either ("Testify")
	if len(name) > 4 {
		r := rune(name[4])
		if r >= 'a' && r <= 'z' {
			return false
		}
	}

	params := fn.Type.Params
	if params == nil || len(params.List) != 1 {
		return false
	}
	star, ok := params.List[0].Type.(*ast.StarExpr)
	if !ok {
		return false
	}
	sel, ok := star.X.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}
	return pkg.Name == "testing" && sel.Sel.Name == "T"
}
