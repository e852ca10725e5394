package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// ModuleResolver maps directories to import paths using the enclosing
// go.mod, so test ids look the way the go tool would print them.
type ModuleResolver struct {
	modPath string // module path from go.mod, e.g. "example.com/app"
	modRoot string // directory containing go.mod
}

// NewModuleResolver walks up from dir until it finds a go.mod and parses
// its module path. Outside any module, ids fall back to slash paths
// relative to dir.
func NewModuleResolver(dir string) (*ModuleResolver, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	for cur := abs; ; cur = filepath.Dir(cur) {
		gomod := filepath.Join(cur, "go.mod")
		data, err := os.ReadFile(gomod)
		if err == nil {
			path := modfile.ModulePath(data)
			if path == "" {
				return nil, fmt.Errorf("no module path in %s", gomod)
			}
			return &ModuleResolver{modPath: path, modRoot: cur}, nil
		}
		if parent := filepath.Dir(cur); parent == cur {
			break
		}
	}

	return &ModuleResolver{modRoot: abs}, nil
}

// ImportPath returns the import path for the package in dir.
func (r *ModuleResolver) ImportPath(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	rel, err := filepath.Rel(r.modRoot, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(abs)
	}
	if r.modPath == "" {
		return filepath.ToSlash(rel)
	}
	if rel == "." {
		return r.modPath
	}
	return r.modPath + "/" + filepath.ToSlash(rel)
}
