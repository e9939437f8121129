// Package project locates the enclosing Go module and its optional
// reactive.yaml configuration.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"

	"github.com/go-drift/reactive/pkg/diagnostics"
)

// Resolved contains the resolved project context for a CLI run.
type Resolved struct {
	Root       string
	ModulePath string
	Config     *diagnostics.Config
}

// Resolve walks up to the enclosing module root and loads its
// reactive.yaml, if any. Outside a module it falls back to the current
// directory with a zero config.
func Resolve() (*Resolved, error) {
	root, err := FindProjectRoot()
	if err != nil {
		dir, werr := os.Getwd()
		if werr != nil {
			return nil, werr
		}
		return &Resolved{Root: dir, Config: &diagnostics.Config{}}, nil
	}

	path, err := modulePath(root)
	if err != nil {
		return nil, err
	}
	cfg, err := diagnostics.LoadOptional(root)
	if err != nil {
		return nil, err
	}
	return &Resolved{Root: root, ModulePath: path, Config: cfg}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}
