package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/csvmerge/csvmerge/internal/core"
)

// discoverInputs expands CLI input items into a deduplicated list of file
// paths. Directories are globbed with pattern (sorted), plain files are taken
// as-is, and anything else is treated as a glob. Order of the items is
// preserved; a file reachable through several items is kept once.
func discoverInputs(items []string, pattern string) ([]string, error) {
	if len(items) == 0 {
		return nil, &core.UsageError{Message: "no input files: pass files, directories, or globs with -i"}
	}

	var paths []string
	seen := make(map[string]bool)

	add := func(path string) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", path, err)
		}
		if !seen[abs] {
			seen[abs] = true
			paths = append(paths, path)
		}
		return nil
	}

	addGlob := func(pattern string) error {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return &core.UsageError{Message: fmt.Sprintf("invalid pattern %q: %v", pattern, err)}
		}
		sort.Strings(matches)
		for _, m := range matches {
			if err := add(m); err != nil {
				return err
			}
		}
		return nil
	}

	for _, item := range items {
		info, err := os.Stat(item)
		switch {
		case err == nil && info.IsDir():
			if err := addGlob(filepath.Join(item, pattern)); err != nil {
				return nil, err
			}
		case err == nil:
			if err := add(item); err != nil {
				return nil, err
			}
		default:
			if err := addGlob(item); err != nil {
				return nil, err
			}
		}
	}

	if len(paths) == 0 {
		return nil, &core.UsageError{Message: "no input files matched"}
	}
	return paths, nil
}
