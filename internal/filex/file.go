// Package filex holds filesystem helpers for the client's local exports.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// EnsureSubDir creates base/name when missing and returns its path. An empty
// base means the working directory.
func EnsureSubDir(base, name string) (string, error) {
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		base = cwd
	}

	dir := filepath.Join(base, name)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// ExportFileName builds "<category>-<yyyymmdd-hhmmss>.json". Characters that
// are not letters, digits, '-' or '_' become '_'.
func ExportFileName(category string, at time.Time) string {
	safe := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, strings.TrimSpace(category))
	if safe == "" {
		safe = "category"
	}
	return fmt.Sprintf("%s-%s.json", safe, at.UTC().Format("20060102-150405"))
}
