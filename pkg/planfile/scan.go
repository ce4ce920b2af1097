package planfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Entry is one plan file found by Scan. Date is zero when the
// filename stem is not a date.
type Entry struct {
	Name string
	Path string
	Date time.Time
	Size int64
}

// ScanResult separates recognized plan files from files that do not
// belong in a plan directory.
type ScanResult struct {
	Plans      []Entry
	Unexpected []string
}

// IsPlanFile reports whether a filename is a plan file. Sync conflict
// copies are excluded; the stem does not have to be a date.
func IsPlanFile(name string) bool {
	if !strings.HasSuffix(name, ".plan") {
		return false
	}
	return !strings.HasPrefix(name, ".sync-conflict")
}

var ignoredExts = map[string]bool{
	".lock": true,
	".swp":  true,
	".tmp":  true,
}

var ignoredNames = map[string]bool{
	".DS_Store": true,
	"Thumbs.db": true,
}

// shouldIgnore filters editor droppings, lock files and anything the
// user listed in their ignore patterns.
func shouldIgnore(name string, patterns []string) bool {
	if ignoredNames[name] {
		return true
	}
	if strings.HasSuffix(name, "~") {
		return true
	}
	if i := strings.LastIndex(name, "."); i >= 0 && ignoredExts[name[i:]] {
		return true
	}
	if strings.Contains(name, ".tmp-") {
		return true
	}
	for _, p := range patterns {
		if suffix, ok := strings.CutPrefix(p, "*"); ok {
			if strings.HasSuffix(name, suffix) {
				return true
			}
		} else if name == p {
			return true
		}
	}
	return false
}

// Scan reads a plan directory, returning plan files sorted by name
// descending plus the names of files it did not expect to see.
// Subdirectories are skipped silently.
func Scan(dir string, ignorePatterns []string) (ScanResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ScanResult{}, fmt.Errorf("reading plan directory %s: %w", dir, err)
	}

	var result ScanResult
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || shouldIgnore(name, ignorePatterns) {
			continue
		}
		if !IsPlanFile(name) {
			result.Unexpected = append(result.Unexpected, name)
			continue
		}
		entry := Entry{Name: name, Path: filepath.Join(dir, name)}
		if date, err := time.Parse(DateLayout, strings.TrimSuffix(name, ".plan")); err == nil {
			entry.Date = date
		}
		if info, err := e.Info(); err == nil {
			entry.Size = info.Size()
		}
		result.Plans = append(result.Plans, entry)
	}

	sort.Slice(result.Plans, func(i, j int) bool {
		return result.Plans[i].Name > result.Plans[j].Name
	})
	sort.Strings(result.Unexpected)
	return result, nil
}

// FindLatest returns the most recent dated plan file in dir, or false
// if the directory holds none. Plan files without a date stem never
// count as latest.
func FindLatest(dir string, ignorePatterns []string) (Entry, bool, error) {
	result, err := Scan(dir, ignorePatterns)
	if err != nil {
		return Entry{}, false, err
	}
	for _, entry := range result.Plans {
		if !entry.Date.IsZero() {
			return entry, true, nil
		}
	}
	return Entry{}, false, nil
}

// WarnUnexpected prints a single warning line naming every stray file
// to w. Nothing is printed when names is empty.
func WarnUnexpected(w io.Writer, names []string) {
	if len(names) == 0 {
		return
	}
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	fmt.Fprintf(w, "plan: warning: unexpected files in plan directory: %s (suppress with warn_unexpected = false)\n",
		strings.Join(sorted, ", "))
}
