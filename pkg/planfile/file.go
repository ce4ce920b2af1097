package planfile

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog/log"
)

// Lock is an advisory file lock guarding a plan file. The lock lives
// in a sibling .lock file so the plan file itself can be atomically
// replaced while held.
type Lock struct {
	fl *flock.Flock
}

// LockPath returns the lock file path for a plan file.
func LockPath(planPath string) string {
	return strings.TrimSuffix(planPath, filepath.Ext(planPath)) + ".lock"
}

// AcquireLock takes an exclusive lock for the given plan file,
// blocking until it is available.
func AcquireLock(planPath string) (*Lock, error) {
	fl := flock.New(LockPath(planPath))
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("locking %s: %w", planPath, err)
	}
	return &Lock{fl: fl}, nil
}

// AcquireSharedLock takes a shared lock, enough for readers that only
// need a consistent snapshot.
func AcquireSharedLock(planPath string) (*Lock, error) {
	fl := flock.New(LockPath(planPath))
	if err := fl.RLock(); err != nil {
		return nil, fmt.Errorf("locking %s: %w", planPath, err)
	}
	return &Lock{fl: fl}, nil
}

func (l *Lock) Release() error {
	return l.fl.Unlock()
}

// ReadLines reads a plan file into lines. A trailing newline does not
// produce a final empty line.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

// WriteLines writes lines back atomically: contents go to a temp file
// in the same directory, get fsynced, then rename into place. Callers
// must hold the exclusive lock.
func WriteLines(path string, lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return writeAtomic(path, []byte(b.String()))
}

func writeAtomic(path string, data []byte) error {
	tmp := fmt.Sprintf("%s.tmp-%d", path, os.Getpid())
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("syncing %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// EnsureExists creates the plan file for date from the template if it
// is missing. Past days are never created on demand; asking for one
// that does not exist is an error wrapped around os.ErrNotExist.
func EnsureExists(dir string, date, today time.Time) (string, error) {
	path := Path(dir, date)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("checking %s: %w", path, err)
	}

	if date.Format(DateLayout) < today.Format(DateLayout) {
		return "", fmt.Errorf("no plan for %s: %w", date.Format(DateLayout), os.ErrNotExist)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	lock, err := AcquireLock(path)
	if err != nil {
		return "", err
	}
	defer lock.Release()

	// Re-check under the lock in case another invocation won the race.
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	log.Debug().Str("path", path).Msg("creating plan file from template")
	if err := WriteLines(path, Template(date)); err != nil {
		return "", err
	}
	return path, nil
}

// InsertIntoInbox appends text as the last line of the file's inbox
// block, just above the closing tilde line. Files whose inbox block
// has been edited away get it rebuilt at the end of the file, sized
// to the wider of the first line and the default banner width, with a
// blank line separating it from existing content.
func InsertIntoInbox(path, text string) error {
	lock, err := AcquireLock(path)
	if err != nil {
		return err
	}
	defer lock.Release()

	lines, err := ReadLines(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	closing := closingTildeIndex(lines)
	if closing < 0 {
		width := minInboxWidth
		if len(lines) > 0 {
			width = max(len(lines[0]), minInboxWidth)
		}
		if len(lines) > 0 && lines[len(lines)-1] != "" {
			lines = append(lines, "")
		}
		lines = append(lines, InboxLine(width), text, strings.Repeat("~", width))
		log.Debug().Str("path", path).Msg("regenerated missing inbox block")
		return WriteLines(path, lines)
	}

	lines = slices.Insert(lines, closing, text)
	return WriteLines(path, lines)
}

// closingTildeIndex finds the line ending the inbox block: the first
// all-tilde line after the inbox banner.
func closingTildeIndex(lines []string) int {
	seenBanner := false
	for i, line := range lines {
		switch {
		case isInboxBanner(line):
			seenBanner = true
		case seenBanner && isTildeLine(line):
			return i
		}
	}
	return -1
}

func isInboxBanner(line string) bool {
	return strings.Contains(line, "inbox") && isTildeLine(strings.ReplaceAll(line, "inbox", ""))
}

func isTildeLine(line string) bool {
	if line == "" {
		return false
	}
	for i := 0; i < len(line); i++ {
		if line[i] != '~' {
			return false
		}
	}
	return true
}
