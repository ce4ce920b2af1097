// Package planfile owns the on-disk layout of a plan directory: one
// file per day named YYYY-MM-DD.plan, each starting with a generated
// header block that includes an inbox. All writes go through an
// advisory lock and an atomic rename so concurrent invocations never
// interleave.
package planfile

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical date format used for filenames, command
// arguments and task timestamps.
const DateLayout = "2006-01-02"

const headerLayout = "2006, Jan 02 - Monday"

// minInboxWidth keeps the inbox banner readable even for short
// headers.
const minInboxWidth = 21

// ParseRelative resolves a date argument to a concrete day. Accepted
// forms: an absolute YYYY-MM-DD date, "@" or "today" for today,
// "yesterday", "@~N" for N days back, and "N day(s) ago".
func ParseRelative(arg string, today time.Time) (time.Time, error) {
	arg = strings.ToLower(strings.TrimSpace(arg))
	switch arg {
	case "", "@", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if rest, ok := strings.CutPrefix(arg, "@~"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			return time.Time{}, fmt.Errorf("invalid date offset %q", arg)
		}
		return today.AddDate(0, 0, -n), nil
	}

	if days, ok := cutDaysAgo(arg); ok {
		if days < 0 {
			return time.Time{}, fmt.Errorf("invalid date offset %q", arg)
		}
		return today.AddDate(0, 0, -days), nil
	}

	t, err := time.Parse(DateLayout, arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or a relative form like @~1", arg)
	}
	return t, nil
}

func cutDaysAgo(arg string) (int, bool) {
	rest, ok := strings.CutSuffix(arg, " days ago")
	if !ok {
		rest, ok = strings.CutSuffix(arg, " day ago")
	}
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Filename returns the plan filename for a date.
func Filename(date time.Time) string {
	return date.Format(DateLayout) + ".plan"
}

// Path returns the full plan file path for a date within dir.
func Path(dir string, date time.Time) string {
	return filepath.Join(dir, Filename(date))
}

// Template renders the initial contents of a fresh plan file: the
// dated header, an inbox banner, the closing tilde line, a blank line
// and the separator.
func Template(date time.Time) []string {
	header := date.Format(headerLayout)
	width := max(len(header), minInboxWidth)
	return []string{
		header,
		InboxLine(width),
		strings.Repeat("~", width),
		"",
		"---",
	}
}

// InboxLine renders an "inbox" banner centered in tildes at the given
// width. Extra padding from uneven widths goes to the right side.
func InboxLine(width int) string {
	const label = "inbox"
	if width < len(label) {
		width = len(label)
	}
	pad := width - len(label)
	left := pad / 2
	return strings.Repeat("~", left) + label + strings.Repeat("~", pad-left)
}
