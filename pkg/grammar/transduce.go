package grammar

import "regexp"

var timestampSuffixRe = regexp.MustCompile(` \(\d{4}-\d{2}-\d{2}\)$`)

// StripTimestamp removes a single trailing " (YYYY-MM-DD)" suffix.
// Stripping a string without such a suffix is a no-op, so the operation is
// idempotent.
func StripTimestamp(s string) string {
	return timestampSuffixRe.ReplaceAllString(s, "")
}

// sigilOf extracts the leading life-cycle sigil from a "<sigil> <body>" line.
func sigilOf(line string) (byte, bool) {
	if len(line) >= 2 && line[1] == ' ' {
		switch line[0] {
		case '\\', '*', '+', '-':
			return line[0], true
		}
	}
	return 0, false
}

// Cycle advances a task's life-cycle: an open task becomes done and is
// stamped with today's date; a done or cancelled task reopens with its
// stamp stripped. Jots and non-task lines are returned unchanged.
func Cycle(line, today string) string {
	sig, ok := sigilOf(line)
	if !ok || sig == '*' {
		return line
	}
	body := line[2:]
	if sig == '\\' {
		return "+ " + body + " (" + today + ")"
	}
	// Terminal states always reopen, whichever one they were.
	return `\ ` + StripTimestamp(body)
}

// Cancel moves a line to the cancelled state, re-stamping with today's date.
// Unlike Cycle it also applies to jots: cancel is the universal
// terminal-state setter. Cancelling an already-cancelled task reopens it.
// Non-task lines are returned unchanged.
func Cancel(line, today string) string {
	sig, ok := sigilOf(line)
	if !ok {
		return line
	}
	body := StripTimestamp(line[2:])
	if sig == '-' {
		return `\ ` + body
	}
	return "- " + body + " (" + today + ")"
}
