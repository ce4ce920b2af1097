// Package grammar implements the plan-line grammar: the classifier that
// assigns a semantic category to each line of a plan file, and the
// transducer that advances a task's life-cycle state. Everything here is a
// pure function over single lines; callers supply the current date.
package grammar

import (
	"regexp"
	"strings"
)

// Category is the semantic kind of a plan-file line.
type Category int

const (
	Unclassified Category = iota
	Header
	InboxMarker
	Divider
	Separator
	Jot
	Task
)

// TaskState is the life-cycle state carried by a Task line's sigil.
type TaskState int

const (
	StateNone TaskState = iota
	StateOpen
	StateDone
	StateCancelled
)

// Style tags a highlight span for the presentation layer.
type Style int

const (
	StyleHeader Style = iota
	StyleInbox
	StyleDivider
	StyleSeparator
	StyleJot
	StyleOpen
	StyleDone
	StyleCancelled
	StyleTimestamp
)

// Span is a half-open [Start, End) column range with a style tag.
type Span struct {
	Start int
	End   int
	Style Style
}

// Line is the classified view of one row of plan-file text.
type Line struct {
	Raw      string
	Category Category
	State    TaskState
	Spans    []Span
}

type rule struct {
	match    func(string) bool
	category Category
	state    TaskState
	style    Style
	sigil    bool // span covers the two-column sigil prefix, not the whole line
}

var (
	headerRe  = regexp.MustCompile(`^\d+, \w+ \d+ - \w+$`)
	inboxRe   = regexp.MustCompile(`^~+inbox~+$`)
	dividerRe = regexp.MustCompile(`^~+$`)

	// Terminal-sigil lines carrying a trailing " (YYYY-MM-DD)" stamp get a
	// second, muted span independent of the sigil rule that matched.
	timestampLineRe = regexp.MustCompile(`^[+\-] .*\s\(\d{4}-\d{2}-\d{2}\)$`)
)

func prefix(p string) func(string) bool {
	return func(s string) bool { return strings.HasPrefix(s, p) }
}

// rules are evaluated in order; the first match wins. The order is part of
// the grammar: the inbox marker must be tried before the bare divider, and
// structural lines before sigil lines.
var rules = []rule{
	{headerRe.MatchString, Header, StateNone, StyleHeader, false},
	{inboxRe.MatchString, InboxMarker, StateNone, StyleInbox, false},
	{dividerRe.MatchString, Divider, StateNone, StyleDivider, false},
	{func(s string) bool { return s == "---" }, Separator, StateNone, StyleSeparator, false},
	{prefix("* "), Jot, StateNone, StyleJot, true},
	{prefix(`\ `), Task, StateOpen, StyleOpen, true},
	{prefix("+ "), Task, StateDone, StyleDone, true},
	{prefix("- "), Task, StateCancelled, StyleCancelled, true},
}

// Classify assigns a category and highlight spans to one line of text.
// It is total: lines matching no rule come back Unclassified with no spans.
func Classify(raw string) Line {
	ln := Line{Raw: raw, Category: Unclassified}
	for _, r := range rules {
		if !r.match(raw) {
			continue
		}
		ln.Category = r.category
		ln.State = r.state
		end := len(raw)
		if r.sigil {
			end = 2
		}
		ln.Spans = append(ln.Spans, Span{Start: 0, End: end, Style: r.style})
		break
	}
	if start, ok := timestampStart(raw); ok {
		ln.Spans = append(ln.Spans, Span{Start: start, End: len(raw), Style: StyleTimestamp})
	}
	return ln
}

// timestampStart reports the column where the trailing " (YYYY-MM-DD)"
// suffix begins, including its leading space.
func timestampStart(raw string) (int, bool) {
	if !timestampLineRe.MatchString(raw) {
		return 0, false
	}
	return len(raw) - len(" (0000-00-00)"), true
}
