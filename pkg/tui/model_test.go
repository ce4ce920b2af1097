package tui

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allancalix/plan/pkg/grammar"
	"github.com/allancalix/plan/pkg/planfile"
)

func testDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(planfile.DateLayout, s)
	require.NoError(t, err)
	return d
}

func testModel(t *testing.T, lines []string) (Model, string) {
	t.Helper()
	dir := t.TempDir()
	date := testDate(t, "2024-03-10")
	path := planfile.Path(dir, date)
	require.NoError(t, planfile.WriteLines(path, lines))

	clock := planfile.FixedClock{Date: date}
	return NewModel(dir, date, clock, &Service{Bin: "plan", Exec: &fakeExecutor{}}), path
}

func TestNewModelClassifiesLines(t *testing.T) {
	m, _ := testModel(t, []string{
		"2024, Mar 10 - Sunday",
		`\ write report`,
		"* a jot",
	})

	require.Len(t, m.lines, 3)
	assert.Equal(t, grammar.Header, m.lines[0].Category)
	assert.Equal(t, grammar.Task, m.lines[1].Category)
	assert.Equal(t, grammar.StateOpen, m.lines[1].State)
	assert.Equal(t, grammar.Jot, m.lines[2].Category)
}

func TestTransformCursorCycles(t *testing.T) {
	m, path := testModel(t, []string{`\ write report`})

	m.transformCursor(grammar.Cycle)

	assert.Equal(t, "+ write report (2024-03-10)", m.lines[0].Raw)
	assert.Equal(t, grammar.StateDone, m.lines[0].State)

	lines, err := planfile.ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"+ write report (2024-03-10)"}, lines)
}

func TestTransformCursorCancelsJot(t *testing.T) {
	m, path := testModel(t, []string{"* a jot"})

	m.transformCursor(grammar.Cancel)

	lines, err := planfile.ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"- a jot (2024-03-10)"}, lines)
}

func TestTransformCursorSkipsPlainLines(t *testing.T) {
	m, path := testModel(t, []string{"just notes"})

	m.transformCursor(grammar.Cycle)

	lines, err := planfile.ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"just notes"}, lines)
}

func TestStepDayMovesToOlderPlan(t *testing.T) {
	m, _ := testModel(t, []string{"2024, Mar 10 - Sunday"})
	older := planfile.Path(m.dir, testDate(t, "2024-03-01"))
	require.NoError(t, planfile.WriteLines(older, []string{"2024, Mar 01 - Friday"}))

	m.stepDay(1)
	assert.Equal(t, "2024-03-01", m.date.Format(planfile.DateLayout))

	m.stepDay(-1)
	assert.Equal(t, "2024-03-10", m.date.Format(planfile.DateLayout))
}

func TestOpenDateMissingFile(t *testing.T) {
	m, _ := testModel(t, []string{"2024, Mar 10 - Sunday"})

	m.openDate(testDate(t, "2020-01-01"), 0)

	assert.Equal(t, "2024-03-10", m.date.Format(planfile.DateLayout))
	assert.Equal(t, "No plan for 2020-01-01", m.statusMsg)
}

func TestOpenDateClampsCursor(t *testing.T) {
	m, _ := testModel(t, []string{"a", "b"})
	other := planfile.Path(m.dir, testDate(t, "2024-03-09"))
	require.NoError(t, planfile.WriteLines(other, []string{"only line"}))

	m.openDate(testDate(t, "2024-03-09"), 99)

	assert.Equal(t, 0, m.cursor)
}

func TestFilenameShownInHeader(t *testing.T) {
	m, path := testModel(t, []string{"x"})
	assert.Equal(t, filepath.Base(path), planfile.Filename(m.date))
}
