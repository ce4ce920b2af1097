package tui

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/shlex"

	"github.com/allancalix/plan/pkg/grammar"
	"github.com/allancalix/plan/pkg/planfile"
	"github.com/allancalix/plan/pkg/report"
)

// FileChangedMsg is sent when the file watcher detects changes.
type FileChangedMsg struct{}

// EditorFinishedMsg is sent when $EDITOR returns.
type EditorFinishedMsg struct {
	Err error
}

// ListingLoadedMsg carries the day picker contents.
type ListingLoadedMsg struct {
	Records []report.ListingRecord
	Err     error
}

// SearchDoneMsg carries search hits.
type SearchDoneMsg struct {
	Records []report.SearchRecord
	Err     error
}

// Model is the Bubble Tea model for the plan viewer.
type Model struct {
	dir   string
	clock planfile.Clock
	svc   *Service
	keys  KeyMap

	width  int
	height int

	date   time.Time
	path   string
	lines  []grammar.Line
	cursor int

	// Modal state
	showHelpModal bool

	// Day picker state
	showListing   bool
	listing       []report.ListingRecord
	listingCursor int

	// Search state
	isSearchInput bool
	showResults   bool
	searchQuery   string
	results       []report.SearchRecord
	resultsCursor int

	// Status message
	statusMsg     string
	statusTimeout time.Time
}

// NewModel creates a new TUI model showing the plan for date.
func NewModel(dir string, date time.Time, clock planfile.Clock, svc *Service) Model {
	m := Model{
		dir:   dir,
		clock: clock,
		svc:   svc,
		keys:  DefaultKeyMap(),
		date:  date,
		path:  planfile.Path(dir, date),
	}
	m.load()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, tea.ClearScreen

	case FileChangedMsg:
		m.load()
		return m, nil

	case EditorFinishedMsg:
		m.load()
		return m, nil

	case ListingLoadedMsg:
		if msg.Err != nil {
			m.setStatus("Listing failed: " + msg.Err.Error())
			return m, nil
		}
		if len(msg.Records) == 0 {
			m.setStatus("No plans yet")
			return m, nil
		}
		m.listing = msg.Records
		m.listingCursor = 0
		m.showListing = true
		return m, nil

	case SearchDoneMsg:
		if msg.Err != nil {
			m.setStatus("Search failed: " + msg.Err.Error())
			return m, nil
		}
		if len(msg.Records) == 0 {
			m.setStatus("No matches for: " + m.searchQuery)
			return m, nil
		}
		m.results = msg.Records
		m.resultsCursor = 0
		m.showResults = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Search input mode handling
	if m.isSearchInput {
		return m.handleSearchInput(msg)
	}

	// Help modal
	if m.showHelpModal {
		switch msg.String() {
		case "esc", "enter", "?", "q":
			m.showHelpModal = false
		}
		return m, nil
	}

	// Day picker
	if m.showListing {
		return m.handleListing(msg)
	}

	// Search results
	if m.showResults {
		return m.handleResults(msg)
	}

	// Normal mode
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.lines)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Cycle):
		m.transformCursor(grammar.Cycle)

	case key.Matches(msg, m.keys.Cancel):
		m.transformCursor(grammar.Cancel)

	case key.Matches(msg, m.keys.Edit):
		return m, m.openEditor()

	case key.Matches(msg, m.keys.OlderDay):
		m.stepDay(1)

	case key.Matches(msg, m.keys.NewerDay):
		m.stepDay(-1)

	case key.Matches(msg, m.keys.Listing):
		return m, m.loadListing()

	case key.Matches(msg, m.keys.Search):
		m.isSearchInput = true
		m.searchQuery = ""

	case key.Matches(msg, m.keys.Reload):
		m.load()
		m.setStatus("Reloaded")

	case key.Matches(msg, m.keys.Help):
		m.showHelpModal = !m.showHelpModal
	}

	return m, nil
}

// handleSearchInput handles key messages while typing in the search bar.
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.isSearchInput = false
		m.searchQuery = ""
		return m, nil

	case tea.KeyEnter:
		m.isSearchInput = false
		if m.searchQuery == "" {
			return m, nil
		}
		return m, m.runSearch(m.searchQuery)

	case tea.KeyBackspace:
		if len(m.searchQuery) > 0 {
			_, size := utf8.DecodeLastRuneInString(m.searchQuery)
			m.searchQuery = m.searchQuery[:len(m.searchQuery)-size]
		}
		return m, nil

	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.searchQuery += string(msg.Runes)
		case tea.KeySpace:
			m.searchQuery += " "
		}
		return m, nil
	}
}

func (m Model) handleListing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc, key.Matches(msg, m.keys.Quit):
		m.showListing = false

	case key.Matches(msg, m.keys.Up):
		if m.listingCursor > 0 {
			m.listingCursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.listingCursor < len(m.listing)-1 {
			m.listingCursor++
		}

	case key.Matches(msg, m.keys.Select):
		rec := m.listing[m.listingCursor]
		m.showListing = false
		if date, err := time.Parse(planfile.DateLayout, rec.Date); err == nil {
			m.openDate(date, 0)
		}
	}

	return m, nil
}

func (m Model) handleResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc, key.Matches(msg, m.keys.Quit):
		m.showResults = false

	case key.Matches(msg, m.keys.Up):
		if m.resultsCursor > 0 {
			m.resultsCursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.resultsCursor < len(m.results)-1 {
			m.resultsCursor++
		}

	case key.Matches(msg, m.keys.Select):
		hit := m.results[m.resultsCursor]
		m.showResults = false
		base := strings.TrimSuffix(hit.File, ".plan")
		if date, err := time.Parse(planfile.DateLayout, base); err == nil {
			m.openDate(date, hit.Line-1)
		}
	}

	return m, nil
}

// load re-reads and classifies the current plan file.
func (m *Model) load() {
	lock, err := planfile.AcquireSharedLock(m.path)
	if err != nil {
		m.setStatus("Load error: " + err.Error())
		return
	}
	defer lock.Release()

	raw, err := planfile.ReadLines(m.path)
	if err != nil {
		m.setStatus("Load error: " + err.Error())
		return
	}

	m.lines = make([]grammar.Line, len(raw))
	for i, line := range raw {
		m.lines[i] = grammar.Classify(line)
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.lines) {
		m.cursor = len(m.lines) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// transformCursor rewrites the line under the cursor through f and
// persists the file. The read and write happen under the exclusive
// lock so concurrent CLI edits are not lost.
func (m *Model) transformCursor(f func(line, today string) string) {
	if m.cursor >= len(m.lines) {
		return
	}

	today := m.clock.Today().Format(planfile.DateLayout)

	lock, err := planfile.AcquireLock(m.path)
	if err != nil {
		m.setStatus("Error: " + err.Error())
		return
	}
	defer lock.Release()

	raw, err := planfile.ReadLines(m.path)
	if err != nil {
		m.setStatus("Error: " + err.Error())
		return
	}
	if m.cursor >= len(raw) {
		return
	}

	next := f(raw[m.cursor], today)
	if next == raw[m.cursor] {
		return
	}
	raw[m.cursor] = next

	if err := planfile.WriteLines(m.path, raw); err != nil {
		m.setStatus("Error: " + err.Error())
		return
	}

	m.lines[m.cursor] = grammar.Classify(next)
}

// stepDay moves to the adjacent existing plan file. Plans are sorted
// newest first, so delta 1 means older.
func (m *Model) stepDay(delta int) {
	result, err := planfile.Scan(m.dir, nil)
	if err != nil {
		m.setStatus("Error: " + err.Error())
		return
	}

	var dated []planfile.Entry
	for _, entry := range result.Plans {
		if !entry.Date.IsZero() {
			dated = append(dated, entry)
		}
	}

	idx := -1
	for i, entry := range dated {
		if entry.Name == planfile.Filename(m.date) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	next := idx + delta
	if next < 0 || next >= len(dated) {
		if delta > 0 {
			m.setStatus("No older plan")
		} else {
			m.setStatus("No newer plan")
		}
		return
	}
	m.openDate(dated[next].Date, 0)
}

// openDate switches the view to another day's plan, placing the
// cursor at the given line.
func (m *Model) openDate(date time.Time, cursor int) {
	path := planfile.Path(m.dir, date)
	if _, err := os.Stat(path); err != nil {
		m.setStatus("No plan for " + date.Format(planfile.DateLayout))
		return
	}

	m.date = date
	m.path = path
	m.cursor = cursor
	m.load()
	m.clampCursor()
}

func (m *Model) loadListing() tea.Cmd {
	return func() tea.Msg {
		records, err := m.svc.Listing(context.Background())
		return ListingLoadedMsg{Records: records, Err: err}
	}
}

func (m *Model) runSearch(query string) tea.Cmd {
	return func() tea.Msg {
		records, err := m.svc.Search(context.Background(), query)
		return SearchDoneMsg{Records: records, Err: err}
	}
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTimeout = time.Now().Add(3 * time.Second)
}

func (m *Model) openEditor() tea.Cmd {
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "nano"
	}

	parts, err := shlex.Split(editor)
	if err != nil || len(parts) == 0 {
		m.setStatus("Bad $EDITOR: " + editor)
		return nil
	}

	args := append(parts[1:], m.path)
	c := exec.Command(parts[0], args...)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return EditorFinishedMsg{Err: err}
	})
}
