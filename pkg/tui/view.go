package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/allancalix/plan/pkg/grammar"
	"github.com/allancalix/plan/pkg/planfile"
	"github.com/allancalix/plan/pkg/report"
)

const minWidth = 40
const minHeight = 10

// ModalStyle frames the overlays.
var ModalStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorPurple).
	Padding(1, 2)

var ModalTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorPurple)

// View implements tea.Model.
func (m Model) View() string {
	w := m.width
	h := m.height
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}

	if m.showHelpModal {
		return placeOverlay(m.renderHelpModal(), w, h)
	}
	if m.showListing {
		return placeOverlay(m.renderPicker("Plans", listingRows(m.listing), m.listingCursor), w, h)
	}
	if m.showResults {
		return placeOverlay(m.renderPicker("Matches: "+m.searchQuery, resultRows(m.results), m.resultsCursor), w, h)
	}

	var b strings.Builder

	b.WriteString(m.renderHeader(w))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")

	headerLines := 2
	footerLines := 2
	if m.isSearchInput {
		headerLines++
		b.WriteString(m.renderSearchBar())
		b.WriteString("\n")
	}

	contentHeight := h - headerLines - footerLines
	if contentHeight < 1 {
		contentHeight = 1
	}
	b.WriteString(m.renderBuffer(contentHeight))

	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m Model) renderHeader(width int) string {
	title := TitleStyle.Render(planfile.Filename(m.date))

	status := ""
	if m.statusMsg != "" && time.Now().Before(m.statusTimeout) {
		status = StatusStyle.Render(m.statusMsg)
	}

	gap := width - lipgloss.Width(title) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}

	return title + strings.Repeat(" ", gap) + status
}

func (m Model) renderSearchBar() string {
	return TitleStyle.Render(" / ") + m.searchQuery + "█"
}

// renderBuffer draws the classified plan lines with a scrolling window
// centered on the cursor.
func (m Model) renderBuffer(height int) string {
	var b strings.Builder

	start := 0
	end := len(m.lines)
	if len(m.lines) > height {
		start = m.cursor - height/2
		if start < 0 {
			start = 0
		}
		end = start + height
		if end > len(m.lines) {
			end = len(m.lines)
			start = end - height
		}
	}

	for i := start; i < end; i++ {
		b.WriteString(m.renderLine(m.lines[i], i == m.cursor))
		b.WriteString("\n")
	}
	for i := end - start; i < height; i++ {
		b.WriteString("\n")
	}

	return b.String()
}

// renderLine applies the classifier's spans. The selected line gets
// the selection style for the whole row instead of per-span styling
// so the cursor stays visible on every category.
func (m Model) renderLine(line grammar.Line, selected bool) string {
	if selected {
		return SelectedStyle.Render(line.Raw)
	}
	return styleSpans(line.Raw, line.Spans)
}

// styleSpans renders raw with each span styled, leaving uncovered
// segments unstyled. Spans are non-overlapping and ordered.
func styleSpans(raw string, spans []grammar.Span) string {
	if len(spans) == 0 {
		return raw
	}

	var b strings.Builder
	pos := 0
	for _, span := range spans {
		if span.Start > pos {
			b.WriteString(raw[pos:span.Start])
		}
		b.WriteString(StyleFor(span.Style).Render(raw[span.Start:span.End]))
		pos = span.End
	}
	if pos < len(raw) {
		b.WriteString(raw[pos:])
	}
	return b.String()
}

func (m Model) renderFooter() string {
	help := m.keys.ShortHelp()
	if m.isSearchInput {
		help = "type query  enter search  esc cancel"
	} else if m.showListing || m.showResults {
		help = "↑↓ nav  enter open  esc close"
	}
	return FooterStyle.Render(help)
}

func (m Model) renderPicker(title string, rows []string, cursor int) string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render(title))
	b.WriteString("\n\n")

	for i, row := range rows {
		if i == cursor {
			b.WriteString(SelectedStyle.Render(row))
		} else {
			b.WriteString(row)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("↑↓ nav  enter open  esc close"))

	return ModalStyle.Render(b.String())
}

func listingRows(records []report.ListingRecord) []string {
	rows := make([]string, len(records))
	for i, rec := range records {
		rows[i] = rec.Display
	}
	return rows
}

func resultRows(records []report.SearchRecord) []string {
	rows := make([]string, len(records))
	for i, rec := range records {
		rows[i] = fmt.Sprintf("%s:%d  %s", rec.File, rec.Line, rec.Display)
	}
	return rows
}

func (m Model) renderHelpModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(ColorCyan).Width(12)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	for _, binding := range m.keys.FullHelp() {
		b.WriteString(keyStyle.Render(binding[0]))
		b.WriteString(descStyle.Render(binding[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("Press Esc or ? to close"))

	return ModalStyle.Render(b.String())
}

func placeOverlay(modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")

	topPadding := (height - len(modalLines)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	leftPadding := (width - lipgloss.Width(modalLines[0])) / 2
	if leftPadding < 0 {
		leftPadding = 0
	}

	var result strings.Builder
	for i := 0; i < topPadding; i++ {
		result.WriteString("\n")
	}

	for _, line := range modalLines {
		result.WriteString(strings.Repeat(" ", leftPadding))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}
