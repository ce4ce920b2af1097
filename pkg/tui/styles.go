package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/allancalix/plan/pkg/grammar"
)

// Color palette — adapted from gha-analyzer
var (
	ColorPurple      = lipgloss.Color("#7D56F4")
	ColorGreen       = lipgloss.Color("#25A065")
	ColorRed         = lipgloss.Color("#E05252")
	ColorYellow      = lipgloss.Color("#E5C07B")
	ColorGray        = lipgloss.Color("#626262")
	ColorGrayDim     = lipgloss.Color("#404040")
	ColorWhite       = lipgloss.Color("#FFFFFF")
	ColorOffWhite    = lipgloss.Color("#D0D0D0")
	ColorCyan        = lipgloss.Color("#56B6C2")
	ColorSelectionBg = lipgloss.Color("#2D3B4D")
)

// Chrome styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorSelectionBg)
)

// Line styles, keyed by the classifier's style table.
var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorPurple)
	inboxStyle     = lipgloss.NewStyle().Foreground(ColorCyan)
	dividerStyle   = lipgloss.NewStyle().Foreground(ColorGrayDim)
	separatorStyle = lipgloss.NewStyle().Foreground(ColorGrayDim)
	jotStyle       = lipgloss.NewStyle().Foreground(ColorOffWhite)
	openStyle      = lipgloss.NewStyle().Foreground(ColorYellow)
	doneStyle      = lipgloss.NewStyle().Foreground(ColorGreen)
	cancelledStyle = lipgloss.NewStyle().Foreground(ColorGray).Strikethrough(true)
	timestampStyle = lipgloss.NewStyle().Foreground(ColorGrayDim)
	plainStyle     = lipgloss.NewStyle()
)

// StyleFor maps a classified span style to its rendering.
func StyleFor(s grammar.Style) lipgloss.Style {
	switch s {
	case grammar.StyleHeader:
		return headerStyle
	case grammar.StyleInbox:
		return inboxStyle
	case grammar.StyleDivider:
		return dividerStyle
	case grammar.StyleSeparator:
		return separatorStyle
	case grammar.StyleJot:
		return jotStyle
	case grammar.StyleOpen:
		return openStyle
	case grammar.StyleDone:
		return doneStyle
	case grammar.StyleCancelled:
		return cancelledStyle
	case grammar.StyleTimestamp:
		return timestampStyle
	default:
		return plainStyle
	}
}
