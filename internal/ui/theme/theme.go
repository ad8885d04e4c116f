package theme

import (
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/abhisek/wayhome/internal/level"
)

// Color palette: warm and welcoming, readable on dark terminals
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Amber
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Level colors
var (
	Explorer  = lipgloss.Color("#38BDF8") // Sky
	Connector = lipgloss.Color("#A78BFA") // Lavender
	Mentor    = lipgloss.Color("#FBBF24") // Gold
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
)

// States
var (
	Done = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	InProgress = lipgloss.NewStyle().
			Foreground(Warning)

	UpNext = lipgloss.NewStyle().
		Foreground(TextDim)

	Missing = lipgloss.NewStyle().
		Foreground(Error)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	Badge = lipgloss.NewStyle().
		Foreground(BgCard).
		Background(Accent).
		Bold(true).
		Padding(0, 1)
)

// LevelColor returns the accent style for a level. Unknown levels get the
// primary color.
func LevelColor(l level.Level) lipgloss.Style {
	c := Primary
	switch l {
	case level.LevelExplorer:
		c = Explorer
	case level.LevelConnector:
		c = Connector
	case level.LevelMentor:
		c = Mentor
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

// ScoreStyle colors a 0-100 match score by band.
func ScoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return lipgloss.NewStyle().Foreground(Success).Bold(true)
	case score >= 60:
		return lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	case score >= 40:
		return lipgloss.NewStyle().Foreground(Warning)
	default:
		return lipgloss.NewStyle().Foreground(Error)
	}
}
