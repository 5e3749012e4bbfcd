// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	// Accent highlights logins and the title.
	Accent lipgloss.Color

	// Link colours repository names and URLs.
	Link lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for descriptions and hints.
	Muted lipgloss.Color

	// Star colours stargazer counts.
	Star lipgloss.Color

	// Warning is used for validation messages.
	Warning lipgloss.Color

	// Error indicates failed requests.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color

	// Bar is the status bar background.
	Bar lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("#58A6FF"),
		Link:       lipgloss.Color("#79C0FF"),
		Foreground: lipgloss.Color("#E6EDF3"),
		Muted:      lipgloss.Color("#8B949E"),
		Star:       lipgloss.Color("#E3B341"),
		Warning:    lipgloss.Color("#D29922"),
		Error:      lipgloss.Color("#F85149"),
		Border:     lipgloss.Color("#30363D"),
		Bar:        lipgloss.Color("#161B22"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style

	// Login renders a user handle in the list.
	Login lipgloss.Style

	// RepoName renders a repository name.
	RepoName lipgloss.Style

	// Stars renders a stargazer count.
	Stars lipgloss.Style

	// Nested indents the expanded repository block.
	Nested lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Bar).
			Background(theme.Accent),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Login: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		RepoName: lipgloss.NewStyle().
			Foreground(theme.Link),

		Stars: lipgloss.NewStyle().
			Foreground(theme.Star),

		Nested: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(theme.Border).
			MarginLeft(4).
			PaddingLeft(1),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
