// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ghfinder/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ghfinder/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ghfinder/internal/core/browser"
	"github.com/custodia-labs/ghfinder/internal/core/domain"
)

// BusyIndicator prefixes the status while a search is settling or in flight.
const BusyIndicator = "●"

// Quota is the upstream request budget shown on the right of the bar.
type Quota struct {
	Known     bool
	Remaining int
	Limit     int
}

// Bar displays search progress, the API quota and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   browser.State
	quota   Quota
	typing  bool
	message string
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{
		styles: s,
		keymap: km,
		width:  80,
	}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (b *Bar) renderLeft() string {
	if b.message != "" {
		return b.styles.Normal.Render(b.message)
	}

	p := b.state.Presentation
	if p.Busy() {
		return b.styles.Muted.Render(BusyIndicator + " " + b.busyText())
	}

	switch p {
	case domain.PresentationResults:
		return b.styles.Normal.Render(fmt.Sprintf("%d of %d users", len(b.state.Users), b.state.TotalCount))
	case domain.PresentationNoResults:
		return b.styles.Muted.Render("0 users")
	case domain.PresentationError:
		return b.styles.Error.Render("Error: " + b.state.ErrorKind)
	case domain.PresentationTooShort:
		return b.styles.Warning.Render("Query too short")
	}
	return b.styles.Muted.Render("Ready")
}

func (b *Bar) busyText() string {
	switch b.state.Presentation {
	case domain.PresentationDebouncing:
		return "Typing..."
	case domain.PresentationLoadingMore:
		return fmt.Sprintf("%d users, loading more...", len(b.state.Users))
	default:
		return "Searching..."
	}
}

func (b *Bar) renderRight() string {
	var bindings []key.Binding
	switch {
	case b.typing:
		bindings = b.keymap.InputHelp()
	case len(b.state.Users) > 0:
		bindings = b.keymap.ResultsHelp()
	default:
		bindings = b.keymap.ShortHelp()
	}

	parts := make([]string, 0, len(bindings)+1)
	if q := b.renderQuota(); q != "" {
		parts = append(parts, q)
	}
	for _, k := range bindings {
		h := k.Help()
		parts = append(parts, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(parts, " | "))
}

func (b *Bar) renderQuota() string {
	if !b.quota.Known {
		return ""
	}
	return fmt.Sprintf("API %d/%d", b.quota.Remaining, b.quota.Limit)
}

// SetState records the orchestrator snapshot to summarise.
func (b *Bar) SetState(s browser.State) {
	b.state = s
}

// SetQuota records the latest upstream quota.
func (b *Bar) SetQuota(q Quota) {
	b.quota = q
}

// Quota returns the latest upstream quota.
func (b *Bar) Quota() Quota {
	return b.quota
}

// SetTyping selects the input hints instead of the list hints.
func (b *Bar) SetTyping(typing bool) {
	b.typing = typing
}

// SetMessage overrides the left side until cleared with an empty message.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the current width.
func (b *Bar) Width() int {
	return b.width
}
