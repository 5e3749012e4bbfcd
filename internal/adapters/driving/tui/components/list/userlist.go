// Package list provides the user accordion for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/ghfinder/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ghfinder/internal/core/browser"
	"github.com/custodia-labs/ghfinder/internal/core/domain"
)

// UserList renders users as an accordion. At most one user is open and
// shows its repositories underneath.
type UserList struct {
	state    browser.State
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewUserList creates an empty user list.
func NewUserList(s *styles.Styles) *UserList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &UserList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// SetState replaces the rendered state and keeps the selection in range.
func (l *UserList) SetState(s browser.State) {
	l.state = s
	l.clamp()
}

// State returns the last rendered state.
func (l *UserList) State() browser.State {
	return l.state
}

// MoveUp moves the selection up.
func (l *UserList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves the selection down.
func (l *UserList) MoveDown() {
	if l.selected < len(l.state.Users)-1 {
		l.selected++
	}
}

// Selected returns the selected index.
func (l *UserList) Selected() int {
	return l.selected
}

// SelectedUser returns the selected user, or nil when the list is empty.
func (l *UserList) SelectedUser() *domain.User {
	if l.selected < 0 || l.selected >= len(l.state.Users) {
		return nil
	}
	return &l.state.Users[l.selected]
}

// ResetSelection moves the selection to the first user.
func (l *UserList) ResetSelection() {
	l.selected = 0
}

// SetDimensions sets the list dimensions.
func (l *UserList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

func (l *UserList) clamp() {
	if l.selected >= len(l.state.Users) {
		l.selected = len(l.state.Users) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// View renders the list scrolled so the selection stays visible.
func (l *UserList) View() string {
	if len(l.state.Users) == 0 {
		return ""
	}

	lines, cursor := l.lines()

	visible := l.height
	if visible < 3 {
		visible = 3
	}
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n")
}

// lines renders every row and returns the line index of the selection.
func (l *UserList) lines() ([]string, int) {
	lines := make([]string, 0, len(l.state.Users)+8)
	cursor := 0

	for i, u := range l.state.Users {
		open := l.state.Expanded != nil && l.state.Expanded.Login == u.Login
		if i == l.selected {
			cursor = len(lines)
		}
		lines = append(lines, l.renderUser(i, u, open))
		if open {
			block := l.styles.Nested.Render(strings.Join(l.repositoryLines(l.state.Expanded), "\n"))
			lines = append(lines, strings.Split(block, "\n")...)
		}
	}

	if footer := l.footer(); footer != "" {
		lines = append(lines, "", footer)
	}
	return lines, cursor
}

func (l *UserList) renderUser(index int, u domain.User, open bool) string {
	marker := "▸"
	if open {
		marker = "▾"
	}
	if index == l.selected {
		return l.styles.Selected.Render(fmt.Sprintf("> %s %s", marker, u.Login))
	}
	return "  " + l.styles.Muted.Render(marker) + " " + l.styles.Login.Render(u.Login)
}

func (l *UserList) repositoryLines(e *browser.Expansion) []string {
	if e.IsLoading {
		return []string{l.styles.Muted.Render("Loading repositories...")}
	}

	out := make([]string, 0, len(e.Repositories)+2)
	for _, r := range e.Repositories {
		out = append(out, l.renderRepository(r))
	}

	switch {
	case e.Error != "":
		out = append(out,
			l.styles.Error.Render(e.Message),
			l.styles.Muted.Render(e.Error+" (R to retry)"))
	case e.Message != "":
		out = append(out, l.styles.Muted.Render(e.Message))
	case e.IsFetchingNextPage:
		out = append(out, l.styles.Muted.Render("Loading more..."))
	case e.HasNextPage:
		out = append(out, l.styles.Help.Render("M: more repositories"))
	}
	return out
}

func (l *UserList) renderRepository(r domain.Repository) string {
	line := l.styles.Stars.Render(fmt.Sprintf("★ %-5d", r.Stars)) + " " + l.styles.RepoName.Render(r.Name)

	desc := r.DescriptionText()
	if desc == "" {
		return line
	}
	room := l.width - len(r.Name) - 20
	if room < 10 {
		return line
	}
	return line + "  " + l.styles.Muted.Render(truncate(desc, room))
}

func (l *UserList) footer() string {
	switch {
	case l.state.IsFetchingNextPage:
		return l.styles.Muted.Render("Loading more users...")
	case l.state.HasNextPage:
		return l.styles.Help.Render(fmt.Sprintf("m: more users (%d of %d)",
			len(l.state.Users), l.state.TotalCount))
	default:
		return ""
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
