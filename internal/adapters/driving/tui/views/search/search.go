// Package search provides the user search view for the TUI.
package search

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ghfinder/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/ghfinder/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/ghfinder/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ghfinder/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ghfinder/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ghfinder/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ghfinder/internal/core/browser"
	"github.com/custodia-labs/ghfinder/internal/core/domain"
)

// QuotaFunc reports the latest upstream quota.
type QuotaFunc func() status.Quota

// View is the query input, the user accordion and the status bar.
//
// Every key press is translated into a Browser call; rendering reads a fresh
// Snapshot, so the view itself holds no search state.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.UserList
	statusbar *status.Bar

	browser *browser.Browser
	quota   QuotaFunc

	width      int
	height     int
	ready      bool
	focusInput bool // true = typing a query, false = navigating users
}

// NewView creates a search view over b. quota may be nil.
func NewView(s *styles.Styles, km *keymap.KeyMap, b *browser.Browser, quota QuotaFunc) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQueryInput(s),
		list:       list.NewUserList(s),
		statusbar:  status.NewBar(s, km),
		browser:    b,
		quota:      quota,
		width:      80,
		height:     24,
		focusInput: true,
	}
	v.Refresh()
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		v.statusbar.SetMessage("")
		cmd := v.handleKeyMsg(msg)
		v.Refresh()
		return v, cmd

	case messages.ErrorOccurred:
		v.statusbar.SetMessage(v.styles.Error.Render(msg.Err.Error()))
		return v, nil
	}

	// Cursor blink and other input internals.
	var cmd tea.Cmd
	v.input, cmd, _ = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()

	if keymap.Matches(k, v.keymap.Reset) {
		v.reset()
		return nil
	}

	if v.focusInput {
		return v.handleInputKey(msg)
	}

	switch {
	case keymap.Matches(k, v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(k, v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(k, v.keymap.Toggle):
		if u := v.list.SelectedUser(); u != nil {
			v.browser.Toggle(u.Login)
		}
	case keymap.Matches(k, v.keymap.MoreUsers):
		v.browser.LoadMoreUsers()
	case keymap.Matches(k, v.keymap.MoreRepos):
		v.browser.LoadMoreRepositories()
	case keymap.Matches(k, v.keymap.Refetch):
		v.browser.Refetch()
	case keymap.Matches(k, v.keymap.RetryRepos):
		v.browser.RetryRepositories()
	case keymap.Matches(k, v.keymap.NewSearch):
		return v.focus()
	case keymap.Matches(k, v.keymap.Quit):
		return func() tea.Msg { return messages.Quit{} }
	}
	return nil
}

func (v *View) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEnter:
		err := v.browser.Submit(v.input.Value())
		if errors.Is(err, domain.ErrQueryTooShort) {
			return nil
		}
		v.list.ResetSelection()
		v.blur()
		return nil
	case tea.KeyEsc:
		v.blur()
		return nil
	case tea.KeyDown:
		if len(v.list.State().Users) > 0 {
			v.blur()
		}
		return nil
	}

	var cmd tea.Cmd
	var changed bool
	v.input, cmd, changed = v.input.Update(msg)
	if changed {
		v.browser.SetQuery(v.input.Value())
		v.list.ResetSelection()
	}
	return cmd
}

func (v *View) focus() tea.Cmd {
	v.focusInput = true
	return v.input.Focus()
}

func (v *View) blur() {
	v.focusInput = false
	v.input.Blur()
}

func (v *View) reset() {
	v.browser.Retry()
	v.input.Reset()
	v.list.ResetSelection()
	v.focus()
}

// Refresh re-reads the browser state. The app calls it after every
// completion delivered by the loop.
func (v *View) Refresh() {
	s := v.browser.Snapshot()
	v.list.SetState(s)
	v.statusbar.SetState(s)
	v.statusbar.SetTyping(v.focusInput)
	if v.quota != nil {
		v.statusbar.SetQuota(v.quota())
	}
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	s := v.list.State()
	sections := make([]string, 0, 10)

	sections = append(sections, v.styles.Title.Render("GitHub user finder"), "")
	sections = append(sections, v.input.View(), "")

	switch s.Presentation {
	case domain.PresentationError:
		sections = append(sections,
			v.styles.Error.Render(s.Error),
			v.styles.Muted.Render("r: retry search"))
	case domain.PresentationTooShort:
		sections = append(sections, v.styles.Warning.Render(s.Message))
	case domain.PresentationIdle, domain.PresentationNoResults:
		sections = append(sections, v.styles.Muted.Render(s.Message))
	case domain.PresentationLoading, domain.PresentationDebouncing:
		sections = append(sections, v.styles.Muted.Render("Searching..."))
	case domain.PresentationResults, domain.PresentationLoadingMore:
		sections = append(sections, v.list.View())
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	gap := v.height - lipgloss.Height(body) - 1
	if gap < 1 {
		gap = 1
	}
	return body + strings.Repeat("\n", gap) + v.statusbar.View()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-8) // title, input, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the text in the input.
func (v *View) Query() string {
	return v.input.Value()
}

// State returns the last rendered browser state.
func (v *View) State() browser.State {
	return v.list.State()
}

// SelectedIndex returns the index of the selected user.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// SetMessage shows a transient note in the status bar.
func (v *View) SetMessage(msg string) {
	v.statusbar.SetMessage(msg)
}
