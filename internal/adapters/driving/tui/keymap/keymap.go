// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help toggles the help view.
	Help key.Binding

	// Back leaves the input or the help view.
	Back key.Binding

	// Submit searches for the typed query at once.
	Submit key.Binding

	// Up navigates up in the user list.
	Up key.Binding

	// Down navigates down in the user list.
	Down key.Binding

	// Toggle expands or collapses the selected user.
	Toggle key.Binding

	// MoreUsers loads the next page of users.
	MoreUsers key.Binding

	// MoreRepos loads the next page of the expanded user's repositories.
	MoreRepos key.Binding

	// Refetch re-attempts a failed search.
	Refetch key.Binding

	// RetryRepos re-attempts a failed repository listing.
	RetryRepos key.Binding

	// Reset returns to the start-up state.
	Reset key.Binding

	// NewSearch focuses the query input.
	NewSearch key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "repositories"),
		),
		MoreUsers: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "more users"),
		),
		MoreRepos: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "more repos"),
		),
		Refetch: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry search"),
		),
		RetryRepos: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "retry repos"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset"),
		),
		NewSearch: key.NewBinding(
			key.WithKeys("/", "n"),
			key.WithHelp("/", "new search"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// InputHelp returns keybindings shown while typing a query.
func (k *KeyMap) InputHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Back, k.Reset}
}

// ResultsHelp returns keybindings for the results list.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.MoreUsers, k.MoreRepos, k.NewSearch, k.Help}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.MoreUsers, k.MoreRepos},
		{k.Refetch, k.RetryRepos, k.Reset},
		{k.Submit, k.NewSearch, k.Back},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
