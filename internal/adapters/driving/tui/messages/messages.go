// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ghfinder/internal/core/loop"
)

// Dispatch carries a closure posted to the core loop. Update runs it.
type Dispatch struct {
	Fn func()
}

// QueueClosed is sent once the core loop stops delivering closures.
type QueueClosed struct{}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the user search and repository accordion.
	ViewSearch ViewType = iota
	// ViewHelp is the keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Notice is a transient status line, such as a config reload.
type Notice struct {
	Text string
}

// Quit signals the application should exit.
type Quit struct{}

// WaitForDispatch returns a command that blocks until q delivers the next
// closure. The receiver must re-issue it after handling each Dispatch.
func WaitForDispatch(q *loop.Queue) tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-q.C():
			return Dispatch{Fn: fn}
		case <-q.Done():
			return QueueClosed{}
		}
	}
}
