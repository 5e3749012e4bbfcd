package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ghfinder/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ghfinder/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ghfinder/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ghfinder/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/ghfinder/internal/core/browser"
	"github.com/custodia-labs/ghfinder/internal/core/loop"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// The bubbletea update goroutine doubles as the core loop: closures posted
// to queue arrive as messages.Dispatch and run inside Update, so the
// browser is only ever touched from one goroutine.
type App struct {
	ports  *Ports
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	queue   *loop.Queue
	browser *browser.Browser

	searchView  *search.View
	currentView messages.ViewType

	width  int
	height int
	ready  bool
	closed bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	q := loop.NewQueue(0)
	b := browser.New(q, ports.Directory, ports.Settings)

	h := help.New()
	h.ShowAll = true

	return &App{
		ports:       ports,
		styles:      s,
		keymap:      km,
		help:        h,
		queue:       q,
		browser:     b,
		searchView:  search.NewView(s, km, b, ports.Quota),
		currentView: messages.ViewSearch,
	}, nil
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("ghfinder - GitHub user search"),
		messages.WaitForDispatch(a.queue),
		a.searchView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case messages.Dispatch:
		if msg.Fn != nil {
			msg.Fn()
		}
		a.searchView.Refresh()
		return a, messages.WaitForDispatch(a.queue)

	case messages.QueueClosed:
		return a, nil

	case messages.Quit:
		a.Close()
		return a, tea.Quit

	case messages.Notice:
		a.searchView.SetMessage(msg.Text)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.Close()
			return a, tea.Quit
		}

		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc || keymap.Matches(msg.String(), a.keymap.Help) {
				a.currentView = messages.ViewSearch
			}
			return a, nil
		}

		if !a.searchView.InputFocused() && keymap.Matches(msg.String(), a.keymap.Help) {
			a.currentView = messages.ViewHelp
			return a, nil
		}
	}

	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	if a.currentView == messages.ViewHelp {
		return lipgloss.JoinVertical(lipgloss.Left,
			a.styles.Title.Render("Keys"),
			"",
			a.help.FullHelpView(a.keymap.FullHelp()),
			"",
			a.styles.Help.Render("esc: back"),
		)
	}
	return a.searchView.View()
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.searchView.SetDimensions(width, height)
}

// Close cancels in-flight requests and stops the loop. It is safe to call
// more than once.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.browser.Close()
	a.queue.Close()
}

// CurrentView returns the active view.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// SearchView returns the search view.
func (a *App) SearchView() *search.View {
	return a.searchView
}

// Browser returns the orchestrator driven by the app.
func (a *App) Browser() *browser.Browser {
	return a.browser
}

// Queue returns the loop the browser runs on.
func (a *App) Queue() *loop.Queue {
	return a.queue
}

// Width returns the terminal width.
func (a *App) Width() int {
	return a.width
}

// Height returns the terminal height.
func (a *App) Height() int {
	return a.height
}

// Ready reports whether the first window size has arrived.
func (a *App) Ready() bool {
	return a.ready
}
