package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/ghfinder/internal/adapters/driven/auth"
	"github.com/custodia-labs/ghfinder/internal/adapters/driving/tui"
	"github.com/custodia-labs/ghfinder/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ghfinder/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ghfinder/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/ghfinder/internal/connectors/github"
	"github.com/custodia-labs/ghfinder/internal/core/domain"
	"github.com/custodia-labs/ghfinder/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive search-as-you-type interface.

Typing searches GitHub users once the query settles (3 characters minimum).
Selecting a user expands their repositories in place.

Controls:
  Enter      - Search / Expand or collapse the selected user
  ↑/k, ↓/j   - Navigate users
  m          - Load more users
  M          - Load more repositories
  r / R      - Retry the search / the repositories
  /          - New search
  Ctrl+R     - Reset
  Esc        - Leave the search box
  ?          - Toggle help
  q          - Quit

The configuration file is watched while the interface runs; a changed
token takes effect on the next request.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	// The alternate screen owns the terminal; only a log file may be written.
	if logFile == "" {
		logger.SetOutput(io.Discard)
	}

	env, err := newEnvironment()
	if err != nil {
		return err
	}

	ports := tui.NewPorts(env.Directory, env.Settings)
	if env.Client != nil {
		ports.Quota = quotaFunc(env.Client.RateLimiter())
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	defer app.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	p := tea.NewProgram(app, tea.WithContext(ctx))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	})

	if env.Store != nil {
		g.Go(func() error {
			if err := env.Store.Watch(gctx, reloadHandler(env.Tokens, p.Send)); err != nil {
				logger.Warn("config: hot reload disabled: %v", err)
			}
			return nil
		})
	}

	return g.Wait()
}

// reloadHandler applies a reloaded configuration file to the running
// interface. Only the token is hot-swapped; the flag and environment
// overrides still take precedence over the file.
func reloadHandler(tokens *auth.StaticTokenProvider, send func(tea.Msg)) func(domain.Settings, error) {
	return func(settings domain.Settings, err error) {
		if err != nil {
			send(messages.ErrorOccurred{Err: fmt.Errorf("config reload failed: %w", err)})
			return
		}
		text := "Config reloaded"
		if tokens != nil && tokens.SetToken(resolveToken(settings.GitHub.Token)) {
			text = "Config reloaded: token updated"
		}
		logger.Info("%s", text)
		send(messages.Notice{Text: text})
	}
}

// quotaFunc reports the most recently observed upstream quota.
func quotaFunc(rl *github.RateLimiter) search.QuotaFunc {
	return func() status.Quota {
		st := rl.Status()
		return status.Quota{Known: st.Known, Remaining: st.Remaining, Limit: st.Limit}
	}
}
