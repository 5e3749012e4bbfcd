package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghfinder/internal/core/domain"
)

// ErrConfigExists is returned by config init when the file is already there.
var ErrConfigExists = errors.New("config file already exists")

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
	Long: `Inspect the effective configuration.

Settings are read from a TOML file (default ~/.ghfinder/config.toml):

  [github]
  token = "ghp_..."
  base_url = "https://api.github.com/"

  [search]
  debounce_ms = 500
  per_page = 30
  result_window_cap = 1000

  [repos]
  per_page = 5
  cache_size = 32
  cache_ttl = "5m"

  [request]
  timeout = "10s"`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings (token masked)",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE:  runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default settings",
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}

	s := env.Settings
	token := s.GitHub.MaskedToken()
	if token == "" {
		token = "(none, anonymous access)"
	}

	t := newTable(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"SETTING", "VALUE"})
	t.AppendRows([]table.Row{
		{"github.token", token},
		{"github.base_url", s.GitHub.BaseURL},
		{"search.debounce", s.Search.Debounce.String()},
		{"search.per_page", strconv.Itoa(s.Search.PerPage)},
		{"search.result_window_cap", strconv.Itoa(s.Search.ResultWindowCap)},
		{"repos.per_page", strconv.Itoa(s.Repos.PerPage)},
		{"repos.cache_size", strconv.Itoa(s.Repos.CacheSize)},
		{"repos.cache_ttl", s.Repos.CacheTTL.String()},
		{"request.timeout", s.RequestTimeout.String()},
	})
	t.Render()

	if env.Store != nil {
		cmd.Printf("file: %s\n", env.Store.Path())
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	store, err := configStore()
	if err != nil {
		return err
	}
	cmd.Println(store.Path())
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	store, err := configStore()
	if err != nil {
		return err
	}

	if _, err := os.Stat(store.Path()); err == nil && !configInitForce {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, store.Path())
	}

	if err := store.Save(domain.DefaultSettings()); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	cmd.Printf("Wrote %s\n", store.Path())
	return nil
}
