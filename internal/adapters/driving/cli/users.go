package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghfinder/internal/core/browser"
	"github.com/custodia-labs/ghfinder/internal/core/domain"
	"github.com/custodia-labs/ghfinder/internal/core/paging"
)

var (
	usersPage    int
	usersPerPage int
	usersFormat  string

	reposPage    int
	reposPerPage int
	reposFormat  string
)

var usersCmd = &cobra.Command{
	Use:   "users <query>",
	Short: "Search GitHub users",
	Long: `Search the GitHub user directory by login, name or email.

The query must be at least 3 characters. Output is a table on a terminal
and JSON otherwise; use --format to choose.`,
	Args: cobra.ExactArgs(1),
	RunE: runUsers,
}

var reposCmd = &cobra.Command{
	Use:   "repos <login>",
	Short: "List a user's public repositories",
	Long:  `List a GitHub user's public repositories, most recently updated first.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRepos,
}

func init() {
	usersCmd.Flags().IntVar(&usersPage, "page", 1, "page number")
	usersCmd.Flags().IntVar(&usersPerPage, "per-page", 0, "users per page (default from config)")
	usersCmd.Flags().StringVarP(&usersFormat, "format", "f", formatAuto, "output format: auto, table or json")

	reposCmd.Flags().IntVar(&reposPage, "page", 1, "page number")
	reposCmd.Flags().IntVar(&reposPerPage, "per-page", 0, "repositories per page (default from config)")
	reposCmd.Flags().StringVarP(&reposFormat, "format", "f", formatAuto, "output format: auto, table or json")

	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(reposCmd)
}

type usersOutput struct {
	Query      string        `json:"query"`
	Page       int           `json:"page"`
	PerPage    int           `json:"per_page"`
	TotalCount int           `json:"total_count"`
	HasMore    bool          `json:"has_more"`
	Users      []domain.User `json:"users"`
}

type reposOutput struct {
	Login        string              `json:"login"`
	Page         int                 `json:"page"`
	PerPage      int                 `json:"per_page"`
	HasMore      bool                `json:"has_more"`
	Repositories []domain.Repository `json:"repositories"`
}

func runUsers(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(cmd.OutOrStdout(), usersFormat)
	if err != nil {
		return err
	}

	env, err := newEnvironment()
	if err != nil {
		return err
	}

	page := max(usersPage, 1)
	perPage := perPageOr(usersPerPage, env.Settings.Search.PerPage)
	result, err := env.Directory.SearchUsers(cmd.Context(), args[0], page, perPage)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	maxPages := paging.MaxPages(result.Total, perPage, env.Settings.Search.ResultWindowCap)
	out := usersOutput{
		Query:      domain.NormalizeQuery(args[0]),
		Page:       page,
		PerPage:    perPage,
		TotalCount: result.Total,
		HasMore:    page < maxPages,
		Users:      result.Items,
	}
	if out.Users == nil {
		out.Users = []domain.User{}
	}

	if format == formatJSON {
		return writeJSON(cmd.OutOrStdout(), out)
	}
	renderUsers(cmd.OutOrStdout(), out, maxPages)
	return nil
}

func renderUsers(w io.Writer, out usersOutput, maxPages int) {
	if len(out.Users) == 0 {
		fmt.Fprintln(w, domain.PresentationNoResults.Placeholder())
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"#", "LOGIN", "ID", "PROFILE"})
	offset := (out.Page - 1) * out.PerPage
	for i, u := range out.Users {
		t.AppendRow(table.Row{offset + i + 1, u.Login, u.ID, u.HTMLURL})
	}
	t.Render()

	fmt.Fprintf(w, "page %d of %d (%d users)\n", out.Page, maxPages, out.TotalCount)
}

func runRepos(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(cmd.OutOrStdout(), reposFormat)
	if err != nil {
		return err
	}

	env, err := newEnvironment()
	if err != nil {
		return err
	}

	page := max(reposPage, 1)
	perPage := perPageOr(reposPerPage, env.Settings.Repos.PerPage)
	result, err := env.Directory.ListRepositories(cmd.Context(), args[0], page, perPage)
	if err != nil {
		return fmt.Errorf("listing repositories: %w", err)
	}

	out := reposOutput{
		Login:        args[0],
		Page:         page,
		PerPage:      perPage,
		HasMore:      result.HasMore,
		Repositories: result.Items,
	}
	if out.Repositories == nil {
		out.Repositories = []domain.Repository{}
	}

	if format == formatJSON {
		return writeJSON(cmd.OutOrStdout(), out)
	}
	renderRepos(cmd.OutOrStdout(), out)
	return nil
}

func renderRepos(w io.Writer, out reposOutput) {
	if len(out.Repositories) == 0 {
		fmt.Fprintln(w, browser.NoRepositoriesMessage)
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"NAME", "STARS", "DESCRIPTION"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "DESCRIPTION", WidthMax: 60},
	})
	for _, r := range out.Repositories {
		t.AppendRow(table.Row{r.Name, r.Stars, r.DescriptionText()})
	}
	t.Render()

	if out.HasMore {
		fmt.Fprintf(w, "more: ghfinder repos %s --page %d\n", out.Login, out.Page+1)
	}
}

func perPageOr(flag, def int) int {
	if flag <= 0 {
		return def
	}
	if flag > domain.MaxPerPage {
		return domain.MaxPerPage
	}
	return flag
}
