// Package cli provides the cobra command tree for ghfinder.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghfinder/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Persistent flag values.
var (
	verbose    bool
	configPath string
	tokenFlag  string
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "ghfinder",
	Short: "Search GitHub users and browse their repositories",
	Long: `ghfinder searches the GitHub user directory and lists each user's
public repositories.

Run "ghfinder tui" for the interactive search-as-you-type interface, or use
"ghfinder users" and "ghfinder repos" for one-shot queries.

A GitHub token raises the API rate limit. It is read from --token, then
the GITHUB_TOKEN environment variable, then the configuration file.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		logger.Close() //nolint:errcheck
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&configPath, "config", "", "config file (default ~/.ghfinder/config.toml)")
	flags.StringVar(&tokenFlag, "token", "", "GitHub token (overrides GITHUB_TOKEN and the config file)")
	flags.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setupLogging(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if logFile != "" {
		if err := logger.SetOutputFile(logFile); err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
	}
	logger.Debug("ghfinder %s", version)
	return nil
}
