// Package cli implements the pkgutils command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgutils/pkg/buildinfo"
	"github.com/matzehuels/pkgutils/pkg/config"
	"github.com/matzehuels/pkgutils/pkg/fileio"
	"github.com/matzehuels/pkgutils/pkg/integrations"
	"github.com/matzehuels/pkgutils/pkg/integrations/jira"
	"github.com/matzehuels/pkgutils/pkg/integrations/pypi"
	"github.com/matzehuels/pkgutils/pkg/integrations/repodata"
	"github.com/matzehuels/pkgutils/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "pkgutils"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string

	// Overridable in tests.
	fs              afero.Fs
	pypiBaseURL     string
	repodataBaseURL string
	jiraHost        string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:          newLogger(w, level),
		fs:              afero.NewOsFs(),
		pypiBaseURL:     pypi.BaseURL,
		repodataBaseURL: repodata.BaseURL,
		jiraHost:        jira.Host,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "pkgutils inspects packages on PyPI and Anaconda channels",
		Long:         `pkgutils fetches and validates package metadata from PyPI and repo.anaconda.com, and checks access to the packaging JIRA.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			observability.SetHTTPHooks(logHooks{})
			observability.SetValidationHooks(logHooks{})
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/pkgutils/config.toml)")

	root.AddCommand(c.pypiCommand())
	root.AddCommand(c.repodataCommand())
	root.AddCommand(c.jiraCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.runCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Client Factories
// =============================================================================

func (c *CLI) clientOptions(logger *log.Logger) []integrations.Option {
	return []integrations.Option{
		integrations.WithLogger(logger),
		integrations.WithHeaders(map[string]string{"User-Agent": buildinfo.UserAgent()}),
	}
}

func (c *CLI) newPyPIClient(logger *log.Logger) *pypi.Client {
	return pypi.NewClient(c.clientOptions(logger)...).WithBaseURL(c.pypiBaseURL)
}

func (c *CLI) newRepodataClient(logger *log.Logger) *repodata.Client {
	return repodata.NewClient(c.clientOptions(logger)...).WithBaseURL(c.repodataBaseURL)
}

func (c *CLI) newFileWriter() *fileio.Writer {
	return fileio.New(c.fs)
}

// =============================================================================
// Paths
// =============================================================================

// resolveConfigPath returns the --config flag or the XDG default.
func (c *CLI) resolveConfigPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return config.DefaultPath()
}

func (c *CLI) loadConfig() (*config.Store, error) {
	path, err := c.resolveConfigPath()
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}
