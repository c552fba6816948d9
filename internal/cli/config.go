package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgutils/pkg/config"
)

// configCommand creates the config command group.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the pkgutils configuration",
	}

	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configGetCommand())

	return cmd
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.resolveConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			if _, err := os.Stat(path); os.IsNotExist(err) {
				printInfo(cmd.ErrOrStderr(), "File does not exist yet")
			}
			return nil
		},
	}
}

// configGetCommand creates the "config get" subcommand.
func (c *CLI) configGetCommand() *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a config value",
		Long: `Print the value of a dotted config key such as user_info.email.
Values under the token table are masked unless --reveal is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.loadConfig()
			if err != nil {
				return err
			}
			key := args[0]
			value, err := store.Get(key)
			if err != nil {
				printDetail(cmd.ErrOrStderr(), "set it in %s or export %s", store.Path(), config.EnvName(key))
				return err
			}
			if isSecret(key) && !reveal {
				value = mask(value)
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "print secret values in full")

	return cmd
}

func isSecret(key string) bool {
	return strings.HasPrefix(key, "token.")
}

// mask hides all but the last four characters of s.
func mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}
