package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgutils/pkg/integrations/jira"
)

// jiraCommand creates the jira command group.
func (c *CLI) jiraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jira",
		Short: "Check access to the packaging JIRA",
	}
	cmd.AddCommand(c.jiraWhoamiCommand())
	return cmd
}

// jiraWhoamiCommand creates the "jira whoami" subcommand.
func (c *CLI) jiraWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Authenticate and print the current JIRA user",
		Long: `Authenticate against JIRA with the user_info.email and token.jira config
keys (or PKGUTILS_USER_INFO_EMAIL and PKGUTILS_TOKEN_JIRA) and print the
account the token belongs to.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.loadConfig()
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())

			api, err := jira.New(cmd.Context(), store, jira.WithHost(c.jiraHost), jira.WithLogger(logger))
			if err != nil {
				return err
			}
			user, err := api.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSuccess(out, "Authenticated as %s", user.DisplayName)
			printKeyValue(out, "Email", user.EmailAddress)
			printKeyValue(out, "Account", user.AccountID)
			printKeyValue(out, "Time zone", user.TimeZone)
			return nil
		},
	}
}
