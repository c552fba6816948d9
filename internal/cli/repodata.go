package cli

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgutils/pkg/errors"
	"github.com/matzehuels/pkgutils/pkg/integrations/repodata"
)

// repodataCommand creates the repodata command group.
func (c *CLI) repodataCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repodata",
		Short: "Inspect conda channel indexes on repo.anaconda.com",
	}

	cmd.AddCommand(c.repodataFetchCommand())
	cmd.AddCommand(c.repodataChannelsCommand())

	return cmd
}

// repodataFetchCommand creates the "repodata fetch" subcommand.
func (c *CLI) repodataFetchCommand() *cobra.Command {
	var (
		asJSON bool
		save   bool
	)

	cmd := &cobra.Command{
		Use:     "fetch <channel> <arch>",
		Short:   "Download a channel index and summarize it",
		Example: `  pkgutils repodata fetch main linux-64`,
		Args:    cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			switch len(args) {
			case 0:
				return channelNames(), cobra.ShellCompDirectiveNoFileComp
			case 1:
				return archNames(repodata.Architectures(repodata.Channel(args[0]))), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			channel, arch := repodata.Channel(args[0]), repodata.Architecture(args[1])
			logger := loggerFromContext(cmd.Context())

			prog := newProgress(logger)
			rd, err := c.newRepodataClient(logger).Fetch(cmd.Context(), channel, arch)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Fetched %s/%s", channel, arch))

			out := cmd.OutOrStdout()
			if save {
				body, err := json.MarshalIndent(rd, "", "  ")
				if err != nil {
					return errors.Wrap(errors.ErrCodeIO, err, "failed to encode repodata")
				}
				path, err := c.newFileWriter().WriteTempFile(string(body)+"\n", fmt.Sprintf("repodata-%s-%s", channel, arch))
				if err != nil {
					return err
				}
				printSuccess(cmd.ErrOrStderr(), "Saved %s", path)
			}
			if asJSON {
				return printJSON(out, rd)
			}

			names := make(map[string]struct{})
			conda := 0
			for file, pkg := range rd.Packages {
				names[pkg.Name] = struct{}{}
				if strings.HasSuffix(file, ".conda") {
					conda++
				}
			}

			printTitle(out, fmt.Sprintf("%s/%s", channel, rd.Info.Subdir))
			printKeyValue(out, "Files", fmt.Sprint(len(rd.Packages)))
			printKeyValue(out, ".conda", fmt.Sprint(conda))
			printKeyValue(out, ".tar.bz2", fmt.Sprint(len(rd.Packages)-conda))
			printKeyValue(out, "Packages", fmt.Sprint(len(names)))
			printKeyValue(out, "Removed", fmt.Sprint(len(rd.Removed)))
			printKeyValue(out, "Version", fmt.Sprint(rd.RepodataVersion))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the parsed index as JSON")
	cmd.Flags().BoolVar(&save, "save", false, "also write the parsed index to a temp file")

	return cmd
}

// repodataChannelsCommand creates the "repodata channels" subcommand.
func (c *CLI) repodataChannelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "channels",
		Short: "List channels and the architectures each one publishes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, ch := range repodata.Channels() {
				printRow(out, string(ch), archNames(repodata.Architectures(ch))...)
			}
			return nil
		},
	}
}

func channelNames() []string {
	var names []string
	for _, ch := range repodata.Channels() {
		names = append(names, string(ch))
	}
	return names
}

func archNames(archs []repodata.Architecture) []string {
	set := make(map[string]struct{}, len(archs))
	for _, a := range archs {
		set[string(a)] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}
