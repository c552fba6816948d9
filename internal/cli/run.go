package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgutils/pkg/errors"
	"github.com/matzehuels/pkgutils/pkg/shell"
)

// runCommand creates the run command.
func (c *CLI) runCommand() *cobra.Command {
	var (
		dir         string
		keepGoing   bool
		interactive bool
		transcript  bool
	)

	cmd := &cobra.Command{
		Use:   "run <command>...",
		Short: "Run a chain of shell commands",
		Long: `Run each argument as a shell command, in order.

An argument of the form "cd <dir>" is not executed. It sets the working
directory of the commands that follow it. The chain stops at the first
command that fails unless --keep-going is given.`,
		Example: `  pkgutils run "cd /tmp/scipy" "tar -xzf scipy-1.11.1.tar.gz" "ls scipy-1.11.1"
  pkgutils run --transcript "conda build ." "conda index ."`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			opts := []shell.Option{shell.WithDir(dir), shell.WithLogger(loggerFromContext(cmd.Context()))}
			if !keepGoing {
				opts = append(opts, shell.StopOnError())
			}
			if interactive {
				opts = append(opts, shell.WithOutput(out, cmd.ErrOrStderr()))
			}

			results, err := shell.RunChain(cmd.Context(), args, opts...)
			if err != nil {
				return err
			}

			var failed *shell.Result
			for _, res := range results {
				fmt.Fprint(out, res.Stdout)
				fmt.Fprint(cmd.ErrOrStderr(), res.Stderr)
				if res.Failed() && failed == nil {
					failed = res
				}
			}

			if transcript {
				path, err := c.newFileWriter().WriteTempLines(transcriptLines(results), "run")
				if err != nil {
					return err
				}
				printInfo(cmd.ErrOrStderr(), "Transcript written to %s", path)
			}

			if failed != nil {
				printError(cmd.ErrOrStderr(), "%s exited with status %d", failed.Command, failed.ExitCode)
				return errors.New(errors.ErrCodeCommand, "%s exited with status %d", failed.Command, failed.ExitCode)
			}
			printSuccess(cmd.ErrOrStderr(), "Ran %d commands", len(results))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "starting working directory")
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "run every command even after a failure")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "stream output instead of capturing it, for commands that prompt")
	cmd.Flags().BoolVar(&transcript, "transcript", false, "write commands and their output to a temp file")

	return cmd
}

func transcriptLines(results []*shell.Result) []string {
	var lines []string
	for _, res := range results {
		lines = append(lines, fmt.Sprintf("$ %s (exit %d)", res.Command, res.ExitCode))
		for _, stream := range []string{res.Stdout, res.Stderr} {
			if s := strings.TrimRight(stream, "\n"); s != "" {
				lines = append(lines, s)
			}
		}
	}
	return lines
}
