// Package shell runs shell commands one at a time, alone or as a chain.
//
// A chain runs its commands in order. An entry of the form "cd <dir>" is not
// executed. It changes the working directory of the commands after it and
// is recorded as a successful step, so every input command has a result.
//
//	results, err := shell.RunChain(ctx, []string{"cd /tmp", "ls"}, shell.StopOnError())
package shell

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pkgutils/pkg/errors"
)

// Result is the outcome of a single command.
type Result struct {
	Command  string
	Dir      string
	Stdout   string
	Stderr   string
	ExitCode int
}

// Failed reports whether the command exited with a non-zero status.
func (r *Result) Failed() bool { return r.ExitCode != 0 }

// Option configures Run and RunChain.
type Option func(*options)

type options struct {
	dir         string
	stdout      io.Writer
	stderr      io.Writer
	stopOnError bool
	logger      *log.Logger
}

// WithDir sets the starting working directory. A later "cd" in a chain
// replaces it.
func WithDir(dir string) Option {
	return func(o *options) { o.dir = dir }
}

// WithOutput streams output to stdout and stderr instead of capturing it.
// Use it for commands that prompt for input.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(o *options) { o.stdout, o.stderr = stdout, stderr }
}

// StopOnError ends a chain at the first command that exits non-zero.
func StopOnError() Option {
	return func(o *options) { o.stopOnError = true }
}

// WithLogger sets the logger command traces are written to.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts []Option) *options {
	o := &options{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return o
}

// Run executes cmd with sh -c. A non-zero exit is reported in the result,
// not as an error. Errors mean the command could not be run at all, or ctx
// ended while it ran.
func Run(ctx context.Context, cmd string, opts ...Option) (*Result, error) {
	return run(ctx, cmd, newOptions(opts))
}

func run(ctx context.Context, cmd string, o *options) (*Result, error) {
	c := exec.CommandContext(ctx, "sh", "-c", cmd) // #nosec G204
	c.Dir = o.dir

	var stdout, stderr bytes.Buffer
	c.Stdout, c.Stderr = &stdout, &stderr
	if o.stdout != nil {
		c.Stdout, c.Stderr = o.stdout, o.stderr
	}

	res := &Result{Command: cmd, Dir: o.dir}
	err := c.Run()
	res.Stdout, res.Stderr = stdout.String(), stderr.String()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, errors.Wrap(errors.ErrCodeCommand, ctxErr, "command interrupted: %s", cmd)
	}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case stderrors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		return res, errors.Wrap(errors.ErrCodeCommand, err, "failed to run: %s", cmd)
	}

	o.logger.Debug("Executed command", "cmd", cmd, "dir", o.dir, "exit", res.ExitCode)
	if res.Stdout != "" {
		o.logger.Debug("Command stdout", "cmd", cmd, "out", res.Stdout)
	}
	if res.Stderr != "" {
		o.logger.Debug("Command stderr", "cmd", cmd, "out", res.Stderr)
	}
	return res, nil
}

// RunChain executes cmds in order and returns one result per command run.
// With [StopOnError] the last result is the command that failed.
func RunChain(ctx context.Context, cmds []string, opts ...Option) ([]*Result, error) {
	o := newOptions(opts)

	results := make([]*Result, 0, len(cmds))
	for _, cmd := range cmds {
		if dir, ok := strings.CutPrefix(cmd, "cd "); ok {
			o.dir = strings.TrimSpace(dir)
			o.logger.Debug("Changed directory", "dir", o.dir)
			results = append(results, &Result{Command: cmd, Dir: o.dir})
			continue
		}

		res, err := run(ctx, cmd, o)
		if err != nil {
			return append(results, res), err
		}
		results = append(results, res)
		if o.stopOnError && res.Failed() {
			o.logger.Error("Command in chain failed", "cmd", cmd, "exit", res.ExitCode)
			break
		}
	}
	return results, nil
}
