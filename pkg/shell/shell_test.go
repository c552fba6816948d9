package shell

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pkgutils/pkg/errors"
)

func TestRun(t *testing.T) {
	tests := []struct {
		cmd        string
		wantStdout string
		wantStderr string
		wantExit   int
	}{
		{"echo hello", "hello\n", "", 0},
		{"echo oops >&2; exit 3", "", "oops\n", 3},
		{"false", "", "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			res, err := Run(context.Background(), tt.cmd)
			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			if res.Stdout != tt.wantStdout || res.Stderr != tt.wantStderr {
				t.Errorf("output = %q/%q, want %q/%q", res.Stdout, res.Stderr, tt.wantStdout, tt.wantStderr)
			}
			if res.ExitCode != tt.wantExit || res.Failed() != (tt.wantExit != 0) {
				t.Errorf("ExitCode = %d, Failed = %v, want %d", res.ExitCode, res.Failed(), tt.wantExit)
			}
		})
	}
}

func TestRunDir(t *testing.T) {
	dir := t.TempDir()
	res, err := Run(context.Background(), "pwd", WithDir(dir))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got := resolve(t, strings.TrimSpace(res.Stdout)); got != resolve(t, dir) {
		t.Errorf("pwd = %q, want %q", got, dir)
	}
	if res.Dir != dir {
		t.Errorf("Dir = %q, want %q", res.Dir, dir)
	}
}

func TestRunMissingDir(t *testing.T) {
	_, err := Run(context.Background(), "true", WithDir(filepath.Join(t.TempDir(), "missing")))
	if !errors.Is(err, errors.ErrCodeCommand) {
		t.Errorf("Run() code = %v, want %v", errors.GetCode(err), errors.ErrCodeCommand)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, "sleep 5")
	if !errors.Is(err, errors.ErrCodeCommand) {
		t.Fatalf("Run() code = %v, want %v", errors.GetCode(err), errors.ErrCodeCommand)
	}
	if !strings.Contains(err.Error(), context.Canceled.Error()) {
		t.Errorf("Run() error = %v, want cause %v", err, context.Canceled)
	}
}

func TestRunWithOutput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	res, err := Run(context.Background(), "echo out; echo err >&2", WithOutput(&stdout, &stderr))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if stdout.String() != "out\n" || stderr.String() != "err\n" {
		t.Errorf("streamed = %q/%q, want %q/%q", stdout.String(), stderr.String(), "out\n", "err\n")
	}
	if res.Stdout != "" || res.Stderr != "" {
		t.Errorf("captured = %q/%q, want nothing", res.Stdout, res.Stderr)
	}
}

func TestRunChainChangesDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	results, err := RunChain(context.Background(), []string{
		"cd " + dir,
		"touch marker",
		"cd " + filepath.Join(dir, "sub"),
		"pwd",
	})
	if err != nil {
		t.Fatalf("RunChain() error: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("len(results) = %d, want 4", len(results))
	}

	if results[0].Command != "cd "+dir || results[0].Failed() || results[0].Stdout != "" {
		t.Errorf("cd result = %+v, want a successful empty step", results[0])
	}
	if _, err := os.Stat(filepath.Join(dir, "marker")); err != nil {
		t.Errorf("marker not created in %s: %v", dir, err)
	}
	if got := resolve(t, strings.TrimSpace(results[3].Stdout)); got != resolve(t, filepath.Join(dir, "sub")) {
		t.Errorf("pwd = %q, want %q", got, filepath.Join(dir, "sub"))
	}
}

func TestRunChainStopOnError(t *testing.T) {
	cmds := []string{"true", "exit 2", "echo after"}

	tests := []struct {
		name     string
		opts     []Option
		wantLen  int
		wantLast string
	}{
		{"continue", nil, 3, "echo after"},
		{"stop", []Option{StopOnError()}, 2, "exit 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := RunChain(context.Background(), cmds, tt.opts...)
			if err != nil {
				t.Fatalf("RunChain() error: %v", err)
			}
			if len(results) != tt.wantLen {
				t.Fatalf("len(results) = %d, want %d", len(results), tt.wantLen)
			}
			if last := results[len(results)-1]; last.Command != tt.wantLast {
				t.Errorf("last command = %q, want %q", last.Command, tt.wantLast)
			}
			if results[1].ExitCode != 2 {
				t.Errorf("ExitCode = %d, want 2", results[1].ExitCode)
			}
		})
	}
}

func TestRunChainRunError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	results, err := RunChain(context.Background(), []string{"cd " + missing, "true", "echo never"})
	if !errors.Is(err, errors.ErrCodeCommand) {
		t.Fatalf("RunChain() code = %v, want %v", errors.GetCode(err), errors.ErrCodeCommand)
	}
	if len(results) != 2 {
		t.Errorf("len(results) = %d, want 2", len(results))
	}
}

func TestRunChainLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	if _, err := RunChain(context.Background(), []string{"cd /", "echo hi"}, WithLogger(logger)); err != nil {
		t.Fatalf("RunChain() error: %v", err)
	}
	for _, want := range []string{"Changed directory", "Executed command", "Command stdout"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log missing %q:\n%s", want, buf.String())
		}
	}
}

// resolve follows symlinks such as /tmp on macOS so paths compare equal.
func resolve(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("EvalSymlinks(%q): %v", path, err)
	}
	return resolved
}
