// Package fileio writes reports and downloaded indexes to disk.
//
// Temp files are real files that outlive the process. Their names start
// with [TempFilePrefix] so leftovers can be traced back to pkgutils.
//
//	w := fileio.New(nil) // operating system filesystem
//	path, err := w.WriteTempFile(body, "repodata-main-linux-64")
package fileio

import (
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/matzehuels/pkgutils/pkg/errors"
)

// TempFilePrefix starts the name of every temp file written by [Writer].
const TempFilePrefix = "pkgutils-"

// Writer writes text files to a filesystem.
type Writer struct {
	fs      afero.Fs
	tempDir string
}

// New returns a Writer backed by fs. A nil fs means the operating system
// filesystem.
func New(fs afero.Fs) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Writer{fs: fs, tempDir: os.TempDir()}
}

// WriteFile replaces the contents of path with content.
func (w *Writer) WriteFile(path, content string) error {
	if err := afero.WriteFile(w.fs, path, []byte(content), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "failed to write %s", path)
	}
	return nil
}

// WriteLines writes each line to path followed by a newline.
func (w *Writer) WriteLines(path string, lines []string) error {
	return w.WriteFile(path, joinLines(lines))
}

// WriteTempFile writes content to a new file in the temp directory and
// returns its path. The tag, when set, becomes part of the file name.
// The caller owns the file and removes it.
func (w *Writer) WriteTempFile(content, tag string) (string, error) {
	pattern := TempFilePrefix
	if tag != "" {
		pattern += tag + "-"
	}
	f, err := afero.TempFile(w.fs, w.tempDir, pattern+"*.out")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "failed to create temp file")
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "failed to write %s", f.Name())
	}
	return f.Name(), nil
}

// WriteTempLines is WriteTempFile for line-oriented content.
func (w *Writer) WriteTempLines(lines []string, tag string) (string, error) {
	return w.WriteTempFile(joinLines(lines), tag)
}

func joinLines(lines []string) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
