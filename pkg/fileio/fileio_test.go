package fileio

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/matzehuels/pkgutils/pkg/errors"
)

func TestWriteFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := New(fs)

	if err := w.WriteFile("/out/report.txt", "first"); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	if err := w.WriteFile("/out/report.txt", "second"); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	got, err := afero.ReadFile(fs, "/out/report.txt")
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("content = %q, want %q", got, "second")
	}
}

func TestWriteLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := New(fs)

	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"several", []string{"a", "b", "c"}, "a\nb\nc\n"},
		{"single", []string{"only"}, "only\n"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := "/" + tt.name + ".txt"
			if err := w.WriteLines(path, tt.lines); err != nil {
				t.Fatalf("WriteLines() error: %v", err)
			}
			got, _ := afero.ReadFile(fs, path)
			if string(got) != tt.want {
				t.Errorf("content = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteTempFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := New(fs)

	tests := []struct {
		tag        string
		wantPrefix string
	}{
		{"", "pkgutils-"},
		{"repodata-main", "pkgutils-repodata-main-"},
	}

	for _, tt := range tests {
		t.Run(tt.wantPrefix, func(t *testing.T) {
			path, err := w.WriteTempFile("payload", tt.tag)
			if err != nil {
				t.Fatalf("WriteTempFile() error: %v", err)
			}
			base := filepath.Base(path)
			if !strings.HasPrefix(base, tt.wantPrefix) || !strings.HasSuffix(base, ".out") {
				t.Errorf("name = %q, want %q prefix and .out suffix", base, tt.wantPrefix)
			}
			if filepath.Dir(path) != filepath.Clean(w.tempDir) {
				t.Errorf("dir = %q, want %q", filepath.Dir(path), w.tempDir)
			}
			got, _ := afero.ReadFile(fs, path)
			if string(got) != "payload" {
				t.Errorf("content = %q, want %q", got, "payload")
			}
		})
	}
}

func TestWriteTempFileUnique(t *testing.T) {
	w := New(afero.NewMemMapFs())
	first, err := w.WriteTempFile("a", "dup")
	if err != nil {
		t.Fatal(err)
	}
	second, err := w.WriteTempFile("b", "dup")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Errorf("both writes used %q", first)
	}
}

func TestWriteTempLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	path, err := New(fs).WriteTempLines([]string{"x", "y"}, "")
	if err != nil {
		t.Fatalf("WriteTempLines() error: %v", err)
	}
	got, _ := afero.ReadFile(fs, path)
	if string(got) != "x\ny\n" {
		t.Errorf("content = %q, want %q", got, "x\ny\n")
	}
}

func TestWriteReadOnly(t *testing.T) {
	w := New(afero.NewReadOnlyFs(afero.NewMemMapFs()))

	if err := w.WriteFile("/report.txt", "x"); !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("WriteFile() code = %v, want %v", errors.GetCode(err), errors.ErrCodeIO)
	}
	if _, err := w.WriteTempFile("x", ""); !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("WriteTempFile() code = %v, want %v", errors.GetCode(err), errors.ErrCodeIO)
	}
}

func TestNewNilFilesystem(t *testing.T) {
	w := New(nil)
	if _, ok := w.fs.(*afero.OsFs); !ok {
		t.Errorf("fs = %T, want *afero.OsFs", w.fs)
	}
}
