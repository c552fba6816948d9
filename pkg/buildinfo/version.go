// Package buildinfo holds the version stamped into pkgutils at build time.
//
// Variables are set via ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/pkgutils/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/pkgutils/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)" \
//	    ./cmd/pkgutils
package buildinfo

import "fmt"

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Template is the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}

// UserAgent identifies pkgutils to the registries it queries.
func UserAgent() string {
	return fmt.Sprintf("pkgutils/%s (+https://github.com/matzehuels/pkgutils)", Version)
}
