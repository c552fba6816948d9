package pypi

import "time"

// VersionMetadata describes one release artifact, taken from an entry of
// the "urls" array or of a "releases" version list. Only the fields the
// package tooling needs are kept; the "digests" object is flattened into
// one field per algorithm.
//
// A VersionMetadata produced by this package always has well-formed hashes,
// a non-empty Filename and a non-empty PythonVersion. URL is empty when
// upstream reports null.
type VersionMetadata struct {
	MD5           string    `json:"md5"`            // 32 lowercase hex digits
	SHA256        string    `json:"sha256"`         // 64 lowercase hex digits
	Filename      string    `json:"filename"`       // e.g. "scipy-1.11.1.tar.gz"
	PythonVersion string    `json:"python_version"` // "source" for sdists, e.g. "cp311" for wheels
	Size          int64     `json:"size"`           // Size in bytes, never negative
	UploadTime    time.Time `json:"upload_time"`    // Parsed upload_time_iso_8601
	URL           string    `json:"url"`            // Download URL (may be empty)
}

// PackageInfo holds the "info" object shared by both endpoints, flattened,
// together with the source artifact of the reported version.
//
// Null descriptive fields become empty strings, never nil. License, Name,
// PackageURL, ProjectURL, ReleaseURL and Version are never empty in a
// PackageInfo returned by this package.
type PackageInfo struct {
	Description            string          `json:"description"`
	DescriptionContentType string          `json:"description_content_type"`
	DocsURL                string          `json:"docs_url"`
	License                string          `json:"license"`
	Name                   string          `json:"name"`
	PackageURL             string          `json:"package_url"`
	ProjectURL             string          `json:"project_url"`
	HomepageURL            string          `json:"homepage_url"` // project_urls["Homepage"], may be empty
	SourceURL              string          `json:"source_url"`   // project_urls["Source"], may be empty
	ReleaseURL             string          `json:"release_url"`
	RequiresPython         string          `json:"requires_python"` // May be empty
	Summary                string          `json:"summary"`
	Version                string          `json:"version"`
	SourceMetadata         VersionMetadata `json:"source_metadata"`
}

// PackageMetadata normalizes the output of both endpoints: the package info
// plus the chosen source artifact per known release, keyed by version.
type PackageMetadata struct {
	Info     PackageInfo                `json:"info"`
	Releases map[string]VersionMetadata `json:"releases"`
}
