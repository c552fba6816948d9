package pypi

import (
	"encoding/json"
	"maps"
	"math"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/pkgutils/pkg/checksum"
	"github.com/matzehuels/pkgutils/pkg/errors"
)

// sourceTag is the python_version value PyPI uses for source distributions.
const sourceTag = "source"

// apiResponse mirrors the subset of the JSON API read by this package.
// It is only decoded after the body has passed schema validation.
type apiResponse struct {
	Info     apiInfo                  `json:"info"`
	URLs     []apiArtifact            `json:"urls"`
	Releases map[string][]apiArtifact `json:"releases"`
}

type apiInfo struct {
	Description            *string        `json:"description"`
	DescriptionContentType *string        `json:"description_content_type"`
	DocsURL                *string        `json:"docs_url"`
	License                string         `json:"license"`
	Name                   string         `json:"name"`
	PackageURL             string         `json:"package_url"`
	ProjectURL             string         `json:"project_url"`
	ProjectURLs            map[string]any `json:"project_urls"`
	ReleaseURL             string         `json:"release_url"`
	RequiresPython         *string        `json:"requires_python"`
	Summary                *string        `json:"summary"`
	Version                string         `json:"version"`
}

type apiArtifact struct {
	Digests struct {
		MD5    string `json:"md5"`
		SHA256 string `json:"sha256"`
	} `json:"digests"`
	Filename      string      `json:"filename"`
	PythonVersion string      `json:"python_version"`
	Size          json.Number `json:"size"`
	UploadTime    string      `json:"upload_time_iso_8601"`
	URL           *string     `json:"url"`
}

func decodeResponse(body []byte) (*apiResponse, error) {
	var data apiResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "failed to extract typed fields from JSON response")
	}
	return &data, nil
}

// uploadTimeLayouts are tried in order. PyPI reports RFC 3339 with
// microseconds; the zone-less forms are read as UTC.
var uploadTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	time.DateOnly,
}

func parseUploadTime(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range uploadTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, errors.Wrap(errors.ErrCodeParse, firstErr, "failed to convert timestamp: %s", s)
}

func parseSize(n json.Number) (int64, error) {
	size, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		// Exponent forms such as 1e3 are integers to the schema.
		f, ferr := n.Float64()
		if ferr != nil || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
			return 0, errors.Wrap(errors.ErrCodeParse, err, "failed to convert size: %s", n)
		}
		size = int64(f)
	}
	if size < 0 {
		return 0, errors.New(errors.ErrCodeParse, "size is negative: %d", size)
	}
	return size, nil
}

// parseVersionMetadata converts one schema-valid artifact object.
func parseVersionMetadata(a apiArtifact) (VersionMetadata, error) {
	uploadTime, err := parseUploadTime(a.UploadTime)
	if err != nil {
		return VersionMetadata{}, err
	}
	size, err := parseSize(a.Size)
	if err != nil {
		return VersionMetadata{}, err
	}

	parsed := VersionMetadata{
		MD5:           a.Digests.MD5,
		SHA256:        a.Digests.SHA256,
		Filename:      a.Filename,
		PythonVersion: a.PythonVersion,
		Size:          size,
		UploadTime:    uploadTime,
		URL:           deref(a.URL),
	}

	if !checksum.IsValidMD5(parsed.MD5) {
		return VersionMetadata{}, errors.New(errors.ErrCodeInvalidHash, "VersionMetadata MD5 hash is invalid: %s", parsed.MD5)
	}
	if !checksum.IsValidSHA256(parsed.SHA256) {
		return VersionMetadata{}, errors.New(errors.ErrCodeInvalidHash, "VersionMetadata SHA-256 hash is invalid: %s", parsed.SHA256)
	}
	if err := checkEmpty("VersionMetadata.filename", parsed.Filename); err != nil {
		return VersionMetadata{}, err
	}
	if err := checkEmpty("VersionMetadata.python_version", parsed.PythonVersion); err != nil {
		return VersionMetadata{}, err
	}
	return parsed, nil
}

// parsePackageInfo converts the "info" object and picks the first source
// artifact out of "urls". A schema-valid response can still lack one.
func parsePackageInfo(data *apiResponse) (PackageInfo, error) {
	var (
		source VersionMetadata
		found  bool
	)
	for _, a := range data.URLs {
		if a.PythonVersion != sourceTag {
			continue
		}
		md, err := parseVersionMetadata(a)
		if err != nil {
			return PackageInfo{}, err
		}
		source, found = md, true
		break
	}
	if !found {
		return PackageInfo{}, errors.New(errors.ErrCodeNoSource, "source artifacts are not provided")
	}

	info := data.Info
	parsed := PackageInfo{
		Description:            deref(info.Description),
		DescriptionContentType: deref(info.DescriptionContentType),
		DocsURL:                deref(info.DocsURL),
		License:                info.License,
		Name:                   info.Name,
		PackageURL:             info.PackageURL,
		ProjectURL:             info.ProjectURL,
		HomepageURL:            projectURL(info.ProjectURLs, "Homepage"),
		SourceURL:              projectURL(info.ProjectURLs, "Source"),
		ReleaseURL:             info.ReleaseURL,
		RequiresPython:         deref(info.RequiresPython),
		Summary:                deref(info.Summary),
		Version:                info.Version,
		SourceMetadata:         source,
	}

	for _, f := range []struct{ name, value string }{
		{"PackageInfo.license", parsed.License},
		{"PackageInfo.name", parsed.Name},
		{"PackageInfo.package_url", parsed.PackageURL},
		{"PackageInfo.project_url", parsed.ProjectURL},
		{"PackageInfo.release_url", parsed.ReleaseURL},
		{"PackageInfo.version", parsed.Version},
	} {
		if err := checkEmpty(f.name, f.value); err != nil {
			return PackageInfo{}, err
		}
	}
	return parsed, nil
}

// parseReleases builds the version map for a full fetch. It is seeded with
// the latest version from info, and "releases" wins when both report the
// same version.
func parseReleases(info PackageInfo, releases map[string][]apiArtifact) (map[string]VersionMetadata, error) {
	result := map[string]VersionMetadata{
		info.Version: info.SourceMetadata,
	}

	for _, version := range slices.Sorted(maps.Keys(releases)) {
		md, err := selectSource(version, releases[version])
		if err != nil {
			return nil, err
		}
		result[version] = md
	}

	if len(result) == 0 {
		return nil, errors.New(errors.ErrCodeNoSource, "API did not return any source information")
	}
	return result, nil
}

// selectSource picks the canonical source artifact of one release.
// Source code is the same whatever the archive format, so when a release
// ships several sdists a tarball is preferred; otherwise the first one in
// upstream order is used.
func selectSource(version string, artifacts []apiArtifact) (VersionMetadata, error) {
	var sources []VersionMetadata
	for _, a := range artifacts {
		if a.PythonVersion != sourceTag {
			continue
		}
		md, err := parseVersionMetadata(a)
		if err != nil {
			return VersionMetadata{}, err
		}
		sources = append(sources, md)
	}

	switch len(sources) {
	case 0:
		return VersionMetadata{}, errors.New(errors.ErrCodeNoSource, "no source artifacts for release %s", version)
	case 1:
		return sources[0], nil
	}
	for _, md := range sources {
		if IsTarball(md.Filename) {
			return md, nil
		}
	}
	return sources[0], nil
}

// IsTarball reports whether filename names a tar archive, compressed or not:
// "x.tar", "x.tar.gz", "x.tar.bz2", "x.tgz" and so on. A ".tar" elsewhere in
// the name, as in "tarot-1.0.zip" or "x.tarball.zip", does not count.
func IsTarball(filename string) bool {
	name := strings.ToLower(path.Base(filename))
	if strings.HasSuffix(name, ".tgz") || strings.HasSuffix(name, ".tar") {
		return true
	}
	i := strings.LastIndex(name, ".tar.")
	if i < 0 {
		return false
	}
	// Exactly one compression extension may follow.
	return !strings.Contains(name[i+len(".tar."):], ".")
}

func projectURL(urls map[string]any, key string) string {
	if s, ok := urls[key].(string); ok {
		return s
	}
	return ""
}

func checkEmpty(field, value string) error {
	if value == "" {
		return errors.New(errors.ErrCodeEmptyField, "`%s` field is empty", field)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
