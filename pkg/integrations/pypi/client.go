package pypi

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/pkgutils/pkg/integrations"
)

// BaseURL is the root that every PyPI JSON endpoint hangs off.
const BaseURL = "https://pypi.python.org/pypi"

// Client fetches, validates and normalizes package metadata from the PyPI
// JSON API. Requests are synchronous and bounded by
// [integrations.HTTPTimeout]; nothing is cached or retried.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a PyPI client. Options configure the shared HTTP layer,
// for example [integrations.WithLogger].
func NewClient(opts ...integrations.Option) *Client {
	return &Client{
		Client:  integrations.NewClient(opts...),
		baseURL: BaseURL,
	}
}

// WithBaseURL returns a copy of c that sends requests to an index mirror
// instead of the public host.
func (c *Client) WithBaseURL(base string) *Client {
	cp := *c
	cp.baseURL = strings.TrimSuffix(base, "/")
	return &cp
}

// PackageURL returns the endpoint for the latest metadata of pkg, including
// its full release history. The name is interpolated as is.
func PackageURL(base, pkg string) string {
	return fmt.Sprintf("%s/%s/json", base, pkg)
}

// PackageVersionURL returns the endpoint for the metadata of pkg at version.
// Neither argument is escaped.
func PackageVersionURL(base, pkg, version string) string {
	return fmt.Sprintf("%s/%s/%s/json", base, pkg, version)
}

// FetchPackage retrieves the latest metadata of pkg together with the source
// artifact chosen for every release in its history.
//
// Returns an *errors.Error when the request fails, the response does not
// match the schema, or any release lacks a usable source artifact.
// The returned PackageMetadata is never nil if err is nil.
func (c *Client) FetchPackage(ctx context.Context, pkg string) (*PackageMetadata, error) {
	body, err := c.GetValidated(ctx, PackageURL(c.baseURL, pkg), fullSchema)
	if err != nil {
		return nil, err
	}
	data, err := decodeResponse(body)
	if err != nil {
		return nil, err
	}

	info, err := parsePackageInfo(data)
	if err != nil {
		return nil, err
	}
	releases, err := parseReleases(info, data.Releases)
	if err != nil {
		return nil, err
	}

	c.Logger().Debug("Parsed package metadata", "package", info.Name, "latest", info.Version, "releases", len(releases))
	return &PackageMetadata{Info: info, Releases: releases}, nil
}

// FetchPackageVersion retrieves the metadata of pkg at a specific version.
// The version endpoint has no release history, so Releases holds exactly
// the one requested version.
func (c *Client) FetchPackageVersion(ctx context.Context, pkg, version string) (*PackageMetadata, error) {
	body, err := c.GetValidated(ctx, PackageVersionURL(c.baseURL, pkg, version), versionSchema)
	if err != nil {
		return nil, err
	}
	data, err := decodeResponse(body)
	if err != nil {
		return nil, err
	}

	info, err := parsePackageInfo(data)
	if err != nil {
		return nil, err
	}

	return &PackageMetadata{
		Info: info,
		Releases: map[string]VersionMetadata{
			info.Version: info.SourceMetadata,
		},
	}, nil
}
