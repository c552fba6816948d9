package repodata

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/pkgutils/pkg/checksum"
	"github.com/matzehuels/pkgutils/pkg/errors"
	"github.com/matzehuels/pkgutils/pkg/integrations"
)

// BaseURL is the root of the channels hosted by Anaconda.
const BaseURL = "https://repo.anaconda.com/pkgs"

// Client fetches channel indexes from repo.anaconda.com.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a repodata client.
func NewClient(opts ...integrations.Option) *Client {
	return &Client{
		Client:  integrations.NewClient(opts...),
		baseURL: BaseURL,
	}
}

// WithBaseURL returns a copy of c that sends requests to a channel mirror
// instead of the public host.
func (c *Client) WithBaseURL(base string) *Client {
	cp := *c
	cp.baseURL = strings.TrimSuffix(base, "/")
	return &cp
}

// URL returns the repodata.json location of channel and arch under base.
func URL(base string, channel Channel, arch Architecture) string {
	return fmt.Sprintf("%s/%s/%s/repodata.json", base, channel, arch)
}

type apiRepodata struct {
	Info          Metadata               `json:"info"`
	Packages      map[string]PackageData `json:"packages"`
	PackagesConda map[string]PackageData `json:"packages.conda"`
	Removed       []string               `json:"removed"`
	Version       int                    `json:"repodata_version"`
}

// Fetch downloads and parses the index of channel for arch. Combinations
// the channel does not publish fail with [errors.ErrCodeInvalidInput]
// before any request is made.
func (c *Client) Fetch(ctx context.Context, channel Channel, arch Architecture) (*Repodata, error) {
	if err := checkTarget(channel, arch); err != nil {
		return nil, err
	}

	body, err := c.GetValidated(ctx, URL(c.baseURL, channel, arch), repodataSchema)
	if err != nil {
		return nil, err
	}
	var data apiRepodata
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "failed to extract typed fields from JSON response")
	}

	packages := make(map[string]PackageData, len(data.Packages)+len(data.PackagesConda))
	maps.Copy(packages, data.Packages)
	maps.Copy(packages, data.PackagesConda)
	if err := checkPackages(packages); err != nil {
		return nil, err
	}

	removed := data.Removed
	if removed == nil {
		removed = []string{}
	}

	c.Logger().Debug("Parsed repodata", "channel", channel, "arch", arch, "packages", len(packages))
	return &Repodata{
		Info:            data.Info,
		Packages:        packages,
		Removed:         removed,
		RepodataVersion: data.Version,
	}, nil
}

func checkPackages(packages map[string]PackageData) error {
	for _, file := range slices.Sorted(maps.Keys(packages)) {
		pkg := packages[file]
		if !checksum.IsValidMD5(pkg.MD5) {
			return errors.New(errors.ErrCodeInvalidHash, "%s: MD5 hash is invalid: %s", file, pkg.MD5)
		}
		if !checksum.IsValidSHA256(pkg.SHA256) {
			return errors.New(errors.ErrCodeInvalidHash, "%s: SHA-256 hash is invalid: %s", file, pkg.SHA256)
		}
		if pkg.Name == "" {
			return errors.New(errors.ErrCodeEmptyField, "%s: `name` field is empty", file)
		}
		if pkg.Version == "" {
			return errors.New(errors.ErrCodeEmptyField, "%s: `version` field is empty", file)
		}
	}
	return nil
}
