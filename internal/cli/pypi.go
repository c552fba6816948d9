package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgutils/pkg/checksum"
	"github.com/matzehuels/pkgutils/pkg/errors"
	"github.com/matzehuels/pkgutils/pkg/integrations/pypi"
)

// pypiCommand creates the pypi command group.
func (c *CLI) pypiCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pypi",
		Short: "Inspect package metadata from the PyPI JSON API",
	}

	cmd.AddCommand(c.pypiInfoCommand())
	cmd.AddCommand(c.pypiReleasesCommand())
	cmd.AddCommand(c.pypiVerifyCommand())

	return cmd
}

// pypiInfoCommand creates the "pypi info" subcommand.
func (c *CLI) pypiInfoCommand() *cobra.Command {
	var (
		version string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "info <package>...",
		Short: "Show package info and its source artifact",
		Example: `  pkgutils pypi info scipy
  pkgutils pypi info scipy --version 1.11.1 --json
  pkgutils pypi info numpy pandas scipy`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validatePackageArgs(args, version); err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())

			prog := newProgress(logger)
			results, err := fetchAll(cmd.Context(), c.newPyPIClient(logger), args, version)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Fetched %d package(s)", len(results)))

			out := cmd.OutOrStdout()
			if asJSON {
				infos := make([]pypi.PackageInfo, len(results))
				for i, md := range results {
					infos[i] = md.Info
				}
				if len(infos) == 1 {
					return printJSON(out, infos[0])
				}
				return printJSON(out, infos)
			}
			for i, md := range results {
				if i > 0 {
					fmt.Fprintln(out)
				}
				printPackageInfo(out, md.Info)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "fetch a specific version instead of the latest")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")

	return cmd
}

// pypiReleasesCommand creates the "pypi releases" subcommand.
func (c *CLI) pypiReleasesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "releases <package>",
		Short: "List the source artifact chosen for every release",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validatePackageArgs(args, ""); err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())

			prog := newProgress(logger)
			md, err := c.newPyPIClient(logger).FetchPackage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Fetched %s", md.Info.Name))

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, md.Releases)
			}

			printTitle(out, fmt.Sprintf("%s (%d releases)", md.Info.Name, len(md.Releases)))
			for _, version := range sortedReleases(md.Releases) {
				a := md.Releases[version]
				printRow(out, version, a.Filename, formatSize(a.Size), a.UploadTime.Format(time.DateOnly))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")

	return cmd
}

// pypiVerifyCommand creates the "pypi verify" subcommand.
func (c *CLI) pypiVerifyCommand() *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:     "verify <package> <file>",
		Short:   "Check a downloaded sdist against the digests PyPI publishes",
		Example: `  pkgutils pypi verify scipy ./scipy-1.11.1.tar.gz --version 1.11.1`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validatePackageArgs(args[:1], version); err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())

			md, err := fetchOne(cmd.Context(), c.newPyPIClient(logger), args[0], version)
			if err != nil {
				return err
			}

			f, err := os.Open(args[1])
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to open %s", args[1])
			}
			defer f.Close()

			sums, err := checksum.Calculate(f)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to hash %s", args[1])
			}
			return reportVerification(cmd.OutOrStdout(), md.Info.SourceMetadata, sums)
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "verify against a specific version instead of the latest")

	return cmd
}

func validatePackageArgs(names []string, version string) error {
	for _, name := range names {
		if err := errors.ValidatePythonPackageName(name); err != nil {
			return err
		}
	}
	if version != "" {
		return errors.ValidateVersion(version)
	}
	return nil
}

func fetchOne(ctx context.Context, client *pypi.Client, name, version string) (*pypi.PackageMetadata, error) {
	if version != "" {
		return client.FetchPackageVersion(ctx, name, version)
	}
	return client.FetchPackage(ctx, name)
}

// fetchAll fetches the packages one after another in argument order and
// stops at the first failure.
func fetchAll(ctx context.Context, client *pypi.Client, names []string, version string) ([]*pypi.PackageMetadata, error) {
	results := make([]*pypi.PackageMetadata, 0, len(names))
	for _, name := range names {
		md, err := fetchOne(ctx, client, name, version)
		if err != nil {
			return nil, err
		}
		results = append(results, md)
	}
	return results, nil
}

func printPackageInfo(w io.Writer, info pypi.PackageInfo) {
	printTitle(w, info.Name+" "+info.Version)
	if info.Summary != "" {
		printDetail(w, "%s", info.Summary)
	}
	printKeyValue(w, "License", info.License)
	printKeyValue(w, "Python", info.RequiresPython)
	printKeyValue(w, "Homepage", info.HomepageURL)
	printKeyValue(w, "Source", info.SourceURL)
	printKeyValue(w, "Docs", info.DocsURL)
	printKeyValue(w, "Release", info.ReleaseURL)

	src := info.SourceMetadata
	printKeyValue(w, "Sdist", src.Filename)
	printKeyValue(w, "Size", formatSize(src.Size))
	printKeyValue(w, "Uploaded", src.UploadTime.UTC().Format(time.RFC3339))
	printKeyValue(w, "MD5", src.MD5)
	printKeyValue(w, "SHA-256", src.SHA256)
	printKeyValue(w, "URL", src.URL)
}

func reportVerification(w io.Writer, want pypi.VersionMetadata, got *checksum.Sums) error {
	var mismatches []string
	if got.MD5 != want.MD5 {
		mismatches = append(mismatches, "MD5")
	}
	if got.SHA256 != want.SHA256 {
		mismatches = append(mismatches, "SHA-256")
	}
	if got.Size != want.Size {
		printWarning(w, "size is %s, PyPI reports %s", formatSize(got.Size), formatSize(want.Size))
	}

	if len(mismatches) > 0 {
		printError(w, "%s mismatch for %s", strings.Join(mismatches, " and "), want.Filename)
		printDetail(w, "expected sha256 %s", want.SHA256)
		printDetail(w, "actual   sha256 %s", got.SHA256)
		return errors.New(errors.ErrCodeInvalidHash, "checksum mismatch for %s", want.Filename)
	}
	printSuccess(w, "%s matches the published digests", want.Filename)
	return nil
}

// sortedReleases orders versions by upload time, oldest first.
func sortedReleases(releases map[string]pypi.VersionMetadata) []string {
	versions := make([]string, 0, len(releases))
	for v := range releases {
		versions = append(versions, v)
	}
	slices.SortFunc(versions, func(a, b string) int {
		if c := releases[a].UploadTime.Compare(releases[b].UploadTime); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return versions
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
