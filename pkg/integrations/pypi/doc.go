// Package pypi fetches and normalizes release metadata from the Python
// Package Index JSON API.
//
// # Overview
//
// Two endpoints are supported:
//
//	GET https://pypi.python.org/pypi/{package}/json
//	GET https://pypi.python.org/pypi/{package}/{version}/json
//
// The first reports the latest version plus the full release history; the
// second reports one version only. [Client.FetchPackage] and
// [Client.FetchPackageVersion] normalize both into a [PackageMetadata].
//
// # Usage
//
//	client := pypi.NewClient()
//
//	meta, err := client.FetchPackage(ctx, "scipy")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(meta.Info.Name, meta.Info.Version)
//	fmt.Println("Source:", meta.Info.SourceMetadata.Filename)
//
// # Validation
//
// Responses are handled in two phases. The body is first validated against a
// JSON schema describing the minimum shape of the endpoint. Only then are
// fields extracted into typed records, and that step fails closed: an
// unparsable timestamp or size, a malformed MD5 or SHA-256 digest, or an
// empty required field rejects the whole response.
//
// # Source Artifacts
//
// Of all the files published for a version, only the source distribution
// (python_version "source") is kept. For the package info, the first source
// entry in "urls" is used, and a response without one is rejected. For each
// release in the history, a tarball is preferred when several source files
// exist (see [IsTarball]), falling back to the first one listed.
package pypi
