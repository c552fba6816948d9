// Package integrations provides HTTP clients for package registry and issue
// tracker APIs.
//
// # Overview
//
// Each upstream has its own subpackage:
//
//   - [pypi]: Python Package Index release metadata
//   - [repodata]: conda channel repodata.json indexes
//   - [jira]: shared, authenticated JIRA client
//
// # Request Contract
//
// Registry clients share [Client], which implements one request shape:
//
//	body, err := client.GetValidated(ctx, url, validator)
//
// The request fails unless the transport succeeds, the status is 200, the
// content type is exactly application/json, the body parses as JSON, and
// the JSON matches the schema. Only then do the subpackages extract typed
// records from the body. Requests are bounded by [HTTPTimeout] and are
// never retried or cached.
//
// All failures are *errors.Error values from
// github.com/matzehuels/pkgutils/pkg/errors.
//
// [pypi]: github.com/matzehuels/pkgutils/pkg/integrations/pypi
// [repodata]: github.com/matzehuels/pkgutils/pkg/integrations/repodata
// [jira]: github.com/matzehuels/pkgutils/pkg/integrations/jira
package integrations
