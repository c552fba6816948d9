// Package pkg holds the pkgutils libraries.
//
// # Layout
//
//   - [errors]: the single coded error type returned by every client
//   - [integrations]: shared GET, content-type and schema checks
//   - [integrations/pypi]: PyPI JSON API metadata with source-artifact selection
//   - [integrations/repodata]: conda channel indexes from repo.anaconda.com
//   - [integrations/jira]: a lazily authenticated, process-wide JIRA client
//   - [config]: dotted-key TOML settings with environment overrides
//   - [schema]: JSON Schema compilation and validation
//   - [checksum]: MD5 and SHA-256 format checks and streaming digests
//   - [fileio]: text and temp-file writing
//   - [shell]: shell commands and cd-aware command chains
//   - [observability]: hooks for watching registry traffic
//   - [buildinfo]: version information stamped at build time
//
// # Data flow
//
//	name, version
//	     ↓
//	[integrations/pypi] builds the endpoint URL
//	     ↓
//	[integrations] GET → status, content-type, JSON syntax → [schema]
//	     ↓
//	[integrations/pypi] typed extraction, hash checks, source selection
//	     ↓
//	PackageMetadata
package pkg
