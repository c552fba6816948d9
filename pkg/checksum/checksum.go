// Package checksum validates and computes the content digests published by
// package indexes.
package checksum

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"regexp"
)

// Kind names a digest algorithm.
type Kind string

const (
	MD5    Kind = "md5"
	SHA256 Kind = "sha256"
)

var (
	md5RE    = regexp.MustCompile(`^[a-f0-9]{32}$`)
	sha256RE = regexp.MustCompile(`^[a-f0-9]{64}$`)
)

// IsValidMD5 reports whether s is exactly 32 lowercase hex digits.
func IsValidMD5(s string) bool { return md5RE.MatchString(s) }

// IsValidSHA256 reports whether s is exactly 64 lowercase hex digits.
func IsValidSHA256(s string) bool { return sha256RE.MatchString(s) }

// IsValid reports whether s is a well-formed digest of the given kind.
// Unknown kinds are never valid.
func IsValid(s string, kind Kind) bool {
	switch kind {
	case MD5:
		return IsValidMD5(s)
	case SHA256:
		return IsValidSHA256(s)
	default:
		return false
	}
}

// Sums holds the digests of a stream computed in a single pass.
type Sums struct {
	MD5    string
	SHA256 string
	Size   int64
}

// Calculate streams r through every supported hash at once.
func Calculate(r io.Reader) (*Sums, error) {
	md5Hash := md5.New()
	sha256Hash := sha256.New()

	n, err := io.Copy(io.MultiWriter(md5Hash, sha256Hash), r)
	if err != nil {
		return nil, err
	}

	return &Sums{
		MD5:    hex.EncodeToString(md5Hash.Sum(nil)),
		SHA256: hex.EncodeToString(sha256Hash.Sum(nil)),
		Size:   n,
	}, nil
}
