package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePackageName validates a package name before it is interpolated
// into a registry URL. The API clients themselves never escape names, so
// the CLI runs this on user input first.
//
// The rules are conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "package name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "package name contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\", "?", "#"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "package name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// pythonPackageNameRegex matches valid Python package names (PEP 508).
var pythonPackageNameRegex = regexp.MustCompile(`^([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9._-]*[A-Za-z0-9])$`)

// ValidatePythonPackageName validates a Python package name per PEP 508.
func ValidatePythonPackageName(name string) error {
	if err := ValidatePackageName(name); err != nil {
		return err
	}

	if !pythonPackageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid Python package name: %q", name)
	}

	return nil
}

// ValidateVersion validates a release version string for use in a URL path.
func ValidateVersion(version string) error {
	if version == "" {
		return New(ErrCodeInvalidInput, "version cannot be empty")
	}
	if strings.ContainsAny(version, "/\\?# ") || strings.Contains(version, "..") {
		return New(ErrCodeInvalidInput, "invalid version: %q", version)
	}
	return nil
}
