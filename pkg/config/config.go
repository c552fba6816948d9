// Package config reads pkgutils settings from a TOML file.
//
// Keys are dotted paths into nested tables, so
//
//	[user_info]
//	email = "dev@example.com"
//
//	[token]
//	jira = "..."
//
// provides "user_info.email" and "token.jira". Every key may be overridden
// from the environment: "token.jira" is read from PKGUTILS_TOKEN_JIRA
// first.
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pkgutils/pkg/errors"
)

const (
	appName   = "pkgutils"
	fileName  = "config.toml"
	envPrefix = "PKGUTILS_"
)

// Store is a read-only view of a loaded configuration file.
type Store struct {
	path string
	data map[string]any
}

// DefaultPath returns $XDG_CONFIG_HOME/pkgutils/config.toml, falling back to
// ~/.config/pkgutils/config.toml.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeConfig, err, "failed to locate home directory")
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the TOML file at path. A missing file is not an error: the
// store is empty and only environment overrides resolve.
func Load(path string) (*Store, error) {
	s := &Store{path: path, data: map[string]any{}}

	raw, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, err, "failed to read config file %s", path)
	}
	if _, err := toml.Decode(string(raw), &s.data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, err, "failed to parse config file %s", path)
	}
	return s, nil
}

// Path returns the file the store was loaded from.
func (s *Store) Path() string { return s.path }

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	r := strings.NewReplacer(".", "_", "-", "_")
	return envPrefix + strings.ToUpper(r.Replace(key))
}

// Get returns the string value at the dotted key. Missing keys, empty keys,
// and values that are not strings fail with [errors.ErrCodeConfig].
func (s *Store) Get(key string) (string, error) {
	if key == "" {
		return "", errors.New(errors.ErrCodeConfig, "config key is empty")
	}
	if v, ok := os.LookupEnv(EnvName(key)); ok {
		return v, nil
	}

	var node any = s.data
	for _, part := range strings.Split(key, ".") {
		table, ok := node.(map[string]any)
		if !ok {
			return "", errors.New(errors.ErrCodeConfig, "config key %s is not set", key)
		}
		if node, ok = table[part]; !ok {
			return "", errors.New(errors.ErrCodeConfig, "config key %s is not set", key)
		}
	}

	v, ok := node.(string)
	if !ok {
		return "", errors.New(errors.ErrCodeConfig, "config key %s is a %s, not a string", key, kind(node))
	}
	return v, nil
}

func kind(v any) string {
	switch v.(type) {
	case map[string]any:
		return "table"
	case []any, []map[string]any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
