// Package schema compiles JSON schemas and validates JSON documents against
// them. It is the structural first phase of response handling: callers
// validate a body here and only then extract typed fields from it.
package schema

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Document is a JSON schema expressed as nested Go maps and slices.
type Document = map[string]any

// Result holds the validation result.
type Result struct {
	Valid  bool
	Errors []ValidationError
}

// ValidationError represents a single validation error.
type ValidationError struct {
	Path    string
	Message string
}

// String formats the error as "path: message".
func (e ValidationError) String() string {
	return e.Path + ": " + e.Message
}

// Summary joins every error into one line, or returns "" for a valid result.
func (r *Result) Summary() string {
	if r == nil || r.Valid {
		return ""
	}
	parts := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		parts[i] = e.String()
	}
	return strings.Join(parts, "; ")
}

// Validator wraps a compiled schema for repeated validation.
// A Validator is safe for concurrent use.
type Validator struct {
	schema *gojsonschema.Schema
}

// Compile compiles doc into a Validator.
func Compile(doc Document) (*Validator, error) {
	sch, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	return &Validator{schema: sch}, nil
}

// MustCompile is like Compile but panics on error. It is meant for
// package-level schema variables.
func MustCompile(doc Document) *Validator {
	v, err := Compile(doc)
	if err != nil {
		panic(err)
	}
	return v
}

// ValidateBytes validates a raw JSON document.
// The returned error is non-nil only when validation could not run at all,
// for example because data is not JSON; schema violations are reported in
// the Result.
func (v *Validator) ValidateBytes(data []byte) (*Result, error) {
	if v == nil || v.schema == nil {
		return nil, fmt.Errorf("validator not initialised")
	}
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	res := &Result{Valid: result.Valid()}
	for _, verr := range result.Errors() {
		field := verr.Field()
		if field == "" || field == "(root)" {
			field = "root"
		}
		res.Errors = append(res.Errors, ValidationError{
			Path:    field,
			Message: verr.Description(),
		})
	}
	return res, nil
}
