package pypi

import "github.com/matzehuels/pkgutils/pkg/schema"

var (
	fullSchema    = schema.MustCompile(packageSchema(true))
	versionSchema = schema.MustCompile(packageSchema(false))
)

func artifactSchema() schema.Document {
	return schema.Document{
		"type": "object",
		"required": []any{
			"digests",
			"filename",
			"python_version",
			"size",
			"upload_time_iso_8601",
			"url",
		},
		"properties": schema.Document{
			"digests": schema.Document{
				"type":     "object",
				"required": []any{"md5", "sha256"},
				"properties": schema.Document{
					"md5":    schema.Document{"type": "string"},
					"sha256": schema.Document{"type": "string"},
				},
			},
			"filename":             schema.Document{"type": "string"},
			"python_version":       schema.Document{"type": "string"},
			"size":                 schema.Document{"type": "integer"},
			"upload_time_iso_8601": schema.Document{"type": "string"},
			"url":                  schema.Document{"type": []any{"string", "null"}},
		},
	}
}

// packageSchema describes both endpoint responses. Only the "latest" form
// includes the release history, so requireReleases is set for it.
func packageSchema(requireReleases bool) schema.Document {
	required := []any{"info", "urls"}
	if requireReleases {
		required = append(required, "releases")
	}
	nullableString := schema.Document{"type": []any{"string", "null"}}
	str := schema.Document{"type": "string"}

	return schema.Document{
		"type":     "object",
		"required": required,
		"properties": schema.Document{
			"info": schema.Document{
				"type": "object",
				"required": []any{
					"description",
					"description_content_type",
					"docs_url",
					"license",
					"name",
					"package_url",
					"project_url",
					"project_urls",
					"release_url",
					"requires_python",
					"summary",
					"version",
				},
				"properties": schema.Document{
					"description":              nullableString,
					"description_content_type": nullableString,
					"docs_url":                 nullableString,
					"license":                  str,
					"name":                     str,
					"package_url":              str,
					"project_url":              str,
					"project_urls": schema.Document{
						"type": []any{"object", "null"},
						"properties": schema.Document{
							"Homepage": str,
							"Source":   str,
						},
					},
					"release_url":     str,
					"requires_python": nullableString,
					"summary":         nullableString,
					"version":         str,
				},
			},
			// Version strings are too loose to validate, so any key is accepted.
			"releases": schema.Document{
				"type": "object",
				"patternProperties": schema.Document{
					"^.*$": schema.Document{
						"type":  "array",
						"items": artifactSchema(),
					},
				},
				"additionalProperties": false,
			},
			"urls": schema.Document{
				"type":  "array",
				"items": artifactSchema(),
			},
		},
	}
}
