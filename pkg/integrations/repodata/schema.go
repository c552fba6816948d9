package repodata

import "github.com/matzehuels/pkgutils/pkg/schema"

var repodataSchema = schema.MustCompile(schema.Document{
	"type":     "object",
	"required": []any{"info", "packages", "removed", "repodata_version"},
	"properties": schema.Document{
		"info": schema.Document{
			"type":     "object",
			"required": []any{"subdir"},
			"properties": schema.Document{
				"subdir":   schema.Document{"type": "string"},
				"arch":     schema.Document{"type": []any{"string", "null"}},
				"platform": schema.Document{"type": []any{"string", "null"}},
			},
		},
		"packages":         packagesSchema(),
		"packages.conda":   packagesSchema(),
		"removed":          schema.Document{"type": "array", "items": schema.Document{"type": "string"}},
		"repodata_version": schema.Document{"type": "integer"},
	},
})

func packagesSchema() schema.Document {
	str := schema.Document{"type": "string"}
	optionalStr := schema.Document{"type": []any{"string", "null"}}

	return schema.Document{
		"type": "object",
		"additionalProperties": schema.Document{
			"type": "object",
			"required": []any{
				"build",
				"build_number",
				"depends",
				"md5",
				"sha256",
				"name",
				"size",
				"subdir",
				"version",
			},
			"properties": schema.Document{
				"build":          str,
				"build_number":   schema.Document{"type": "integer"},
				"depends":        schema.Document{"type": "array", "items": str},
				"md5":            str,
				"sha256":         str,
				"name":           str,
				"size":           schema.Document{"type": "integer"},
				"subdir":         str,
				"version":        str,
				"timestamp":      schema.Document{"type": "integer"},
				"date":           optionalStr,
				"track_features": optionalStr,
				"license":        optionalStr,
				"license_family": optionalStr,
			},
		},
	}
}
