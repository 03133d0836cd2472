package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema for assetpipe.config.yml, for editor
// integration and config linting.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "Assetpipe Configuration"
	schema.Description = "Configuration schema for assetpipe artifact naming and emission."

	return json.MarshalIndent(schema, "", "  ")
}
