// Package schema renders JSON schemas as plain text, for the CLI's
// human-readable configuration reference.
package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Renderer walks a parsed JSON schema and produces indented text.
type Renderer struct {
	schemaData map[string]interface{}
}

// NewRenderer parses schema JSON produced by config.Schema.
func NewRenderer(data []byte) (*Renderer, error) {
	var schemaData map[string]interface{}
	if err := json.Unmarshal(data, &schemaData); err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}
	return &Renderer{schemaData: schemaData}, nil
}

// RenderAsText converts the loaded schema into a plain text representation.
func (r *Renderer) RenderAsText() (string, error) {
	var builder strings.Builder

	if title, ok := r.schemaData["title"].(string); ok {
		builder.WriteString(fmt.Sprintf("Schema Title: %s\n", title))
	}
	if description, ok := r.schemaData["description"].(string); ok {
		builder.WriteString(fmt.Sprintf("Schema Description: %s\n", description))
	}
	builder.WriteString("\n")

	if properties, ok := r.schemaData["properties"].(map[string]interface{}); ok {
		r.renderProperties(&builder, properties, 0)
	}

	return builder.String(), nil
}

func (r *Renderer) renderProperties(builder *strings.Builder, properties map[string]interface{}, indentLevel int) {
	indent := strings.Repeat("  ", indentLevel)

	keys := make([]string, 0, len(properties))
	for key := range properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		prop, ok := properties[key].(map[string]interface{})
		if !ok {
			continue
		}

		// Handle $ref
		if ref, ok := prop["$ref"].(string); ok {
			prop = r.resolveRef(ref)
			if prop == nil {
				continue
			}
		}

		propType, _ := prop["type"].(string)
		description, _ := prop["description"].(string)

		builder.WriteString(fmt.Sprintf("%s- Property: `%s`\n", indent, key))
		builder.WriteString(fmt.Sprintf("%s  - Type: %s\n", indent, propType))
		if description != "" {
			builder.WriteString(fmt.Sprintf("%s  - Description: %s\n", indent, description))
		}
		if defaultValue, ok := prop["default"]; ok {
			builder.WriteString(fmt.Sprintf("%s  - Default: %v\n", indent, defaultValue))
		}

		if propType == "object" {
			if nestedProps, ok := prop["properties"].(map[string]interface{}); ok {
				r.renderProperties(builder, nestedProps, indentLevel+2)
			}
		} else if propType == "array" {
			if items, ok := prop["items"].(map[string]interface{}); ok {
				builder.WriteString(fmt.Sprintf("%s  - Items:\n", indent))
				itemProps := map[string]interface{}{"item": items}
				r.renderProperties(builder, itemProps, indentLevel+2)
			}
		}
	}
}

func (r *Renderer) resolveRef(ref string) map[string]interface{} {
	parts := strings.Split(ref, "/")
	if len(parts) < 2 || parts[0] != "#" {
		return nil // Only support local refs for now
	}

	var current interface{} = r.schemaData
	for _, part := range parts[1:] {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current, ok = m[part]
		if !ok {
			return nil
		}
	}

	if resolved, ok := current.(map[string]interface{}); ok {
		return resolved
	}

	return nil
}
