package theme

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildThemeJSONSchema returns the JSON-Schema (draft 2020-12 subset) a theme
// file must satisfy.
func BuildThemeJSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"brand_color":      colorProp(),
			"accent_color":     colorProp(),
			"text_color":       colorProp(),
			"highlight_fill":   colorProp(),
			"highlight_border": colorProp(),
			"box_fill":         colorProp(),
			"box_border":       colorProp(),
			"font_paths": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string", "minLength": 1},
			},
		},
		"additionalProperties": false,
	}
}

func colorProp() map[string]any {
	return map[string]any{"type": "string", "pattern": `^#[0-9A-Fa-f]{6}$`}
}

// ValidateThemeJSON validates raw theme bytes against the theme schema.
func ValidateThemeJSON(data []byte) error {
	return validateJSONAgainstSchema(BuildThemeJSONSchema(), data)
}

func validateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
