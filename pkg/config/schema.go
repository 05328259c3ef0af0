package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// configSchema is the accepted shape of .licenseer.yaml. Unknown keys are
// rejected so a typo like "excludes:" fails loudly instead of being ignored.
const configSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "cache-dir": {"type": "string", "minLength": 1},
    "exclude": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    },
    "format": {"enum": ["text", "json", "xml"]},
    "template": {"type": "string"}
  }
}`

// validateConfig checks raw YAML config bytes against the schema. The YAML
// is bridged to JSON first since the schema validator speaks JSON only.
func validateConfig(data []byte) error {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("configuration is not valid YAML: %w", err)
	}
	if doc == nil {
		return nil
	}
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("configuration cannot be validated: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewBytesLoader(jsonData),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}
