package labels

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// rulesSchema validates user-supplied carrier rules files. Keeping the
// schema strict here means a typo in a rules file fails loudly instead of
// silently matching nothing.
const rulesSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["carriers"],
  "additionalProperties": false,
  "properties": {
    "carriers": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["match", "name"],
        "additionalProperties": false,
        "properties": {
          "match": {"type": "string", "minLength": 1},
          "name": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

var compiledRulesSchema = jsonschema.MustCompileString("carriers.json", rulesSchema)

// rulesFile is the on-disk shape of a carrier rules file.
type rulesFile struct {
	Carriers []CarrierRule `json:"carriers"`
}

// LoadRules reads and validates a carrier rules file. The returned rules
// take priority over the built-in carrier table when passed to NewExtractor.
func LoadRules(path string) ([]CarrierRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read carrier rules: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("carrier rules is not valid JSON: %w", err)
	}
	if err := compiledRulesSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("carrier rules failed validation: %w", err)
	}

	var rf rulesFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to decode carrier rules: %w", err)
	}
	return rf.Carriers, nil
}
