// internal/app/quizgen/schema.go
package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// quizSchema is the contract the model's JSON must satisfy: exactly five
// questions, four options each, a correct-answer letter. Validating up front
// keeps malformed generations out of the publish path entirely.
const quizSchema = `{
  "type": "object",
  "required": ["questions"],
  "properties": {
    "questions": {
      "type": "array",
      "minItems": 5,
      "maxItems": 5,
      "items": {
        "type": "object",
        "required": ["questionText", "options", "correctAnswer"],
        "properties": {
          "questionText": {"type": "string", "minLength": 1},
          "options": {
            "type": "array",
            "minItems": 4,
            "maxItems": 4,
            "items": {"type": "string", "minLength": 1}
          },
          "correctAnswer": {"type": "string", "enum": ["A", "B", "C", "D"]}
        }
      }
    }
  }
}`

var compiledSchema = gojsonschema.NewStringLoader(quizSchema)

type quizPayload struct {
	Questions []Question `json:"questions"`
}

// parseQuestions strips any markdown fencing the model wrapped around its
// JSON, validates the document against the quiz schema, and decodes it.
func parseQuestions(raw string) ([]Question, error) {
	raw = stripFences(raw)
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("quiz generator returned empty output")
	}

	result, err := gojsonschema.Validate(compiledSchema, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("quiz output is not valid JSON: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("quiz output failed validation: %s", strings.Join(msgs, "; "))
	}

	var payload quizPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("decode quiz output: %w", err)
	}
	return payload.Questions, nil
}

// stripFences removes a ```json ... ``` wrapper if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
