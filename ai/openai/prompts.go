package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/kgraph/ai"
)

const extractionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "entities": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {
            "type": "string",
            "pattern": "^[a-z0-9]+( [a-z0-9]+)*$"
          },
          "type": {
            "type": "string"
          },
          "description": {
            "type": "string"
          }
        },
        "required": ["name", "type", "description"],
        "additionalProperties": false
      }
    },
    "relations": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "source": {
            "type": "string"
          },
          "target": {
            "type": "string"
          },
          "description": {
            "type": "string"
          },
          "strength": {
            "type": "integer",
            "minimum": 1,
            "maximum": 10
          }
        },
        "required": ["source", "target", "description", "strength"],
        "additionalProperties": false
      }
    }
  },
  "required": ["entities", "relations"],
  "additionalProperties": false
}`

const extractionPromptTemplate = `Extract the entities mentioned in the given text and the relations between them, and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Entity names must be lowercase, 1-4 words, singular form only.
- Type field must match exactly one of the listed values: %s.
- Each entity description summarizes what THIS text says about the entity, in one or two sentences.
- Relations connect two entities from the entities list by name. Do not invent endpoints.
- Strength is an integer from 1 (weakly implied) to 10 (explicitly stated). Rate how directly the text supports the relation.
- Include only entities and relations that are explicitly mentioned or clearly implied by the text. Do not hallucinate.
- If nothing can be identified, return "entities": [] and "relations": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "The European Commission published the wallet framework in 2024. The framework defines certification rules for wallet providers."
Output:
{
  "entities": [
    {"name":"european commission","type":"organization","description":"Published the wallet framework in 2024."},
    {"name":"wallet framework","type":"document","description":"Framework published in 2024; defines certification rules for wallet providers."},
    {"name":"wallet provider","type":"organization","description":"Subject to certification rules defined by the wallet framework."}
  ],
  "relations": [
    {"source":"european commission","target":"wallet framework","description":"The European Commission published the wallet framework.","strength":9},
    {"source":"wallet framework","target":"wallet provider","description":"The framework defines certification rules for wallet providers.","strength":8}
  ]
}`

// buildExtractionPrompt creates the system prompt with entity types embedded.
func buildExtractionPrompt() string {
	return fmt.Sprintf(extractionPromptTemplate,
		extractionResponseSchema,
		strings.Join(ai.EntityTypes, ", "))
}
