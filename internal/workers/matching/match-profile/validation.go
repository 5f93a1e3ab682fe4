// internal/workers/matching/match-profile/validation.go
package matchprofile

import (
	"encoding/json"

	"ghotok-workers/internal/common/errors"
	"ghotok-workers/internal/common/validation"
)

var inputSchema = validation.MustCompile(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"name":       {Type: "string", MinLength: validation.Int(1)},
		"age":        {Type: "integer", Minimum: validation.Float(1), Maximum: validation.Float(120)},
		"gender":     {Type: "string", Enum: []interface{}{"Male", "Female"}},
		"profession": {Type: validation.Nullable("string")},
		"height":     {Type: "string", MinLength: validation.Int(1)},
	},
	Required: []string{"name", "age", "gender", "height"},
})

func parseInput(variables string) (*Input, error) {
	result, err := inputSchema.ValidateJSON(variables)
	if err != nil {
		return nil, errors.NewParseError(err)
	}
	if !result.Valid {
		return nil, errors.NewInvalidInputError(result.Summary()).
			WithMetadata("fields", result.GetErrorMessages())
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, errors.NewParseError(err)
	}
	return &input, nil
}
