// internal/workers/auth/validate-session/validation.go
package validatesession

import "ghotok-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"userId", "token"},
		Properties: map[string]validation.Property{
			"userId": {Type: "integer", Description: "Staff user id", Minimum: validation.Float(1)},
			"token":  {Type: "string", Description: "Session token", MinLength: validation.Int(1)},
		},
	}
}

var inputValidator = validation.MustCompile(GetInputSchema())
