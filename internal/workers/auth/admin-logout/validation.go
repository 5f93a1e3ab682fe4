// internal/workers/auth/admin-logout/validation.go
package adminlogout

import "ghotok-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"userId", "token"},
		Properties: map[string]validation.Property{
			"userId": {
				Type:        "integer",
				Description: "Staff user id",
				Minimum:     validation.Float(1),
			},
			"token": {
				Type:        "string",
				Description: "Session token to end and revoke",
				MinLength:   validation.Int(10),
				MaxLength:   validation.Int(255),
			},
			"logoutAll": {
				Type:        "boolean",
				Description: "End every session of the user",
			},
		},
		AdditionalProperties: validation.Bool(false),
	}
}

var inputValidator = validation.MustCompile(GetInputSchema())
