// internal/workers/auth/admin-login/validation.go
package adminlogin

import "ghotok-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"username", "password"},
		Properties: map[string]validation.Property{
			"username": {
				Type:        "string",
				Description: "Staff username",
				MinLength:   validation.Int(1),
				MaxLength:   validation.Int(255),
			},
			"password": {
				Type:        "string",
				Description: "Plain-text password, checked against the stored bcrypt hash",
				MinLength:   validation.Int(1),
				MaxLength:   validation.Int(72),
			},
		},
		AdditionalProperties: validation.Bool(false),
	}
}

var inputValidator = validation.MustCompile(GetInputSchema())
