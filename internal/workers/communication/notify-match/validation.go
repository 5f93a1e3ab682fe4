// internal/workers/communication/notify-match/validation.go
package notifymatch

import "ghotok-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"inputName", "matchedName", "matchedProfileId"},
		Properties: map[string]validation.Property{
			"inputName":          {Type: "string", MinLength: validation.Int(1)},
			"inputGender":        {Type: validation.Nullable("string")},
			"matchedName":        {Type: "string", MinLength: validation.Int(1)},
			"matchedProfileId":   {Type: "string", Pattern: `^[A-Z]+-\d{5}$`},
			"compatibilityScore": {Type: "integer", Minimum: validation.Float(0), Maximum: validation.Float(100)},
			"recipientEmail":     {Type: validation.Nullable("string"), Pattern: `^$|^[^@\s]+@[^@\s]+\.[^@\s]+$`},
			"recipientPhone":     {Type: validation.Nullable("string"), Pattern: `^$|^\+[1-9]\d{6,14}$`},
		},
	}
}

var inputValidator = validation.MustCompile(GetInputSchema())
