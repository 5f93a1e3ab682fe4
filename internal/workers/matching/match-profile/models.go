// internal/workers/matching/match-profile/models.go
package matchprofile

import "ghotok-workers/internal/models"

type Input struct {
	Name       string  `json:"name"`
	Age        int     `json:"age"`
	Gender     string  `json:"gender"`
	Profession *string `json:"profession,omitempty"`
	Height     string  `json:"height"`
}

type InputProfile struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	Profession string `json:"profession,omitempty"`
	Height     string `json:"height"`
	BirthYear  int    `json:"birthYear"`
}

type Output struct {
	InputProfile       InputProfile   `json:"inputProfile"`
	MatchedProfile     models.Profile `json:"matchedProfile"`
	CompatibilityScore int            `json:"compatibilityScore"`
	CompatibleCount    int            `json:"compatibleCount"`
}
