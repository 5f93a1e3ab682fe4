// internal/profiles/validate.go
package profiles

import (
	"errors"
	"fmt"
	"strings"

	"ghotok-workers/internal/matching"
	"ghotok-workers/internal/models"
)

var ErrInvalidProfile = errors.New("invalid profile")

// Validate checks the rules a stored profile must satisfy: a known gender, a height the
// matcher can read, and a profession for every groom.
func Validate(p models.Profile) error {
	var problems []string
	if strings.TrimSpace(p.Name) == "" {
		problems = append(problems, "name is required")
	}
	if p.Age <= 0 {
		problems = append(problems, "age must be positive")
	}
	gender := matching.Gender(p.Gender)
	if !gender.Valid() {
		problems = append(problems, fmt.Sprintf("gender must be Male or Female, got %q", p.Gender))
	}
	if gender == matching.Male && p.Profession == "" {
		problems = append(problems, "profession is required for grooms")
	}
	if matching.ParseHeight(p.Height) == 0 {
		problems = append(problems, fmt.Sprintf("height %q is not in feet'inches\" form", p.Height))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidProfile, strings.Join(problems, "; "))
	}
	return nil
}
