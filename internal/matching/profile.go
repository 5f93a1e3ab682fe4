// internal/matching/profile.go
package matching

type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

func (g Gender) Valid() bool {
	return g == Male || g == Female
}

// Opposite returns the gender a party of g is matched against.
func (g Gender) Opposite() Gender {
	if g == Male {
		return Female
	}
	return Male
}

// MatchInput is the searching party's criteria. An empty Profession means none was given.
type MatchInput struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Gender     Gender `json:"gender"`
	Profession string `json:"profession,omitempty"`
	Height     string `json:"height"`
}

// Candidate is a stored profile as seen by the matcher.
type Candidate struct {
	ID         int64  `json:"id"`
	Age        int    `json:"age"`
	Gender     Gender `json:"gender"`
	Profession string `json:"profession,omitempty"`
	Height     string `json:"height"`
}
