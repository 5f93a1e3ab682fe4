// internal/profiles/filters.go
package profiles

import (
	"fmt"
	"strings"
	"time"
)

// Filters narrows a profile search. Empty fields are ignored. Age is turned into a
// birth year at search time and applied alongside BirthYear.
type Filters struct {
	Gender        string `json:"gender,omitempty"`
	Profession    string `json:"profession,omitempty"`
	MaritalStatus string `json:"maritalStatus,omitempty"`
	Height        string `json:"height,omitempty"`
	BirthYear     int    `json:"birthYear,omitempty"`
	Age           int    `json:"age,omitempty"`
}

func (f Filters) Empty() bool {
	return f == Filters{}
}

// birthYears returns the distinct birth years the filters require.
func (f Filters) birthYears(now time.Time) []int {
	var out []int
	if f.BirthYear > 0 {
		out = append(out, f.BirthYear)
	}
	if f.Age > 0 {
		if year := now.Year() - f.Age; len(out) == 0 || out[0] != year {
			out = append(out, year)
		}
	}
	return out
}

// buildSearchQuery renders filters as a parameterized SQL query.
func buildSearchQuery(f Filters, now time.Time) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Gender != "" {
		add("gender = $%d", f.Gender)
	}
	if f.Profession != "" {
		add("profession ILIKE $%d", "%"+f.Profession+"%")
	}
	for _, year := range f.birthYears(now) {
		add("birth_year = $%d", year)
	}
	if f.Height != "" {
		add("height = $%d", f.Height)
	}
	if f.MaritalStatus != "" {
		add("marital_status = $%d", f.MaritalStatus)
	}

	query := "SELECT " + profileColumns + " FROM profiles"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"
	return query, args
}
