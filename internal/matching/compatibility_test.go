package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCompatible_GroomSeekingBride(t *testing.T) {
	groom := MatchInput{Name: "Rahim", Age: 30, Gender: Male, Profession: "Engineer", Height: `5'10"`}

	assert.True(t, IsCompatible(groom, Candidate{ID: 1, Age: 25, Gender: Female, Height: `5'2"`}), "age gap 5, height gap 8")
	assert.False(t, IsCompatible(groom, Candidate{ID: 2, Age: 28, Gender: Female, Height: `5'6"`}), "age gap 2")
}

func TestIsCompatible_BrideSeekingGroom(t *testing.T) {
	bride := MatchInput{Name: "Ayesha", Age: 25, Gender: Female, Height: `5'4"`}

	assert.True(t, IsCompatible(bride, Candidate{ID: 3, Age: 30, Gender: Male, Profession: "Doctor", Height: `6'0"`}))
	assert.False(t, IsCompatible(bride, Candidate{ID: 4, Age: 30, Gender: Male, Height: `6'0"`}), "groom without profession")
}

func TestIsCompatible_SameGenderNeverMatches(t *testing.T) {
	for _, g := range []Gender{Male, Female} {
		input := MatchInput{Age: 30, Gender: g, Profession: "Engineer", Height: `5'10"`}
		for age := 20; age <= 40; age++ {
			c := Candidate{ID: int64(age), Age: age, Gender: g, Profession: "Doctor", Height: `5'2"`}
			assert.False(t, IsCompatible(input, c))
		}
	}
}

func TestIsCompatible_GroomWithoutProfession(t *testing.T) {
	groom := MatchInput{Age: 30, Gender: Male, Height: `5'10"`}
	assert.False(t, IsCompatible(groom, Candidate{ID: 1, Age: 25, Gender: Female, Profession: "Teacher", Height: `5'2"`}))
}

func TestIsCompatible_Bands(t *testing.T) {
	groom := MatchInput{Age: 30, Gender: Male, Profession: "Lawyer", Height: `5'10"`} // 70in
	bride := MatchInput{Age: 25, Gender: Female, Height: `5'4"`}                      // 64in

	tests := []struct {
		name      string
		input     MatchInput
		candidate Candidate
		want      bool
	}{
		{"groom lower age bound", groom, Candidate{Age: 27, Gender: Female, Height: `5'3"`}, true},
		{"groom upper age bound", groom, Candidate{Age: 24, Gender: Female, Height: `5'3"`}, true},
		{"groom age gap 7", groom, Candidate{Age: 23, Gender: Female, Height: `5'3"`}, false},
		{"groom lower height bound", groom, Candidate{Age: 26, Gender: Female, Height: `5'4"`}, true},
		{"groom upper height bound", groom, Candidate{Age: 26, Gender: Female, Height: `5'2"`}, true},
		{"groom height gap 5", groom, Candidate{Age: 26, Gender: Female, Height: `5'5"`}, false},
		{"groom height gap 9", groom, Candidate{Age: 26, Gender: Female, Height: `5'1"`}, false},
		{"groom older bride", groom, Candidate{Age: 33, Gender: Female, Height: `5'3"`}, false},
		{"bride age gap 3", bride, Candidate{Age: 28, Gender: Male, Profession: "Doctor", Height: `5'11"`}, true},
		{"bride age gap 6", bride, Candidate{Age: 31, Gender: Male, Profession: "Doctor", Height: `5'11"`}, true},
		{"bride age gap 2", bride, Candidate{Age: 27, Gender: Male, Profession: "Doctor", Height: `5'11"`}, false},
		{"bride height gap 6", bride, Candidate{Age: 29, Gender: Male, Profession: "Doctor", Height: `5'10"`}, true},
		{"bride height gap 9", bride, Candidate{Age: 29, Gender: Male, Profession: "Doctor", Height: `6'1"`}, false},
		{"malformed candidate height", groom, Candidate{Age: 26, Gender: Female, Height: `tall`}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCompatible(tt.input, tt.candidate))
		})
	}
}

// Malformed heights parse to 0 and still take part in the gap arithmetic.
func TestIsCompatible_MalformedHeightFallsBackToZero(t *testing.T) {
	groom := MatchInput{Age: 30, Gender: Male, Profession: "Engineer", Height: `unknown`}
	assert.False(t, IsCompatible(groom, Candidate{Age: 26, Gender: Female, Height: `5'2"`}))

	groom.Height = `0'8"`
	assert.True(t, IsCompatible(groom, Candidate{Age: 26, Gender: Female, Height: `n/a`}), "8in against a 0 fallback")
}

func TestFilterCompatible(t *testing.T) {
	groom := MatchInput{Age: 30, Gender: Male, Profession: "Engineer", Height: `5'10"`}
	candidates := []Candidate{
		{ID: 1, Age: 25, Gender: Female, Height: `5'2"`},
		{ID: 2, Age: 28, Gender: Female, Height: `5'6"`},
		{ID: 3, Age: 26, Gender: Female, Height: `5'3"`},
		{ID: 4, Age: 26, Gender: Male, Height: `5'3"`},
	}

	got := FilterCompatible(groom, candidates)
	assert.Equal(t, []int64{1, 3}, ids(got))

	assert.Empty(t, FilterCompatible(groom, nil))
}

func ids(cs []Candidate) []int64 {
	out := make([]int64, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}
