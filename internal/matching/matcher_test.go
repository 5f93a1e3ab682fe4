package matching

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mixedPool() []Candidate {
	return []Candidate{
		{ID: 1, Age: 25, Gender: Female, Height: `5'2"`},
		{ID: 2, Age: 28, Gender: Female, Height: `5'6"`},
		{ID: 3, Age: 30, Gender: Male, Profession: "Doctor", Height: `6'0"`},
		{ID: 4, Age: 30, Gender: Male, Height: `6'0"`},
		{ID: 5, Age: 26, Gender: Female, Profession: "Teacher", Height: `5'3"`},
	}
}

func TestMatch_Groom(t *testing.T) {
	m := NewMatcher(Options{Rand: fixedSource(0)})

	input := MatchInput{Name: "Rahim", Age: 30, Gender: Male, Profession: "Engineer", Height: `5'10"`}
	res, err := m.Match(input, mixedPool())
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.Matched.ID)
	assert.Equal(t, 2, res.CompatibleCount)
	assert.Equal(t, input, res.Input)
	assert.Equal(t, 85, res.CompatibilityScore)
	assert.False(t, res.WindowReset)
}

func TestMatch_Bride(t *testing.T) {
	m := NewMatcher(Options{Rand: fixedSource(0)})

	res, err := m.Match(MatchInput{Name: "Ayesha", Age: 25, Gender: Female, Height: `5'4"`}, mixedPool())
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Matched.ID)
	assert.Equal(t, 1, res.CompatibleCount)
}

func TestMatch_NoMatchFound(t *testing.T) {
	m := NewMatcher(Options{})

	_, err := m.Match(MatchInput{Age: 60, Gender: Male, Profession: "Engineer", Height: `5'10"`}, mixedPool())
	assert.ErrorIs(t, err, ErrNoMatchFound)

	_, err = m.Match(MatchInput{Age: 30, Gender: Male, Profession: "Engineer", Height: `5'10"`}, nil)
	assert.ErrorIs(t, err, ErrNoMatchFound)
	assert.Equal(t, 0, m.Window().Len())
}

func TestMatch_InvalidInput(t *testing.T) {
	m := NewMatcher(Options{})

	_, err := m.Match(MatchInput{Age: 30, Gender: Male, Height: `5'10"`}, mixedPool())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = m.Match(MatchInput{Age: 30, Gender: "Other", Profession: "Engineer", Height: `5'10"`}, mixedPool())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMatch_ExhaustionFallback(t *testing.T) {
	m := NewMatcher(Options{Rand: NewSeededSource(3)})
	input := MatchInput{Age: 30, Gender: Male, Profession: "Engineer", Height: `5'10"`}

	// ids 1 and 5 are the only compatible brides.
	first, err := m.Match(input, mixedPool())
	require.NoError(t, err)
	second, err := m.Match(input, mixedPool())
	require.NoError(t, err)
	assert.NotEqual(t, first.Matched.ID, second.Matched.ID)

	third, err := m.Match(input, mixedPool())
	require.NoError(t, err)
	assert.True(t, third.WindowReset)
	assert.Equal(t, []int64{third.Matched.ID}, m.Window().Snapshot())
}

func TestMatch_SharedWindowIsInjectable(t *testing.T) {
	w := NewRecentWindow(3)
	w.Push(1)
	m := NewMatcher(Options{Window: w, Rand: fixedSource(0)})

	res, err := m.Match(MatchInput{Age: 30, Gender: Male, Profession: "Engineer", Height: `5'10"`}, mixedPool())
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Matched.ID)
	assert.Equal(t, []int64{1, 5}, w.Snapshot())
}

func TestMatch_Concurrent(t *testing.T) {
	m := NewMatcher(Options{Rand: NewSeededSource(11)})
	input := MatchInput{Age: 30, Gender: Male, Profession: "Engineer", Height: `5'10"`}

	brides := make([]Candidate, 8)
	for i := range brides {
		brides[i] = Candidate{ID: int64(i + 1), Age: 26, Gender: Female, Height: `5'3"`}
	}

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Match(input, brides); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}

	snap := m.Window().Snapshot()
	assert.Len(t, snap, 3)
	seen := map[int64]bool{}
	for _, id := range snap {
		assert.False(t, seen[id], "duplicate id %d in window", id)
		seen[id] = true
	}
}
