package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource always returns the same offset, clamped to n.
type fixedSource int

func (f fixedSource) Intn(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}

func pool(n int) []Candidate {
	out := make([]Candidate, n)
	for i := range out {
		out[i] = Candidate{ID: int64(i + 1), Age: 25, Gender: Female, Height: `5'2"`}
	}
	return out
}

func TestSelector_EvictsOldest(t *testing.T) {
	w := NewRecentWindow(3)
	s := NewSelector(w, fixedSource(0))

	var picked []int64
	for i := 0; i < 4; i++ {
		c, reset, err := s.Select(pool(5))
		require.NoError(t, err)
		assert.False(t, reset)
		picked = append(picked, c.ID)
	}

	assert.Equal(t, []int64{1, 2, 3, 4}, picked)
	assert.Equal(t, []int64{2, 3, 4}, w.Snapshot())
	assert.False(t, w.Contains(1))
}

func TestSelector_NoRepeatWithinWindow(t *testing.T) {
	for _, size := range []int{4, 5, 10} {
		w := NewRecentWindow(3)
		s := NewSelector(w, NewSeededSource(42))
		candidates := pool(size)

		var picked []int64
		for i := 0; i < 500; i++ {
			c, reset, err := s.Select(candidates)
			require.NoError(t, err)
			require.False(t, reset, "pool of %d should never exhaust a window of 3", size)
			picked = append(picked, c.ID)
		}

		for i := 3; i < len(picked); i++ {
			recent := picked[i-3 : i]
			assert.NotContains(t, recent, picked[i], "pool %d, pick %d repeated within the window", size, i)
		}
	}
}

func TestSelector_ExhaustionResetsWindow(t *testing.T) {
	w := NewRecentWindow(3)
	w.Push(1)
	w.Push(2)
	s := NewSelector(w, fixedSource(1))

	c, reset, err := s.Select(pool(2))
	require.NoError(t, err)
	assert.True(t, reset)
	assert.Equal(t, int64(2), c.ID)
	assert.Equal(t, []int64{2}, w.Snapshot())
}

func TestSelector_SmallPoolForcesReuse(t *testing.T) {
	w := NewRecentWindow(3)
	s := NewSelector(w, NewSeededSource(7))

	resets := 0
	for i := 0; i < 30; i++ {
		_, reset, err := s.Select(pool(2))
		require.NoError(t, err)
		if reset {
			resets++
		}
		assert.LessOrEqual(t, w.Len(), 3)
	}
	assert.Greater(t, resets, 0)
}

func TestSelector_EmptyPool(t *testing.T) {
	s := NewSelector(NewRecentWindow(3), fixedSource(0))
	_, _, err := s.Select(nil)
	assert.ErrorIs(t, err, errEmptyPool)
}

func TestSeededSourceIsReproducible(t *testing.T) {
	a, b := NewSeededSource(99), NewSeededSource(99)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestRecentWindow(t *testing.T) {
	w := NewRecentWindow(0)
	assert.Equal(t, DefaultWindowSize, w.Capacity())

	for id := int64(1); id <= 5; id++ {
		w.Push(id)
	}
	assert.Equal(t, []int64{3, 4, 5}, w.Snapshot())

	w.Reset()
	assert.Equal(t, 0, w.Len())
	assert.Empty(t, w.Snapshot())
}
