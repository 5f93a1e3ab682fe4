// internal/matching/matcher.go
package matching

import "fmt"

// Result is a successful match.
type Result struct {
	Input              MatchInput
	Matched            Candidate
	CompatibilityScore int
	CompatibleCount    int
	WindowReset        bool
}

type Options struct {
	// Window defaults to a fresh window of WindowSize.
	Window     *RecentWindow
	WindowSize int
	// Rand defaults to a clock-seeded source.
	Rand RandSource
}

// Matcher is safe for concurrent use. One Matcher per process owns the recent window.
type Matcher struct {
	window   *RecentWindow
	selector *Selector
	scorer   *Scorer
}

func NewMatcher(opts Options) *Matcher {
	window := opts.Window
	if window == nil {
		window = NewRecentWindow(opts.WindowSize)
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = NewSeededSource(0)
	}
	return &Matcher{
		window:   window,
		selector: NewSelector(window, rnd),
		scorer:   NewScorer(rnd),
	}
}

func (m *Matcher) Window() *RecentWindow {
	return m.window
}

// Match picks one compatible opposite-gender candidate from pool.
func (m *Matcher) Match(input MatchInput, pool []Candidate) (*Result, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	opposite := make([]Candidate, 0, len(pool))
	for _, c := range pool {
		if c.Gender != input.Gender {
			opposite = append(opposite, c)
		}
	}

	compatible := FilterCompatible(input, opposite)
	if len(compatible) == 0 {
		return nil, ErrNoMatchFound
	}

	selected, reset, err := m.selector.Select(compatible)
	if err != nil {
		return nil, err
	}

	return &Result{
		Input:              input,
		Matched:            selected,
		CompatibilityScore: m.scorer.Score(input, selected),
		CompatibleCount:    len(compatible),
		WindowReset:        reset,
	}, nil
}

func validate(input MatchInput) error {
	if !input.Gender.Valid() {
		return fmt.Errorf("%w: gender must be Male or Female, got %q", ErrInvalidInput, input.Gender)
	}
	if input.Gender == Male && input.Profession == "" {
		return fmt.Errorf("%w: groom profession is mandatory", ErrInvalidInput)
	}
	return nil
}
