// internal/matching/score.go
package matching

const (
	baseScore       = 85
	professionBonus = 5
	scoreJitter     = 10
	maxScore        = 100
)

type Scorer struct {
	rnd RandSource
}

func NewScorer(rnd RandSource) *Scorer {
	return &Scorer{rnd: rnd}
}

// Score returns 85, plus 5 when both parties have a profession, plus a random 0 to 9,
// capped at 100. It is for display only.
func (s *Scorer) Score(input MatchInput, candidate Candidate) int {
	score := baseScore
	if input.Profession != "" && candidate.Profession != "" {
		score += professionBonus
	}
	score += s.rnd.Intn(scoreJitter)
	if score > maxScore {
		score = maxScore
	}
	return score
}
