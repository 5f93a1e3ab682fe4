// internal/matching/compatibility.go
package matching

const (
	minAgeGap    = 3
	maxAgeGap    = 6
	minHeightGap = 6
	maxHeightGap = 8
)

// IsCompatible reports whether candidate is an eligible match for input. The groom is
// expected to be 3 to 6 years older and 6 to 8 inches taller than the bride, and must
// have a profession.
func IsCompatible(input MatchInput, candidate Candidate) bool {
	if input.Gender == candidate.Gender {
		return false
	}

	switch input.Gender {
	case Male:
		if input.Profession == "" {
			return false
		}
	case Female:
		if candidate.Profession == "" {
			return false
		}
	default:
		return false
	}

	inputHeight := ParseHeight(input.Height)
	candidateHeight := ParseHeight(candidate.Height)

	var ageGap, heightGap int
	if input.Gender == Male {
		ageGap = input.Age - candidate.Age
		heightGap = inputHeight - candidateHeight
	} else {
		ageGap = candidate.Age - input.Age
		heightGap = candidateHeight - inputHeight
	}

	return ageGap >= minAgeGap && ageGap <= maxAgeGap &&
		heightGap >= minHeightGap && heightGap <= maxHeightGap
}

// FilterCompatible returns the compatible candidates in their original order.
func FilterCompatible(input MatchInput, candidates []Candidate) []Candidate {
	var out []Candidate
	for _, c := range candidates {
		if IsCompatible(input, c) {
			out = append(out, c)
		}
	}
	return out
}
