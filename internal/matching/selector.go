// internal/matching/selector.go
package matching

// Selector picks one candidate while steering away from the ones it returned last.
type Selector struct {
	window *RecentWindow
	rnd    RandSource
}

func NewSelector(window *RecentWindow, rnd RandSource) *Selector {
	return &Selector{window: window, rnd: rnd}
}

// Select returns a uniformly chosen candidate that is not in the recent window. When
// every candidate is recent the window is cleared first and reset is true. The whole
// read-modify-write happens under the window lock.
func (s *Selector) Select(compatible []Candidate) (selected Candidate, reset bool, err error) {
	if len(compatible) == 0 {
		return Candidate{}, false, errEmptyPool
	}

	w := s.window
	w.mu.Lock()
	defer w.mu.Unlock()

	available := make([]Candidate, 0, len(compatible))
	for _, c := range compatible {
		if !w.containsLocked(c.ID) {
			available = append(available, c)
		}
	}

	pool := available
	if len(available) == 0 {
		w.ids = w.ids[:0]
		pool = compatible
		reset = true
	}

	selected = pool[s.rnd.Intn(len(pool))]
	w.pushLocked(selected.ID)
	return selected, reset, nil
}
