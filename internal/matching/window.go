// internal/matching/window.go
package matching

import "sync"

const DefaultWindowSize = 3

// RecentWindow is a bounded FIFO of recently returned candidate ids.
type RecentWindow struct {
	mu       sync.Mutex
	ids      []int64
	capacity int
}

// NewRecentWindow returns an empty window. A non-positive capacity uses DefaultWindowSize.
func NewRecentWindow(capacity int) *RecentWindow {
	if capacity <= 0 {
		capacity = DefaultWindowSize
	}
	return &RecentWindow{capacity: capacity, ids: make([]int64, 0, capacity+1)}
}

func (w *RecentWindow) Capacity() int {
	return w.capacity
}

func (w *RecentWindow) Contains(id int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.containsLocked(id)
}

func (w *RecentWindow) Push(id int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pushLocked(id)
}

func (w *RecentWindow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ids = w.ids[:0]
}

// Snapshot returns the ids oldest first.
func (w *RecentWindow) Snapshot() []int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]int64, len(w.ids))
	copy(out, w.ids)
	return out
}

func (w *RecentWindow) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.ids)
}

func (w *RecentWindow) containsLocked(id int64) bool {
	for _, v := range w.ids {
		if v == id {
			return true
		}
	}
	return false
}

func (w *RecentWindow) pushLocked(id int64) {
	w.ids = append(w.ids, id)
	if len(w.ids) > w.capacity {
		w.ids = append(w.ids[:0], w.ids[len(w.ids)-w.capacity:]...)
	}
}
