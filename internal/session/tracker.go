package session

import (
	"sync"

	"github.com/google/uuid"
)

// Tracker enforces last-submission-wins per session: each new search under a
// session id bumps that session's generation, and only the latest generation
// is allowed to deliver its response.
type Tracker struct {
	mu   sync.Mutex
	gens map[string]uint64
}

func NewTracker() *Tracker {
	return &Tracker{gens: make(map[string]uint64)}
}

// Begin registers a new request under a session and returns the session id
// (minting one when the caller has none yet) along with the generation the
// request holds. Any in-flight request with an older generation is superseded.
func (t *Tracker) Begin(id string) (string, uint64) {
	if id == "" {
		id = uuid.NewString()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.gens[id]++
	return id, t.gens[id]
}

// IsCurrent reports whether a generation is still the session's latest.
func (t *Tracker) IsCurrent(id string, gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gens[id] == gen
}
