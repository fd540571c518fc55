package pipeline

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/predict-dashboard-service/internal/domain"
)

// Settlement is an assessment applied as the current view of one kind.
type Settlement struct {
	Kind       domain.Kind `json:"kind"`
	Token      uint64      `json:"token"`
	Assessment Assessment  `json:"assessment"`
	SettledAt  time.Time   `json:"settled_at"`
}

// Tracker guards one kind's displayed assessment against stale overwrites.
// Tokens are issued in submission order; only the most recently issued token
// may settle, so a slow earlier request can never replace a newer one.
type Tracker struct {
	kind   domain.Kind
	issued atomic.Uint64

	mu     sync.Mutex
	latest *Settlement
}

// NewTracker creates an empty tracker for kind.
func NewTracker(kind domain.Kind) *Tracker {
	return &Tracker{kind: kind}
}

// Issue returns a new token, superseding every token issued before it.
func (t *Tracker) Issue() uint64 {
	return t.issued.Add(1)
}

// Current is the most recently issued token, 0 before the first Issue.
func (t *Tracker) Current() uint64 {
	return t.issued.Load()
}

// Settle applies a if token is still current. A superseded token is
// discarded and reported with ok=false.
func (t *Tracker) Settle(token uint64, a Assessment) (Settlement, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if token != t.issued.Load() {
		return Settlement{}, false
	}
	s := Settlement{
		Kind:       t.kind,
		Token:      token,
		Assessment: a.Clone(),
		SettledAt:  clock.Now(),
	}
	t.latest = &s
	return s.clone(), true
}

// Latest returns a copy of the most recently applied settlement.
func (t *Tracker) Latest() (Settlement, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.latest == nil {
		return Settlement{}, false
	}
	return t.latest.clone(), true
}

func (s Settlement) clone() Settlement {
	s.Assessment = s.Assessment.Clone()
	return s
}

// Board holds one Tracker per prediction kind. The three flows are
// independent: a submission on one page never supersedes another.
type Board struct {
	trackers map[domain.Kind]*Tracker
}

// NewBoard creates a tracker for every supported kind.
func NewBoard() *Board {
	b := &Board{trackers: make(map[domain.Kind]*Tracker, len(domain.Kinds))}
	for _, k := range domain.Kinds {
		b.trackers[k] = NewTracker(k)
	}
	return b
}

// Tracker returns the tracker for kind.
func (b *Board) Tracker(kind domain.Kind) (*Tracker, bool) {
	t, ok := b.trackers[kind]
	return t, ok
}
