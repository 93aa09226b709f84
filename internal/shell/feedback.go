package shell

import (
	"sync"
	"time"
)

// Feedback is one rating given with /feedback
type Feedback struct {
	RunID   string // setup run being rated, "" when none ran yet
	Rating  int
	Comment string
	At      time.Time
}

// Tally keeps feedback for the current session in memory
type Tally struct {
	mu      sync.Mutex
	entries []Feedback
}

// Add records a rating. Ratings outside 1..5 are rejected.
func (t *Tally) Add(runID string, rating int, comment string) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, Feedback{RunID: runID, Rating: rating, Comment: comment, At: time.Now()})
	return nil
}

// Count returns the number of ratings
func (t *Tally) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Average returns the mean rating, 0 with no ratings
func (t *Tally) Average() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range t.entries {
		sum += e.Rating
	}
	return float64(sum) / float64(len(t.entries))
}

// Entries returns a copy of all feedback
func (t *Tally) Entries() []Feedback {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Feedback(nil), t.entries...)
}
