package store

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrStatsUnavailable accompanies a bundle that is complete except for
	// the learner's stats.
	ErrStatsUnavailable = errors.New("learn stats unavailable")
)

// Account is a learner or author known to the store.
type Account struct {
	ID      string
	Name    string
	Classes []string
}
