package practicesession

import (
	"log/slog"

	"github.com/ksalp/lernportal/internal/grader"
	"github.com/ksalp/lernportal/internal/selection"
	"github.com/ksalp/lernportal/internal/summary"
)

// Identity is the learner a session runs for. A zero Identity is a guest.
type Identity struct {
	AccountID string
	Name      string
	Classes   []string
	Valid     bool
}

// SessionConfig holds everything a session needs from its environment.
type SessionConfig struct {
	Identity       Identity
	PersistAnswers bool // answers reach the recorder only for a valid identity
	MaxLineLength  int  // set-name summary width; 0 = summary.DefaultMaxLineLength
	Rand           selection.Source
	Grader         grader.Grader // nil = exact match
	Logger         *slog.Logger
}

// DefaultConfig returns a guest config that would persist answers once an
// identity is set.
func DefaultConfig() SessionConfig {
	return SessionConfig{
		PersistAnswers: true,
		MaxLineLength:  summary.DefaultMaxLineLength,
	}
}

func (c SessionConfig) persists() bool {
	return c.PersistAnswers && c.Identity.Valid
}
