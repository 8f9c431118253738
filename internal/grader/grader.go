package grader

import (
	"slices"

	"github.com/ksalp/lernportal/internal/domain/learnset"
)

// Grader decides whether a learner's response answers an exercise.
type Grader interface {
	IsCorrect(e learnset.Exercise, submitted string) bool
}

// Exact accepts the stored answer or one of its alternatives, compared
// byte for byte. No trimming or case folding happens.
type Exact struct{}

// Compile-time check: Exact satisfies the Grader interface.
var _ Grader = Exact{}

func (Exact) IsCorrect(e learnset.Exercise, submitted string) bool {
	return submitted == e.Answer || slices.Contains(e.Answers, submitted)
}
