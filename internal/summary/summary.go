// Package summary derives the progress block shown during a learning session.
package summary

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/ksalp/lernportal/internal/domain/learnset"
	"github.com/ksalp/lernportal/internal/pool"
)

const (
	DefaultMaxLineLength = 96

	NoProgress = "--"
	NoGrade    = "-"
)

// Counters is the part of an outcome tracker statistics need.
type Counters interface {
	Totals() (correct, wrong int)
}

// Statistics is a plain snapshot; recompute it after every transition.
type Statistics struct {
	SetNames string

	Correct  int
	Wrong    int
	Answered int // Correct + Wrong, including prior sessions
	Total    int // exercises in the pool

	ProgressPercent int
	HasProgress     bool

	Grade    float64 // 1 (worst) to 6 (best), one decimal
	HasGrade bool

	ExerciseID  string
	Set         learnset.LearnSet
	SetResolved bool
}

// Compute builds statistics for the pool, the tracker and the current exercise.
func Compute(p *pool.Pool, counters Counters, currentID string, maxLineLength int) Statistics {
	correct, wrong := counters.Totals()
	s := Statistics{
		SetNames:   SetNames(p.LearnSets(), maxLineLength),
		Correct:    correct,
		Wrong:      wrong,
		Answered:   correct + wrong,
		Total:      p.Len(),
		ExerciseID: currentID,
	}

	if s.Total > 0 {
		s.ProgressPercent = int(math.Round(100 * float64(s.Answered) / float64(s.Total)))
		s.HasProgress = true
	}

	if s.Answered > 0 {
		s.Grade = EstimateGrade(correct, wrong)
		s.HasGrade = true
	}

	s.Set, s.SetResolved = p.SetOf(currentID)
	return s
}

// EstimateGrade maps the share of correct answers onto the 1-6 scale,
// rounded to one decimal. Callers must ensure correct+wrong > 0.
func EstimateGrade(correct, wrong int) float64 {
	ratio := float64(correct) / float64(correct+wrong)
	return math.Round((ratio*5+1)*10) / 10
}

// SetNames formats every set as "[SUBJECT] Title", sorts and joins them.
// Results longer than maxLineLength are cut and end in "...".
func SetNames(sets []learnset.LearnSet, maxLineLength int) string {
	if maxLineLength <= 0 {
		maxLineLength = DefaultMaxLineLength
	}

	names := make([]string, len(sets))
	for i := range sets {
		names[i] = sets[i].Label()
	}
	sort.Strings(names)

	joined := strings.Join(names, ", ")
	runes := []rune(joined)
	if len(runes) > maxLineLength {
		cut := max(maxLineLength-3, 0)
		joined = string(runes[:cut]) + "..."
	}
	return joined
}

// ProgressText is the rounded percentage, or NoProgress.
func (s Statistics) ProgressText() string {
	if !s.HasProgress {
		return NoProgress
	}
	return strconv.Itoa(s.ProgressPercent)
}

// GradeText is the approximate grade prefixed with "~", or NoGrade.
func (s Statistics) GradeText() string {
	if !s.HasGrade {
		return NoGrade
	}
	return "~" + strconv.FormatFloat(s.Grade, 'f', -1, 64)
}

// Locator names the current exercise and, when known, its set.
func (s Statistics) Locator() string {
	if !s.SetResolved {
		return "Exercise #" + s.ExerciseID
	}
	return "Exercise #" + s.ExerciseID + " from learn set " + s.Set.Label()
}

// String renders the three-line block.
func (s Statistics) String() string {
	var b strings.Builder
	b.WriteString(s.SetNames)
	b.WriteString("\nAnswers: ")
	b.WriteString(strconv.Itoa(s.Answered))
	b.WriteString(" | Progress: ")
	b.WriteString(s.ProgressText())
	b.WriteString("% | Grade: ")
	b.WriteString(s.GradeText())
	b.WriteString(" | Total: ")
	b.WriteString(strconv.Itoa(s.Total))
	b.WriteString("\n")
	b.WriteString(s.Locator())
	return b.String()
}
