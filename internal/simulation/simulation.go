// simulation/simulation.go
package simulation

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ksalp/lernportal/internal/domain/learnset"
	practicesession "github.com/ksalp/lernportal/internal/domain/practice_session"
	"github.com/ksalp/lernportal/internal/selection"
	"github.com/ksalp/lernportal/internal/summary"
)

// Learner plays the human side of a session.
type Learner interface {
	Answer(e learnset.Exercise) string
	// SelfGrade is asked after a wrong answer was shown.
	SelfGrade(e learnset.Exercise, submitted string) bool
}

// Accuracy knows each answer with a fixed probability and grades itself
// honestly.
type Accuracy struct {
	P   float64
	Rnd selection.Source
}

func (a Accuracy) Answer(e learnset.Exercise) string {
	if a.Rnd.Float64() < a.P {
		return e.Answer
	}
	return "?"
}

func (a Accuracy) SelfGrade(learnset.Exercise, string) bool {
	return false
}

// Result is what a run observed.
type Result struct {
	Rounds     int
	Selections map[string]int // exercise id -> times presented
	Correct    int            // automatic accepts
	Revealed   int            // answers shown after a miss
	Stats      summary.Statistics
}

// Run plays rounds questions of an already started session.
func Run(s *practicesession.Session, l Learner, rounds int) (Result, error) {
	res := Result{Selections: make(map[string]int)}

	for i := 0; i < rounds; i++ {
		e := s.Current()
		res.Selections[e.ID]++

		submitted := l.Answer(e)
		correct, err := s.SubmitAnswer(submitted)
		if err != nil {
			return res, fmt.Errorf("round %d: %w", i+1, err)
		}
		if correct {
			res.Correct++
		} else {
			res.Revealed++
			if err := s.GradeManually(l.SelfGrade(e, submitted)); err != nil {
				return res, fmt.Errorf("round %d: %w", i+1, err)
			}
		}
		res.Rounds++
	}

	res.Stats = s.Stats()
	return res, nil
}

// Report writes the per-exercise selection counts in pool order followed
// by the final statistics block.
func Report(w io.Writer, s *practicesession.Session, res Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EXERCISE\tQUESTION\tSHOWN\tCORRECT\tWRONG\tWEIGHT")

	exercises := s.Pool().Exercises()
	for _, e := range exercises {
		c, seen := s.Counter(e.ID)
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%.2f\n",
			e.ID, e.Question, res.Selections[e.ID], c.Correct, c.Wrong, selection.Weight(e, c, seen))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d rounds, %d accepted, %d revealed\n%s\n",
		res.Rounds, res.Correct, res.Revealed, res.Stats.String())
	return err
}
