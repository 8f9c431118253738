package outcome

// Counter tallies a learner's results for one exercise.
type Counter struct {
	Correct int
	Wrong   int
}

// Total returns the number of recorded answers.
func (c Counter) Total() int {
	return c.Correct + c.Wrong
}

// Answer is one graded learner response, as sent to the backend.
type Answer struct {
	ExerciseID string
	Submitted  string
	Correct    bool
}

// Tracker holds per-exercise counters for the lifetime of a session.
// Counters only grow. It is not safe for concurrent use.
type Tracker struct {
	counts map[string]*Counter
}

// NewTracker seeds a tracker with prior history. Negative values are
// treated as zero.
func NewTracker(prior map[string]Counter) *Tracker {
	t := &Tracker{counts: make(map[string]*Counter, len(prior))}
	for exerciseID, c := range prior {
		t.counts[exerciseID] = &Counter{
			Correct: max(c.Correct, 0),
			Wrong:   max(c.Wrong, 0),
		}
	}
	return t
}

// RecordLocal increments the correct or wrong count of an exercise,
// creating a zeroed entry first if needed.
func (t *Tracker) RecordLocal(exerciseID string, correct bool) {
	c, ok := t.counts[exerciseID]
	if !ok {
		c = &Counter{}
		t.counts[exerciseID] = c
	}
	if correct {
		c.Correct++
	} else {
		c.Wrong++
	}
}

// Lookup returns the counter for an exercise and whether one exists.
func (t *Tracker) Lookup(exerciseID string) (Counter, bool) {
	c, ok := t.counts[exerciseID]
	if !ok {
		return Counter{}, false
	}
	return *c, true
}

// Totals sums correct and wrong answers over all entries.
func (t *Tracker) Totals() (correct, wrong int) {
	for _, c := range t.counts {
		correct += c.Correct
		wrong += c.Wrong
	}
	return correct, wrong
}
