package outcome_test

import (
	"testing"

	"github.com/ksalp/lernportal/internal/domain/outcome"
)

func TestRecordLocal_CreatesEntry(t *testing.T) {
	tr := outcome.NewTracker(nil)

	tr.RecordLocal("e1", true)

	c, ok := tr.Lookup("e1")
	if !ok {
		t.Fatal("expected entry for e1")
	}
	if c.Correct != 1 || c.Wrong != 0 {
		t.Errorf("expected {1 0}, got %+v", c)
	}
}

func TestRecordLocal_Increments(t *testing.T) {
	tr := outcome.NewTracker(map[string]outcome.Counter{
		"e1": {Correct: 2, Wrong: 1},
	})

	tr.RecordLocal("e1", false)
	tr.RecordLocal("e1", false)
	tr.RecordLocal("e1", true)

	c, _ := tr.Lookup("e1")
	if c.Correct != 3 || c.Wrong != 3 {
		t.Errorf("expected {3 3}, got %+v", c)
	}
	if c.Total() != 6 {
		t.Errorf("expected total 6, got %d", c.Total())
	}
}

func TestLookup_Missing(t *testing.T) {
	tr := outcome.NewTracker(nil)

	if _, ok := tr.Lookup("nope"); ok {
		t.Error("expected no entry for unknown exercise")
	}
}

func TestNewTracker_ClampsNegative(t *testing.T) {
	tr := outcome.NewTracker(map[string]outcome.Counter{
		"e1": {Correct: -4, Wrong: 2},
	})

	c, _ := tr.Lookup("e1")
	if c.Correct != 0 || c.Wrong != 2 {
		t.Errorf("expected {0 2}, got %+v", c)
	}
}

func TestNewTracker_CopiesPrior(t *testing.T) {
	prior := map[string]outcome.Counter{"e1": {Correct: 1}}
	tr := outcome.NewTracker(prior)

	tr.RecordLocal("e1", true)

	if prior["e1"].Correct != 1 {
		t.Error("expected prior map to stay untouched")
	}
}

func TestTotals(t *testing.T) {
	tr := outcome.NewTracker(map[string]outcome.Counter{
		"e1": {Correct: 1, Wrong: 2},
		"e2": {Correct: 4, Wrong: 0},
	})
	tr.RecordLocal("e3", false)

	correct, wrong := tr.Totals()
	if correct != 5 || wrong != 3 {
		t.Errorf("expected 5 correct and 3 wrong, got %d and %d", correct, wrong)
	}
	if _, ok := tr.Lookup("e3"); !ok {
		t.Error("expected an entry for e3")
	}
}
