package pool_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ksalp/lernportal/internal/domain/learnset"
	"github.com/ksalp/lernportal/internal/domain/outcome"
	"github.com/ksalp/lernportal/internal/pool"
)

type fakeSource struct {
	bundle *pool.Bundle
	err    error
	calls  int
	ids    []string
}

func (f *fakeSource) FetchBundle(_ context.Context, ids []string) (*pool.Bundle, error) {
	f.calls++
	f.ids = ids
	return f.bundle, f.err
}

func sampleBundle() *pool.Bundle {
	return &pool.Bundle{
		LearnSets: []learnset.LearnSet{
			{ID: "s1", Title: "Zeta", Subject: "bio"},
			{ID: "s2", Title: "Alpha", Subject: "math"},
		},
		Exercises: []learnset.Exercise{
			{ID: "e1", SetID: "s1", Question: "q1", Answer: "a1", Frequency: 1},
			{ID: "e2", SetID: "s2", Question: "q2", Answer: "a2", Frequency: 1},
			{ID: "e3", SetID: "s1", Question: "q3", Answer: "a3", Frequency: 1},
		},
		Stats: map[string]outcome.Counter{
			"e1":    {Correct: 1, Wrong: 2},
			"other": {Correct: 9},
		},
	}
}

func TestLoad(t *testing.T) {
	src := &fakeSource{bundle: sampleBundle()}

	p, prior, err := pool.Load(context.Background(), src, []string{"s1", "s2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Len() != 3 {
		t.Errorf("expected 3 exercises, got %d", p.Len())
	}
	if len(prior) != 1 {
		t.Errorf("expected stats for pool exercises only, got %v", prior)
	}
	if prior["e1"].Wrong != 2 {
		t.Errorf("expected e1 wrong=2, got %+v", prior["e1"])
	}
}

func TestLoad_NoIDs(t *testing.T) {
	src := &fakeSource{bundle: sampleBundle()}

	_, _, err := pool.Load(context.Background(), src, nil)
	if !errors.Is(err, pool.ErrNoLearnSets) {
		t.Errorf("expected ErrNoLearnSets, got %v", err)
	}
	if src.calls != 0 {
		t.Error("expected no fetch for an empty id list")
	}
}

func TestLoad_SourceError(t *testing.T) {
	src := &fakeSource{err: errors.New("dial tcp: refused")}

	_, _, err := pool.Load(context.Background(), src, []string{"s1"})
	if !errors.Is(err, pool.ErrConnectivity) {
		t.Errorf("expected ErrConnectivity, got %v", err)
	}
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		bundle *pool.Bundle
	}{
		{"nil bundle", nil},
		{"missing sets", &pool.Bundle{Exercises: []learnset.Exercise{{ID: "e1"}}}},
		{"missing exercises", &pool.Bundle{LearnSets: []learnset.LearnSet{{ID: "s1"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := pool.Load(context.Background(), &fakeSource{bundle: tt.bundle}, []string{"s1"})
			if !errors.Is(err, pool.ErrMalformedBundle) {
				t.Errorf("expected ErrMalformedBundle, got %v", err)
			}
		})
	}
}

func TestLoad_MalformedKeepsServerMessage(t *testing.T) {
	bundle := &pool.Bundle{Message: "learnset storage is being migrated"}

	_, _, err := pool.Load(context.Background(), &fakeSource{bundle: bundle}, []string{"s1"})
	if !errors.Is(err, pool.ErrMalformedBundle) {
		t.Fatalf("expected ErrMalformedBundle, got %v", err)
	}
	if !strings.Contains(err.Error(), "learnset storage is being migrated") {
		t.Errorf("expected the server message in %q", err.Error())
	}
}

func TestLoad_Empty(t *testing.T) {
	src := &fakeSource{bundle: &pool.Bundle{
		LearnSets: []learnset.LearnSet{{ID: "s1"}},
		Exercises: []learnset.Exercise{},
	}}

	_, _, err := pool.Load(context.Background(), src, []string{"s1"})
	if !errors.Is(err, pool.ErrEmptyPool) {
		t.Errorf("expected ErrEmptyPool, got %v", err)
	}
}

func TestNew_Dedup(t *testing.T) {
	p := pool.New(
		[]learnset.LearnSet{{ID: "s1", Title: "first"}, {ID: "s1", Title: "second"}},
		[]learnset.Exercise{{ID: "e1", SetID: "s1", Question: "first"}, {ID: "e1", SetID: "s1", Question: "second"}},
	)

	if len(p.LearnSets()) != 1 || p.LearnSets()[0].Title != "first" {
		t.Errorf("expected first set to win, got %+v", p.LearnSets())
	}
	if e, _ := p.Exercise("e1"); e.Question != "first" {
		t.Errorf("expected first exercise to win, got %q", e.Question)
	}
}

func TestSetOf(t *testing.T) {
	b := sampleBundle()
	b.Exercises = append(b.Exercises, learnset.Exercise{ID: "orphan", SetID: "missing"})
	p := pool.New(b.LearnSets, b.Exercises)

	s, ok := p.SetOf("e2")
	if !ok || s.ID != "s2" {
		t.Errorf("expected e2 to resolve to s2, got %+v (ok=%v)", s, ok)
	}
	if _, ok := p.SetOf("orphan"); ok {
		t.Error("expected orphan exercise to stay unresolved")
	}
	if _, ok := p.SetOf("unknown"); ok {
		t.Error("expected unknown exercise to stay unresolved")
	}
}

func TestGroups(t *testing.T) {
	b := sampleBundle()
	p := pool.New(b.LearnSets, b.Exercises)

	groups := p.Groups()
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if len(groups[0].Exercises) != 2 || groups[0].Exercises[1].ID != "e3" {
		t.Errorf("expected s1 to hold e1 and e3, got %+v", groups[0].Exercises)
	}
	if len(groups[1].Exercises) != 1 {
		t.Errorf("expected s2 to hold one exercise, got %d", len(groups[1].Exercises))
	}
}

func TestExercises_PreservesOrder(t *testing.T) {
	b := sampleBundle()
	p := pool.New(b.LearnSets, b.Exercises)

	got := p.Exercises()
	want := []string{"e1", "e2", "e3"}
	for i, e := range got {
		if e.ID != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], e.ID)
		}
	}
}
