package practicesession_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ksalp/lernportal/internal/domain/learnset"
	"github.com/ksalp/lernportal/internal/domain/outcome"
	practicesession "github.com/ksalp/lernportal/internal/domain/practice_session"
	"github.com/ksalp/lernportal/internal/pool"
)

// scripted returns its values in order, repeating the last one.
type scripted struct {
	values []float64
	i      int
}

func (s *scripted) Float64() float64 {
	v := s.values[min(s.i, len(s.values)-1)]
	s.i++
	return v
}

type fakeRecorder struct {
	answers []outcome.Answer
	failing bool
	connErr bool
}

func (r *fakeRecorder) Submit(a outcome.Answer) {
	r.answers = append(r.answers, a)
	if r.failing {
		r.connErr = true
	}
}

func (r *fakeRecorder) ConnectionError() bool { return r.connErr }
func (r *fakeRecorder) ClearConnectionError() { r.connErr = false }

type fakeSource struct {
	bundle *pool.Bundle
	err    error
	calls  int
}

func (f *fakeSource) FetchBundle(_ context.Context, _ []string) (*pool.Bundle, error) {
	f.calls++
	return f.bundle, f.err
}

func testBundle() *pool.Bundle {
	return &pool.Bundle{
		LearnSets: []learnset.LearnSet{
			{ID: "s1", Title: "Tiere", Subject: "bio"},
		},
		Exercises: []learnset.Exercise{
			{ID: "e1", SetID: "s1", Question: "dog", Answer: "Hund", Answers: []string{"der Hund"}, Frequency: 1},
			{ID: "e2", SetID: "s1", Question: "cat", Answer: "Katze", Frequency: 1},
		},
		Stats: map[string]outcome.Counter{},
	}
}

func loggedIn(rnd *scripted) practicesession.SessionConfig {
	cfg := practicesession.DefaultConfig()
	cfg.Identity = practicesession.Identity{AccountID: "a1", Name: "Mia", Valid: true}
	cfg.Rand = rnd
	return cfg
}

func startSession(t *testing.T, rec practicesession.Recorder, cfg practicesession.SessionConfig) *practicesession.Session {
	t.Helper()
	s, err := practicesession.Start(context.Background(), &fakeSource{bundle: testBundle()}, []string{"s1"}, rec, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestStart_EmptyIDsFailsBeforeFetching(t *testing.T) {
	src := &fakeSource{bundle: testBundle()}

	_, err := practicesession.Start(context.Background(), src, nil, nil, practicesession.DefaultConfig())

	if !errors.Is(err, pool.ErrNoLearnSets) {
		t.Errorf("expected ErrNoLearnSets, got %v", err)
	}
	if src.calls != 0 {
		t.Errorf("expected no fetch, got %d", src.calls)
	}
}

func TestStart_FetchFailure(t *testing.T) {
	src := &fakeSource{err: errors.New("timeout")}

	s, err := practicesession.Start(context.Background(), src, []string{"s1"}, nil, practicesession.DefaultConfig())

	if !errors.Is(err, pool.ErrConnectivity) {
		t.Errorf("expected ErrConnectivity, got %v", err)
	}
	if s != nil {
		t.Error("expected no session on failure")
	}
}

func TestStart_EntersQuestion(t *testing.T) {
	s := startSession(t, nil, loggedIn(&scripted{values: []float64{0}}))

	if s.Phase() != practicesession.PhaseQuestion {
		t.Errorf("expected question phase, got %s", s.Phase())
	}
	if s.Current().ID != "e1" {
		t.Errorf("expected e1 for a zero draw, got %q", s.Current().ID)
	}
	if s.ID == "" {
		t.Error("expected session id")
	}

	snap := s.Snapshot()
	if snap.Question != "dog" {
		t.Errorf("expected question 'dog', got %q", snap.Question)
	}
	if snap.Stats.Total != 2 {
		t.Errorf("expected total 2, got %d", snap.Stats.Total)
	}
	if snap.CorrectAnswer != "" || snap.UserAnswer != "" {
		t.Error("expected no answer shown in question phase")
	}
}

func TestNew_StartsLoading(t *testing.T) {
	b := testBundle()
	p := pool.New(b.LearnSets, b.Exercises)

	s, err := practicesession.New(p, nil, nil, practicesession.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Phase() != practicesession.PhaseLoading {
		t.Errorf("expected loading phase, got %s", s.Phase())
	}

	if _, err := s.SubmitAnswer("Hund"); !errors.Is(err, practicesession.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
	if err := s.GradeManually(true); !errors.Is(err, practicesession.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}

	if err := s.SelectNext(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SelectNext(); !errors.Is(err, practicesession.ErrInvalidTransition) {
		t.Errorf("expected second SelectNext to fail, got %v", err)
	}
}

func TestNew_EmptyPool(t *testing.T) {
	_, err := practicesession.New(pool.New(nil, nil), nil, nil, practicesession.DefaultConfig())
	if !errors.Is(err, pool.ErrEmptyPool) {
		t.Errorf("expected ErrEmptyPool, got %v", err)
	}
}

func TestSubmitAnswer_CorrectStaysInQuestion(t *testing.T) {
	rec := &fakeRecorder{}
	s := startSession(t, rec, loggedIn(&scripted{values: []float64{0}}))

	correct, err := s.SubmitAnswer("Hund")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !correct {
		t.Fatal("expected answer to be correct")
	}
	if s.Phase() != practicesession.PhaseQuestion {
		t.Errorf("expected question phase, got %s", s.Phase())
	}

	c, ok := s.Counter("e1")
	if !ok || c.Correct != 1 || c.Wrong != 0 {
		t.Errorf("expected e1 {1 0}, got %+v (found=%v)", c, ok)
	}
	if len(rec.answers) != 1 {
		t.Fatalf("expected 1 recorded answer, got %d", len(rec.answers))
	}
	want := outcome.Answer{ExerciseID: "e1", Submitted: "Hund", Correct: true}
	if rec.answers[0] != want {
		t.Errorf("expected %+v, got %+v", want, rec.answers[0])
	}
}

func TestSubmitAnswer_AlternateAccepted(t *testing.T) {
	s := startSession(t, nil, loggedIn(&scripted{values: []float64{0}}))

	correct, _ := s.SubmitAnswer("der Hund")
	if !correct {
		t.Error("expected alternate answer to be accepted")
	}
}

func TestSubmitAnswer_WrongShowsAnswer(t *testing.T) {
	rec := &fakeRecorder{}
	s := startSession(t, rec, loggedIn(&scripted{values: []float64{0}}))

	correct, err := s.SubmitAnswer("hund")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if correct {
		t.Fatal("expected case-differing answer to be wrong")
	}
	if s.Phase() != practicesession.PhaseAnswer {
		t.Errorf("expected answer phase, got %s", s.Phase())
	}

	snap := s.Snapshot()
	if snap.CorrectAnswer != "Hund" {
		t.Errorf("expected correct answer 'Hund', got %q", snap.CorrectAnswer)
	}
	if snap.UserAnswer != "hund" {
		t.Errorf("expected user answer 'hund', got %q", snap.UserAnswer)
	}
	if _, ok := s.Counter("e1"); ok {
		t.Error("expected no counter update before self-grading")
	}
	if len(rec.answers) != 0 {
		t.Errorf("expected no recorder call, got %d", len(rec.answers))
	}
	if _, err := s.SubmitAnswer("Hund"); !errors.Is(err, practicesession.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestGradeManually_RecordsVerdict(t *testing.T) {
	tests := []struct {
		name    string
		verdict bool
		want    outcome.Counter
	}{
		{"accept own answer", true, outcome.Counter{Correct: 1}},
		{"reject own answer", false, outcome.Counter{Wrong: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeRecorder{}
			s := startSession(t, rec, loggedIn(&scripted{values: []float64{0}}))

			if _, err := s.SubmitAnswer("Hnud"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := s.GradeManually(tt.verdict); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if s.Phase() != practicesession.PhaseQuestion {
				t.Errorf("expected question phase, got %s", s.Phase())
			}
			if c, _ := s.Counter("e1"); c != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, c)
			}
			if len(rec.answers) != 1 {
				t.Fatalf("expected 1 recorded answer, got %d", len(rec.answers))
			}
			if rec.answers[0].Submitted != "Hnud" || rec.answers[0].Correct != tt.verdict {
				t.Errorf("unexpected recorded answer %+v", rec.answers[0])
			}
		})
	}
}

func TestGuestSessionDoesNotPersist(t *testing.T) {
	rec := &fakeRecorder{}
	cfg := practicesession.DefaultConfig()
	cfg.Rand = &scripted{values: []float64{0}}
	s := startSession(t, rec, cfg)

	if _, err := s.SubmitAnswer("Hund"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.answers) != 0 {
		t.Errorf("expected guest answers to stay local, got %d recorded", len(rec.answers))
	}
	if c, _ := s.Counter("e1"); c.Correct != 1 {
		t.Errorf("expected local counter to be updated, got %+v", c)
	}
}

func TestPersistenceSwitchedOff(t *testing.T) {
	rec := &fakeRecorder{}
	cfg := loggedIn(&scripted{values: []float64{0}})
	cfg.PersistAnswers = false
	s := startSession(t, rec, cfg)

	s.SubmitAnswer("Hund")

	if len(rec.answers) != 0 {
		t.Errorf("expected no recorder calls, got %d", len(rec.answers))
	}
}

func TestConnectionErrorIsNonFatal(t *testing.T) {
	rec := &fakeRecorder{failing: true}
	s := startSession(t, rec, loggedIn(&scripted{values: []float64{0}}))

	if _, err := s.SubmitAnswer("Hund"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Snapshot().ConnectionError {
		t.Error("expected connection error to be visible")
	}
	if s.Phase() != practicesession.PhaseQuestion {
		t.Errorf("expected session to continue, got %s", s.Phase())
	}

	// The next action clears the flag before it runs.
	rec.failing = false
	s.SubmitAnswer("Hund")
	if s.Snapshot().ConnectionError {
		t.Error("expected connection error to be cleared")
	}
}

func TestStatsReflectLocalAnswers(t *testing.T) {
	s := startSession(t, nil, loggedIn(&scripted{values: []float64{0}}))

	s.SubmitAnswer("Hund")
	s.SubmitAnswer("Hund")

	stats := s.Stats()
	if stats.Answered != 2 {
		t.Errorf("expected 2 answered, got %d", stats.Answered)
	}
	if stats.ProgressText() != "100" {
		t.Errorf("expected progress 100, got %s", stats.ProgressText())
	}
	if stats.GradeText() != "~6" {
		t.Errorf("expected grade ~6, got %s", stats.GradeText())
	}
	if !strings.HasPrefix(s.Snapshot().StatsText, "[BIO] Tiere\n") {
		t.Errorf("unexpected stats text %q", s.Snapshot().StatsText)
	}
}

func TestSelectionFollowsCounters(t *testing.T) {
	// e1 answered correctly gets weight 0.05 against 5 for unseen e2,
	// so a mid-wheel draw lands on e2.
	s := startSession(t, nil, loggedIn(&scripted{values: []float64{0, 0.5}}))

	s.SubmitAnswer("Hund")

	if s.Current().ID != "e2" {
		t.Errorf("expected e2, got %q", s.Current().ID)
	}
}

func TestPhaseString(t *testing.T) {
	tests := map[practicesession.Phase]string{
		practicesession.PhaseLoading:  "loading",
		practicesession.PhaseQuestion: "question",
		practicesession.PhaseAnswer:   "answer",
	}
	for p, want := range tests {
		if p.String() != want {
			t.Errorf("expected %q, got %q", want, p.String())
		}
	}
}
