package practicesession

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ksalp/lernportal/internal/domain/learnset"
	"github.com/ksalp/lernportal/internal/domain/outcome"
	"github.com/ksalp/lernportal/internal/grader"
	"github.com/ksalp/lernportal/internal/pool"
	"github.com/ksalp/lernportal/internal/selection"
	"github.com/ksalp/lernportal/internal/summary"
)

var ErrInvalidTransition = errors.New("practice session: action not allowed in current phase")

// Phase gates which action a caller may take next.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseQuestion
	PhaseAnswer
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseQuestion:
		return "question"
	case PhaseAnswer:
		return "answer"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Recorder persists answers without blocking the session.
type Recorder interface {
	Submit(a outcome.Answer)
	ConnectionError() bool
	ClearConnectionError()
}

// Session drives one learner through a pool of exercises.
// It is not safe for concurrent use.
type Session struct {
	ID string

	pool     *pool.Pool
	tracker  *outcome.Tracker
	selector *selection.Selector
	grader   grader.Grader
	recorder Recorder
	cfg      SessionConfig
	logger   *slog.Logger

	phase          Phase
	current        learnset.Exercise
	lastUserAnswer string
	stats          summary.Statistics
}

// Snapshot is the plain data a front-end renders.
type Snapshot struct {
	SessionID       string
	Phase           Phase
	ExerciseID      string
	Question        string
	CorrectAnswer   string // set in PhaseAnswer only
	UserAnswer      string // set in PhaseAnswer only
	ConnectionError bool
	Stats           summary.Statistics
	StatsText       string
}

// New creates a session in PhaseLoading over an already loaded pool.
// rec may be nil, in which case outcomes are tracked locally only.
func New(p *pool.Pool, prior map[string]outcome.Counter, rec Recorder, cfg SessionConfig) (*Session, error) {
	if p == nil || p.Len() == 0 {
		return nil, pool.ErrEmptyPool
	}

	g := cfg.Grader
	if g == nil {
		g = grader.Exact{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Session{
		ID:       uuid.NewString(),
		pool:     p,
		tracker:  outcome.NewTracker(prior),
		selector: selection.New(cfg.Rand),
		grader:   g,
		recorder: rec,
		cfg:      cfg,
		logger:   logger,
		phase:    PhaseLoading,
	}, nil
}

// Start loads the bundle for the given learn sets and presents the first
// exercise. A load failure returns no session.
func Start(ctx context.Context, src pool.Source, learnSetIDs []string, rec Recorder, cfg SessionConfig) (*Session, error) {
	p, prior, err := pool.Load(ctx, src, learnSetIDs)
	if err != nil {
		return nil, err
	}

	s, err := New(p, prior, rec, cfg)
	if err != nil {
		return nil, err
	}
	if err := s.SelectNext(); err != nil {
		return nil, err
	}
	return s, nil
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Current returns the exercise on screen. It is the zero Exercise while loading.
func (s *Session) Current() learnset.Exercise {
	return s.current
}

// Stats returns the statistics of the last transition.
func (s *Session) Stats() summary.Statistics {
	return s.stats
}

// Counter returns the outcome counter of an exercise.
func (s *Session) Counter(exerciseID string) (outcome.Counter, bool) {
	return s.tracker.Lookup(exerciseID)
}

// Pool returns the exercise pool of the session.
func (s *Session) Pool() *pool.Pool {
	return s.pool
}

// SelectNext leaves PhaseLoading by drawing the first exercise.
func (s *Session) SelectNext() error {
	if s.phase != PhaseLoading {
		return fmt.Errorf("%w: select next in %s", ErrInvalidTransition, s.phase)
	}
	s.clearConnectionError()
	s.advance()
	return nil
}

// SubmitAnswer checks text against the current exercise. A correct answer
// is recorded and the next exercise is drawn right away. A wrong answer
// moves to PhaseAnswer without recording anything.
func (s *Session) SubmitAnswer(text string) (bool, error) {
	if s.phase != PhaseQuestion {
		return false, fmt.Errorf("%w: submit answer in %s", ErrInvalidTransition, s.phase)
	}
	s.clearConnectionError()
	s.lastUserAnswer = text

	if s.grader.IsCorrect(s.current, text) {
		s.record(true)
		s.advance()
		return true, nil
	}

	s.phase = PhaseAnswer
	s.refreshStats()
	return false, nil
}

// GradeManually records the learner's own verdict on the answer shown in
// PhaseAnswer and draws the next exercise.
func (s *Session) GradeManually(correct bool) error {
	if s.phase != PhaseAnswer {
		return fmt.Errorf("%w: grade manually in %s", ErrInvalidTransition, s.phase)
	}
	s.clearConnectionError()
	s.record(correct)
	s.advance()
	return nil
}

// Snapshot copies the state a front-end needs.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID:       s.ID,
		Phase:           s.phase,
		ExerciseID:      s.current.ID,
		Question:        s.current.Question,
		ConnectionError: s.recorder != nil && s.recorder.ConnectionError(),
		Stats:           s.stats,
		StatsText:       s.stats.String(),
	}
	if s.phase == PhaseAnswer {
		snap.CorrectAnswer = s.current.Answer
		snap.UserAnswer = s.lastUserAnswer
	}
	return snap
}

func (s *Session) record(correct bool) {
	s.tracker.RecordLocal(s.current.ID, correct)

	if s.recorder == nil || !s.cfg.persists() {
		return
	}
	s.recorder.Submit(outcome.Answer{
		ExerciseID: s.current.ID,
		Submitted:  s.lastUserAnswer,
		Correct:    correct,
	})
}

// advance draws the next exercise and enters PhaseQuestion. The pool is
// never empty, so a draw always succeeds.
func (s *Session) advance() {
	nextID, _ := s.selector.Next(s.pool.Exercises(), s.tracker)
	s.current, _ = s.pool.Exercise(nextID)
	s.lastUserAnswer = ""
	s.phase = PhaseQuestion
	s.refreshStats()

	s.logger.Debug("exercise selected",
		"session_id", s.ID,
		"exercise_id", s.current.ID,
	)
}

func (s *Session) refreshStats() {
	s.stats = summary.Compute(s.pool, s.tracker, s.current.ID, s.cfg.MaxLineLength)
}

func (s *Session) clearConnectionError() {
	if s.recorder != nil {
		s.recorder.ClearConnectionError()
	}
}
