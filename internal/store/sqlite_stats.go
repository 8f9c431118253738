package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ksalp/lernportal/internal/domain/learnset"
	"github.com/ksalp/lernportal/internal/domain/outcome"
	"github.com/ksalp/lernportal/internal/pool"
)

// ============================================================================
// Accounts
// ============================================================================

// SaveAccount inserts an account or refreshes its name and classes.
func (s *SQLiteStore) SaveAccount(ctx context.Context, a Account) error {
	classes, err := json.Marshal(nonNil(a.Classes))
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, name, classes) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, classes = excluded.classes`,
		a.ID, a.Name, string(classes),
	)
	return err
}

func (s *SQLiteStore) GetAccount(ctx context.Context, id string) (*Account, error) {
	var a Account
	var classes string
	err := s.db.QueryRowContext(ctx, "SELECT id, name, classes FROM accounts WHERE id = ?", id).
		Scan(&a.ID, &a.Name, &classes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(classes), &a.Classes); err != nil {
		return nil, err
	}
	return &a, nil
}

// ============================================================================
// Bundles and learn stats
// ============================================================================

// GetBundle loads the learn sets in the given order with their exercises
// grouped by set. Stats are filled in for a non-empty owner only. Any
// unknown id fails the whole call with ErrNotFound. When the stats cannot
// be read the bundle is still returned, without stats, together with an
// error wrapping ErrStatsUnavailable.
func (s *SQLiteStore) GetBundle(ctx context.Context, ids []string, owner string) (*pool.Bundle, error) {
	bundle := &pool.Bundle{
		LearnSets: make([]learnset.LearnSet, 0, len(ids)),
		Exercises: []learnset.Exercise{},
		Stats:     map[string]outcome.Counter{},
	}

	for _, id := range ids {
		ls, err := s.GetLearnSet(ctx, id)
		if err != nil {
			return nil, err
		}
		bundle.Exercises = append(bundle.Exercises, ls.Exercises...)
		ls.Exercises = nil
		bundle.LearnSets = append(bundle.LearnSets, *ls)
	}

	if owner == "" {
		return bundle, nil
	}

	for _, e := range bundle.Exercises {
		c, err := s.GetLearnStat(ctx, e.ID, owner)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			bundle.Stats = map[string]outcome.Counter{}
			return bundle, fmt.Errorf("%w: %w", ErrStatsUnavailable, err)
		}
		bundle.Stats[e.ID] = c
	}
	return bundle, nil
}

// GetLearnStat returns an owner's counters for one exercise.
func (s *SQLiteStore) GetLearnStat(ctx context.Context, exerciseID, owner string) (outcome.Counter, error) {
	var c outcome.Counter
	err := s.db.QueryRowContext(ctx,
		"SELECT correct, wrong FROM learn_stats WHERE exercise_id = ? AND owner = ?", exerciseID, owner).
		Scan(&c.Correct, &c.Wrong)
	if errors.Is(err, sql.ErrNoRows) {
		return outcome.Counter{}, ErrNotFound
	}
	return c, err
}

// RecordAnswer bumps the owner's learn stat row for the exercise, creating
// it on the first answer, and appends the answer to the log.
func (s *SQLiteStore) RecordAnswer(ctx context.Context, owner string, a outcome.Answer) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM exercises WHERE id = ?", a.ExerciseID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	correct, wrong := 0, 1
	if a.Correct {
		correct, wrong = 1, 0
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO learn_stats (id, exercise_id, owner, correct, wrong) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (exercise_id, owner) DO UPDATE SET
			correct = correct + excluded.correct,
			wrong = wrong + excluded.wrong`,
		uuid.NewString(), a.ExerciseID, owner, correct, wrong,
	)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO answer_log (id, exercise_id, owner, answer, correct, answered_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), a.ExerciseID, owner, a.Submitted, a.Correct, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// CountAnswers returns how many answers an owner has logged.
func (s *SQLiteStore) CountAnswers(ctx context.Context, owner string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM answer_log WHERE owner = ?", owner).Scan(&n)
	return n, err
}

// ============================================================================
// Account view
// ============================================================================

// AccountView binds the store to one learner so it can stand in for the
// remote portal during offline sessions.
type AccountView struct {
	store  *SQLiteStore
	owner  string
	logger *slog.Logger
}

// ForAccount returns a view for owner. An empty owner behaves like a guest.
// A nil logger discards.
func (s *SQLiteStore) ForAccount(owner string, logger *slog.Logger) *AccountView {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AccountView{store: s, owner: owner, logger: logger}
}

// FetchBundle serves the bundle without prior stats when only the stats
// fail to load.
func (v *AccountView) FetchBundle(ctx context.Context, learnSetIDs []string) (*pool.Bundle, error) {
	bundle, err := v.store.GetBundle(ctx, learnSetIDs, v.owner)
	if errors.Is(err, ErrStatsUnavailable) {
		v.logger.Error("failed to load learn stats", "owner", v.owner, "error", err)
		return bundle, nil
	}
	return bundle, err
}

func (v *AccountView) RecordAnswer(ctx context.Context, a outcome.Answer) error {
	return v.store.RecordAnswer(ctx, v.owner, a)
}
