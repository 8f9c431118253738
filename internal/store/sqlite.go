// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ksalp/lernportal/internal/domain/learnset"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    classes TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS learnsets (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    subject TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    class TEXT NOT NULL DEFAULT '',
    grade TEXT NOT NULL DEFAULT '-',
    language TEXT NOT NULL DEFAULT '-',
    owner TEXT NOT NULL DEFAULT '',
    edited TEXT NOT NULL,
    created TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS exercises (
    id TEXT PRIMARY KEY,
    set_id TEXT NOT NULL,
    question TEXT NOT NULL,
    answer TEXT NOT NULL,
    answers TEXT NOT NULL DEFAULT '[]',
    frequency REAL NOT NULL DEFAULT 1.0,
    auto_check INTEGER NOT NULL DEFAULT 0,
    position INTEGER NOT NULL,
    FOREIGN KEY (set_id) REFERENCES learnsets(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_exercises_set ON exercises(set_id, position);

CREATE TABLE IF NOT EXISTS learn_stats (
    id TEXT PRIMARY KEY,
    exercise_id TEXT NOT NULL,
    owner TEXT NOT NULL,
    correct INTEGER NOT NULL DEFAULT 0,
    wrong INTEGER NOT NULL DEFAULT 0,
    UNIQUE (exercise_id, owner)
);

CREATE TABLE IF NOT EXISTS answer_log (
    id TEXT PRIMARY KEY,
    exercise_id TEXT NOT NULL,
    owner TEXT NOT NULL,
    answer TEXT NOT NULL,
    correct INTEGER NOT NULL,
    answered_at TEXT NOT NULL
);
`

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens or creates the database at dbPath and applies the schema.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// One connection keeps :memory: databases and pragmas consistent.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping reports whether the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ============================================================================
// Learn sets
// ============================================================================

// SaveLearnSet inserts a learn set together with its exercises.
func (s *SQLiteStore) SaveLearnSet(ctx context.Context, ls *learnset.LearnSet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO learnsets (id, title, subject, description, class, grade, language, owner, edited, created)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ls.ID, ls.Title, ls.Subject, ls.Description, ls.Class, ls.Grade, ls.Language, ls.OwnerID,
		formatTime(ls.Edited), formatTime(ls.Created),
	)
	if err != nil {
		return err
	}

	for i, e := range ls.Exercises {
		answers, err := json.Marshal(nonNil(e.Answers))
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO exercises (id, set_id, question, answer, answers, frequency, auto_check, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, ls.ID, e.Question, e.Answer, string(answers), e.Frequency, e.AutoCheck, i,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

const learnSetColumns = `
	l.id, l.title, l.subject, l.description, l.class, l.grade, l.language, l.owner,
	COALESCE(a.name, ''), l.edited, l.created,
	(SELECT COUNT(*) FROM exercises e WHERE e.set_id = l.id)`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLearnSet(row rowScanner) (learnset.LearnSet, error) {
	var ls learnset.LearnSet
	var edited, created string
	err := row.Scan(
		&ls.ID, &ls.Title, &ls.Subject, &ls.Description, &ls.Class, &ls.Grade, &ls.Language,
		&ls.OwnerID, &ls.OwnerName, &edited, &created, &ls.Size,
	)
	if err != nil {
		return learnset.LearnSet{}, err
	}
	ls.Edited = parseTime(edited)
	ls.Created = parseTime(created)
	return ls, nil
}

// GetLearnSet loads a learn set with its exercises in authoring order.
func (s *SQLiteStore) GetLearnSet(ctx context.Context, id string) (*learnset.LearnSet, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+learnSetColumns+" FROM learnsets l LEFT JOIN accounts a ON a.id = l.owner WHERE l.id = ?", id)
	ls, err := scanLearnSet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	ls.Exercises, err = s.listExercises(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ls, nil
}

// ListLearnSets returns every learn set without exercises, newest first.
func (s *SQLiteStore) ListLearnSets(ctx context.Context) ([]learnset.LearnSet, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+learnSetColumns+" FROM learnsets l LEFT JOIN accounts a ON a.id = l.owner ORDER BY l.created DESC, l.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []learnset.LearnSet
	for rows.Next() {
		ls, err := scanLearnSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, ls)
	}
	return sets, rows.Err()
}

// DeleteLearnSet removes a learn set and its exercises.
func (s *SQLiteStore) DeleteLearnSet(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM learnsets WHERE id = ?", id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) listExercises(ctx context.Context, setID string) ([]learnset.Exercise, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, set_id, question, answer, answers, frequency, auto_check
		FROM exercises WHERE set_id = ? ORDER BY position`, setID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := []learnset.Exercise{}
	for rows.Next() {
		var e learnset.Exercise
		var answers string
		if err := rows.Scan(&e.ID, &e.SetID, &e.Question, &e.Answer, &answers, &e.Frequency, &e.AutoCheck); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(answers), &e.Answers); err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now().UTC()
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
