package learnset

import (
	"errors"
	"strings"
	"time"

	"github.com/ksalp/lernportal/internal/id"
)

// DefaultFrequency is the weight an exercise gets when its author did not set one.
const DefaultFrequency = 1.0

// LearnSet is an author-curated collection of exercises on one subject.
type LearnSet struct {
	ID          string
	Title       string
	Subject     string
	Description string
	Class       string
	Grade       string
	Language    string
	OwnerID     string
	OwnerName   string
	Created     time.Time
	Edited      time.Time
	Size        int // number of exercises, as reported by the backend

	// Exercises is only populated while authoring or importing a set.
	// Sessions keep exercises in the pool, not on the set.
	Exercises []Exercise
}

// Exercise is a single question/answer card of a learn set.
type Exercise struct {
	ID        string
	SetID     string
	Question  string
	Answer    string
	Answers   []string // accepted alternatives to Answer
	Frequency float64  // author-assigned relative weight, >= 0
	AutoCheck int      // carried through unchanged; not interpreted by sessions
}

func New(title, subject, ownerID string) *LearnSet {
	now := time.Now().UTC()
	return &LearnSet{
		ID:        id.GenerateID(),
		Title:     title,
		Subject:   subject,
		Grade:     "-",
		Language:  "-",
		OwnerID:   ownerID,
		Created:   now,
		Edited:    now,
		Exercises: []Exercise{},
	}
}

// Label formats the set as "[SUBJECT] Title".
func (ls *LearnSet) Label() string {
	return "[" + strings.ToUpper(ls.Subject) + "] " + ls.Title
}

func (ls *LearnSet) AddExercise(question, answer string, alternates ...string) error {
	if question == "" {
		return errors.New("exercise question cannot be empty")
	}
	if answer == "" {
		return errors.New("exercise answer cannot be empty")
	}

	answers := make([]string, len(alternates))
	copy(answers, alternates)

	ls.Exercises = append(ls.Exercises, Exercise{
		ID:        id.GenerateID(),
		SetID:     ls.ID,
		Question:  question,
		Answer:    answer,
		Answers:   answers,
		Frequency: DefaultFrequency,
	})
	ls.Size = len(ls.Exercises)
	ls.Edited = time.Now().UTC()
	return nil
}
