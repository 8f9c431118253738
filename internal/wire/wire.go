// Package wire holds the JSON shapes exchanged between the portal backend
// and its clients.
package wire

import (
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/ksalp/lernportal/internal/domain/learnset"
	"github.com/ksalp/lernportal/internal/domain/outcome"
)

// DateFormat is the layout of created/edited timestamps.
const DateFormat = "2006-01-02 15:04:05"

const StatusSuccess = "success"

type LearnSet struct {
	ID          string `json:"id_" example:"Xk3-9aQ_b2Lm"`
	Title       string `json:"title" example:"Tiere"`
	Subject     string `json:"subject" example:"bio"`
	Description string `json:"description"`
	Class       string `json:"class_" example:"7b"`
	Grade       string `json:"grade" example:"-"`
	Language    string `json:"language" example:"-"`
	Owner       string `json:"owner"`
	OwnerName   string `json:"owner_name"`
	Edited      string `json:"edited" example:"2024-03-01 12:00:00"`
	Created     string `json:"created" example:"2024-03-01 12:00:00"`
	Size        int    `json:"size" example:"12"`
}

type Exercise struct {
	ID        string   `json:"id_"`
	SetID     string   `json:"set_id"`
	Question  string   `json:"question" example:"dog"`
	Answer    string   `json:"answer" example:"Hund"`
	Answers   []string `json:"answers"`
	Frequency float64  `json:"frequency" example:"1"`
	AutoCheck int      `json:"auto_check" example:"0"`
}

// UnmarshalJSON defaults a missing or null frequency to
// learnset.DefaultFrequency.
func (e *Exercise) UnmarshalJSON(data []byte) error {
	type exercise Exercise
	aux := exercise{Frequency: math.NaN()}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if math.IsNaN(aux.Frequency) {
		aux.Frequency = learnset.DefaultFrequency
	}
	*e = Exercise(aux)
	return nil
}

// LearnStat is one learner's history for one exercise.
type LearnStat struct {
	ID         string `json:"id_"`
	ExerciseID string `json:"exercise_id"`
	Owner      string `json:"owner"`
	Correct    int    `json:"correct"`
	Wrong      int    `json:"wrong"`
}

type BulkResponse struct {
	Status    string               `json:"status"`
	Message   string               `json:"message"`
	LearnSets []LearnSet           `json:"learnsets"`
	Exercises []Exercise           `json:"exercises"`
	Stats     map[string]LearnStat `json:"stats"`
}

type DataResponse struct {
	Status    string     `json:"status"`
	Message   string     `json:"message"`
	LearnSet  LearnSet   `json:"learnset"`
	Exercises []Exercise `json:"exercises"`
}

type ListResponse struct {
	Status    string     `json:"status"`
	Message   string     `json:"message"`
	LearnSets []LearnSet `json:"learnsets"`
}

// AnswerRequest is the body of the answer endpoint. Pointer fields tell a
// missing field apart from its zero value.
type AnswerRequest struct {
	Answer *string `json:"answer"`
	Value  *bool   `json:"value"`
}

func (r *AnswerRequest) Validate() error {
	if r.Answer == nil || r.Value == nil {
		return errors.New("required fields missing: `answer`, `value`")
	}
	return nil
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type AccountInfo struct {
	Name    string   `json:"name"`
	Classes []string `json:"classes"`
	Answers int      `json:"answers"`
}

type AccountResponse struct {
	Valid bool         `json:"valid"`
	Info  *AccountInfo `json:"info"`
}

// ── Conversions ─────────────────────────────────────────────────────────────

func FromLearnSet(ls learnset.LearnSet) LearnSet {
	return LearnSet{
		ID:          ls.ID,
		Title:       ls.Title,
		Subject:     ls.Subject,
		Description: ls.Description,
		Class:       ls.Class,
		Grade:       ls.Grade,
		Language:    ls.Language,
		Owner:       ls.OwnerID,
		OwnerName:   ls.OwnerName,
		Edited:      formatTime(ls.Edited),
		Created:     formatTime(ls.Created),
		Size:        ls.Size,
	}
}

// Domain converts the DTO. Unparseable timestamps become the zero time.
func (l LearnSet) Domain() learnset.LearnSet {
	return learnset.LearnSet{
		ID:          l.ID,
		Title:       l.Title,
		Subject:     l.Subject,
		Description: l.Description,
		Class:       l.Class,
		Grade:       l.Grade,
		Language:    l.Language,
		OwnerID:     l.Owner,
		OwnerName:   l.OwnerName,
		Edited:      parseTime(l.Edited),
		Created:     parseTime(l.Created),
		Size:        l.Size,
	}
}

func FromExercise(e learnset.Exercise) Exercise {
	answers := e.Answers
	if answers == nil {
		answers = []string{}
	}
	return Exercise{
		ID:        e.ID,
		SetID:     e.SetID,
		Question:  e.Question,
		Answer:    e.Answer,
		Answers:   answers,
		Frequency: e.Frequency,
		AutoCheck: e.AutoCheck,
	}
}

func (e Exercise) Domain() learnset.Exercise {
	return learnset.Exercise{
		ID:        e.ID,
		SetID:     e.SetID,
		Question:  e.Question,
		Answer:    e.Answer,
		Answers:   e.Answers,
		Frequency: e.Frequency,
		AutoCheck: e.AutoCheck,
	}
}

func (s LearnStat) Counter() outcome.Counter {
	return outcome.Counter{Correct: s.Correct, Wrong: s.Wrong}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateFormat)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
