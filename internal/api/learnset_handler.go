package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ksalp/lernportal/internal/domain/learnset"
	"github.com/ksalp/lernportal/internal/domain/outcome"
	"github.com/ksalp/lernportal/internal/metrics"
	"github.com/ksalp/lernportal/internal/store"
	"github.com/ksalp/lernportal/internal/wire"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateExerciseRequest struct {
	Question  string   `json:"question" example:"dog"`
	Answer    string   `json:"answer" example:"Hund"`
	Answers   []string `json:"answers,omitempty"`
	Frequency *float64 `json:"frequency,omitempty" example:"1"`
	AutoCheck int      `json:"auto_check" example:"0"`
}

type CreateLearnSetRequest struct {
	Title       string                  `json:"title" example:"Tiere"`
	Subject     string                  `json:"subject" example:"bio"`
	Description string                  `json:"description"`
	Class       string                  `json:"class_" example:"7b"`
	Grade       string                  `json:"grade,omitempty" example:"-"`
	Language    string                  `json:"language,omitempty" example:"-"`
	Exercises   []CreateExerciseRequest `json:"exercises"`
}

func (r *CreateLearnSetRequest) Validate() error {
	if r.Title == "" {
		return errors.New("title is required")
	}
	if r.Subject == "" {
		return errors.New("subject is required")
	}
	for _, e := range r.Exercises {
		if e.Question == "" || e.Answer == "" {
			return errors.New("every exercise needs a question and an answer")
		}
		if e.Frequency != nil && *e.Frequency < 0 {
			return errors.New("frequency must not be negative")
		}
	}
	return nil
}

type CreateLearnSetResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message"`
	ID      string `json:"id_" example:"Xk3-9aQ_b2Lm"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// getBulk returns several learn sets with their exercises and, for a
// signed-in caller, the caller's learn stats.
// @Summary      Load learn sets for a session
// @Description  Ids are joined with '.'. Exercises are grouped by set in request order.
// @Tags         LearnSets
// @Produce      json
// @Param        ids   path      string  true  "Learn set ids joined with '.'"
// @Success      200   {object}  wire.BulkResponse
// @Failure      404   {object}  wire.ErrorResponse
// @Router       /api/v1/learnsets/bulk/{ids} [get]
func (h *Handler) getBulk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ids := strings.Split(r.PathValue("ids"), ".")
	for _, id := range ids {
		if id == "" {
			respondError(w, http.StatusNotFound, "learnsets not found", "The requested learnsets could not be found.")
			return
		}
	}

	owner := ""
	if claims, ok := claimsFrom(ctx); ok {
		owner = claims.AccountID
	}

	bundle, err := h.store.GetBundle(ctx, ids, owner)
	if errors.Is(err, store.ErrStatsUnavailable) {
		h.logger.Error("serving bundle without stats", "owner", owner, "error", err)
		err = nil
	}
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "learnsets not found", "The requested learnsets could not be found.")
		return
	}
	if h.handleStoreError(w, err, "learnsets") {
		return
	}

	resp := wire.BulkResponse{
		Status:    wire.StatusSuccess,
		Message:   "learnsets retrieved successfully.",
		LearnSets: make([]wire.LearnSet, len(bundle.LearnSets)),
		Exercises: make([]wire.Exercise, len(bundle.Exercises)),
		Stats:     make(map[string]wire.LearnStat, len(bundle.Stats)),
	}
	for i, ls := range bundle.LearnSets {
		resp.LearnSets[i] = wire.FromLearnSet(ls)
	}
	for i, e := range bundle.Exercises {
		resp.Exercises[i] = wire.FromExercise(e)
	}
	for exerciseID, c := range bundle.Stats {
		resp.Stats[exerciseID] = wire.LearnStat{
			ExerciseID: exerciseID,
			Owner:      owner,
			Correct:    c.Correct,
			Wrong:      c.Wrong,
		}
	}

	metrics.BundleServed(len(bundle.Exercises))
	respondJSON(w, http.StatusOK, resp)
}

// postAnswer records one answer of the signed-in caller.
// @Summary      Record an answer
// @Description  Increments the caller's correct or wrong count for the exercise.
// @Tags         LearnSets
// @Accept       json
// @Produce      json
// @Param        exerciseID  path      string              true  "Exercise ID"
// @Param        body        body      wire.AnswerRequest  true  "Submitted answer and verdict"
// @Success      200         {object}  wire.StatusResponse
// @Failure      401         {object}  wire.ErrorResponse
// @Failure      404         {object}  wire.ErrorResponse
// @Failure      415         {object}  wire.ErrorResponse
// @Router       /api/v1/learnsets/answer/{exerciseID} [post]
func (h *Handler) postAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, _ := claimsFrom(ctx)

	var req wire.AnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.store.RecordAnswer(ctx, claims.AccountID, outcome.Answer{
		ExerciseID: r.PathValue("exerciseID"),
		Submitted:  *req.Answer,
		Correct:    *req.Value,
	})
	if h.handleStoreError(w, err, "exercise") {
		return
	}

	metrics.AnswerRecorded(*req.Value)
	respondJSON(w, http.StatusOK, wire.StatusResponse{
		Status:  wire.StatusSuccess,
		Message: "The statistics have been updated.",
	})
}

// getLearnSet returns one learn set with its exercises.
// @Summary      Get a learn set
// @Tags         LearnSets
// @Produce      json
// @Param        id   path      string  true  "Learn set ID"
// @Success      200  {object}  wire.DataResponse
// @Failure      404  {object}  wire.ErrorResponse
// @Router       /api/v1/learnsets/data/{id} [get]
func (h *Handler) getLearnSet(w http.ResponseWriter, r *http.Request) {
	ls, err := h.store.GetLearnSet(r.Context(), r.PathValue("id"))
	if h.handleStoreError(w, err, "learnset") {
		return
	}

	resp := wire.DataResponse{
		Status:    wire.StatusSuccess,
		Message:   "learnset retrieved successfully.",
		LearnSet:  wire.FromLearnSet(*ls),
		Exercises: make([]wire.Exercise, len(ls.Exercises)),
	}
	for i, e := range ls.Exercises {
		resp.Exercises[i] = wire.FromExercise(e)
	}
	respondJSON(w, http.StatusOK, resp)
}

// deleteLearnSet removes a learn set and its exercises. Only the owner may
// delete it.
// @Summary      Delete a learn set
// @Tags         LearnSets
// @Produce      json
// @Param        id   path      string  true  "Learn set ID"
// @Success      200  {object}  wire.StatusResponse
// @Failure      401  {object}  wire.ErrorResponse
// @Failure      403  {object}  wire.ErrorResponse
// @Failure      404  {object}  wire.ErrorResponse
// @Router       /api/v1/learnsets/{id} [delete]
func (h *Handler) deleteLearnSet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, _ := claimsFrom(ctx)

	ls, err := h.store.GetLearnSet(ctx, r.PathValue("id"))
	if h.handleStoreError(w, err, "learnset") {
		return
	}
	if ls.OwnerID != claims.AccountID {
		respondError(w, http.StatusForbidden, "forbidden", "Only the owner can delete this learnset.")
		return
	}

	if h.handleStoreError(w, h.store.DeleteLearnSet(ctx, ls.ID), "learnset") {
		return
	}
	h.logger.Info("learnset deleted", "id", ls.ID, "owner", claims.AccountID)
	respondJSON(w, http.StatusOK, wire.StatusResponse{
		Status:  wire.StatusSuccess,
		Message: "Learnset deleted successfully.",
	})
}

// listLearnSets lists all learn sets.
// @Summary      List learn sets
// @Tags         LearnSets
// @Produce      json
// @Success      200  {object}  wire.ListResponse
// @Failure      500  {object}  wire.ErrorResponse
// @Router       /api/v1/learnsets/list [get]
func (h *Handler) listLearnSets(w http.ResponseWriter, r *http.Request) {
	sets, err := h.store.ListLearnSets(r.Context())
	if h.handleStoreError(w, err, "learnsets") {
		return
	}

	resp := wire.ListResponse{
		Status:    wire.StatusSuccess,
		Message:   "learnsets retrieved successfully.",
		LearnSets: make([]wire.LearnSet, len(sets)),
	}
	for i, ls := range sets {
		resp.LearnSets[i] = wire.FromLearnSet(ls)
	}
	respondJSON(w, http.StatusOK, resp)
}

// createLearnSet creates a learn set owned by the caller.
// @Summary      Create a learn set
// @Tags         LearnSets
// @Accept       json
// @Produce      json
// @Param        body  body      CreateLearnSetRequest  true  "Learn set with exercises"
// @Success      201   {object}  CreateLearnSetResponse
// @Failure      401   {object}  wire.ErrorResponse
// @Failure      415   {object}  wire.ErrorResponse
// @Router       /api/v1/learnsets [post]
func (h *Handler) createLearnSet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, _ := claimsFrom(ctx)

	var req CreateLearnSetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ls := learnset.New(req.Title, req.Subject, claims.AccountID)
	ls.Description = req.Description
	ls.Class = req.Class
	if req.Grade != "" {
		ls.Grade = req.Grade
	}
	if req.Language != "" {
		ls.Language = req.Language
	}
	for _, e := range req.Exercises {
		if err := ls.AddExercise(e.Question, e.Answer, e.Answers...); err != nil {
			respondError(w, http.StatusUnsupportedMediaType, "missing fields", err.Error())
			return
		}
		last := &ls.Exercises[len(ls.Exercises)-1]
		if e.Frequency != nil {
			last.Frequency = *e.Frequency
		}
		last.AutoCheck = e.AutoCheck
	}

	if err := h.saveAccount(r, claims.AccountID, claims.Name, claims.Classes); err != nil {
		h.logger.Warn("failed to refresh account", "account_id", claims.AccountID, "error", err)
	}
	if err := h.store.SaveLearnSet(ctx, ls); err != nil {
		h.logger.Error("failed to save learnset", "title", ls.Title, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error", "The learnset could not be saved.")
		return
	}

	respondJSON(w, http.StatusCreated, CreateLearnSetResponse{
		Status:  wire.StatusSuccess,
		Message: "Learnset created successfully.",
		ID:      ls.ID,
	})
}

func (h *Handler) saveAccount(r *http.Request, id, name string, classes []string) error {
	return h.store.SaveAccount(r.Context(), store.Account{ID: id, Name: name, Classes: classes})
}
