package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ksalp/lernportal/internal/importer"
	"github.com/ksalp/lernportal/internal/wire"
)

// ── Handlers ────────────────────────────────────────────────────────────────

// exportAll writes every learn set with its exercises as one JSON file.
// @Summary      Export learn sets
// @Tags         Export
// @Produce      json
// @Success      200  {object}  wire.ExportData
// @Failure      500  {object}  wire.ErrorResponse
// @Router       /api/v1/export [get]
func (h *Handler) exportAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sets, err := h.store.ListLearnSets(ctx)
	if h.handleStoreError(w, err, "learnsets") {
		return
	}

	exportData := wire.ExportData{
		Version:    wire.ExportVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		LearnSets:  make([]wire.ExportSet, 0, len(sets)),
	}

	for _, s := range sets {
		full, err := h.store.GetLearnSet(ctx, s.ID)
		if err != nil {
			h.logger.Error("failed to load learnset for export", "learnset_id", s.ID, "error", err)
			continue
		}

		exportSet := wire.ExportSet{
			LearnSet:  wire.FromLearnSet(*full),
			Exercises: make([]wire.Exercise, len(full.Exercises)),
		}
		for i, e := range full.Exercises {
			exportSet.Exercises[i] = wire.FromExercise(e)
		}
		exportData.LearnSets = append(exportData.LearnSets, exportSet)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=lernportal-export.json")
	json.NewEncoder(w).Encode(exportData)
}

// importAll creates copies of the exported learn sets, owned by the caller.
// @Summary      Import learn sets
// @Tags         Export
// @Accept       json
// @Produce      json
// @Param        body  body      wire.ExportData  true  "Export file"
// @Success      201   {object}  wire.ImportResult
// @Failure      401   {object}  wire.ErrorResponse
// @Failure      415   {object}  wire.ErrorResponse
// @Router       /api/v1/import [post]
func (h *Handler) importAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, _ := claimsFrom(ctx)

	var importData wire.ExportData
	if err := json.NewDecoder(r.Body).Decode(&importData); err != nil {
		respondError(w, http.StatusUnsupportedMediaType, "json parse error", "JSON object could not be parsed.")
		return
	}

	if err := h.saveAccount(r, claims.AccountID, claims.Name, claims.Classes); err != nil {
		h.logger.Warn("failed to refresh account", "account_id", claims.AccountID, "error", err)
	}

	var result wire.ImportResult
	for _, ls := range importer.FromExport(importData, claims.AccountID) {
		if err := h.store.SaveLearnSet(ctx, ls); err != nil {
			h.logger.Error("failed to import learnset", "title", ls.Title, "error", err)
			continue
		}
		result.LearnSetsCreated++
		result.ExercisesCreated += len(ls.Exercises)
	}

	respondJSON(w, http.StatusCreated, result)
}
