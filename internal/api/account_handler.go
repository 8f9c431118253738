package api

import (
	"net/http"

	"github.com/ksalp/lernportal/internal/wire"
)

// getAccount reports who the bearer token belongs to.
// @Summary      Current account
// @Description  Guests get {"valid": false, "info": null}.
// @Tags         Account
// @Produce      json
// @Success      200  {object}  wire.AccountResponse
// @Router       /api/v1/account [get]
func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		respondJSON(w, http.StatusOK, wire.AccountResponse{Valid: false})
		return
	}

	info := &wire.AccountInfo{Name: claims.Name, Classes: claims.Classes}
	if acc, err := h.store.GetAccount(r.Context(), claims.AccountID); err == nil {
		info.Name = acc.Name
		info.Classes = acc.Classes
	}
	answers, err := h.store.CountAnswers(r.Context(), claims.AccountID)
	if err != nil {
		h.logger.Warn("failed to count answers", "account", claims.AccountID, "error", err)
	}
	info.Answers = answers
	if info.Classes == nil {
		info.Classes = []string{}
	}
	respondJSON(w, http.StatusOK, wire.AccountResponse{Valid: true, Info: info})
}
