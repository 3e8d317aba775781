package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ali-aktas/HocaLingo-sub002/internal/api/shared"
	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
	"github.com/ali-aktas/HocaLingo-sub002/internal/service/triage"
)

// TriageHandler handles the keep/discard triage endpoints.
type TriageHandler struct {
	triageService triage.Service
}

// NewTriageHandler creates a new TriageHandler with the given dependencies.
func NewTriageHandler(triageService triage.Service) *TriageHandler {
	return &TriageHandler{
		triageService: triageService,
	}
}

// LoadQueue handles POST /triage/packages/{packageID}/queue.
// It starts or restarts the user's triage session over the package.
func (h *TriageHandler) LoadQueue(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	packageID := chi.URLParam(r, "packageID")
	if packageID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Package ID required")
		return
	}

	state, err := h.triageService.LoadQueue(r.Context(), userID, packageID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, state)
}

// Decide handles POST /triage/decisions.
func (h *TriageHandler) Decide(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req DecideRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	state, err := h.triageService.Decide(
		r.Context(), userID, req.ConceptID, domain.TriageOutcome(req.Outcome))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, state)
}

// Undo handles POST /triage/undo.
func (h *TriageHandler) Undo(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	state, err := h.triageService.Undo(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, state)
}

// State handles GET /triage/state.
func (h *TriageHandler) State(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	state, err := h.triageService.State(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, state)
}

// Finish handles DELETE /triage/session.
func (h *TriageHandler) Finish(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.triageService.Finish(r.Context(), userID); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
