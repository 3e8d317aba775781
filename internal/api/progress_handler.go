package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ali-aktas/HocaLingo-sub002/internal/api/shared"
	"github.com/ali-aktas/HocaLingo-sub002/internal/service"
	"github.com/ali-aktas/HocaLingo-sub002/internal/service/progress"
)

// ProgressHandler handles the daily progress and statistics endpoints.
type ProgressHandler struct {
	progressService progress.Service
	deckService     service.DeckService
}

// NewProgressHandler creates a new ProgressHandler with the given dependencies.
func NewProgressHandler(
	progressService progress.Service,
	deckService service.DeckService,
) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
		deckService:     deckService,
	}
}

// AppOpen handles POST /progress/app-open.
// Clients call it on every launch; the day rollover is idempotent.
func (h *ProgressHandler) AppOpen(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	entry, err := h.progressService.RecordAppOpen(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entry)
}

// Summary handles GET /progress/summary.
func (h *ProgressHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.progressService.Summary(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// MonthlyStats handles GET /progress/stats?year=2024&month=6.
// Missing parameters default to the current local month.
func (h *ProgressHandler) MonthlyStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	now := time.Now()
	year := now.Year()
	month := now.Month()

	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid year")
			return
		}
		year = parsed
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid month")
			return
		}
		month = time.Month(parsed)
	}

	stats, err := h.progressService.MonthlyStats(r.Context(), userID, year, month)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// DeckStats handles GET /progress/deck?package_id=a1-basics&direction=front_to_back.
func (h *ProgressHandler) DeckStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	direction, ok := parseDirection(w, r)
	if !ok {
		return
	}

	stats, err := h.deckService.Stats(
		r.Context(), userID, r.URL.Query().Get("package_id"), direction)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}
