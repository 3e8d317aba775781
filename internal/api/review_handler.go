package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ali-aktas/HocaLingo-sub002/internal/api/shared"
	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
	"github.com/ali-aktas/HocaLingo-sub002/internal/service/review"
)

// defaultDueLimit bounds the due queue response when the client does not
// pass an explicit limit.
const defaultDueLimit = 50

// ReviewHandler handles the spaced repetition study endpoints.
type ReviewHandler struct {
	reviewService review.Service
}

// NewReviewHandler creates a new ReviewHandler with the given dependencies.
func NewReviewHandler(reviewService review.Service) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// Due handles GET /reviews/due?direction=front_to_back&limit=20.
func (h *ReviewHandler) Due(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	direction, ok := parseDirection(w, r)
	if !ok {
		return
	}

	limit := defaultDueLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	due, err := h.reviewService.DueConcepts(r.Context(), userID, direction, limit)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, due)
}

// Grade handles POST /reviews/grades.
func (h *ReviewHandler) Grade(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req GradeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.reviewService.SubmitGrade(
		r.Context(),
		userID,
		req.ConceptID,
		domain.StudyDirection(req.Direction),
		domain.ReviewGrade(req.Grade),
		time.Duration(req.ElapsedMs)*time.Millisecond,
	)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// Postpone handles POST /reviews/postpone.
func (h *ReviewHandler) Postpone(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req PostponeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	progress, err := h.reviewService.Postpone(
		r.Context(), userID, req.ConceptID, domain.StudyDirection(req.Direction), req.Days)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, progress)
}

// parseDirection reads the direction query parameter, defaulting to
// front_to_back. Returns false when the response has been written.
func parseDirection(w http.ResponseWriter, r *http.Request) (domain.StudyDirection, bool) {
	raw := r.URL.Query().Get("direction")
	if raw == "" {
		return domain.DirectionFrontToBack, true
	}

	direction := domain.StudyDirection(raw)
	switch direction {
	case domain.DirectionFrontToBack, domain.DirectionBackToFront:
		return direction, true
	default:
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid direction")
		return "", false
	}
}
