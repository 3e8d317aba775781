package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
	"github.com/ali-aktas/HocaLingo-sub002/internal/store"
)

// DeckStats summarizes the state of a user's deck. A concept is counted
// once per selection status; the phase counts break the selected concepts
// down by scheduling phase in the given direction.
type DeckStats struct {
	// PackageID scopes the selection counts; empty means all packages.
	PackageID string `json:"package_id,omitempty"`

	Selected int `json:"selected"`
	Hidden   int `json:"hidden"`
	Mastered int `json:"mastered"`

	Learning int `json:"learning"`
	Review   int `json:"review"`
}

// DeckService reports deck composition for the statistics screens.
type DeckService interface {
	// Stats returns the user's deck statistics, optionally scoped to one
	// package. Phase counts always cover the whole deck in the given
	// direction because scheduling state is not package-scoped.
	Stats(
		ctx context.Context,
		userID uuid.UUID,
		packageID string,
		direction domain.StudyDirection,
	) (*DeckStats, error)
}

// deckServiceImpl implements DeckService.
type deckServiceImpl struct {
	selectionStore store.SelectionStore
	progressStore  store.StudyProgressStore
	logger         *slog.Logger
}

// Ensure deckServiceImpl implements DeckService interface
var _ DeckService = (*deckServiceImpl)(nil)

// NewDeckService creates a new deck statistics service.
// Panics if any required dependency is nil.
func NewDeckService(
	selectionStore store.SelectionStore,
	progressStore store.StudyProgressStore,
	log *slog.Logger,
) DeckService {
	if selectionStore == nil {
		panic("selectionStore cannot be nil")
	}
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &deckServiceImpl{
		selectionStore: selectionStore,
		progressStore:  progressStore,
		logger:         log.With(slog.String("component", "deck_service")),
	}
}

// Stats implements DeckService.Stats
func (s *deckServiceImpl) Stats(
	ctx context.Context,
	userID uuid.UUID,
	packageID string,
	direction domain.StudyDirection,
) (*DeckStats, error) {
	stats := &DeckStats{PackageID: packageID}

	var err error
	if stats.Selected, err = s.selectionStore.CountByStatus(
		ctx, userID, packageID, domain.SelectionStatusSelected); err != nil {
		return nil, fmt.Errorf("failed to count selected concepts: %w", err)
	}
	if stats.Hidden, err = s.selectionStore.CountByStatus(
		ctx, userID, packageID, domain.SelectionStatusHidden); err != nil {
		return nil, fmt.Errorf("failed to count hidden concepts: %w", err)
	}
	if stats.Mastered, err = s.selectionStore.CountByStatus(
		ctx, userID, packageID, domain.SelectionStatusMastered); err != nil {
		return nil, fmt.Errorf("failed to count mastered concepts: %w", err)
	}

	phases, err := s.progressStore.CountByPhase(ctx, userID, direction)
	if err != nil {
		return nil, fmt.Errorf("failed to count scheduling phases: %w", err)
	}
	stats.Learning = phases[domain.PhaseLearning]
	stats.Review = phases[domain.PhaseReview]

	return stats, nil
}
