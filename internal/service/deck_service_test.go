package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
	"github.com/ali-aktas/HocaLingo-sub002/internal/mocks"
)

func TestDeckStats(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	selections := new(mocks.SelectionStore)
	progress := new(mocks.StudyProgressStore)

	selections.On("CountByStatus", mock.Anything, userID, "a1-basics", domain.SelectionStatusSelected).
		Return(40, nil)
	selections.On("CountByStatus", mock.Anything, userID, "a1-basics", domain.SelectionStatusHidden).
		Return(25, nil)
	selections.On("CountByStatus", mock.Anything, userID, "a1-basics", domain.SelectionStatusMastered).
		Return(5, nil)
	progress.On("CountByPhase", mock.Anything, userID, domain.DirectionFrontToBack).
		Return(map[domain.Phase]int{
			domain.PhaseLearning: 12,
			domain.PhaseReview:   28,
			domain.PhaseMastered: 5,
		}, nil)

	svc := NewDeckService(selections, progress, nil)

	stats, err := svc.Stats(context.Background(), userID, "a1-basics", domain.DirectionFrontToBack)
	require.NoError(t, err)

	assert.Equal(t, 40, stats.Selected)
	assert.Equal(t, 25, stats.Hidden)
	assert.Equal(t, 5, stats.Mastered)
	assert.Equal(t, 12, stats.Learning)
	assert.Equal(t, 28, stats.Review)
}

func TestDeckStatsAllPackages(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	selections := new(mocks.SelectionStore)
	progress := new(mocks.StudyProgressStore)

	selections.On("CountByStatus", mock.Anything, userID, "", mock.Anything).Return(3, nil)
	progress.On("CountByPhase", mock.Anything, userID, domain.DirectionBackToFront).
		Return(map[domain.Phase]int{}, nil)

	svc := NewDeckService(selections, progress, nil)

	stats, err := svc.Stats(context.Background(), userID, "", domain.DirectionBackToFront)
	require.NoError(t, err)

	assert.Empty(t, stats.PackageID)
	assert.Equal(t, 0, stats.Learning, "missing phases default to zero")
}
