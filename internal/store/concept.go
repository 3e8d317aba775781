package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
)

// ConceptStore defines the interface for reading immutable concept
// definitions. Concepts are created by content import, never by this
// service, so the interface is read-only.
type ConceptStore interface {
	// GetByID retrieves a concept by its unique ID.
	// Returns ErrConceptNotFound if the concept does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Concept, error)

	// ListUndecided returns all concepts in the given package for which the
	// user has no Selection row, in package-insertion order. An empty slice
	// means the package is fully decided, which is distinct from the package
	// not existing; callers that need the distinction should combine this
	// with CountByPackage.
	ListUndecided(ctx context.Context, userID uuid.UUID, packageID string) ([]*domain.Concept, error)

	// CountByPackage returns the total number of concepts in a package,
	// regardless of any user's decisions. A count of zero means the package
	// has never had content.
	CountByPackage(ctx context.Context, packageID string) (int, error)
}
