package domain

import (
	"errors"
	"time"
)

// Concept-specific validation errors
var (
	// ErrConceptIDInvalid is returned when a concept ID is zero or negative.
	ErrConceptIDInvalid = errors.New("concept ID must be a positive integer")

	// ErrConceptFrontEmpty is returned when a concept's front text is empty.
	ErrConceptFrontEmpty = errors.New("concept front text cannot be empty")

	// ErrConceptBackEmpty is returned when a concept's back text is empty.
	ErrConceptBackEmpty = errors.New("concept back text cannot be empty")

	// ErrConceptPackageEmpty is returned when a concept's package ID is empty.
	ErrConceptPackageEmpty = errors.New("concept package ID cannot be empty")

	// ErrInvalidLevel is returned when a concept level is not a known value.
	ErrInvalidLevel = errors.New("invalid concept level")
)

// Level represents the difficulty tier a concept belongs to.
type Level string

// Possible concept levels, from easiest to hardest.
const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Concept represents an immutable vocabulary item (word pair) available for
// study. Concepts are created by content import and are never mutated or
// deleted by this service; everything mutable about a concept lives in its
// Selection and StudyProgress rows.
type Concept struct {
	ID        int64     `json:"id"`
	FrontText string    `json:"front_text"`
	BackText  string    `json:"back_text"`
	Level     Level     `json:"level"`
	PackageID string    `json:"package_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks if the Concept has valid data.
// Returns an error if any field fails validation.
func (c *Concept) Validate() error {
	if c.ID <= 0 {
		return ErrConceptIDInvalid
	}

	if c.FrontText == "" {
		return ErrConceptFrontEmpty
	}

	if c.BackText == "" {
		return ErrConceptBackEmpty
	}

	if c.PackageID == "" {
		return ErrConceptPackageEmpty
	}

	switch c.Level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return nil
	default:
		return ErrInvalidLevel
	}
}
