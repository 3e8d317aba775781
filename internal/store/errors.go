package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// This is a generic version of the entity-specific not found errors
	// (e.g., ErrUserNotFound, ErrSelectionNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrConceptNotFound indicates that the requested concept does not exist in the store.
	ErrConceptNotFound = fmt.Errorf("%w: concept", ErrNotFound)

	// ErrSelectionNotFound indicates that the (user, concept) pair has no
	// triage decision recorded.
	ErrSelectionNotFound = fmt.Errorf("%w: selection", ErrNotFound)

	// ErrStudyProgressNotFound indicates that the (user, concept, direction)
	// triple has no scheduling state.
	ErrStudyProgressNotFound = fmt.Errorf("%w: study progress", ErrNotFound)

	// ErrLedgerEntryNotFound indicates that the (user, date) pair has no
	// activity ledger entry.
	ErrLedgerEntryNotFound = fmt.Errorf("%w: ledger entry", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrSelectionExists indicates that the (user, concept) pair already has
	// a triage decision recorded.
	ErrSelectionExists = fmt.Errorf("%w: selection", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
