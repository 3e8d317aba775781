// Package store defines the persistence interfaces the concept lifecycle
// engine consumes: immutable concepts, triage selections, per-direction
// scheduling state, the daily activity ledger, and user accounts. Concrete
// implementations live under internal/platform.
package store
