// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// The engine's three main flows each live in their own subpackage:
//
//   - triage: the keep/discard decision flow over a word package, with a
//     bounded undo history and the daily selection quota
//   - review: spaced repetition grading and the due-review queue
//   - progress: the per-day activity ledger, streaks, and statistics
//
// This root package holds the cross-flow services that do not belong to a
// single flow, such as deck statistics. Services receive their dependencies
// through constructor injection and depend on store interfaces, never on
// concrete database implementations.
package service
