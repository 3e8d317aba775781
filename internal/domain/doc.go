// Package domain contains the core business entities, value objects, and
// domain logic of the concept lifecycle engine: immutable concepts, triage
// selections, per-direction study progress, and the daily activity ledger.
// It is independent of any specific infrastructure or delivery mechanism.
package domain
