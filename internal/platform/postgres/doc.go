// Package postgres provides PostgreSQL implementations of the store
// interfaces defined in the internal/store package.
//
// Each store accepts a store.DBTX so it can run against either a *sql.DB
// or an in-flight *sql.Tx; services compose multi-store transactions by
// calling WithTx on the stores they need. Database errors are translated
// to the sentinel errors in internal/store so callers never depend on
// driver-specific error types.

package postgres
