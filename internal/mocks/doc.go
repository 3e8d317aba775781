// Package mocks provides centralized mock implementations for testing.
//
// It holds testify mocks of the store interfaces plus a recording event
// emitter, so service tests across packages share one set of mocks instead
// of redefining them inline. The store mocks return themselves from WithTx,
// which lets transactional service code run against the same expectations
// without a real database.
//
// Usage:
//
//	import "github.com/ali-aktas/HocaLingo-sub002/internal/mocks"
//
//	selections := new(mocks.SelectionStore)
//	selections.On("Create", mock.Anything, mock.Anything).Return(nil)
package mocks
