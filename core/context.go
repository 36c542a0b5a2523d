package core

import (
	"context"

	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
)

// Context keys for scoring options
type contextKey string

const (
	suppressHeaderKey contextKey = "suppressHeader"
	runIDKey          contextKey = "runID"
	storeManagerKey   contextKey = "storeManager"
)

// WithSuppressHeader marks the context so batch runs skip their progress
// header. Embedded surfaces (MCP, HTTP) use this to keep stdout clean.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// withRunID records the persisted run row id in the context for workers.
func withRunID(ctx context.Context, runID int64) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// getRunID returns the persisted run row id from the context, if any.
func getRunID(ctx context.Context) (int64, bool) {
	val := ctx.Value(runIDKey)
	if val == nil {
		return 0, false
	}
	runID, ok := val.(int64)
	return runID, ok
}

// contextWithStoreManager carries the store manager for worker goroutines.
func contextWithStoreManager(ctx context.Context, mgr contract.StoreManager) context.Context {
	return context.WithValue(ctx, storeManagerKey, mgr)
}

// storeManagerFromContext returns the store manager from the context, or nil.
func storeManagerFromContext(ctx context.Context) contract.StoreManager {
	val := ctx.Value(storeManagerKey)
	if val == nil {
		return nil
	}
	mgr, ok := val.(contract.StoreManager)
	if !ok {
		return nil
	}
	return mgr
}
