// Package service holds the per-resource state containers of the console.
//
// Each container wraps one API port, keeps the last fetched list with its
// pagination cursor, and records the message of the last failure for display.
// Errors are always returned to the caller as well.
package service

import (
	"context"
	"log/slog"
	"sync"

	apperrors "github.com/bookstore/bookstore-admin/internal/errors"
)

// tracker is the loading/last-error bookkeeping shared by every container.
// mu also guards the embedding container's fields.
type tracker struct {
	mu       sync.RWMutex
	inflight int
	lastErr  string
	fields   map[string][]string
	logger   *slog.Logger
}

func (t *tracker) useLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	t.logger = logger
}

// begin marks a call in flight and clears the previous failure.
func (t *tracker) begin() {
	t.mu.Lock()
	t.inflight++
	t.lastErr = ""
	t.fields = nil
	t.mu.Unlock()
}

// finish closes a call started with begin and records err, if any.
// The caller must not hold mu.
func (t *tracker) finish(ctx context.Context, op string, err error) error {
	t.mu.Lock()
	t.inflight--
	if err != nil {
		t.lastErr = apperrors.Message(err)
		t.fields = apperrors.GetFields(err)
	}
	t.mu.Unlock()
	if err != nil {
		t.logger.DebugContext(ctx, "request failed", "op", op, "code", apperrors.GetCode(err), "error", err)
	}
	return err
}

// Loading reports whether a call is in flight.
func (t *tracker) Loading() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.inflight > 0
}

// LastError returns the display message of the last failed call, or "".
func (t *tracker) LastError() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastErr
}

// FieldErrors returns the per-field messages of the last failed call.
func (t *tracker) FieldErrors() map[string][]string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.fields) == 0 {
		return nil
	}
	out := make(map[string][]string, len(t.fields))
	for k, v := range t.fields {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// ClearError forgets the last failure.
func (t *tracker) ClearError() {
	t.mu.Lock()
	t.lastErr = ""
	t.fields = nil
	t.mu.Unlock()
}

// replaceByID swaps the element with the same id in items, reporting whether one matched.
func replaceByID[T any](items []T, id int64, idOf func(T) int64, v T) bool {
	for i := range items {
		if idOf(items[i]) == id {
			items[i] = v
			return true
		}
	}
	return false
}

// prepend inserts v at the head of items, keeping at most limit elements when limit > 0.
func prepend[T any](items []T, v T, limit int) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, v)
	out = append(out, items...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
