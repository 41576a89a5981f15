package router

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// maxRedirects bounds redirect chains; the rules converge in at most two hops.
const maxRedirects = 5

// Gate is the session gate seen by the Router.
type Gate interface {
	View
	Initialized() <-chan struct{}
}

// Options groups dependencies for Router.
type Options struct {
	Gate   Gate
	Logger *slog.Logger
}

// Router resolves paths, applies the filter and records the current location.
type Router struct {
	gate   Gate
	logger *slog.Logger

	mu      sync.RWMutex
	current Match
	history []string
}

// New constructs a Router.
func New(opts Options) *Router {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{gate: opts.Gate, logger: logger}
}

// Navigate moves to path, following filter redirects. It waits for the gate's
// first initialization so restored sessions are judged after revalidation.
func (r *Router) Navigate(ctx context.Context, path string) error {
	_, err := r.Go(ctx, path)
	return err
}

// Go is Navigate returning the location that was finally entered.
func (r *Router) Go(ctx context.Context, path string) (Match, error) {
	select {
	case <-r.gate.Initialized():
	case <-ctx.Done():
		return Match{}, fmt.Errorf("navigate %s: %w", path, ctx.Err())
	}

	target := path
	for i := 0; i < maxRedirects; i++ {
		m := Resolve(target)
		d := Decide(m.Route, m.FullPath, r.gate)
		if d.Allowed() {
			r.enter(m)
			return m, nil
		}
		r.logger.DebugContext(ctx, "navigation redirected", "from", target, "to", d.Redirect)
		target = d.Redirect
	}
	return Match{}, fmt.Errorf("navigate %s: too many redirects", path)
}

// Current returns the current location.
func (r *Router) Current() Match {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// History returns the entered locations, oldest first.
func (r *Router) History() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.history...)
}

// PostLoginTarget returns the preserved destination of the current login location.
func (r *Router) PostLoginTarget() string {
	cur := r.Current()
	if cur.Route.Name != NameLogin || cur.Query == nil {
		return HomePath
	}
	return SafeRedirect(cur.Query.Get(RedirectParam))
}

func (r *Router) enter(m Match) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = m
	r.history = append(r.history, m.FullPath)
}
