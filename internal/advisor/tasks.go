package advisor

import (
	"context"
	"sync"
)

// Runner serializes advisory calls for one purpose (e.g. dashboard
// insights) with latest-request-wins semantics: starting a new run cancels
// the in-flight one, and a caller whose token is no longer current must
// discard its response instead of applying it.
type Runner struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	seq    uint64
}

// Begin cancels any in-flight run and returns a context for the new one
// plus the token identifying it.
func (r *Runner) Begin(parent context.Context) (context.Context, uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	r.cancel = cancel
	r.seq++
	return ctx, r.seq
}

// Current reports whether token still identifies the latest run. A stale
// token means the response arrived after a newer request superseded it.
func (r *Runner) Current(token uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return token == r.seq
}

// Finish releases the run's cancel func if it is still the current one.
func (r *Runner) Finish(token uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token == r.seq && r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
