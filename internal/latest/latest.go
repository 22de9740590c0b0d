// Package latest discards stale results: each new request for an input
// cancels the one before it, and only the newest request may apply its
// result.
package latest

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned for work that a newer request replaced.
var ErrSuperseded = errors.New("superseded by a newer request")

// Tracker hands out monotonically increasing tokens. The zero value is ready
// to use.
type Tracker struct {
	mu     sync.Mutex
	token  uint64
	cancel context.CancelFunc
}

// Ticket identifies one request started with Begin.
type Ticket struct {
	Token  uint64
	cancel context.CancelFunc
}

// Done releases the ticket's context.
func (t Ticket) Done() {
	t.cancel()
}

// Begin cancels the in-flight request, if any, and starts a new one.
func (t *Tracker) Begin(parent context.Context) (context.Context, Ticket) {
	ctx, cancel := context.WithCancel(parent)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
	}
	t.token++
	t.cancel = cancel
	return ctx, Ticket{Token: t.token, cancel: cancel}
}

// Commit runs apply only if token is still the newest, and reports whether
// it did. apply runs under the tracker lock.
func (t *Tracker) Commit(token uint64, apply func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if token != t.token {
		return false
	}
	if apply != nil {
		apply()
	}
	return true
}

// Current returns the newest token handed out.
func (t *Tracker) Current() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.token
}

// Run starts a request on t, runs fn with the request's own token, and
// applies its result if no newer request started meanwhile. A superseded run
// returns ErrSuperseded.
func Run[T any](parent context.Context, t *Tracker, fn func(ctx context.Context, token uint64) (T, error), apply func(T)) (T, error) {
	ctx, ticket := t.Begin(parent)
	defer ticket.Done()

	var zero T
	v, err := fn(ctx, ticket.Token)
	if err != nil {
		if ctx.Err() != nil && parent.Err() == nil {
			return zero, ErrSuperseded
		}
		return zero, err
	}

	ok := t.Commit(ticket.Token, func() {
		if apply != nil {
			apply(v)
		}
	})
	if !ok {
		return zero, ErrSuperseded
	}
	return v, nil
}
