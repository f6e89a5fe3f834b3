// Package fetch tracks in-flight data loads so that superseded loads are
// cancelled and their late responses discarded.
package fetch

import (
	"context"
	"sync"
)

type key struct {
	client string
	view   string
}

type entry struct {
	gen    uint64
	cancel context.CancelFunc
}

// Tracker issues one generation ticket per (client, view). Beginning a new load for
// the same pair cancels the previous one. It is safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	seq     uint64
	entries map[key]entry
	closed  bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{entries: make(map[key]entry)}
}

// Ticket is the handle for one load.
type Ticket struct {
	tracker *Tracker
	key     key
	gen     uint64
	ctx     context.Context
	cancel  context.CancelFunc
}

// Begin starts a load for view on behalf of client. The returned ticket's context is
// derived from parent and is cancelled when a newer load for the same view begins, when
// the client is released, or when the tracker is closed. Callers must call Done.
func (t *Tracker) Begin(parent context.Context, client, view string) *Ticket {
	ctx, cancel := context.WithCancel(parent)
	k := key{client: client, view: view}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	tk := &Ticket{tracker: t, key: k, gen: t.seq, ctx: ctx, cancel: cancel}
	if t.closed {
		cancel()
		return tk
	}
	if prev, ok := t.entries[k]; ok {
		prev.cancel()
	}
	t.entries[k] = entry{gen: tk.gen, cancel: cancel}
	return tk
}

// Context returns the ticket's context; pass it to every outbound call of the load.
func (tk *Ticket) Context() context.Context { return tk.ctx }

// Current reports whether this ticket is still the latest for its view and has not been
// cancelled. A load whose ticket is no longer current must discard its result.
func (tk *Ticket) Current() bool {
	if tk.ctx.Err() != nil {
		return false
	}
	tk.tracker.mu.Lock()
	defer tk.tracker.mu.Unlock()
	e, ok := tk.tracker.entries[tk.key]
	return ok && e.gen == tk.gen
}

// Done releases the ticket. It is safe to call more than once.
func (tk *Ticket) Done() {
	tk.cancel()
	tk.tracker.mu.Lock()
	defer tk.tracker.mu.Unlock()
	if e, ok := tk.tracker.entries[tk.key]; ok && e.gen == tk.gen {
		delete(tk.tracker.entries, tk.key)
	}
}

// Release cancels every outstanding load for client.
func (t *Tracker) Release(client string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for k, e := range t.entries {
		if k.client != client {
			continue
		}
		e.cancel()
		delete(t.entries, k)
		n++
	}
	return n
}

// Close cancels every outstanding load and makes later tickets start cancelled.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	for k, e := range t.entries {
		e.cancel()
		delete(t.entries, k)
	}
}

// Pending returns the number of loads currently tracked.
func (t *Tracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
