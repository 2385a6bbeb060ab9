package importer

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Drafts keeps the latest reconciliation result of each event draft.
//
// A new result replaces the previous one; candidates are never merged across
// imports. Every reconciliation takes a ticket before it starts and the
// result is stored only if no later ticket has stored one already, so when
// two imports for the same draft overlap the one started last wins.
type Drafts struct {
	mu      sync.Mutex
	seq     uint64
	entries map[string]*draftEntry
	now     func() time.Time
}

type draftEntry struct {
	ticket  uint64
	result  *Result
	updated time.Time
}

// NewDrafts creates an empty draft store.
func NewDrafts() *Drafts {
	return &Drafts{
		entries: make(map[string]*draftEntry),
		now:     time.Now,
	}
}

// Ticket reserves the next position in the draft ordering.
func (d *Drafts) Ticket() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	return d.seq
}

// Put stores result for draftID unless a result from a later ticket is
// already stored. A nil result clears the draft, which is how a rejected
// import supersedes an earlier one. Put reports whether the store changed.
func (d *Drafts) Put(draftID string, ticket uint64, result *Result) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if cur, ok := d.entries[draftID]; ok && cur.ticket > ticket {
		return false
	}
	d.entries[draftID] = &draftEntry{
		ticket:  ticket,
		result:  result,
		updated: d.now(),
	}
	return true
}

// Get returns the latest result stored for draftID.
func (d *Drafts) Get(draftID string) (*Result, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.entries[draftID]
	if !ok || e.result == nil {
		return nil, false
	}
	return e.result, true
}

// Discard forgets draftID. Imports still running for it may store a result
// afterwards.
func (d *Drafts) Discard(draftID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, ok := d.entries[draftID]
	delete(d.entries, draftID)
	return ok
}

// Len returns the number of tracked drafts.
func (d *Drafts) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// Sweep removes drafts not updated within ttl and returns how many were
// removed.
func (d *Drafts) Sweep(ttl time.Duration) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	cutoff := d.now().Add(-ttl)
	removed := 0
	for id, e := range d.entries {
		if e.updated.Before(cutoff) {
			delete(d.entries, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep every interval until ctx is cancelled.
func (d *Drafts) StartSweeper(ctx context.Context, interval, ttl time.Duration) {
	if interval <= 0 || ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("draft sweeper started", "interval", interval, "ttl", ttl)

	for {
		select {
		case <-ctx.Done():
			slog.Info("draft sweeper stopped")
			return
		case <-ticker.C:
			if n := d.Sweep(ttl); n > 0 {
				slog.Info("expired roster drafts removed", "count", n)
			}
		}
	}
}
