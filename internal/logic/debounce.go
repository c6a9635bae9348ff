package logic

import "time"

// DefaultDebounce is the minimum interval between accepted edges on one input.
const DefaultDebounce = 200 * time.Millisecond

// Debouncer drops edges that arrive too soon after the last accepted one.
// Dropped edges are not queued or coalesced.
type Debouncer struct {
	interval time.Duration
	last     map[InputID]time.Time
}

// NewDebouncer creates a Debouncer with the given minimum interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		last:     make(map[InputID]time.Time),
	}
}

// Accept reports whether an edge on id at now should be acted on.
// The last accepted time is only updated on acceptance.
func (d *Debouncer) Accept(id InputID, now time.Time) bool {
	if last, ok := d.last[id]; ok && now.Sub(last) <= d.interval {
		return false
	}
	d.last[id] = now
	return true
}
