// Package visibility decides which rendered ayah is centred in the viewport.
//
// A Tracker watches one list of units at a time. Batches of intersection
// entries come either from Scroll, which computes them from geometry, or from
// Deliver, which accepts batches computed by a client-side observer. Each batch
// is reduced to at most one identifier and reported through the change callback.
package visibility

import (
	"log/slog"
	"sync"

	"github.com/escalopa/quran-reader/internal/id"
)

const (
	// Threshold is the share of a unit that must be inside the root region
	Threshold = 0.5

	// RootMargin is cut from the top and from the bottom of the viewport
	RootMargin = 0.2
)

// Unit is a rendered ayah and its vertical bounds in list coordinates
type Unit struct {
	ID     int
	Top    float64
	Bottom float64
}

// Height returns the rendered height of the unit
func (u Unit) Height() float64 {
	return u.Bottom - u.Top
}

// Viewport is the visible window over the list
type Viewport struct {
	Top    float64
	Height float64
}

// Entry is one intersection state change
type Entry struct {
	ID             int     `json:"id" validate:"gte=1"`
	IsIntersecting bool    `json:"isIntersecting"`
	Ratio          float64 `json:"ratio" validate:"gte=0,lte=1"`
}

// Observation is a registered list of units. It stops producing entries once disposed.
type Observation struct {
	ID string

	tracker  *Tracker
	units    []Unit
	states   map[int]bool
	primed   bool
	disposed bool
}

// Dispose detaches the observation; later batches for it are ignored
func (o *Observation) Dispose() {
	o.tracker.mu.Lock()
	defer o.tracker.mu.Unlock()
	o.disposeLocked()
}

func (o *Observation) disposeLocked() {
	o.disposed = true
	if o.tracker.current == o {
		o.tracker.current = nil
		o.tracker.currentID = 0
	}
}

// Tracker reports the identifier of the centred unit whenever it changes.
// onChange is called without the state lock held, but batches are delivered one
// at a time so callbacks observe identifiers in the order they were picked.
type Tracker struct {
	onChange func(ayah int)
	log      *slog.Logger

	deliverMu sync.Mutex

	mu        sync.Mutex
	current   *Observation
	currentID int
}

func NewTracker(onChange func(ayah int), log *slog.Logger) *Tracker {
	return &Tracker{onChange: onChange, log: log}
}

// Observe registers a new list, disposing the previous observation
func (t *Tracker) Observe(units []Unit) *Observation {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current != nil {
		t.current.disposeLocked()
	}
	o := &Observation{
		ID:      id.MustGenerate("obs"),
		tracker: t,
		units:   append([]Unit(nil), units...),
		states:  make(map[int]bool, len(units)),
	}
	t.current = o
	t.currentID = 0
	return o
}

// Current returns the last emitted identifier of the active observation, 0 if none
func (t *Tracker) Current() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentID
}

// Active returns the live observation, nil when nothing is observed
func (t *Tracker) Active() *Observation {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Scroll computes the entries produced by moving the viewport and delivers them
func (t *Tracker) Scroll(vp Viewport) {
	t.deliverMu.Lock()
	defer t.deliverMu.Unlock()

	t.mu.Lock()
	o := t.current
	if o == nil || len(o.units) == 0 {
		t.mu.Unlock()
		return
	}
	entries := o.evaluate(vp)
	t.mu.Unlock()

	t.deliver(o.ID, entries)
}

// Deliver applies a batch for the observation with the given ID. Batches for a
// disposed or unknown observation are dropped and report false.
func (t *Tracker) Deliver(observationID string, entries []Entry) bool {
	t.deliverMu.Lock()
	defer t.deliverMu.Unlock()
	return t.deliver(observationID, entries)
}

// deliver applies a batch. Caller holds deliverMu.
func (t *Tracker) deliver(observationID string, entries []Entry) bool {
	t.mu.Lock()
	o := t.current
	if o == nil || o.disposed || o.ID != observationID {
		t.mu.Unlock()
		t.log.Debug("dropping stale visibility batch", "observation", observationID)
		return false
	}

	winner, ok := Pick(entries)
	if !ok || winner == t.currentID {
		t.mu.Unlock()
		return true
	}
	t.currentID = winner
	t.mu.Unlock()

	if t.onChange != nil {
		t.onChange(winner)
	}
	return true
}

// Pick reduces a batch to the last entry that intersects at or above the threshold
func Pick(entries []Entry) (int, bool) {
	winner, ok := 0, false
	for _, e := range entries {
		if e.IsIntersecting && e.Ratio >= Threshold {
			winner, ok = e.ID, true
		}
	}
	return winner, ok
}

// evaluate produces entries for units whose threshold state changed, or for every
// unit on the first evaluation. Caller holds the tracker lock.
func (o *Observation) evaluate(vp Viewport) []Entry {
	top, bottom := RootRegion(vp)
	entries := make([]Entry, 0, len(o.units))
	for _, u := range o.units {
		overlap := min(u.Bottom, bottom) - max(u.Top, top)
		ratio := 0.0
		if overlap > 0 && u.Height() > 0 {
			ratio = min(overlap/u.Height(), 1)
		}
		visible := ratio >= Threshold
		if o.primed && o.states[u.ID] == visible {
			continue
		}
		o.states[u.ID] = visible
		entries = append(entries, Entry{ID: u.ID, IsIntersecting: overlap > 0, Ratio: ratio})
	}
	o.primed = true
	return entries
}

// RootRegion returns the band of the viewport units must intersect: the middle 60%
func RootRegion(vp Viewport) (top, bottom float64) {
	margin := vp.Height * RootMargin
	return vp.Top + margin, vp.Top + vp.Height - margin
}
