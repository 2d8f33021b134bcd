package progress

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/escalopa/quran-reader/internal/domain"
)

const DefaultFlushInterval = 30 * time.Second

// ReadingTimer accumulates whole reading seconds into readingDuration.
// It flushes every interval and once more on Stop.
type ReadingTimer struct {
	store    domain.PreferenceStore
	clock    clock.Clock
	interval time.Duration
	log      *slog.Logger

	mu      sync.Mutex
	running bool
	last    time.Time
	ctx     context.Context
	stop    chan struct{}
	done    chan struct{}
}

func NewReadingTimer(store domain.PreferenceStore, clk clock.Clock, interval time.Duration, log *slog.Logger) *ReadingTimer {
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	return &ReadingTimer{store: store, clock: clk, interval: interval, log: log}
}

// Start begins counting. Calling Start on a running timer does nothing.
func (t *ReadingTimer) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return
	}
	t.running = true
	t.last = t.clock.Now()
	t.ctx = context.WithoutCancel(ctx)
	t.stop = make(chan struct{})
	t.done = make(chan struct{})

	ticker := t.clock.Ticker(t.interval)
	go t.loop(ticker, t.stop, t.done)
}

func (t *ReadingTimer) loop(ticker *clock.Ticker, stop, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			t.flush()
		case <-stop:
			return
		}
	}
}

// Stop flushes the remaining seconds and stops counting
func (t *ReadingTimer) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	stop, done := t.stop, t.done
	t.mu.Unlock()

	close(stop)
	<-done
	t.flushAt(t.clock.Now())
}

// Running reports whether the timer is counting
func (t *ReadingTimer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *ReadingTimer) flush() {
	t.flushAt(t.clock.Now())
}

func (t *ReadingTimer) flushAt(now time.Time) {
	t.mu.Lock()
	secs := int64(now.Sub(t.last) / time.Second)
	if secs <= 0 {
		t.mu.Unlock()
		return
	}
	t.last = t.last.Add(time.Duration(secs) * time.Second)
	ctx := t.ctx
	t.mu.Unlock()

	t.store.Update(ctx, func(p domain.ReadingPreferences) domain.ReadingPreferences {
		p.ReadingDuration += secs
		return p
	})
	t.log.Debug("reading time flushed", "seconds", secs)
}
