package application

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/robfig/cron/v3"

	"github.com/escalopa/quran-reader/internal/domain"
)

// prayerResetSchedule clears the cache at midnight, when every cached day turns stale
const prayerResetSchedule = "0 0 * * *"

type prayerKey struct {
	date     string
	lat, lon float64
}

// prayerTimes caches one schedule per day and rounded location
type prayerTimes struct {
	source domain.PrayerTimeSource
	clock  clock.Clock
	log    *slog.Logger

	mu      sync.Mutex
	cache   map[prayerKey]*domain.PrayerSchedule
	cron    *cron.Cron
	running bool
}

func newPrayerTimes(source domain.PrayerTimeSource, clk clock.Clock, log *slog.Logger) *prayerTimes {
	return &prayerTimes{
		source: source,
		clock:  clk,
		log:    log,
		cache:  make(map[prayerKey]*domain.PrayerSchedule),
		cron:   cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// start schedules the nightly reset; extra runs in the same job
func (p *prayerTimes) start(extra func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return nil
	}
	if _, err := p.cron.AddFunc(prayerResetSchedule, func() {
		n := p.reset()
		p.log.Debug("prayer cache reset", "entries", n)
		if extra != nil {
			extra()
		}
	}); err != nil {
		return fmt.Errorf("schedule prayer cache reset: %w", err)
	}
	p.cron.Start()
	p.running = true
	return nil
}

func (p *prayerTimes) stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	<-p.cron.Stop().Done()
}

func (p *prayerTimes) reset() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.cache)
	clear(p.cache)
	return n
}

func (p *prayerTimes) get(ctx context.Context, loc domain.Location) *domain.PrayerSchedule {
	day := p.clock.Now()
	key := prayerKey{
		date: day.Format("2006-01-02"),
		lat:  round2(loc.Latitude),
		lon:  round2(loc.Longitude),
	}

	p.mu.Lock()
	cached, ok := p.cache[key]
	p.mu.Unlock()
	if ok {
		return cached
	}

	schedule, err := p.source.PrayerTimes(ctx, loc, day)
	if err != nil {
		p.log.Warn("prayer times unavailable, serving fallback", "city", loc.City, "error", err)
		return &domain.PrayerSchedule{
			Date:     day.Format("02 Jan 2006"),
			Location: loc,
			Times:    domain.FallbackPrayerTimes(),
			Fallback: true,
		}
	}

	p.mu.Lock()
	p.cache[key] = schedule
	p.mu.Unlock()
	return schedule
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PrayerTimes returns today's schedule for the user's stored location, or the
// default location when none was shared. Source failures yield the fallback
// schedule with Fallback set.
func (s *ReaderService) PrayerTimes(ctx context.Context, userID string) *domain.PrayerSchedule {
	loc := domain.DefaultLocation
	if p := s.Preferences(ctx, userID); p.Location != nil {
		loc = *p.Location
	}
	return s.prayer.get(ctx, loc)
}

// NextPrayer returns the next prayer of the schedule, judged by the clock in the
// schedule's timezone when it is known
func (s *ReaderService) NextPrayer(schedule *domain.PrayerSchedule) (domain.PrayerTime, bool) {
	now := s.clock.Now()
	if schedule.Timezone != "" {
		if tz, err := time.LoadLocation(schedule.Timezone); err == nil {
			now = now.In(tz)
		}
	}
	return schedule.NextPrayer(now)
}
