package system

import (
	"context"
	"time"

	"github.com/l1jgo/townsfolk/internal/core/event"
	coresys "github.com/l1jgo/townsfolk/internal/core/system"
	"github.com/l1jgo/townsfolk/internal/persist"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// PersistenceSystem periodically writes queued kills and, when the tallies
// moved, a stats snapshot. Phase 5 (Persist).
type PersistenceSystem struct {
	store     persist.StatsStore
	stats     *Stats
	log       *zap.Logger
	pending   []persist.KillRecord
	tickCount int
	interval  int // flush every N ticks
}

// NewPersistenceSystem subscribes to kill events on bus.
func NewPersistenceSystem(store persist.StatsStore, stats *Stats, bus *event.Bus, log *zap.Logger, intervalTicks int) *PersistenceSystem {
	s := &PersistenceSystem{
		store:    store,
		stats:    stats,
		log:      log,
		interval: max(intervalTicks, 1),
	}
	event.Subscribe(bus, s.onKilled)
	return s
}

func (s *PersistenceSystem) onKilled(e event.ActorKilled) {
	s.pending = append(s.pending, persist.KillRecord{
		ID:        ulid.Make().String(),
		Victim:    e.Name,
		Template:  e.Template,
		Monster:   e.Monster,
		Killer:    e.Killer,
		Region:    e.At.Region,
		Subregion: e.At.Subregion,
		Room:      e.At.Room,
		KilledAt:  time.Now(),
	})
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistenceSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	s.Flush()
}

// Flush writes everything queued so far. Called on shutdown as well.
func (s *PersistenceSystem) Flush() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if len(s.pending) > 0 {
		if err := s.store.RecordKills(ctx, s.pending); err != nil {
			// keep the batch; the next flush retries it
			s.log.Error("kill journal flush failed", zap.Int("pending", len(s.pending)), zap.Error(err))
		} else {
			s.log.Debug("kills flushed", zap.Int("count", len(s.pending)))
			s.pending = s.pending[:0]
		}
	}

	if !s.stats.TakeDirty() {
		return
	}
	if err := s.store.SaveSnapshot(ctx, s.stats.Snapshot(time.Now())); err != nil {
		s.stats.dirty.Store(true)
		s.log.Error("stats snapshot failed", zap.Error(err))
	}
}

// Pending is the number of kills waiting for the next flush.
func (s *PersistenceSystem) Pending() int { return len(s.pending) }
