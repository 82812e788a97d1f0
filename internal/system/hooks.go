package system

import (
	"time"

	"github.com/l1jgo/townsfolk/internal/core/event"
	coresys "github.com/l1jgo/townsfolk/internal/core/system"
	"go.uber.org/zap"
)

// EventDispatchSystem swaps the bus buffers and delivers last tick's events.
// Phase 1 (PreUpdate).
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}

// Recorder takes structured entries for the session journal.
type Recorder interface {
	Record(kind string, data any)
}

// Journal kinds written by the hooks.
const (
	RecordKill  = "kill"
	RecordVisit = "visit"
	RecordDrop  = "drop"
	RecordJoin  = "join"
	RecordLeave = "leave"
)

// InstallHooks subscribes the logging and journaling observers. rec may be
// nil.
func InstallHooks(bus *event.Bus, rec Recorder, log *zap.Logger) {
	record := func(kind string, data any) {
		if rec != nil {
			rec.Record(kind, data)
		}
	}

	event.Subscribe(bus, func(e event.ActorKilled) {
		record(RecordKill, e)
	})
	event.Subscribe(bus, func(e event.LocationVisited) {
		log.Debug("location visited", zap.String("player", e.Player), zap.Stringer("room", e.At))
		record(RecordVisit, e)
	})
	event.Subscribe(bus, func(e event.PossibleDelivery) {
		log.Debug("item dropped", zap.String("player", e.Player), zap.String("item", e.Item), zap.Stringer("room", e.At))
		record(RecordDrop, e)
	})
	event.Subscribe(bus, func(e event.PlayerJoined) {
		log.Info("player joined", zap.String("player", e.Player), zap.Uint64("session", e.SessionID))
		record(RecordJoin, e)
	})
	event.Subscribe(bus, func(e event.PlayerLeft) {
		log.Info("player left", zap.String("player", e.Player), zap.Uint64("session", e.SessionID))
		record(RecordLeave, e)
	})
}
