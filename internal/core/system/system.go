package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: drain player command queues
	PhasePreUpdate               // 1: dispatch last tick's events
	PhaseUpdate                  // 2: game logic
	PhasePostUpdate              // 3: housekeeping
	PhaseOutput                  // 4: push stats and feeds
	PhasePersist                 // 5: flush to storage
)

// System is the interface every main-loop system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
