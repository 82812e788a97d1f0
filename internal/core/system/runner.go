package system

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Runner executes systems in phase order each tick. Systems in the same
// phase keep their registration order.
type Runner struct {
	systems []System
	sorted  bool

	// budget is the tick period; a tick that takes longer is logged with
	// the slowest system.
	budget  time.Duration
	log     *zap.Logger
	overrun int
}

// NewRunner returns a runner that warns when a tick exceeds budget. A zero
// budget or nil log disables the check.
func NewRunner(log *zap.Logger, budget time.Duration) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		systems: make([]System, 0, 8),
		budget:  budget,
		log:     log,
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	start := time.Now()
	var slowest System
	var slowestTook time.Duration
	for _, s := range r.systems {
		t0 := time.Now()
		s.Update(dt)
		if took := time.Since(t0); took > slowestTook {
			slowest, slowestTook = s, took
		}
	}
	if r.budget > 0 {
		if took := time.Since(start); took > r.budget {
			r.overrun++
			r.log.Warn("tick overran",
				zap.Duration("took", took),
				zap.Duration("budget", r.budget),
				zap.String("slowest", fmt.Sprintf("%T", slowest)),
				zap.Duration("slowest_took", slowestTook))
		}
	}
}

// TickPhase runs only the systems of one phase. Shutdown uses it to deliver
// the last events without polling input.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(dt)
		}
	}
}

// Overruns counts ticks that exceeded the budget.
func (r *Runner) Overruns() int { return r.overrun }

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
