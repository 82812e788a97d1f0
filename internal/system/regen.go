package system

import (
	"time"

	coresys "github.com/l1jgo/townsfolk/internal/core/system"
	"github.com/l1jgo/townsfolk/internal/scripting"
	"github.com/l1jgo/townsfolk/internal/world"
)

func regenInput(a *world.Attributes, level, rate int) scripting.RegenInput {
	return scripting.RegenInput{
		Vitality:     a.Vitality(),
		Intelligence: a.Intelligence(),
		Level:        level,
		Rate:         rate,
	}
}

// regenHealth restores a's health on its own action cadence until it dies
// or the simulation stops.
func (s *Simulation) regenHealth(a *world.Actor) {
	for a.IsAlive() && s.Running() {
		if n := s.Formulas.HealthRegen(regenInput(a.Attrs, a.Level, a.Attrs.HealthRegenRate())); n > 0 {
			a.Attrs.Heal(n)
		}
		s.sleep(s.Rand.Duration(a.DelayMin, a.DelayMax), a.IsAlive)
	}
}

// regenMagic is regenHealth for magic.
func (s *Simulation) regenMagic(a *world.Actor) {
	for a.IsAlive() && s.Running() {
		if n := s.Formulas.MagicRegen(regenInput(a.Attrs, a.Level, a.Attrs.MagicRegenRate())); n > 0 {
			a.Attrs.AdjustMagic(n)
		}
		s.sleep(s.Rand.Duration(a.DelayMin, a.DelayMax), a.IsAlive)
	}
}

// ==================== Player regen ====================

// RegenSystem restores connected players from the main loop.
// Phase 3 (PostUpdate): health every healthEvery ticks, magic every
// magicEvery ticks.
type RegenSystem struct {
	sim         *Simulation
	healthEvery int
	magicEvery  int
	tickCount   int
}

func NewRegenSystem(sim *Simulation, healthEvery, magicEvery int) *RegenSystem {
	return &RegenSystem{sim: sim, healthEvery: max(healthEvery, 1), magicEvery: max(magicEvery, 1)}
}

func (s *RegenSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *RegenSystem) Update(_ time.Duration) {
	s.tickCount++
	health := s.tickCount%s.healthEvery == 0
	magic := s.tickCount%s.magicEvery == 0
	if !health && !magic {
		return
	}
	f := s.sim.Formulas
	for _, p := range s.sim.Players.All() {
		if !p.IsAlive() {
			continue
		}
		if health {
			p.Attrs.Heal(f.HealthRegen(regenInput(p.Attrs, 1, p.Attrs.HealthRegenRate())))
		}
		if magic {
			p.Attrs.AdjustMagic(f.MagicRegen(regenInput(p.Attrs, 1, p.Attrs.MagicRegenRate())))
		}
	}
}
