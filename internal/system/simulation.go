// Package system runs the simulation: actor life cycles, the action
// executor, population upkeep, and the main-loop systems that sit between
// the simulation and player sessions.
package system

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/l1jgo/townsfolk/internal/ai"
	"github.com/l1jgo/townsfolk/internal/config"
	"github.com/l1jgo/townsfolk/internal/core/event"
	"github.com/l1jgo/townsfolk/internal/data"
	"github.com/l1jgo/townsfolk/internal/scripting"
	"github.com/l1jgo/townsfolk/internal/world"
	"go.uber.org/zap"
)

// DelayRange is the per-action pause of an archetype.
type DelayRange struct {
	Min, Max time.Duration
}

// Tunables are the numbers the simulation runs on.
type Tunables struct {
	NpcDelay     DelayRange
	MonsterDelay DelayRange
	WorkerDelay  DelayRange // janitors and farmers

	MicroDelay     time.Duration
	PopulationStep time.Duration

	MonsterAttackModifier int
	NpcAttackModifier     int
	ValuableMin           int
	MaxMonsterLevel       int
	BerserkerPercent      int
	AttackQuipPercent     int
	GetItemRemarkPercent  int

	InitialFood  int
	InitialDrink int
	StartRegion  int
}

// TunablesFrom copies the [simulation] section.
func TunablesFrom(c config.SimulationConfig) Tunables {
	return Tunables{
		NpcDelay:              DelayRange{c.NpcDelayMin, c.NpcDelayMax},
		MonsterDelay:          DelayRange{c.MonsterDelayMin, c.MonsterDelayMax},
		WorkerDelay:           DelayRange{c.WorkerDelayMin, c.WorkerDelayMax},
		MicroDelay:            c.MicroDelay,
		PopulationStep:        c.PopulationStep,
		MonsterAttackModifier: c.MonsterAttackModifier,
		NpcAttackModifier:     c.NpcAttackModifier,
		ValuableMin:           c.ValuableItemMinimum,
		MaxMonsterLevel:       c.MaxMonsterLevel,
		BerserkerPercent:      c.BerserkerPercent,
		AttackQuipPercent:     c.AttackQuipPercent,
		GetItemRemarkPercent:  c.GetItemRemarkPercent,
		InitialFood:           c.InitialFood,
		InitialDrink:          c.InitialDrink,
		StartRegion:           c.StartRegion,
	}
}

// Simulation is the context every actor goroutine shares. The running flag
// is written only by Start and Stop; everything else is read-mostly or
// guarded where it lives.
type Simulation struct {
	World    *world.Graph
	Catalog  *data.Catalog
	Tun      Tunables
	Formulas scripting.Formulas
	Policies ai.PolicySet
	Stats    *Stats
	Players  *Players
	Bus      *event.Bus
	Rand     *world.Rand

	log     *zap.Logger
	running atomic.Bool
	wg      sync.WaitGroup
	pops    []*Population
}

// Options configures New. Nil Formulas means the built-in Go formulas.
type Options struct {
	World    *world.Graph
	Catalog  *data.Catalog
	Tunables Tunables
	Formulas scripting.Formulas
	Bus      *event.Bus
	Log      *zap.Logger
}

func New(opts Options) *Simulation {
	s := &Simulation{
		World:    opts.World,
		Catalog:  opts.Catalog,
		Tun:      opts.Tunables,
		Formulas: opts.Formulas,
		Policies: opts.Catalog.Behaviors,
		Stats:    NewStats(),
		Players:  NewPlayers(),
		Bus:      opts.Bus,
		Rand:     opts.World.Rand,
		log:      opts.Log,
	}
	if s.Formulas == nil {
		s.Formulas = scripting.Builtin{}
	}
	if s.Policies == nil {
		s.Policies = ai.DefaultPolicies()
	}
	if s.Bus == nil {
		s.Bus = event.NewBus()
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.Tun.MicroDelay <= 0 {
		s.Tun.MicroDelay = 100 * time.Millisecond
	}
	return s
}

// Running reports whether actor loops should keep going.
func (s *Simulation) Running() bool { return s.running.Load() }

// Start sets the running flag and launches one population goroutine per
// region. ctx cancellation is equivalent to Stop without the wait.
func (s *Simulation) Start(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	for _, rt := range s.Catalog.Regions.All() {
		p := NewPopulation(s, rt)
		s.pops = append(s.pops, p)
		s.Go(p.Run)
	}
	go func() {
		<-ctx.Done()
		s.running.Store(false)
	}()
	s.log.Info("simulation started", zap.Int("regions", len(s.pops)))
}

// Stop clears the running flag and waits for every goroutine to notice.
func (s *Simulation) Stop() {
	s.running.Store(false)
	s.wg.Wait()
	s.log.Info("simulation stopped")
}

// Go runs fn on a tracked goroutine.
func (s *Simulation) Go(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
}

// Populations returns the region managers started by Start.
func (s *Simulation) Populations() []*Population { return s.pops }

func (s *Simulation) msg(kind world.MessageKind, args ...string) string {
	return s.World.Messages.Format(kind, args...)
}

// roomOf resolves an actor's coordinates through the arena.
func (s *Simulation) roomOf(a *world.Actor) (*world.Room, bool) {
	at, ok := a.Coordinates()
	if !ok {
		return nil, false
	}
	return s.World.Room(at)
}

func (s *Simulation) view(room *world.Room) ai.View {
	return ai.View{Room: room, Spells: s.Catalog.Spells, ValuableMin: s.Tun.ValuableMin}
}

// actorLog is a child logger named after the actor.
func (s *Simulation) actorLog(a *world.Actor) *zap.Logger {
	return s.log.With(zap.String("actor", a.Names.WithJob), zap.String("id", a.ID.String()))
}
