package system

import (
	"slices"
	"sync"

	"github.com/l1jgo/townsfolk/internal/data"
	"github.com/l1jgo/townsfolk/internal/world"
	"go.uber.org/zap"
)

// pool is one capped population of a region.
type pool struct {
	name   string
	cap    int
	create func() *world.Actor

	mu     sync.Mutex
	actors []*world.Actor
}

func (p *pool) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.actors)
}

// reap forgets actors whose corpse has been looted and returns how many.
func (p *pool) reap() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	before := len(p.actors)
	p.actors = slices.DeleteFunc(p.actors, func(a *world.Actor) bool { return !a.Unsearched() })
	return before - len(p.actors)
}

// Population keeps one region stocked. Every step it tops up the next pool
// to its cap, then sweeps looted actors out of every pool.
type Population struct {
	sim    *Simulation
	region *data.RegionTemplate
	pools  []*pool
	log    *zap.Logger
}

func NewPopulation(sim *Simulation, rt *data.RegionTemplate) *Population {
	p := &Population{
		sim:    sim,
		region: rt,
		log:    sim.log.With(zap.String("region", rt.Name), zap.Int("index", rt.Index)),
	}
	p.pools = []*pool{
		{name: "monsters", cap: rt.Caps.Monsters, create: func() *world.Actor { return sim.NewMonster(rt) }},
		{name: "npcs", cap: rt.Caps.Npcs, create: sim.NewNpc},
		{name: "janitors", cap: rt.Caps.Janitors, create: sim.NewJanitor},
		{name: "healers", cap: rt.Caps.Healers, create: sim.NewHealer},
		{name: "wizards", cap: rt.Caps.Wizards, create: sim.NewWizard},
		{name: "farmers", cap: rt.Caps.Farmers, create: sim.NewFarmer},
	}
	return p
}

// Run loops until the simulation stops.
func (p *Population) Run() {
	p.log.Info("population manager started")
	for p.sim.Running() {
		for _, pl := range p.pools {
			if !p.sim.Running() {
				break
			}
			p.fill(pl)
			p.sim.sleep(p.sim.Tun.PopulationStep)
		}
		if p.sim.Running() {
			p.Reap()
			p.sim.sleep(p.sim.Tun.PopulationStep)
		}
	}
	p.log.Info("population manager stopped")
}

// fill creates actors until the pool reaches its cap.
func (p *Population) fill(pl *pool) int {
	added := 0
	for pl.len() < pl.cap {
		a := pl.create()
		if a == nil {
			break
		}
		pl.mu.Lock()
		pl.actors = append(pl.actors, a)
		pl.mu.Unlock()
		p.sim.Launch(a, p.region.Index)
		added++
	}
	if added > 0 {
		p.log.Debug("population added", zap.String("pool", pl.name), zap.Int("count", added))
	}
	return added
}

// Fill tops up every pool at once.
func (p *Population) Fill() int {
	n := 0
	for _, pl := range p.pools {
		n += p.fill(pl)
	}
	return n
}

// Reap sweeps every pool.
func (p *Population) Reap() int {
	n := 0
	for _, pl := range p.pools {
		n += pl.reap()
	}
	return n
}

// Counts reports the tracked size of each pool by name.
func (p *Population) Counts() map[string]int {
	out := make(map[string]int, len(p.pools))
	for _, pl := range p.pools {
		out[pl.name] = pl.len()
	}
	return out
}
