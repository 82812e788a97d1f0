package system

import (
	"github.com/l1jgo/townsfolk/internal/ai"
	"github.com/l1jgo/townsfolk/internal/data"
	"github.com/l1jgo/townsfolk/internal/world"
)

const (
	JobPeasant   = "peasant"
	JobHealer    = "healer"
	JobWizard    = "wizard"
	JobJanitor   = "janitor"
	JobFarmer    = "farmer"
	JobBerserker = "berserker"
)

// NewMonster rolls a monster from the region's roster. Only templates below
// the configured level cap qualify. It returns nil when none do.
func (s *Simulation) NewMonster(rt *data.RegionTemplate) *world.Actor {
	var cands []*data.MonsterTemplate
	for _, name := range rt.Monsters {
		if t, ok := s.Catalog.Monsters.Get(name); ok && t.Level < s.Tun.MaxMonsterLevel {
			cands = append(cands, t)
		}
	}
	t := world.Pick(s.Rand, cands)
	if t == nil {
		return nil
	}
	return s.monsterFrom(t)
}

func (s *Simulation) monsterFrom(t *data.MonsterTemplate) *world.Actor {
	items := make([]*world.Item, 0, len(t.Items))
	for _, name := range t.Items {
		items = append(items, s.Catalog.Items.MustInstantiate(name))
	}
	behavior := t.Behavior
	if behavior == "" {
		behavior = ai.DefaultMonster
	}
	suffix := t.ArriveSuffix
	if suffix == "" {
		suffix = "has arrived"
	}
	return world.NewActor(world.ActorSpec{
		Faction:        world.FactionMonster,
		Role:           world.Monster{Template: t.Name, Experience: t.Experience, Gold: t.Gold},
		Behavior:       behavior,
		Names:          world.MonsterNames(t.Name, suffix),
		Level:          t.Level,
		Keywords:       t.Keywords,
		Stats:          t.Stats(),
		DelayMin:       s.Tun.MonsterDelay.Min,
		DelayMax:       s.Tun.MonsterDelay.Max,
		AttackModifier: s.Tun.MonsterAttackModifier,
		Items:          items,
		UnarmedName:    t.Unarmed,
	})
}

// npcSpec is the shared starting point of every friendly NPC.
func (s *Simulation) npcSpec(job, behavior, arriveSuffix string) world.ActorSpec {
	name := world.Pick(s.Rand, s.Catalog.Names)
	if arriveSuffix == "" {
		arriveSuffix = "walks in"
	}
	return world.ActorSpec{
		Faction:        world.FactionNPC,
		Role:           world.FriendlyNpc{Job: job},
		Behavior:       behavior,
		Names:          world.NpcNames(name, job, arriveSuffix),
		Level:          1,
		Keywords:       []string{name},
		Stats:          world.StatsDefaultNpc,
		Body:           world.HumanoidBody,
		DelayMin:       s.Tun.NpcDelay.Min,
		DelayMax:       s.Tun.NpcDelay.Max,
		CanTravel:      true,
		AttackModifier: s.Tun.NpcAttackModifier,
	}
}

// NewNpc is usually a peasant; BerserkerPercent of the time it is a
// berserker instead.
func (s *Simulation) NewNpc() *world.Actor {
	if s.Rand.Roll(s.Tun.BerserkerPercent) {
		return s.NewBerserker()
	}
	return world.NewActor(s.npcSpec(JobPeasant, ai.DefaultNpc, ""))
}

func (s *Simulation) NewHealer() *world.Actor {
	spec := s.npcSpec(JobHealer, ai.Healer, "")
	spec.Spells = s.Catalog.Spells.ForJob(JobHealer)
	return world.NewActor(spec)
}

func (s *Simulation) NewWizard() *world.Actor {
	spec := s.npcSpec(JobWizard, ai.Wizard, "")
	spec.Spells = s.Catalog.Spells.ForJob(JobWizard)
	return world.NewActor(spec)
}

func (s *Simulation) NewJanitor() *world.Actor {
	spec := s.npcSpec(JobJanitor, ai.Janitor, "arrives, broom in hand")
	spec.DelayMin, spec.DelayMax = s.Tun.WorkerDelay.Min, s.Tun.WorkerDelay.Max
	spec.Weapon = s.Catalog.Items.MustInstantiate("broom")
	return world.NewActor(spec)
}

// NewFarmer stays in its home region.
func (s *Simulation) NewFarmer() *world.Actor {
	spec := s.npcSpec(JobFarmer, ai.Farmer, "")
	spec.DelayMin, spec.DelayMax = s.Tun.WorkerDelay.Min, s.Tun.WorkerDelay.Max
	spec.CanTravel = false
	spec.Weapon = s.Catalog.Items.MustInstantiate("pitchfork")
	return world.NewActor(spec)
}

func (s *Simulation) NewBerserker() *world.Actor {
	spec := s.npcSpec(JobBerserker, ai.Berserker, "storms in")
	spec.Stats = world.StatsBerserker
	return world.NewActor(spec)
}

// Launch starts an actor's life and its two regeneration loops.
func (s *Simulation) Launch(a *world.Actor, region int) {
	s.Go(func() { s.Live(a, region) })
	s.Go(func() { s.regenHealth(a) })
	s.Go(func() { s.regenMagic(a) })
}
