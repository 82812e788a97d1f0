package system

import (
	"strings"

	"github.com/l1jgo/townsfolk/internal/world"
)

// quipLine builds one remark from a to listener. The pool is chosen by
// whether each side is alive and whether a regards listener as hostile.
// Talking to oneself mumbles while alive and speaks as a ghost when dead.
func (s *Simulation) quipLine(a, listener *world.Actor) string {
	q := &s.Catalog.Flavor.Quips
	speakerAlive := a.IsAlive()

	if listener == a {
		if speakerAlive {
			return s.msg(world.MsgEntityMumbles, s.who(a))
		}
		return s.msg(world.MsgDeadEntityQuipsSolo, a.Names.DeadConversational, pickLine(s.Rand, q.DeadCommon))
	}

	listenerAlive := listener.IsAlive()
	hostile := s.World.Factions.Hostile(a.Faction, listener.Faction)

	to := listener.Names.Conversational
	switch {
	case !listenerAlive && !hostile:
		to = listener.Names.DeadConversational
	case !speakerAlive && listenerAlive && !hostile:
		to = listener.Names.Random(s.Rand)
	}
	return s.msg(world.MsgEntitySaysTo, s.who(a), to, pickLine(s.Rand, q.Pool(speakerAlive, listenerAlive, hostile)))
}

// quipToRandom speaks to anyone in the room, possibly the speaker.
func (s *Simulation) quipToRandom(a *world.Actor, room *world.Room) {
	listener := room.RandomActor()
	if listener == nil {
		return
	}
	room.Broadcast(s.quipLine(a, listener))
}

// idleFlavor fills an idle template with the actor's name and a friendly
// quip.
func (s *Simulation) idleFlavor(a *world.Actor, room *world.Room) {
	tpl := pickLine(s.Rand, s.Catalog.Flavor.Idle)
	if tpl == "" {
		return
	}
	line := strings.ReplaceAll(tpl, "%2", pickLine(s.Rand, s.Catalog.Flavor.Quips.Friendly))
	line = strings.ReplaceAll(line, "%1", a.Names.CapitalizedConversational())
	room.Broadcast(line)
}

// ghostQuip lets an unlooted corpse speak up now and then.
func (s *Simulation) ghostQuip(a *world.Actor, room *world.Room) {
	if !s.Rand.Roll(ghostQuipPercent) {
		return
	}
	s.quipToRandom(a, room)
}

const ghostQuipPercent = 10

func pickLine(r *world.Rand, pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return world.Pick(r, pool)
}

// PlayerSay repeats what p said to everyone in the room, p included.
func (s *Simulation) PlayerSay(p *world.Player, room *world.Room, text string) {
	room.Broadcast(s.msg(world.MsgEntitySays, p.Name, text))
}
