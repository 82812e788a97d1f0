package system

import (
	"strconv"

	"github.com/l1jgo/townsfolk/internal/core/event"
	"github.com/l1jgo/townsfolk/internal/world"
	"go.uber.org/zap"
)

// ==================== Death ====================

// processDeath runs once per death, by whoever landed the killing blow.
// It updates the tallies, pushes them to every player and queues the kill
// for persistence.
func (s *Simulation) processDeath(victim *world.Actor, killer string, room *world.Room) {
	ev := event.ActorKilled{
		ActorID: victim.ID.String(),
		Name:    victim.Names.WithJob,
		Killer:  killer,
		At:      room.Coords,
	}
	if m, ok := victim.Role.(world.Monster); ok {
		s.Stats.MonsterKilled(m.Template)
		ev.Template = m.Template
		ev.Monster = true
	} else {
		s.Stats.NpcKilled()
	}
	s.Players.SendAll(s.Stats.Text())
	room.SendActorLists()
	event.Emit(s.Bus, ev)

	s.log.Info("actor killed",
		zap.String("victim", victim.Names.WithJob),
		zap.String("killer", killer),
		zap.Stringer("room", room.Coords))
}

// finalCleanup takes a looted corpse out of the world.
func (s *Simulation) finalCleanup(a *world.Actor, room *world.Room) {
	room.Broadcast(s.msg(world.MsgEntityDecays, a.Names.FinalCleanup))
	room.RemoveActor(a, nil)
}

// ==================== Search ====================

// lootCorpse strips the corpse and drops everything it carried on the
// ground. Callers must have won MarkSearched first.
func (s *Simulation) lootCorpse(corpse *world.Actor, room *world.Room) []string {
	weapon, armor := corpse.Strip()
	items := corpse.Inventory.Drain()
	who := corpse.Names.CapitalizedPrefixedFull()

	var lines []string
	if weapon != nil {
		lines = append(lines, s.msg(world.MsgEntityDrops, who, weapon.WithArticle()))
		room.AddItems(weapon)
	}
	if len(armor) > 0 {
		lines = append(lines, s.msg(world.MsgEntityDrops, who, itemCollection(armor)))
		room.AddItems(armor...)
	}
	if len(items) > 0 {
		lines = append(lines, s.msg(world.MsgEntityDrops, who, itemCollection(items)))
		room.AddItems(items...)
	}
	return lines
}

func (s *Simulation) searchRandomUnsearchedDead(a *world.Actor, room *world.Room) {
	corpse := room.RandomUnsearchedDeadHostile(a.Faction)
	if corpse == nil || !corpse.MarkSearched() {
		return
	}
	lines := []string{s.msg(world.MsgEntitySearchesCorpse, a.Names.CapitalizedPrefixedFull(), corpse.Names.Conversational)}
	lines = append(lines, s.lootCorpse(corpse, room)...)
	room.BroadcastLines(lines)

	s.log.Debug("search",
		zap.Stringer("room", room.Coords),
		zap.String("searcher", a.Names.WithJob),
		zap.String("corpse", corpse.Names.WithJob))
}

// PlayerSearch loots the first unsearched hostile corpse matching keyword.
// Monsters also hand over their gold.
func (s *Simulation) PlayerSearch(p *world.Player, room *world.Room, keyword string) bool {
	corpse := room.FirstUnsearchedDead(world.FactionPlayer, keyword)
	if corpse == nil || !corpse.MarkSearched() {
		return false
	}
	drops := s.lootCorpse(corpse, room)
	p.Send(world.JoinLines(append([]string{s.msg(world.MsgPlayerSearches, corpse.Names.Conversational)}, drops...)))
	room.BroadcastExcept(p, world.JoinLines(append([]string{s.msg(world.MsgOtherPlayerSearches, p.Name, corpse.Names.Conversational)}, drops...)))

	if m, ok := corpse.Role.(world.Monster); ok && m.Gold > 0 {
		total := p.AddGold(m.Gold)
		p.Send(s.msg(world.MsgPlayerFindsGold, strconv.Itoa(m.Gold), corpse.Names.Conversational))
		p.Send(s.msg(world.MsgPlayerCurrentGold, strconv.Itoa(total)))
	}
	return true
}

func itemCollection(items []*world.Item) string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return world.CollectionString(names, true)
}
