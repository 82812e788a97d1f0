package system

import (
	"github.com/l1jgo/townsfolk/internal/core/event"
	"github.com/l1jgo/townsfolk/internal/world"
	"go.uber.org/zap"
)

// ==================== Actor pickups ====================

// getRandomItem carries off any item lying in the room.
func (s *Simulation) getRandomItem(a *world.Actor, room *world.Room) {
	it := room.TakeRandomItem(nil)
	if it == nil {
		return
	}
	a.Inventory.Add(it)
	room.Broadcast(s.msg(world.MsgEntityPicksUp, s.who(a), it.WithArticle()))
}

// getValuableItem pockets something worth at least the valuable threshold.
// NPCs remark on the find.
func (s *Simulation) getValuableItem(a *world.Actor, room *world.Room) {
	it := room.TakeRandomItem(world.ValuableAtLeast(s.Tun.ValuableMin))
	if it == nil {
		return
	}
	a.Inventory.Add(it)
	room.BroadcastLines([]string{
		s.say(a, pickLine(s.Rand, s.Catalog.Flavor.ValuableItem)),
		s.msg(world.MsgEntityPicksUp, s.who(a), it.WithArticle()),
	})
	s.actorLog(a).Debug("valuable item", zap.String("item", it.Name), zap.Int("value", it.Value))
}

// destroyAnyItem removes a ground item from the world for good.
func (s *Simulation) destroyAnyItem(a *world.Actor, room *world.Room) {
	it := room.TakeRandomItem(nil)
	if it == nil {
		return
	}
	room.Broadcast(s.msg(world.MsgEntityDestroys, s.who(a), it.WithArticle()))
}

// ==================== Player pickups ====================

// PlayerGet moves the ground item matching keyword into p's inventory.
func (s *Simulation) PlayerGet(p *world.Player, room *world.Room, keyword string) bool {
	it := room.TakeItemKeyword(keyword)
	if it == nil {
		return false
	}
	p.Inventory.Add(it)
	p.Send(s.msg(world.MsgPlayerGetsItem, it.WithArticle()))
	room.BroadcastExcept(p, s.msg(world.MsgEntityPicksUp, p.Name, it.WithArticle()))
	return true
}

// PlayerDrop puts the carried item matching keyword on the ground. Drops are
// published so quest logic can treat them as deliveries.
func (s *Simulation) PlayerDrop(p *world.Player, room *world.Room, keyword string) bool {
	it := p.Inventory.TakeKeyword(keyword)
	if it == nil {
		return false
	}
	room.AddItems(it)
	p.Send(s.msg(world.MsgPlayerDropsItem, it.WithArticle()))
	room.BroadcastExcept(p, s.msg(world.MsgEntityDrops, p.Name, it.WithArticle()))
	event.Emit(s.Bus, event.PossibleDelivery{Player: p.Name, Item: it.Name, At: room.Coords})
	return true
}

// ==================== Seeding ====================

// SeedItems scatters the configured amount of food and drink over random
// rooms before the first actor arrives.
func (s *Simulation) SeedItems() int {
	n := 0
	scatter := func(kind world.ItemKind, count int) {
		for range count {
			room, ok := s.World.RandomRoom()
			if !ok {
				return
			}
			it := s.Catalog.Items.Random(s.Rand, kind)
			if it == nil {
				return
			}
			room.AddItems(it)
			n++
		}
	}
	scatter(world.KindFood, s.Tun.InitialFood)
	scatter(world.KindDrink, s.Tun.InitialDrink)
	s.log.Info("seeded items", zap.Int("count", n))
	return n
}
