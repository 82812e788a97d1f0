package system

import (
	"github.com/l1jgo/townsfolk/internal/ai"
	"github.com/l1jgo/townsfolk/internal/world"
)

// ==================== Weapons ====================

// takeItem removes a matching item, preferring the actor's own inventory
// over the ground. fromGround tells the caller where it came from.
func (s *Simulation) takeItem(a *world.Actor, room *world.Room, pred func(*world.Item) bool) (it *world.Item, fromGround bool) {
	if it = a.Inventory.TakeRandom(s.Rand, pred); it != nil {
		return it, false
	}
	if it = room.TakeRandomItem(pred); it != nil {
		return it, true
	}
	return nil, false
}

// dropIfLooted undoes an equip that raced with the actor's corpse being
// looted: whatever it now wears goes back on the ground.
func (s *Simulation) dropIfLooted(a *world.Actor, room *world.Room) []string {
	if a.IsAlive() || a.Unsearched() {
		return nil
	}
	return s.lootCorpse(a, room)
}

// findAndEquipWeapon arms an unarmed actor with any weapon it can reach.
func (s *Simulation) findAndEquipWeapon(a *world.Actor, room *world.Room) {
	w, _ := s.takeItem(a, room, world.OfKind(world.KindWeapon))
	if w == nil {
		return
	}
	var lines []string
	if old := a.EquipWeapon(w); old != nil {
		room.AddItems(old)
		lines = append(lines, s.msg(world.MsgEntityUnequipsAndDrops, s.who(a), old.WithArticle()))
	}
	if s.Rand.Roll(s.Tun.GetItemRemarkPercent) {
		lines = append(lines, s.say(a, pickLine(s.Rand, s.Catalog.Flavor.GetItem)))
	}
	lines = append(lines, s.msg(world.MsgEntityEquips, s.who(a), w.WithArticle()))
	room.BroadcastLines(append(lines, s.dropIfLooted(a, room)...))
}

// getBetterWeapon swaps the equipped weapon for a strictly stronger one.
func (s *Simulation) getBetterWeapon(a *world.Actor, room *world.Room) {
	minPower := 0
	if cur := a.Weapon(); cur != nil {
		minPower = cur.Power + 1
	}
	w, _ := s.takeItem(a, room, world.WeaponAtLeast(minPower))
	if w == nil {
		return
	}
	var lines []string
	if old := a.EquipWeapon(w); old != nil {
		room.AddItems(old)
		lines = append(lines, s.msg(world.MsgEntityUnequipsAndDrops, s.who(a), old.WithArticle()))
	}
	lines = append(lines, s.msg(world.MsgEntityPicksUpAndEquips, s.who(a), w.WithArticle()))
	room.BroadcastLines(append(lines, s.dropIfLooted(a, room)...))
}

// ==================== Armor ====================

// betterArmorPred matches armor for slot that beats what is worn there.
// An empty slot accepts any armor for it.
func betterArmorPred(a *world.Actor, slot world.BodySlot) func(*world.Item) bool {
	minDefense := 0
	if worn := a.Armor(slot); worn != nil {
		minDefense = worn.Defense + 1
	}
	return world.ArmorAtLeast(slot, minDefense)
}

// equipArmorPiece wears it and returns the narration for any piece it
// replaced.
func (s *Simulation) equipArmorPiece(a *world.Actor, room *world.Room, it *world.Item) []string {
	var lines []string
	if old := a.EquipArmor(it); old != nil {
		room.AddItems(old)
		lines = append(lines, s.msg(world.MsgEntityUnequipsAndDrops, s.who(a), old.WithArticle()))
	}
	return append(lines, s.msg(world.MsgEntityPicksUpAndEquips, s.who(a), it.WithArticle()))
}

// findAndEquipArmor fills every slot it can improve in one action.
func (s *Simulation) findAndEquipArmor(a *world.Actor, room *world.Room) {
	var lines []string
	for _, slot := range a.Body() {
		it, _ := s.takeItem(a, room, betterArmorPred(a, slot))
		if it == nil {
			continue
		}
		lines = append(lines, s.equipArmorPiece(a, room, it)...)
	}
	room.BroadcastLines(append(lines, s.dropIfLooted(a, room)...))
}

// getBetterArmor upgrades one random slot that has something better on offer.
func (s *Simulation) getBetterArmor(a *world.Actor, room *world.Room) {
	var slots []world.BodySlot
	for _, slot := range a.Body() {
		if ai.BetterArmorAvailable(a, room, slot) {
			slots = append(slots, slot)
		}
	}
	if len(slots) == 0 {
		return
	}
	slot := world.Pick(s.Rand, slots)
	it, _ := s.takeItem(a, room, betterArmorPred(a, slot))
	if it == nil {
		return
	}
	room.BroadcastLines(append(s.equipArmorPiece(a, room, it), s.dropIfLooted(a, room)...))
}
