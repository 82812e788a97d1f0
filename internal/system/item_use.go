package system

import (
	"fmt"

	"github.com/l1jgo/townsfolk/internal/world"
)

// consume takes one bite or sip of food or drink, from the actor's own
// inventory when it has some, otherwise from the ground. Finishing the item
// removes it from wherever it came from.
func (s *Simulation) consume(a *world.Actor, room *world.Room, kind world.ItemKind) {
	fromInv, fromGround := world.MsgEntityEatsFromInventory, world.MsgEntityEatsFromGround
	if kind == world.KindDrink {
		fromInv, fromGround = world.MsgEntityDrinksFromInventory, world.MsgEntityDrinksFromGround
	}

	var (
		line      string
		remaining int
		ok        bool
	)
	if it := a.Inventory.Random(s.Rand, world.OfKind(kind)); it != nil {
		if remaining, ok = a.Inventory.Consume(it); ok {
			line = s.msg(fromInv, s.who(a), it.Name)
		}
	} else if it := room.Ground.Random(s.Rand, world.OfKind(kind)); it != nil {
		if remaining, ok = room.ConsumeGround(it); ok {
			line = s.msg(fromGround, s.who(a), it.Name)
		}
	}
	if !ok {
		return
	}

	lines := []string{line}
	if remaining == 0 {
		lines = append(lines, s.msg(world.MsgLastOfIt))
	}
	room.BroadcastLines(lines)
}

// PlayerConsume eats or drinks the carried item matching keyword. It reports
// false when nothing edible or drinkable matches.
func (s *Simulation) PlayerConsume(p *world.Player, keyword string) bool {
	it := p.Inventory.FindKeyword(keyword)
	if it == nil || (it.Kind != world.KindFood && it.Kind != world.KindDrink) {
		return false
	}
	remaining, ok := p.Inventory.Consume(it)
	if !ok {
		return false
	}

	var kind world.MessageKind
	switch {
	case it.Kind == world.KindFood && remaining == 0:
		kind = world.MsgPlayerEatsFinal
	case it.Kind == world.KindFood:
		kind = world.MsgPlayerEats
	case remaining == 0:
		kind = world.MsgPlayerDrinksFinal
	default:
		kind = world.MsgPlayerDrinks
	}
	p.Send(s.msg(kind, it.Name, leftText(it.Kind, remaining)))
	return true
}

func leftText(k world.ItemKind, n int) string {
	unit := "bite"
	if k == world.KindDrink {
		unit = "sip"
	}
	if n == 1 {
		return fmt.Sprintf("There is 1 %s left.", unit)
	}
	return fmt.Sprintf("There are %d %ss left.", n, unit)
}
