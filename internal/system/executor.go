package system

import (
	"github.com/l1jgo/townsfolk/internal/ai"
	"github.com/l1jgo/townsfolk/internal/world"
	"go.uber.org/zap"
)

// Execute performs one action for a in its current room. An action with
// nothing to act on (no target, no item) does nothing.
func (s *Simulation) Execute(a *world.Actor, act ai.Action) {
	room, ok := s.roomOf(a)
	if !ok {
		return
	}

	switch act {
	case ai.Move:
		s.randomMove(a, room)
	case ai.Sit:
		s.sit(a, room)
	case ai.Stand:
		s.stand(a, room)
	case ai.Kneel:
		s.kneel(a, room)

	case ai.GetRandomBetterWeapon:
		s.getBetterWeapon(a, room)
	case ai.GetRandomBetterArmor:
		s.getBetterArmor(a, room)
	case ai.FindAndEquipWeapon:
		s.findAndEquipWeapon(a, room)
	case ai.FindAndEquipArmor:
		s.findAndEquipArmor(a, room)
	case ai.GetRandomItem, ai.GetAnyItem:
		s.getRandomItem(a, room)
	case ai.GetValuableItem:
		s.getValuableItem(a, room)
	case ai.DestroyAnyItem:
		s.destroyAnyItem(a, room)

	case ai.Idle:
		s.Execute(a, ai.IdleFallback(s.Rand))
	case ai.IdleFlavorAction:
		s.idleFlavor(a, room)
	case ai.QuipToRandomEntity:
		s.quipToRandom(a, room)

	case ai.AttackPlayer:
		s.attackPlayer(a, room)
	case ai.AttackRandomLivingHostile:
		s.attackRandomLivingHostile(a, room)
	case ai.SearchUnsearchedDead:
		s.searchRandomUnsearchedDead(a, room)

	case ai.EatRandomFood:
		s.consume(a, room, world.KindFood)
	case ai.DrinkRandomDrink:
		s.consume(a, room, world.KindDrink)

	case ai.HealOther:
		s.healOther(a, room)
	case ai.HealSelf:
		s.healSelf(a, room)
	case ai.CastFireAtLivingHostile:
		s.castFireAtLivingHostile(a, room)
	case ai.CastDamageAtLivingHostile:
		s.castDamageAtLivingHostile(a, room)

	default:
		s.log.Warn("unhandled action", zap.String("action", string(act)), zap.String("actor", a.Names.WithJob))
	}
}

// who is a random name form at the start of a sentence.
func (s *Simulation) who(a *world.Actor) string {
	return a.Names.CapitalizedPrefixedRandom(s.Rand)
}

// say wraps what in speech. Monsters do not talk, so it is empty for them.
func (s *Simulation) say(a *world.Actor, what string) string {
	if a.IsMonster() || what == "" {
		return ""
	}
	return s.msg(world.MsgEntitySays, s.who(a), what)
}
