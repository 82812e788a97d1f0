// Package ai decides what an actor does next. Situations are pure
// predicates over an actor and its room; a Policy is an ordered rule table
// that maps the first fully satisfied situation set to an Action.
package ai

import (
	"fmt"

	"github.com/l1jgo/townsfolk/internal/world"
)

// Situation is a named predicate.
type Situation string

const (
	Any Situation = "ANY"

	InjuredMinor          Situation = "INJURED_MINOR"
	InjuredModerate       Situation = "INJURED_MODERATE"
	InjuredMajor          Situation = "INJURED_MAJOR"
	InjuredFriendlyInRoom Situation = "INJURED_FRIENDLY_IN_ROOM"

	IsSitting  Situation = "SITTING"
	NotSitting Situation = "NOT_SITTING"
	IsStanding Situation = "STANDING"
	IsKneeling Situation = "KNEELING"

	Alone                    Situation = "ALONE"
	NotAlone                 Situation = "NOT_ALONE"
	RoomContainsLivingPlayer Situation = "ROOM_CONTAINS_LIVING_PLAYER"
	NoMonsters               Situation = "NO_MONSTERS"
	SingleMonster            Situation = "SINGLE_MONSTER"
	MultipleMonsters         Situation = "MULTIPLE_MONSTERS"
	NoNpcs                   Situation = "NO_NPCS"
	SingleNpc                Situation = "SINGLE_NPC"
	MultipleNpcs             Situation = "MULTIPLE_NPCS"
	NoHostiles               Situation = "NO_HOSTILES"
	SingleHostile            Situation = "SINGLE_HOSTILE"
	MultipleHostiles         Situation = "MULTIPLE_HOSTILES"
	AnyLivingHostiles        Situation = "ANY_LIVING_HOSTILES"
	AnyUnsearchedDeadHostile Situation = "ANY_UNSEARCHED_DEAD_HOSTILES"

	FoundAnyItem       Situation = "FOUND_ANY_ITEM"
	FoundValuableItem  Situation = "FOUND_VALUABLE_ITEM"
	HasWeaponEquipped  Situation = "HAS_WEAPON_EQUIPPED"
	NoEquippedWeapon   Situation = "NO_EQUIPPED_WEAPON"
	FoundBetterWeapon  Situation = "FOUND_BETTER_WEAPON"
	FoundBetterArmor   Situation = "FOUND_BETTER_ARMOR"
	WeaponInRoom       Situation = "WEAPON_IN_CURRENT_ROOM"
	ArmorInRoom        Situation = "ARMOR_IN_CURRENT_ROOM"
	FoundWeapon        Situation = "INVENTORY_OR_CURRENT_ROOM_CONTAINS_WEAPON"
	FoundArmor         Situation = "INVENTORY_OR_CURRENT_ROOM_CONTAINS_ARMOR"
	FoundFood          Situation = "INVENTORY_OR_CURRENT_ROOM_CONTAINS_FOOD"
	FoundDrink         Situation = "INVENTORY_OR_CURRENT_ROOM_CONTAINS_DRINK"
	FoundJunk          Situation = "INVENTORY_OR_CURRENT_ROOM_CONTAINS_JUNK"
	FoundContainer     Situation = "INVENTORY_OR_CURRENT_ROOM_CONTAINS_CONTAINER"
	CanCastHealing     Situation = "CAN_CAST_HEALING_SPELL"
	CanCastFireDamage  Situation = "CAN_CAST_FIRE_DAMAGE_SPELL"
	CanCastDamageSpell Situation = "CAN_CAST_DAMAGE_SPELL"
)

var knownSituations = map[Situation]bool{}

func init() {
	for _, s := range []Situation{
		Any, InjuredMinor, InjuredModerate, InjuredMajor, InjuredFriendlyInRoom,
		IsSitting, NotSitting, IsStanding, IsKneeling,
		Alone, NotAlone, RoomContainsLivingPlayer,
		NoMonsters, SingleMonster, MultipleMonsters, NoNpcs, SingleNpc, MultipleNpcs,
		NoHostiles, SingleHostile, MultipleHostiles, AnyLivingHostiles, AnyUnsearchedDeadHostile,
		FoundAnyItem, FoundValuableItem, HasWeaponEquipped, NoEquippedWeapon,
		FoundBetterWeapon, FoundBetterArmor, WeaponInRoom, ArmorInRoom,
		FoundWeapon, FoundArmor, FoundFood, FoundDrink, FoundJunk, FoundContainer,
		CanCastHealing, CanCastFireDamage, CanCastDamageSpell,
	} {
		knownSituations[s] = true
	}
}

// ParseSituation validates a situation name.
func ParseSituation(s string) (Situation, error) {
	if !knownSituations[Situation(s)] {
		return "", fmt.Errorf("unknown situation %q", s)
	}
	return Situation(s), nil
}

// View is what an actor can see when deciding.
type View struct {
	Room        *world.Room
	Spells      world.SpellBook
	ValuableMin int
}

// Evaluate reports whether s holds for a in v. It never mutates anything.
func Evaluate(s Situation, a *world.Actor, v View) bool {
	room := v.Room
	switch s {
	case Any:
		return true

	case InjuredMinor:
		return a.Attrs.IsInjuredMinor()
	case InjuredModerate:
		return a.Attrs.IsInjuredModerate()
	case InjuredMajor:
		return a.Attrs.IsInjuredMajor()
	case InjuredFriendlyInRoom:
		return len(room.InjuredFriendlies(a.Faction)) > 0

	case IsSitting:
		return a.Posture() == world.Sitting
	case NotSitting:
		return a.Posture() != world.Sitting
	case IsStanding:
		return a.Posture() == world.Standing
	case IsKneeling:
		return a.Posture() == world.Kneeling

	case Alone:
		return len(room.Actors()) == 1
	case NotAlone:
		return len(room.Actors()) != 1
	case RoomContainsLivingPlayer:
		return room.ContainsLivingPlayer()

	case NoMonsters:
		return len(room.Monsters()) == 0
	case SingleMonster:
		return len(room.Monsters()) == 1
	case MultipleMonsters:
		return len(room.Monsters()) > 1
	case NoNpcs:
		return len(room.Npcs()) == 0
	case SingleNpc:
		return len(room.Npcs()) == 1
	case MultipleNpcs:
		return len(room.Npcs()) > 1
	case NoHostiles:
		return len(room.Hostiles(a.Faction)) == 0
	case SingleHostile:
		return len(room.Hostiles(a.Faction)) == 1
	case MultipleHostiles:
		return len(room.Hostiles(a.Faction)) > 1
	case AnyLivingHostiles:
		return len(room.LivingHostiles(a.Faction)) > 0
	case AnyUnsearchedDeadHostile:
		return len(room.UnsearchedDeadHostiles(a.Faction)) > 0

	case FoundAnyItem:
		return !room.Ground.IsEmpty()
	case FoundValuableItem:
		return room.Ground.ContainsValuable(v.ValuableMin)
	case HasWeaponEquipped:
		return a.Weapon() != nil
	case NoEquippedWeapon:
		return a.Weapon() == nil
	case FoundBetterWeapon:
		return foundBetterWeapon(a, room)
	case FoundBetterArmor:
		return foundBetterArmor(a, room)
	case WeaponInRoom:
		return room.Ground.Contains(world.KindWeapon)
	case ArmorInRoom:
		return room.Ground.Contains(world.KindArmor)

	case FoundWeapon:
		return holdsOrSees(a, room, world.KindWeapon)
	case FoundArmor:
		return holdsOrSees(a, room, world.KindArmor)
	case FoundFood:
		return holdsOrSees(a, room, world.KindFood)
	case FoundDrink:
		return holdsOrSees(a, room, world.KindDrink)
	case FoundJunk:
		return holdsOrSees(a, room, world.KindJunk)
	case FoundContainer:
		return holdsOrSees(a, room, world.KindContainer)

	case CanCastHealing:
		return CanCast(a, v.Spells, func(sp *world.Spell) bool { return sp.HasEffect(world.EffectRestoreHealth) })
	case CanCastFireDamage:
		return CanCast(a, v.Spells, func(sp *world.Spell) bool { return sp.HasEffect(world.EffectFireDamage) })
	case CanCastDamageSpell:
		return CanCast(a, v.Spells, (*world.Spell).IsDamage)
	}
	return false
}

// EvaluateAll is true when every situation holds. An empty set is true.
func EvaluateAll(ss []Situation, a *world.Actor, v View) bool {
	for _, s := range ss {
		if !Evaluate(s, a, v) {
			return false
		}
	}
	return true
}

func holdsOrSees(a *world.Actor, room *world.Room, k world.ItemKind) bool {
	return a.Inventory.Contains(k) || room.Ground.Contains(k)
}

func foundBetterWeapon(a *world.Actor, room *world.Room) bool {
	best := a.Inventory.BestWeapon()
	if g := room.Ground.BestWeapon(); g != nil && (best == nil || g.Power > best.Power) {
		best = g
	}
	if best == nil {
		return false
	}
	w := a.Weapon()
	return w == nil || best.Power > w.Power
}

func foundBetterArmor(a *world.Actor, room *world.Room) bool {
	for _, slot := range a.Body() {
		if BetterArmorAvailable(a, room, slot) {
			return true
		}
	}
	return false
}

// BetterArmorAvailable reports armor for slot that beats what is worn, or
// any armor for an empty slot.
func BetterArmorAvailable(a *world.Actor, room *world.Room, slot world.BodySlot) bool {
	worn := a.Armor(slot)
	pred := func(it *world.Item) bool {
		return it.Kind == world.KindArmor && it.Slot == slot && (worn == nil || it.Defense > worn.Defense)
	}
	return a.Inventory.Any(pred) || room.Ground.Any(pred)
}

// CanCast reports whether a knows a spell matching pred and can pay for it.
func CanCast(a *world.Actor, book world.SpellBook, pred func(*world.Spell) bool) bool {
	return len(Castable(a, book, pred)) > 0
}

// Castable lists the known, affordable spells matching pred.
func Castable(a *world.Actor, book world.SpellBook, pred func(*world.Spell) bool) []*world.Spell {
	if book == nil {
		return nil
	}
	magic := a.Attrs.Magic()
	var out []*world.Spell
	for _, name := range a.Spells {
		sp, ok := book.Spell(name)
		if !ok {
			panic(fmt.Sprintf("actor %s knows unknown spell %q", a.Names.Full, name))
		}
		if pred(sp) && magic >= sp.Cost {
			out = append(out, sp)
		}
	}
	return out
}
