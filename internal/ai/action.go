package ai

import "fmt"

// Action names one executor handler.
type Action string

const (
	Move                      Action = "MOVE"
	Sit                       Action = "SIT"
	Stand                     Action = "STAND"
	Kneel                     Action = "KNEEL"
	GetRandomBetterWeapon     Action = "GET_RANDOM_BETTER_WEAPON"
	GetRandomBetterArmor      Action = "GET_RANDOM_BETTER_ARMOR"
	GetRandomItem             Action = "GET_RANDOM_ITEM"
	GetAnyItem                Action = "GET_ANY_ITEM"
	GetValuableItem           Action = "GET_VALUABLE_ITEM"
	DestroyAnyItem            Action = "DESTROY_ANY_ITEM"
	Idle                      Action = "IDLE"
	IdleFlavorAction          Action = "IDLE_FLAVOR_ACTION"
	AttackPlayer              Action = "ATTACK_PLAYER"
	AttackRandomLivingHostile Action = "ATTACK_RANDOM_LIVING_HOSTILE"
	SearchUnsearchedDead      Action = "SEARCH_RANDOM_UNSEARCHED_DEAD_HOSTILE"
	FindAndEquipWeapon        Action = "FIND_AND_EQUIP_RANDOM_WEAPON"
	FindAndEquipArmor         Action = "FIND_AND_EQUIP_RANDOM_ARMOR"
	QuipToRandomEntity        Action = "QUIP_TO_RANDOM_ENTITY"
	EatRandomFood             Action = "EAT_RANDOM_FOOD"
	DrinkRandomDrink          Action = "DRINK_RANDOM_DRINK"
	HealOther                 Action = "HEAL_OTHER"
	HealSelf                  Action = "HEAL_SELF"
	CastFireAtLivingHostile   Action = "CAST_FIRE_AT_LIVING_HOSTILE"
	CastDamageAtLivingHostile Action = "CAST_DAMAGE_SPELL_AT_LIVING_HOSTILE"
)

var knownActions = map[Action]bool{}

func init() {
	for _, a := range []Action{
		Move, Sit, Stand, Kneel,
		GetRandomBetterWeapon, GetRandomBetterArmor, GetRandomItem, GetAnyItem, GetValuableItem,
		DestroyAnyItem, Idle, IdleFlavorAction, AttackPlayer, AttackRandomLivingHostile,
		SearchUnsearchedDead, FindAndEquipWeapon, FindAndEquipArmor, QuipToRandomEntity,
		EatRandomFood, DrinkRandomDrink, HealOther, HealSelf,
		CastFireAtLivingHostile, CastDamageAtLivingHostile,
	} {
		knownActions[a] = true
	}
}

// ParseAction validates an action name.
func ParseAction(s string) (Action, error) {
	if !knownActions[Action(s)] {
		return "", fmt.Errorf("unknown action %q", s)
	}
	return Action(s), nil
}
