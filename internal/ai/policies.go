package ai

// Archetype names.
const (
	DefaultMonster    = "default-monster"
	AggressiveMonster = "aggressive-monster"
	DefaultNpc        = "default-npc"
	Healer            = "healer"
	Wizard            = "wizard"
	Janitor           = "janitor"
	Farmer            = "farmer"
	Berserker         = "berserker"
)

func rule(act Action, when ...Situation) Rule { return Rule{When: when, Action: act} }

var (
	findWeapon   = rule(FindAndEquipWeapon, NoEquippedWeapon, FoundWeapon)
	search       = rule(SearchUnsearchedDead, AnyUnsearchedDeadHostile)
	attack       = rule(AttackRandomLivingHostile, AnyLivingHostiles)
	betterWeapon = rule(GetRandomBetterWeapon, FoundBetterWeapon)
	betterArmor  = rule(GetRandomBetterArmor, FoundBetterArmor)
)

func monsterRules() []Rule {
	return []Rule{
		rule(EatRandomFood, FoundFood),
		rule(DrinkRandomDrink, FoundDrink),
		findWeapon,
		search,
		attack,
		betterWeapon,
		betterArmor,
	}
}

// DefaultPolicies returns the built-in archetype tables. Catalog behaviors
// may override any of them.
func DefaultPolicies() PolicySet {
	return PolicySet{
		DefaultMonster: {
			Name:  DefaultMonster,
			Rules: monsterRules(),
		},
		AggressiveMonster: {
			Name:  AggressiveMonster,
			Rules: append([]Rule{rule(AttackPlayer, RoomContainsLivingPlayer)}, monsterRules()...),
		},
		DefaultNpc: {Name: DefaultNpc, Rules: []Rule{
			findWeapon,
			rule(GetValuableItem, FoundValuableItem),
			search,
			attack,
			betterWeapon,
			betterArmor,
		}},
		Healer: {Name: Healer, Rules: []Rule{
			rule(HealOther, InjuredFriendlyInRoom, CanCastHealing),
			search,
			betterWeapon,
			betterArmor,
		}},
		Wizard: {Name: Wizard, Rules: []Rule{
			rule(CastFireAtLivingHostile, AnyLivingHostiles, CanCastFireDamage),
			rule(CastDamageAtLivingHostile, AnyLivingHostiles, CanCastDamageSpell),
			search,
			betterWeapon,
			betterArmor,
		}},
		Janitor: {Name: Janitor, Rules: []Rule{
			betterWeapon,
			betterArmor,
			rule(DestroyAnyItem, FoundAnyItem),
			search,
		}},
		Farmer: {Name: Farmer, Rules: []Rule{
			attack,
			rule(DrinkRandomDrink, FoundDrink),
			rule(Sit, InjuredModerate, NoHostiles, NotSitting),
			search,
		}},
		Berserker: {Name: Berserker, Rules: []Rule{
			attack,
			rule(Move, Any),
		}},
	}
}
