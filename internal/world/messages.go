package world

import (
	"maps"
	"strconv"
	"strings"
)

// MessageKind names a narration template. Templates use %1, %2, ...
type MessageKind string

const (
	MsgEntityArrives             MessageKind = "entity_arrives"
	MsgEntityDies                MessageKind = "entity_dies"
	MsgEntityDecays              MessageKind = "dead_entity_decays"
	MsgEntityLeavesGame          MessageKind = "entity_leaves_game"
	MsgEntityHeadsDirection      MessageKind = "entity_heads_direction"
	MsgEntityHeadsOverTo         MessageKind = "entity_heads_over_to"
	MsgEntityHeadsThroughGates   MessageKind = "entity_heads_through_gates"
	MsgEntityHeadsDownPath       MessageKind = "entity_heads_down_path"
	MsgEntitySits                MessageKind = "entity_sits"
	MsgEntityStands              MessageKind = "entity_stands"
	MsgEntityKneels              MessageKind = "entity_kneels"
	MsgEntityPicksUp             MessageKind = "entity_picks_up"
	MsgEntityDrops               MessageKind = "entity_drops"
	MsgEntityDestroys            MessageKind = "entity_destroys"
	MsgEntityEquips              MessageKind = "entity_equips"
	MsgEntityUnequipsAndDrops    MessageKind = "entity_unequips_and_drops"
	MsgEntityPicksUpAndEquips    MessageKind = "entity_picks_up_and_equips"
	MsgEntityAttacksWithWeapon   MessageKind = "entity_attacks_with_weapon"
	MsgEntityAttacksNoWeapon     MessageKind = "entity_attacks_no_weapon"
	MsgEntityAttacksPlayer       MessageKind = "entity_attacks_player"
	MsgHitsForDamage             MessageKind = "hits_for_damage"
	MsgMisses                    MessageKind = "misses"
	MsgEntitySearchesCorpse      MessageKind = "entity_searches_corpse"
	MsgEntitySaysTo              MessageKind = "entity_says_to"
	MsgEntitySays                MessageKind = "entity_says"
	MsgEntityMumbles             MessageKind = "entity_mumbles"
	MsgDeadEntityQuipsSolo       MessageKind = "dead_entity_quips_solo"
	MsgEntityCastsSpell          MessageKind = "entity_casts_spell"
	MsgEntityCastsSpellOnSelf    MessageKind = "entity_casts_spell_on_self"
	MsgEntityCastsSpellOnEntity  MessageKind = "entity_casts_spell_on_entity"
	MsgEntityIsHealed            MessageKind = "entity_is_healed"
	MsgSpellDamagesEntity        MessageKind = "spell_damages_entity"
	MsgFireballHurtles           MessageKind = "fireball_hurtles"
	MsgEntityEatsFromInventory   MessageKind = "entity_eats_from_inventory"
	MsgEntityEatsFromGround      MessageKind = "entity_eats_from_ground"
	MsgEntityDrinksFromInventory MessageKind = "entity_drinks_from_inventory"
	MsgEntityDrinksFromGround    MessageKind = "entity_drinks_from_ground"
	MsgLastOfIt                  MessageKind = "last_of_it"

	MsgPlayerArrives        MessageKind = "player_arrives"
	MsgPlayerLeavesGame     MessageKind = "player_leaves_game"
	MsgPlayerHeads          MessageKind = "player_heads"
	MsgPlayerDies           MessageKind = "player_dies"
	MsgOtherPlayerDies      MessageKind = "other_player_dies"
	MsgPlayerAttacks        MessageKind = "player_attacks"
	MsgPlayerHits           MessageKind = "player_hits"
	MsgPlayerMisses         MessageKind = "player_misses"
	MsgOtherPlayerHits      MessageKind = "other_player_hits"
	MsgOtherPlayerMisses    MessageKind = "other_player_misses"
	MsgPlayerGainsXP        MessageKind = "player_gains_experience"
	MsgPlayerSearches       MessageKind = "player_searches"
	MsgOtherPlayerSearches  MessageKind = "other_player_searches"
	MsgPlayerFindsGold      MessageKind = "player_finds_gold"
	MsgPlayerCurrentGold    MessageKind = "player_current_gold"
	MsgPlayerGetsItem       MessageKind = "player_gets_item"
	MsgPlayerDropsItem      MessageKind = "player_drops_item"
	MsgPlayerEats           MessageKind = "player_eats"
	MsgPlayerEatsFinal      MessageKind = "player_eats_final"
	MsgPlayerDrinks         MessageKind = "player_drinks"
	MsgPlayerDrinksFinal    MessageKind = "player_drinks_final"
	MsgPlayerSits           MessageKind = "player_sits"
	MsgPlayerStands         MessageKind = "player_stands"
	MsgPlayerKneels         MessageKind = "player_kneels"
	MsgPlayerLiesDown       MessageKind = "player_lies_down"
	MsgPlayerAlreadySitting MessageKind = "player_already_sitting"
	MsgPlayerAlreadyStand   MessageKind = "player_already_standing"
	MsgPlayerAlreadyKneel   MessageKind = "player_already_kneeling"
	MsgPlayerAlreadyLying   MessageKind = "player_already_lying_down"
	MsgPlayerNotCarrying    MessageKind = "player_not_carrying_anything"
	MsgPlayerCarrying       MessageKind = "player_carrying"
	MsgGetWhat              MessageKind = "get_what"
	MsgLookCurrentRoom      MessageKind = "look_current_room"
	MsgUnhandledInput       MessageKind = "unhandled_player_input"

	MsgAskName         MessageKind = "ask_name"
	MsgNameInvalid     MessageKind = "name_invalid"
	MsgNameTaken       MessageKind = "name_taken"
	MsgWelcome         MessageKind = "welcome"
	MsgFarewell        MessageKind = "farewell"
	MsgPlayerIsDead    MessageKind = "player_is_dead"
	MsgNoExit          MessageKind = "no_exit"
	MsgNotHere         MessageKind = "not_here"
	MsgNoCorpse        MessageKind = "no_corpse"
	MsgAttackWhom      MessageKind = "attack_whom"
	MsgDropWhat        MessageKind = "drop_what"
	MsgSayWhat         MessageKind = "say_what"
	MsgNotCarryingItem MessageKind = "not_carrying_item"
	MsgEatWhat         MessageKind = "eat_what"
	MsgPlayerStatus    MessageKind = "player_status"
)

// DefaultMessages is the built-in English template table.
var DefaultMessages = map[MessageKind]string{
	MsgEntityArrives:             "%1 %2.",
	MsgEntityDies:                "%1 dies.",
	MsgEntityDecays:              "The body of %1 crumbles to dust.",
	MsgEntityLeavesGame:          "%1 leaves.",
	MsgEntityHeadsDirection:      "%1 heads %2.",
	MsgEntityHeadsOverTo:         "%1 heads over to the %2.",
	MsgEntityHeadsThroughGates:   "%1 heads through the town gates.",
	MsgEntityHeadsDownPath:       "%1 heads down the dirt path.",
	MsgEntitySits:                "%1 sits down.",
	MsgEntityStands:              "%1 stands up.",
	MsgEntityKneels:              "%1 kneels.",
	MsgEntityPicksUp:             "%1 picks up %2.",
	MsgEntityDrops:               "%1 drops %2.",
	MsgEntityDestroys:            "%1 destroys %2.",
	MsgEntityEquips:              "%1 equips %2.",
	MsgEntityUnequipsAndDrops:    "%1 unequips and drops %2.",
	MsgEntityPicksUpAndEquips:    "%1 picks up and equips %2.",
	MsgEntityAttacksWithWeapon:   "%1 attacks %2 with their %3.",
	MsgEntityAttacksNoWeapon:     "%1 attacks %2.",
	MsgEntityAttacksPlayer:       "%1 swings at you with their %2.",
	MsgHitsForDamage:             "They hit for %1 damage.",
	MsgMisses:                    "They miss!",
	MsgEntitySearchesCorpse:      "%1 searches the corpse of %2.",
	MsgEntitySaysTo:              "%1 says to %2, \"%3\"",
	MsgEntitySays:                "%1 says, \"%2\"",
	MsgEntityMumbles:             "%1 mumbles something to themselves.",
	MsgDeadEntityQuipsSolo:       "The ghostly voice of %1 says, \"%2\"",
	MsgEntityCastsSpell:          "%1 casts %2.",
	MsgEntityCastsSpellOnSelf:    "%1 casts %2 on themselves.",
	MsgEntityCastsSpellOnEntity:  "%1 casts %2 on %3.",
	MsgEntityIsHealed:            "%1 is healed for %2 health.",
	MsgSpellDamagesEntity:        "%1 is struck by %2 magic for %3 damage.",
	MsgFireballHurtles:           "A fireball hurtles at %1, burning them for %2 damage.",
	MsgEntityEatsFromInventory:   "%1 takes a bite of their %2.",
	MsgEntityEatsFromGround:      "%1 takes a bite of the %2, which is on the ground.",
	MsgEntityDrinksFromInventory: "%1 takes a drink from their %2.",
	MsgEntityDrinksFromGround:    "%1 takes a drink from the %2, which is on the ground.",
	MsgLastOfIt:                  "That was the last of it.",

	MsgPlayerArrives:        "%1 has arrived.",
	MsgPlayerLeavesGame:     "%1 has left.",
	MsgPlayerHeads:          "%1 heads %2.",
	MsgPlayerDies:           "You have died.",
	MsgOtherPlayerDies:      "%1 has died.",
	MsgPlayerAttacks:        "You swing at %1 with your %2.",
	MsgPlayerHits:           "You hit for %1 damage.",
	MsgPlayerMisses:         "You miss!",
	MsgOtherPlayerHits:      "They hit for %1 damage.",
	MsgOtherPlayerMisses:    "%1 misses!",
	MsgPlayerGainsXP:        "You've gained %1 experience.",
	MsgPlayerSearches:       "You search %1.",
	MsgOtherPlayerSearches:  "%1 searches %2.",
	MsgPlayerFindsGold:      "You find %1 gold on %2.",
	MsgPlayerCurrentGold:    "You have %1 gold.",
	MsgPlayerGetsItem:       "You pick up %1.",
	MsgPlayerDropsItem:      "You drop %1.",
	MsgPlayerEats:           "You take a bite of your %1. %2",
	MsgPlayerEatsFinal:      "You take a bite of your %1. That was the last of it.",
	MsgPlayerDrinks:         "You take a sip of your %1. %2",
	MsgPlayerDrinksFinal:    "You take a sip of your %1. That was the last of it.",
	MsgPlayerSits:           "You sit down.",
	MsgPlayerStands:         "You stand up.",
	MsgPlayerKneels:         "You kneel.",
	MsgPlayerLiesDown:       "You lie down.",
	MsgPlayerAlreadySitting: "You're already sitting.",
	MsgPlayerAlreadyStand:   "You're already standing.",
	MsgPlayerAlreadyKneel:   "You're already kneeling.",
	MsgPlayerAlreadyLying:   "You're already lying down.",
	MsgPlayerNotCarrying:    "You aren't carrying anything.",
	MsgPlayerCarrying:       "You are carrying %1.",
	MsgGetWhat:              "Get what?",
	MsgLookCurrentRoom:      "[%1 - %2]\n%3",
	MsgUnhandledInput:       "I don't know, boss. Try something else.",

	MsgAskName:         "By what name shall you be known?",
	MsgNameInvalid:     "A name is 2 to 16 letters. Try again.",
	MsgNameTaken:       "Someone called %1 is already here. Choose another name.",
	MsgWelcome:         "Welcome, %1.",
	MsgFarewell:        "Farewell.",
	MsgPlayerIsDead:    "You are dead. All you can do now is look around or quit.",
	MsgNoExit:          "You can't go that way.",
	MsgNotHere:         "You don't see %1 here.",
	MsgNoCorpse:        "There is nothing here to search.",
	MsgAttackWhom:      "Attack whom?",
	MsgDropWhat:        "Drop what?",
	MsgSayWhat:         "Say what?",
	MsgNotCarryingItem: "You aren't carrying %1.",
	MsgEatWhat:         "You have nothing like that to eat or drink.",
	MsgPlayerStatus:    "You have %1 experience and %2 gold.",
}

// Messages formats narration templates.
type Messages struct {
	templates map[MessageKind]string
}

// NewMessages layers overrides on top of DefaultMessages.
func NewMessages(overrides map[MessageKind]string) *Messages {
	t := maps.Clone(DefaultMessages)
	maps.Copy(t, overrides)
	return &Messages{templates: t}
}

// Format substitutes %1..%N. Higher indexes are replaced first so %1 never
// clobbers the prefix of %10.
func (m *Messages) Format(kind MessageKind, args ...string) string {
	s, ok := m.templates[kind]
	if !ok {
		return "error: invalid string"
	}
	for i := len(args); i >= 1; i-- {
		s = strings.ReplaceAll(s, "%"+strconv.Itoa(i), args[i-1])
	}
	return s
}

// Known reports whether kind has a template.
func (m *Messages) Known(kind MessageKind) bool {
	_, ok := m.templates[kind]
	return ok
}
