package system

import (
	"strconv"

	"github.com/l1jgo/townsfolk/internal/ai"
	"github.com/l1jgo/townsfolk/internal/world"
	"go.uber.org/zap"
)

func isHealing(sp *world.Spell) bool { return sp.HasEffect(world.EffectRestoreHealth) }
func isFire(sp *world.Spell) bool    { return sp.HasEffect(world.EffectFireDamage) }

// pickSpell draws one of the caster's affordable spells matching pred.
func (s *Simulation) pickSpell(a *world.Actor, pred func(*world.Spell) bool) *world.Spell {
	return world.Pick(s.Rand, ai.Castable(a, s.Catalog.Spells, pred))
}

func (s *Simulation) healOther(a *world.Actor, room *world.Room) {
	target := room.RandomInjuredFriendly(a.Faction)
	if target == nil {
		return
	}
	if sp := s.pickSpell(a, isHealing); sp != nil {
		s.castSpell(a, room, sp, target)
	}
}

func (s *Simulation) healSelf(a *world.Actor, room *world.Room) {
	if sp := s.pickSpell(a, isHealing); sp != nil {
		s.castSpell(a, room, sp, a)
	}
}

func (s *Simulation) castFireAtLivingHostile(a *world.Actor, room *world.Room) {
	target := room.RandomLivingHostile(a.Faction, "")
	if target == nil {
		return
	}
	if sp := s.pickSpell(a, isFire); sp != nil {
		s.castSpell(a, room, sp, target)
	}
}

func (s *Simulation) castDamageAtLivingHostile(a *world.Actor, room *world.Room) {
	target := room.RandomLivingHostile(a.Faction, "")
	if target == nil {
		return
	}
	if sp := s.pickSpell(a, (*world.Spell).IsDamage); sp != nil {
		s.castSpell(a, room, sp, target)
	}
}

// castSpell pays for sp and applies its effects in order. SELF effects land
// on the caster, SINGLE_TARGET effects on target. Whoever the spell kills is
// processed once, after the last effect.
func (s *Simulation) castSpell(a *world.Actor, room *world.Room, sp *world.Spell, target *world.Actor) {
	if !a.Attrs.SpendMagic(sp.Cost) {
		return
	}

	var lines []string
	switch {
	case target == nil:
		lines = append(lines, s.msg(world.MsgEntityCastsSpell, s.who(a), sp.Name))
	case target == a:
		lines = append(lines, s.msg(world.MsgEntityCastsSpellOnSelf, s.who(a), sp.Name))
	default:
		lines = append(lines, s.msg(world.MsgEntityCastsSpellOnEntity, s.who(a), sp.Name, target.Names.PrefixedRandom(s.Rand)))
	}

	var killed []*world.Actor
	for _, eff := range sp.Effects {
		on := target
		if eff.Target == world.TargetSelf || on == nil {
			on = a
		}
		line, died := s.applyEffect(eff, on)
		lines = append(lines, line)
		if died {
			killed = append(killed, on)
		}
	}
	for _, v := range killed {
		lines = append(lines, s.msg(world.MsgEntityDies, v.Names.Death))
	}
	room.BroadcastLines(lines)

	s.log.Debug("cast",
		zap.Stringer("room", room.Coords),
		zap.String("caster", a.Names.WithJob),
		zap.String("spell", sp.Name),
		zap.Int("magic_left", a.Attrs.Magic()))

	for _, v := range killed {
		s.processDeath(v, a.Names.WithJob, room)
	}
}

// applyEffect resolves one effect on on and returns its narration.
func (s *Simulation) applyEffect(eff world.SpellEffect, on *world.Actor) (line string, killed bool) {
	n := strconv.Itoa(eff.Strength)
	switch {
	case eff.Type == world.EffectRestoreHealth:
		if _, ok := on.Attrs.Heal(eff.Strength); !ok {
			return "", false
		}
		return s.msg(world.MsgEntityIsHealed, on.Names.PrefixedRandom(s.Rand), n), false
	case eff.Type == world.EffectFireDamage:
		_, killed = on.Attrs.Damage(eff.Strength)
		return s.msg(world.MsgFireballHurtles, on.Names.PrefixedRandom(s.Rand), n), killed
	case eff.Type.IsDamage():
		_, killed = on.Attrs.Damage(eff.Strength)
		return s.msg(world.MsgSpellDamagesEntity, world.Capitalize(on.Names.PrefixedRandom(s.Rand)), eff.Type.Element(), n), killed
	}
	return "", false
}
