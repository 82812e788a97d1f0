package system

import (
	"strconv"

	"github.com/l1jgo/townsfolk/internal/scripting"
	"github.com/l1jgo/townsfolk/internal/world"
	"go.uber.org/zap"
)

// attackPower is strength plus weapon power plus the archetype modifier,
// routed through the formula engine so scripts can reshape it. Players
// attack with modifier and level zero.
func (s *Simulation) attackPower(c world.Combatant, modifier, level int) int {
	return s.Formulas.AttackPower(scripting.AttackInput{
		Strength:    c.Attributes().Strength(),
		WeaponPower: c.WeaponPower(),
		Modifier:    modifier,
		Level:       level,
	})
}

func (s *Simulation) actorAttackPower(a *world.Actor) int {
	return s.attackPower(a, a.AttackModifier, a.Level)
}

// damage never goes below zero whatever the formula says.
func (s *Simulation) damage(attackPower, defense int) int {
	return max(0, s.Formulas.Damage(attackPower, defense))
}

// strike lands one blow on target, actor or player alike.
func (s *Simulation) strike(attackPower int, target world.Combatant) (dmg, left int, killed bool) {
	attrs := target.Attributes()
	dmg = s.damage(attackPower, attrs.BaseDefense())
	left, killed = attrs.Damage(dmg)
	return dmg, left, killed
}

func (s *Simulation) hitOrMiss(dmg int) string {
	if dmg > 0 {
		return s.msg(world.MsgHitsForDamage, strconv.Itoa(dmg))
	}
	return s.msg(world.MsgMisses)
}

func (s *Simulation) attackRandomLivingHostile(a *world.Actor, room *world.Room) {
	target := room.RandomLivingHostile(a.Faction, "")
	if target == nil {
		return
	}
	dmg, left, killed := s.strike(s.actorAttackPower(a), target)

	lines := make([]string, 0, 4)
	if s.Rand.Roll(s.Tun.AttackQuipPercent) {
		lines = append(lines, s.quipLine(a, target))
	}
	if a.Weapon() != nil {
		lines = append(lines, s.msg(world.MsgEntityAttacksWithWeapon,
			a.Names.CapitalizedPrefixedFull(), target.Names.Conversational, a.WeaponName()))
	} else {
		lines = append(lines, s.msg(world.MsgEntityAttacksNoWeapon,
			a.Names.CapitalizedPrefixedFull(), target.Names.Conversational))
	}
	lines = append(lines, s.hitOrMiss(dmg))
	if killed {
		lines = append(lines, s.msg(world.MsgEntityDies, target.Names.Death))
	}
	room.BroadcastLines(lines)

	s.log.Debug("attack",
		zap.Stringer("room", room.Coords),
		zap.String("attacker", a.Names.WithJob),
		zap.String("target", target.Names.WithJob),
		zap.Int("damage", dmg),
		zap.Int("health_left", left))

	if killed {
		s.processDeath(target, a.Names.WithJob, room)
	}
}

// attackPlayer swings at a random living player. A seated or kneeling actor
// spends the action standing up.
func (s *Simulation) attackPlayer(a *world.Actor, room *world.Room) {
	if a.Posture() != world.Standing {
		s.stand(a, room)
		return
	}
	p := room.RandomLivingPlayer()
	if p == nil {
		return
	}
	dmg, _, killed := s.strike(s.actorAttackPower(a), p)

	lines := []string{
		s.msg(world.MsgEntityAttacksPlayer, a.Names.CapitalizedPrefixedFull(), a.WeaponName()),
		s.hitOrMiss(dmg),
	}
	if killed {
		p.Send(s.msg(world.MsgPlayerDies))
		lines = append(lines, s.msg(world.MsgOtherPlayerDies, p.Name))
		s.log.Info("player killed", zap.String("player", p.Name), zap.String("by", a.Names.WithJob))
	}
	room.BroadcastLines(lines)
}

// PlayerAttack resolves a player's swing at the actor matching keyword.
// It reports false when no living hostile matches.
func (s *Simulation) PlayerAttack(p *world.Player, room *world.Room, keyword string) bool {
	target := room.RandomLivingHostile(world.FactionPlayer, keyword)
	if target == nil {
		return false
	}
	dmg, _, killed := s.strike(s.attackPower(p, 0, 0), target)

	p.Send(s.msg(world.MsgPlayerAttacks, target.Names.Conversational, p.WeaponName()))
	var mine, theirs string
	if dmg > 0 {
		mine = s.msg(world.MsgPlayerHits, strconv.Itoa(dmg))
		theirs = s.msg(world.MsgOtherPlayerHits, strconv.Itoa(dmg))
	} else {
		mine = s.msg(world.MsgPlayerMisses)
		theirs = s.msg(world.MsgOtherPlayerMisses, p.Name)
	}
	p.Send(mine)
	room.BroadcastExcept(p, s.msg(world.MsgEntityAttacksNoWeapon, p.Name, target.Names.Conversational)+"\n"+theirs)

	if killed {
		room.Broadcast(s.msg(world.MsgEntityDies, target.Names.Death))
		if m, ok := target.Role.(world.Monster); ok && m.Experience > 0 {
			p.AddExperience(m.Experience)
			p.Send(s.msg(world.MsgPlayerGainsXP, strconv.Itoa(m.Experience)))
		}
		s.processDeath(target, p.Name, room)
	}
	return true
}
