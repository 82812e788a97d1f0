package world

import (
	"fmt"
	"strconv"
	"strings"
)

// EffectType is what a spell effect does.
type EffectType string

const (
	EffectRestoreHealth      EffectType = "RESTORE_HEALTH"
	EffectFireDamage         EffectType = "FIRE_DAMAGE"
	EffectIceDamage          EffectType = "ICE_DAMAGE"
	EffectLightningDamage    EffectType = "LIGHTNING_DAMAGE"
	EffectNonElementalDamage EffectType = "NON_ELEMENTAL_DAMAGE"
)

// IsDamage reports the *_DAMAGE types.
func (t EffectType) IsDamage() bool {
	switch t {
	case EffectFireDamage, EffectIceDamage, EffectLightningDamage, EffectNonElementalDamage:
		return true
	}
	return false
}

// Element is the lower-case element word used in narration.
func (t EffectType) Element() string {
	switch t {
	case EffectFireDamage:
		return "fire"
	case EffectIceDamage:
		return "ice"
	case EffectLightningDamage:
		return "lightning"
	default:
		return "arcane"
	}
}

// EffectTarget says who an effect lands on.
type EffectTarget string

const (
	TargetSingle EffectTarget = "SINGLE_TARGET"
	TargetSelf   EffectTarget = "SELF"
)

// SpellEffect is one step of a spell.
type SpellEffect struct {
	Type     EffectType
	Target   EffectTarget
	Strength int
}

// ParseSpellEffect parses "TYPE TARGET STRENGTH".
func ParseSpellEffect(s string) (SpellEffect, error) {
	f := strings.Fields(s)
	if len(f) != 3 {
		return SpellEffect{}, fmt.Errorf("spell effect %q: want TYPE TARGET STRENGTH", s)
	}
	t := EffectType(f[0])
	switch t {
	case EffectRestoreHealth, EffectFireDamage, EffectIceDamage, EffectLightningDamage, EffectNonElementalDamage:
	default:
		return SpellEffect{}, fmt.Errorf("spell effect %q: unknown type %s", s, f[0])
	}
	tgt := EffectTarget(f[1])
	if tgt != TargetSingle && tgt != TargetSelf {
		return SpellEffect{}, fmt.Errorf("spell effect %q: unknown target %s", s, f[1])
	}
	n, err := strconv.Atoi(f[2])
	if err != nil || n < 0 {
		return SpellEffect{}, fmt.Errorf("spell effect %q: bad strength", s)
	}
	return SpellEffect{Type: t, Target: tgt, Strength: n}, nil
}

// Spell is a named, costed list of effects.
type Spell struct {
	Name    string
	Cost    int
	Effects []SpellEffect
}

// HasEffect reports whether any effect has type t.
func (s *Spell) HasEffect(t EffectType) bool {
	for _, e := range s.Effects {
		if e.Type == t {
			return true
		}
	}
	return false
}

// IsDamage reports whether any effect deals damage.
func (s *Spell) IsDamage() bool {
	for _, e := range s.Effects {
		if e.Type.IsDamage() {
			return true
		}
	}
	return false
}

// SpellBook resolves spell names.
type SpellBook interface {
	Spell(name string) (*Spell, bool)
}

// SpellMap is a SpellBook backed by a map keyed by name.
type SpellMap map[string]*Spell

func (m SpellMap) Spell(name string) (*Spell, bool) {
	s, ok := m[name]
	return s, ok
}
