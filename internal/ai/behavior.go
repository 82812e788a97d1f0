package ai

import (
	"fmt"

	"github.com/l1jgo/townsfolk/internal/world"
)

// MovePercent is the share of idle draws that become MOVE.
const MovePercent = 80

// IdleActions are drawn uniformly when an idle draw is not MOVE.
var IdleActions = []Action{
	GetRandomItem,
	QuipToRandomEntity,
	IdleFlavorAction,
	EatRandomFood,
	DrinkRandomDrink,
}

// Rule fires its Action when every situation in When holds.
type Rule struct {
	When   []Situation
	Action Action
}

// Policy is an ordered rule table. The first satisfied rule wins.
type Policy struct {
	Name  string
	Rules []Rule
}

// Select returns the action of the first rule whose situations all hold, or
// Idle when none does.
func (p *Policy) Select(a *world.Actor, v View) Action {
	for _, r := range p.Rules {
		if EvaluateAll(r.When, a, v) {
			return r.Action
		}
	}
	return Idle
}

// IdleFallback draws MOVE with MovePercent probability, otherwise one of
// IdleActions uniformly.
func IdleFallback(r *world.Rand) Action {
	if r.Intn(100) < MovePercent {
		return Move
	}
	return world.Pick(r, IdleActions)
}

// Decide selects an action and resolves Idle through the fallback.
func (p *Policy) Decide(a *world.Actor, v View, r *world.Rand) Action {
	act := p.Select(a, v)
	if act == Idle {
		return IdleFallback(r)
	}
	return act
}

// PolicySet maps archetype names to policies.
type PolicySet map[string]*Policy

// Get returns the named policy. Unknown names are a data bug.
func (ps PolicySet) Get(name string) *Policy {
	p, ok := ps[name]
	if !ok {
		panic(fmt.Sprintf("unknown behavior %q", name))
	}
	return p
}

// Merge returns a copy of ps with the entries of other replacing or adding.
func (ps PolicySet) Merge(other PolicySet) PolicySet {
	out := make(PolicySet, len(ps)+len(other))
	for k, v := range ps {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}
