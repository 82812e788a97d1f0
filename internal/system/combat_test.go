package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l1jgo/townsfolk/internal/core/event"
	"github.com/l1jgo/townsfolk/internal/world"
)

func TestDamageNeverNegative(t *testing.T) {
	f := newFixture(t, fixedFormulas{damage: -7})
	assert.Equal(t, 0, f.sim.damage(1, 100))

	f = newFixture(t, nil)
	assert.Equal(t, 0, f.sim.damage(3, 10))
	assert.Equal(t, 7, f.sim.damage(10, 3))
}

func TestAttackKillsAndCountsOnce(t *testing.T) {
	f := newFixture(t, fixedFormulas{damage: 1000})
	room := f.room(t, square)
	bert := peasant("Bert")
	gob := goblin()
	room.AddActor(bert)
	room.AddActor(gob)

	var kills []event.ActorKilled
	event.Subscribe(f.sim.Bus, func(e event.ActorKilled) { kills = append(kills, e) })

	f.sim.attackRandomLivingHostile(bert, room)
	require.True(t, gob.IsDead())
	assert.Contains(t, f.said.text(), "The goblin dies.")

	// a corpse is not a living hostile, so a second swing does nothing
	f.sim.attackRandomLivingHostile(bert, room)
	assert.Equal(t, int64(1), f.sim.Stats.KillsOf("goblin"))
	assert.Equal(t, int64(1), f.sim.Stats.MonstersKilled())

	f.sim.Bus.SwapBuffers()
	f.sim.Bus.DispatchAll()
	require.Len(t, kills, 1)
	assert.Equal(t, "goblin", kills[0].Template)
	assert.True(t, kills[0].Monster)
	assert.Equal(t, square, kills[0].At)
}

func TestAttackMissNarratesMiss(t *testing.T) {
	f := newFixture(t, fixedFormulas{damage: 0})
	room := f.room(t, square)
	bert := peasant("Bert")
	gob := goblin()
	room.AddActor(bert)
	room.AddActor(gob)

	f.sim.attackRandomLivingHostile(gob, room)
	assert.True(t, bert.IsAlive())
	assert.Contains(t, f.said.text(), "They miss!")
}

func TestPlayerAttackAwardsExperience(t *testing.T) {
	f := newFixture(t, fixedFormulas{damage: 1000})
	room := f.room(t, square)
	gob := goblin()
	room.AddActor(gob)

	var got []string
	p := world.NewPlayer("Ann", 1, func(s string) { got = append(got, s) })
	f.sim.Players.Add(p)
	room.AddPlayer(p)

	assert.False(t, f.sim.PlayerAttack(p, room, "dragon"))
	require.True(t, f.sim.PlayerAttack(p, room, "goblin"))
	assert.True(t, gob.IsDead())
	assert.Equal(t, 12, p.Experience())
	assert.Contains(t, got, "You've gained 12 experience.")
	assert.Equal(t, int64(1), f.sim.Stats.KillsOf("goblin"))
}

func TestAttackPlayerStandsFirst(t *testing.T) {
	f := newFixture(t, fixedFormulas{damage: 5})
	room := f.room(t, square)
	gob := goblin()
	room.AddActor(gob)
	p := world.NewPlayer("Ann", 1, nil)
	room.AddPlayer(p)

	gob.SetPosture(world.Sitting)
	before := p.Attrs.Health()
	f.sim.attackPlayer(gob, room)
	assert.Equal(t, world.Standing, gob.Posture())
	assert.Equal(t, before, p.Attrs.Health(), "standing up uses the turn")

	f.sim.attackPlayer(gob, room)
	assert.Equal(t, before-5, p.Attrs.Health())
}

func TestStrikeTreatsActorsAndPlayersAlike(t *testing.T) {
	f := newFixture(t, fixedFormulas{damage: 4})
	gob := goblin()
	p := world.NewPlayer("Ann", 1, nil)

	for _, c := range []world.Combatant{gob, p} {
		before := c.Attributes().Health()
		dmg, left, killed := f.sim.strike(10, c)
		assert.Equal(t, 4, dmg)
		assert.Equal(t, before-4, left)
		assert.False(t, killed)
	}

	f = newFixture(t, fixedFormulas{damage: 1000})
	_, left, killed := f.sim.strike(1, p)
	assert.True(t, killed)
	assert.Zero(t, left)
	assert.False(t, p.IsAlive())
}
