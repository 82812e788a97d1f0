package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l1jgo/townsfolk/internal/world"
)

func testRoom(t *testing.T) *world.Room {
	t.Helper()
	g := world.NewGraph(world.GraphOptions{Rand: world.NewRand(11)})
	at := world.Coordinates{Region: 0, Subregion: 0, Room: 0}
	r, err := g.AddRoom(0, at, "A field.", nil)
	require.NoError(t, err)
	return r
}

func npc(spells ...string) *world.Actor {
	return world.NewActor(world.ActorSpec{
		Faction: world.FactionNPC,
		Role:    world.FriendlyNpc{Job: "peasant"},
		Names:   world.NpcNames("Bert", "peasant", "walks in"),
		Stats:   world.StatsDefaultNpc,
		Body:    world.HumanoidBody,
		Spells:  spells,
	})
}

func monster() *world.Actor {
	return world.NewActor(world.ActorSpec{
		Faction: world.FactionMonster,
		Role:    world.Monster{Template: "goblin"},
		Names:   world.MonsterNames("goblin", "has arrived"),
		Stats:   world.StatsDefaultNpc,
	})
}

func TestFirstMatchingRuleWins(t *testing.T) {
	room := testRoom(t)
	self := npc()
	room.AddActor(self)
	room.AddActor(monster())

	p := &Policy{Rules: []Rule{
		rule(SearchUnsearchedDead, AnyUnsearchedDeadHostile),
		rule(AttackRandomLivingHostile, AnyLivingHostiles),
	}}
	assert.Equal(t, AttackRandomLivingHostile, p.Select(self, View{Room: room}))

	both := &Policy{Rules: []Rule{
		rule(AttackRandomLivingHostile, AnyLivingHostiles),
		rule(Move, Any),
	}}
	assert.Equal(t, AttackRandomLivingHostile, both.Select(self, View{Room: room}))
}

func TestSelectFallsBackToIdle(t *testing.T) {
	room := testRoom(t)
	self := npc()
	room.AddActor(self)
	p := DefaultPolicies().Get(DefaultNpc)
	assert.Equal(t, Idle, p.Select(self, View{Room: room, ValuableMin: 200}))
}

func TestIdleFallbackMoveShare(t *testing.T) {
	r := world.NewRand(42)
	const draws = 10000
	moves := 0
	seen := map[Action]bool{}
	for i := 0; i < draws; i++ {
		a := IdleFallback(r)
		seen[a] = true
		if a == Move {
			moves++
		}
	}
	share := float64(moves) / draws
	assert.GreaterOrEqual(t, share, 0.75)
	assert.LessOrEqual(t, share, 0.85)
	for _, a := range IdleActions {
		assert.True(t, seen[a], "never drew %s", a)
	}
}

func TestDecideResolvesIdle(t *testing.T) {
	room := testRoom(t)
	self := npc()
	room.AddActor(self)
	r := world.NewRand(5)
	p := &Policy{}
	for i := 0; i < 50; i++ {
		assert.NotEqual(t, Idle, p.Decide(self, View{Room: room}, r))
	}
}

func TestDefaultPoliciesAreWellFormed(t *testing.T) {
	ps := DefaultPolicies()
	for _, name := range []string{
		DefaultMonster, AggressiveMonster, DefaultNpc, Healer, Wizard, Janitor, Farmer, Berserker,
	} {
		p := ps.Get(name)
		require.NotEmpty(t, p.Rules, name)
		for _, r := range p.Rules {
			_, err := ParseAction(string(r.Action))
			assert.NoError(t, err)
			for _, s := range r.When {
				_, err := ParseSituation(string(s))
				assert.NoError(t, err)
			}
		}
	}
	assert.Panics(t, func() { ps.Get("dragon") })
}

func TestMergeOverrides(t *testing.T) {
	custom := &Policy{Name: Janitor, Rules: []Rule{rule(Sit, Any)}}
	ps := DefaultPolicies().Merge(PolicySet{Janitor: custom})
	assert.Same(t, custom, ps.Get(Janitor))
	assert.NotNil(t, ps.Get(Wizard))
}
