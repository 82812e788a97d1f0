package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l1jgo/townsfolk/internal/ai"
	"github.com/l1jgo/townsfolk/internal/world"
)

const catalogDir = "../../data/yaml"

func TestLoadBundledCatalog(t *testing.T) {
	c, err := Load(catalogDir)
	require.NoError(t, err)

	assert.Positive(t, c.Items.Count())
	assert.NotEmpty(t, c.Items.OfKind(world.KindFood))
	assert.NotEmpty(t, c.Items.OfKind(world.KindDrink))
	assert.NotEmpty(t, c.Names)
	assert.Equal(t, 2, c.Regions.Count())

	_, ok := c.Items.Find("broom")
	assert.True(t, ok)
	_, ok = c.Items.Find("pitchfork")
	assert.True(t, ok)

	heal, ok := c.Spells.Spell("minor heal")
	require.True(t, ok)
	assert.True(t, heal.HasEffect(world.EffectRestoreHealth))
	assert.Contains(t, c.Spells.ForJob("healer"), "minor heal")

	assert.NotNil(t, c.Behaviors.Get("cautious-monster"))
	assert.NotNil(t, c.Behaviors.Get(ai.DefaultNpc))

	assert.True(t, c.Factions.Hostile(world.FactionNPC, world.FactionMonster))
	assert.False(t, c.Factions.Hostile(world.FactionPlayer, world.FactionNPC))

	assert.Len(t, c.Digests, 9)
	for name, d := range c.Digests {
		assert.Len(t, d, 64, name)
	}
	assert.Len(t, c.Digest(), 64)
}

func TestBuildGraphFromRegions(t *testing.T) {
	c, err := Load(catalogDir)
	require.NoError(t, err)

	g := world.NewGraph(world.GraphOptions{Factions: c.Factions, Messages: c.Messages})
	dangling, err := c.Regions.Build(g)
	require.NoError(t, err)
	assert.Empty(t, dangling)
	assert.Equal(t, 10, g.RoomCount())

	region, sub := g.Title(world.Coordinates{Region: 0, Subregion: 1, Room: 0})
	assert.Equal(t, "Greenhollow", region)
	assert.Equal(t, "Fields", sub)
}

func TestItemSchemaRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown kind", `items: [{name: rock, kind: pebble}]`},
		{"armor without slot", `items: [{name: cap, kind: armor, defense: 1}]`},
		{"weapon without power", `items: [{name: stick, kind: weapon}]`},
		{"food without bites", `items: [{name: pie, kind: food}]`},
		{"unknown field", `items: [{name: rock, kind: junk, colour: grey}]`},
		{"empty", `items: []`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseItemTable([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestItemFindPrefersWeapons(t *testing.T) {
	tab, err := ParseItemTable([]byte(`
items:
  - {name: stone club, kind: junk, keywords: [club]}
  - {name: club, kind: weapon, power: 3, keywords: [club]}
`))
	require.NoError(t, err)
	it, ok := tab.Find("club")
	require.True(t, ok)
	assert.Equal(t, "weapon", it.Kind)

	inst := tab.MustInstantiate("club")
	other := tab.MustInstantiate("club")
	assert.NotEqual(t, inst.ID, other.ID)
	assert.Panics(t, func() { tab.MustInstantiate("sceptre") })
}

func TestSpellsRejectUnknownJobSpell(t *testing.T) {
	_, err := ParseSpellTable([]byte(`
spells:
  - {name: spark, cost: 1, effects: [LIGHTNING_DAMAGE SINGLE_TARGET 2]}
jobs:
  wizard: [fireball]
`))
	assert.Error(t, err)

	_, err = ParseSpellTable([]byte(`
spells:
  - {name: spark, cost: 1, effects: [THUNDER SINGLE_TARGET 2]}
`))
	assert.Error(t, err)
}

func TestMonsterDefaults(t *testing.T) {
	tab, err := ParseMonsterTable([]byte(`
monsters:
  - {name: bat, keywords: [bat]}
`))
	require.NoError(t, err)
	m, ok := tab.Get("bat")
	require.True(t, ok)
	assert.Equal(t, 1, m.Level)
	assert.Equal(t, ai.DefaultMonster, m.Behavior)
	assert.Equal(t, "has arrived", m.ArriveSuffix)
	assert.Equal(t, world.StatsCritter, m.Stats())
}

func TestBehaviorsRejectUnknownNames(t *testing.T) {
	_, err := ParseBehaviors([]byte(`
behaviors:
  - name: odd
    rules:
      - {when: [FEELING_LUCKY], do: MOVE}
`))
	assert.Error(t, err)

	ps, err := ParseBehaviors([]byte(`
behaviors:
  - name: sitter
    rules:
      - {when: [ANY], do: SIT}
`))
	require.NoError(t, err)
	assert.Equal(t, ai.Sit, ps.Get("sitter").Rules[0].Action)
}

func TestFlavorPools(t *testing.T) {
	c, err := Load(catalogDir)
	require.NoError(t, err)
	q := c.Flavor.Quips
	assert.Contains(t, q.Pool(false, true, false), "Boo!", "dead friendly pools include the common lines")
	assert.Contains(t, q.Pool(false, false, false), "They got you too, huh?")
	assert.Contains(t, q.Pool(true, true, true), "Have at you, fiend!")
	assert.Contains(t, q.Pool(true, false, true), "Ha!")
	assert.Equal(t, q.Friendly, q.Pool(true, true, false))
}

func TestMessagesRejectUnknownKind(t *testing.T) {
	_, err := ParseMessages([]byte(`messages: {no_such_kind: "x"}`))
	assert.Error(t, err)
	m, err := ParseMessages([]byte(`messages: {misses: "Whiff!"}`))
	require.NoError(t, err)
	assert.Equal(t, "Whiff!", m.Format(world.MsgMisses))
}
