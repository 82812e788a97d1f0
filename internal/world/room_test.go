package world

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGraph(t *testing.T) (*Graph, *Room, *Room) {
	t.Helper()
	g := NewGraph(GraphOptions{Rand: NewRand(7)})
	a := Coordinates{0, 0, 0}
	b := Coordinates{0, 0, 1}
	ra, err := g.AddRoom(0, a, "A square.", []Connection{NewConnection(a, b, "go north")})
	require.NoError(t, err)
	rb, err := g.AddRoom(1, b, "A lane.", []Connection{NewConnection(b, a, "go south")})
	require.NoError(t, err)
	return g, ra, rb
}

func goblin() *Actor {
	return NewActor(ActorSpec{
		Faction:  FactionMonster,
		Role:     Monster{Template: "goblin"},
		Names:    MonsterNames("goblin", "has arrived"),
		Keywords: []string{"goblin"},
		Stats:    StatsDefaultNpc,
	})
}

func peasant(name string) *Actor {
	return NewActor(ActorSpec{
		Faction: FactionNPC,
		Role:    FriendlyNpc{Job: "peasant"},
		Names:   NpcNames(name, "peasant", "walks in"),
		Stats:   StatsDefaultNpc,
		Body:    HumanoidBody,
	})
}

func TestRoomArrivalAndDepartureNarration(t *testing.T) {
	_, ra, _ := testGraph(t)
	var got []string
	var mu sync.Mutex
	p := NewPlayer("Ann", 1, func(s string) { mu.Lock(); got = append(got, s); mu.Unlock() })
	ra.AddPlayer(p)

	g := goblin()
	ra.AddActor(g)
	c, ok := g.Coordinates()
	require.True(t, ok)
	assert.Equal(t, ra.Coords, c)
	assert.Contains(t, got, "A goblin has arrived.")
	assert.Contains(t, got, "MONSTERS:goblin")

	conn := ra.Connections[0]
	got = nil
	require.True(t, ra.RemoveActor(g, &conn))
	assert.Contains(t, got, "The goblin heads north.")

	// dead actors leave silently
	d := goblin()
	ra.AddActor(d)
	d.Attrs.SetHealth(0)
	got = nil
	ra.RemoveActor(d, nil)
	for _, line := range got {
		assert.False(t, strings.Contains(line, "leaves"), line)
	}
}

func TestRoomHostilityQueries(t *testing.T) {
	_, ra, _ := testGraph(t)
	bert := peasant("Bert")
	gob := goblin()
	ra.AddActor(bert)
	ra.AddActor(gob)

	assert.Equal(t, gob, ra.RandomLivingHostile(FactionNPC, ""))
	assert.Equal(t, gob, ra.RandomLivingHostile(FactionNPC, "goblin"))
	assert.Nil(t, ra.RandomLivingHostile(FactionNPC, "dragon"))
	assert.Equal(t, bert, ra.RandomLivingHostile(FactionMonster, ""))

	gob.Attrs.SetHealth(0)
	assert.Nil(t, ra.RandomLivingHostile(FactionNPC, ""), "dead hostiles are not attack targets")
	assert.Equal(t, gob, ra.RandomUnsearchedDeadHostile(FactionNPC))
	gob.MarkSearched()
	assert.Nil(t, ra.RandomUnsearchedDeadHostile(FactionNPC))
}

func TestInjuredFriendliesIncludeSelf(t *testing.T) {
	_, ra, _ := testGraph(t)
	bert := peasant("Bert")
	ra.AddActor(bert)
	bert.Attrs.SetHealth(30)
	assert.Empty(t, ra.InjuredFriendlies(FactionNPC))
	bert.Attrs.SetHealth(10)
	assert.Equal(t, []*Actor{bert}, ra.InjuredFriendlies(FactionNPC))
}

func TestConnectionsForRespectsTravel(t *testing.T) {
	g := NewGraph(GraphOptions{})
	a := Coordinates{0, 0, 0}
	out := Coordinates{1, 0, 0}
	in := Coordinates{0, 0, 1}
	r, err := g.AddRoom(0, a, "Gate.", []Connection{
		NewConnection(a, out, "go gates"),
		NewConnection(a, in, "go east"),
	})
	require.NoError(t, err)
	assert.Len(t, r.ConnectionsFor(true), 2)
	local := r.ConnectionsFor(false)
	require.Len(t, local, 1)
	assert.Equal(t, in, local[0].Target)
	assert.Len(t, g.Validate(), 2)
}

func TestJoinLinesSkipsEmpty(t *testing.T) {
	lines := []string{"", "one", "", "two", ""}
	assert.Equal(t, "one\ntwo", JoinLines(lines))
	assert.Equal(t, []string{"", "one", "", "two", ""}, lines, "input untouched")
	assert.Empty(t, JoinLines(nil))
}

func TestRoomsListsRegion(t *testing.T) {
	g, ra, rb := testGraph(t)
	assert.Equal(t, []*Room{ra, rb}, g.Rooms(0))
	assert.Empty(t, g.Rooms(9))
}
