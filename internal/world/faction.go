package world

// FactionID names a faction.
type FactionID string

const (
	FactionNPC     FactionID = "NPC"
	FactionMonster FactionID = "MONSTER"
	FactionPlayer  FactionID = "PLAYER"
)

// DefaultRelationship applies to any pair a faction does not list.
const DefaultRelationship = 100

// Faction holds one faction's view of the others. Views are directional:
// A hostile to B says nothing about B's view of A.
type Faction struct {
	ID        FactionID
	Relations map[FactionID]int
}

// Relationship returns the stored value toward other, or DefaultRelationship.
func (f *Faction) Relationship(other FactionID) int {
	if f == nil {
		return DefaultRelationship
	}
	if v, ok := f.Relations[other]; ok {
		return v
	}
	return DefaultRelationship
}

// IsHostileTo reports a negative relationship toward other.
func (f *Faction) IsHostileTo(other FactionID) bool {
	return f.Relationship(other) < 0
}

// FactionGraph is the set of known factions. It is immutable after load.
type FactionGraph struct {
	factions map[FactionID]*Faction
}

// NewFactionGraph builds a graph from the given factions.
func NewFactionGraph(fs ...*Faction) *FactionGraph {
	g := &FactionGraph{factions: make(map[FactionID]*Faction, len(fs))}
	for _, f := range fs {
		g.factions[f.ID] = f
	}
	return g
}

// DefaultFactionGraph is the built-in relation set: monsters and NPCs hate
// each other, players like NPCs and hate monsters.
func DefaultFactionGraph() *FactionGraph {
	return NewFactionGraph(
		&Faction{ID: FactionNPC, Relations: map[FactionID]int{FactionMonster: -100}},
		&Faction{ID: FactionMonster, Relations: map[FactionID]int{FactionNPC: -100}},
		&Faction{ID: FactionPlayer, Relations: map[FactionID]int{FactionNPC: 100, FactionMonster: -100}},
	)
}

// Get returns the faction or nil.
func (g *FactionGraph) Get(id FactionID) *Faction {
	return g.factions[id]
}

// Hostile reports whether from views to as hostile.
func (g *FactionGraph) Hostile(from, to FactionID) bool {
	return g.factions[from].IsHostileTo(to)
}
