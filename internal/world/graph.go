package world

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Narrator receives every line broadcast in any room. The journal and the
// spectator feed hook in here.
type Narrator interface {
	Narrate(at Coordinates, text string)
}

// NarratorFunc adapts a function.
type NarratorFunc func(at Coordinates, text string)

func (f NarratorFunc) Narrate(at Coordinates, text string) { f(at, text) }

// Narrators fans a line out to several sinks.
type Narrators []Narrator

func (ns Narrators) Narrate(at Coordinates, text string) {
	for _, n := range ns {
		n.Narrate(at, text)
	}
}

// Region is display metadata for one region.
type Region struct {
	Index      int
	Name       string
	Subregions map[int]string
}

// Graph is the room arena. Rooms are created at load time and never added or
// removed afterwards, so lookups need no locking.
type Graph struct {
	rooms    map[Coordinates]*Room
	regions  map[int]*Region
	byRegion map[int][]Coordinates

	Factions *FactionGraph
	Messages *Messages
	Rand     *Rand

	narrator Narrator
	log      *zap.Logger
}

// GraphOptions configures NewGraph. Nil fields get defaults.
type GraphOptions struct {
	Factions *FactionGraph
	Messages *Messages
	Rand     *Rand
	Narrator Narrator
	Log      *zap.Logger
}

// NewGraph returns an empty graph.
func NewGraph(opts GraphOptions) *Graph {
	g := &Graph{
		rooms:    make(map[Coordinates]*Room),
		regions:  make(map[int]*Region),
		byRegion: make(map[int][]Coordinates),
		Factions: opts.Factions,
		Messages: opts.Messages,
		Rand:     opts.Rand,
		narrator: opts.Narrator,
		log:      opts.Log,
	}
	if g.Factions == nil {
		g.Factions = DefaultFactionGraph()
	}
	if g.Messages == nil {
		g.Messages = NewMessages(nil)
	}
	if g.Rand == nil {
		g.Rand = NewRand(0)
	}
	if g.narrator == nil {
		g.narrator = NarratorFunc(func(Coordinates, string) {})
	}
	if g.log == nil {
		g.log = zap.NewNop()
	}
	return g
}

// SetNarrator replaces the narration sink. Call before the simulation starts.
func (g *Graph) SetNarrator(n Narrator) {
	if n != nil {
		g.narrator = n
	}
}

// AddRegion registers display names.
func (g *Graph) AddRegion(r *Region) {
	g.regions[r.Index] = r
}

// Region returns region metadata or nil.
func (g *Graph) Region(index int) *Region {
	return g.regions[index]
}

// Regions returns the region indexes that have rooms, ascending.
func (g *Graph) Regions() []int {
	out := make([]int, 0, len(g.byRegion))
	for r := range g.byRegion {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

// AddRoom creates a room. Coordinates must be unique.
func (g *Graph) AddRoom(id int, at Coordinates, description string, conns []Connection) (*Room, error) {
	if _, dup := g.rooms[at]; dup {
		return nil, fmt.Errorf("duplicate room at %s", at)
	}
	r := &Room{
		ID:          id,
		Coords:      at,
		Description: description,
		Connections: slices.Clone(conns),
		Ground:      NewInventory(),
		graph:       g,
	}
	g.rooms[at] = r
	g.byRegion[at.Region] = append(g.byRegion[at.Region], at)
	return r, nil
}

// Room looks up a room by coordinates.
func (g *Graph) Room(at Coordinates) (*Room, bool) {
	r, ok := g.rooms[at]
	return r, ok
}

// Rooms returns every room of region in insertion order.
func (g *Graph) Rooms(region int) []*Room {
	out := make([]*Room, 0, len(g.byRegion[region]))
	for _, at := range g.byRegion[region] {
		out = append(out, g.rooms[at])
	}
	return out
}

// RoomCount returns the number of rooms.
func (g *Graph) RoomCount() int { return len(g.rooms) }

// RandomRoomInRegion picks a room uniformly within region.
func (g *Graph) RandomRoomInRegion(region int) (*Room, bool) {
	coords := g.byRegion[region]
	if len(coords) == 0 {
		return nil, false
	}
	return g.rooms[Pick(g.Rand, coords)], true
}

// RandomRoom picks any room.
func (g *Graph) RandomRoom() (*Room, bool) {
	regions := g.Regions()
	if len(regions) == 0 {
		return nil, false
	}
	var all []Coordinates
	for _, r := range regions {
		all = append(all, g.byRegion[r]...)
	}
	return g.rooms[Pick(g.Rand, all)], true
}

// Validate reports connections whose targets do not exist.
func (g *Graph) Validate() []error {
	var errs []error
	for at, r := range g.rooms {
		for _, c := range r.Connections {
			if _, ok := g.rooms[c.Target]; !ok {
				errs = append(errs, fmt.Errorf("room %s: connection %q targets missing room %s", at, c.Phrase, c.Target))
			}
		}
	}
	return errs
}

// Title is "[Region - Subregion]" content for the look output.
func (g *Graph) Title(at Coordinates) (region, subregion string) {
	if r := g.regions[at.Region]; r != nil {
		return r.Name, r.Subregions[at.Subregion]
	}
	return fmt.Sprintf("region %d", at.Region), fmt.Sprintf("subregion %d", at.Subregion)
}
