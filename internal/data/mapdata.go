package data

import (
	"errors"
	"fmt"
	"os"

	"github.com/samber/oops"

	"github.com/l1jgo/townsfolk/internal/world"
)

// RoomTemplate is one room as written in a region file.
type RoomTemplate struct {
	Coordinates string   `yaml:"coordinates"` // "r, s, n"
	Description string   `yaml:"description"`
	Connections []string `yaml:"connections"` // "r, s, n - input phrase"
}

// SubregionTemplate groups rooms under a display name.
type SubregionTemplate struct {
	ID    int            `yaml:"id"`
	Name  string         `yaml:"name"`
	Rooms []RoomTemplate `yaml:"rooms"`
}

// Caps bounds the per-region population pools.
type Caps struct {
	Monsters int `yaml:"monsters"`
	Npcs     int `yaml:"npcs"`
	Janitors int `yaml:"janitors"`
	Healers  int `yaml:"healers"`
	Wizards  int `yaml:"wizards"`
	Farmers  int `yaml:"farmers"`
}

// RegionTemplate is one region: its rooms, which monsters roam it and how
// many of each archetype it holds. The region index is its position in the
// file.
type RegionTemplate struct {
	Index      int                 `yaml:"-"`
	Name       string              `yaml:"name"`
	Monsters   []string            `yaml:"monsters"`
	Caps       Caps                `yaml:"caps"`
	Subregions []SubregionTemplate `yaml:"subregions"`
}

type regionListFile struct {
	Regions []RegionTemplate `yaml:"regions"`
}

// RegionTable holds the world layout.
type RegionTable struct {
	regions []*RegionTemplate
}

// LoadRegionTable loads regions from a YAML file.
func LoadRegionTable(path string) (*RegionTable, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, oops.In("catalog").With("path", path).Wrapf(err, "read regions")
	}
	t, err := ParseRegionTable(raw)
	if err != nil {
		return nil, nil, oops.In("catalog").With("path", path).Wrap(err)
	}
	return t, raw, nil
}

// ParseRegionTable decodes and validates a regions document.
func ParseRegionTable(raw []byte) (*RegionTable, error) {
	var f regionListFile
	if err := decodeDoc(raw, "regions", &f); err != nil {
		return nil, err
	}
	t := &RegionTable{}
	for i := range f.Regions {
		f.Regions[i].Index = i
		t.regions = append(t.regions, &f.Regions[i])
	}
	return t, nil
}

// All returns every region in index order.
func (t *RegionTable) All() []*RegionTemplate { return t.regions }

// Count returns the number of regions.
func (t *RegionTable) Count() int { return len(t.regions) }

// Build adds every region and room to g. Room coordinates must name the
// region they are listed under. Connections whose targets do not exist are
// reported but are not fatal; the movement code refuses them at run time.
func (t *RegionTable) Build(g *world.Graph) (dangling []error, err error) {
	id := 0
	for _, rt := range t.regions {
		reg := &world.Region{Index: rt.Index, Name: rt.Name, Subregions: make(map[int]string, len(rt.Subregions))}
		for _, st := range rt.Subregions {
			reg.Subregions[st.ID] = st.Name
			for _, room := range st.Rooms {
				at, err := world.ParseCoordinates(room.Coordinates)
				if err != nil {
					return nil, fmt.Errorf("region %s: %w", rt.Name, err)
				}
				if at.Region != rt.Index || at.Subregion != st.ID {
					return nil, fmt.Errorf("region %s: room %s listed under region %d subregion %d",
						rt.Name, at, rt.Index, st.ID)
				}
				conns := make([]world.Connection, 0, len(room.Connections))
				for _, cs := range room.Connections {
					c, err := world.ParseConnection(at, cs)
					if err != nil {
						return nil, fmt.Errorf("room %s: %w", at, err)
					}
					conns = append(conns, c)
				}
				if _, err := g.AddRoom(id, at, room.Description, conns); err != nil {
					return nil, err
				}
				id++
			}
		}
		g.AddRegion(reg)
	}
	return g.Validate(), nil
}

// CheckMonsters verifies that every monster a region names exists.
func (t *RegionTable) CheckMonsters(m *MonsterTable) error {
	var errs []error
	for _, rt := range t.regions {
		for _, name := range rt.Monsters {
			if _, ok := m.Get(name); !ok {
				errs = append(errs, fmt.Errorf("region %s: unknown monster %q", rt.Name, name))
			}
		}
	}
	return errors.Join(errs...)
}
