package data

import (
	"os"

	"github.com/samber/oops"

	"github.com/l1jgo/townsfolk/internal/world"
)

type factionEntry struct {
	ID        string         `yaml:"id"`
	Relations map[string]int `yaml:"relations"`
}

type factionListFile struct {
	Factions []factionEntry `yaml:"factions"`
}

// LoadFactions loads the faction graph. Pairs a faction does not list keep
// the default friendly relationship.
func LoadFactions(path string) (*world.FactionGraph, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, oops.In("catalog").With("path", path).Wrapf(err, "read factions")
	}
	g, err := ParseFactions(raw)
	if err != nil {
		return nil, nil, oops.In("catalog").With("path", path).Wrap(err)
	}
	return g, raw, nil
}

// ParseFactions decodes and validates a factions document.
func ParseFactions(raw []byte) (*world.FactionGraph, error) {
	var f factionListFile
	if err := decodeDoc(raw, "factions", &f); err != nil {
		return nil, err
	}
	fs := make([]*world.Faction, 0, len(f.Factions))
	for _, e := range f.Factions {
		rel := make(map[world.FactionID]int, len(e.Relations))
		for k, v := range e.Relations {
			rel[world.FactionID(k)] = v
		}
		fs = append(fs, &world.Faction{ID: world.FactionID(e.ID), Relations: rel})
	}
	return world.NewFactionGraph(fs...), nil
}
