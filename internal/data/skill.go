package data

import (
	"fmt"
	"os"

	"github.com/samber/oops"

	"github.com/l1jgo/townsfolk/internal/world"
)

type spellEntry struct {
	Name    string   `yaml:"name"`
	Cost    int      `yaml:"cost"`
	Effects []string `yaml:"effects"` // "TYPE TARGET STRENGTH"
}

type spellListFile struct {
	Spells []spellEntry        `yaml:"spells"`
	Jobs   map[string][]string `yaml:"jobs"`
}

// SpellTable holds every spell by name plus the spells each job starts with.
type SpellTable struct {
	spells world.SpellMap
	jobs   map[string][]string
}

// LoadSpellTable loads spells from a YAML file.
func LoadSpellTable(path string) (*SpellTable, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, oops.In("catalog").With("path", path).Wrapf(err, "read spells")
	}
	t, err := ParseSpellTable(raw)
	if err != nil {
		return nil, nil, oops.In("catalog").With("path", path).Wrap(err)
	}
	return t, raw, nil
}

// ParseSpellTable decodes and validates a spells document. Every spell a job
// lists must exist.
func ParseSpellTable(raw []byte) (*SpellTable, error) {
	var f spellListFile
	if err := decodeDoc(raw, "spells", &f); err != nil {
		return nil, err
	}
	t := &SpellTable{spells: make(world.SpellMap, len(f.Spells)), jobs: f.Jobs}
	for _, e := range f.Spells {
		sp := &world.Spell{Name: e.Name, Cost: e.Cost}
		for _, s := range e.Effects {
			eff, err := world.ParseSpellEffect(s)
			if err != nil {
				return nil, fmt.Errorf("spell %q: %w", e.Name, err)
			}
			sp.Effects = append(sp.Effects, eff)
		}
		t.spells[e.Name] = sp
	}
	for job, names := range t.jobs {
		for _, n := range names {
			if _, ok := t.spells[n]; !ok {
				return nil, fmt.Errorf("job %s: unknown spell %q", job, n)
			}
		}
	}
	return t, nil
}

// Spell implements world.SpellBook.
func (t *SpellTable) Spell(name string) (*world.Spell, bool) {
	return t.spells.Spell(name)
}

// ForJob returns the starting spells of a job.
func (t *SpellTable) ForJob(job string) []string {
	return append([]string(nil), t.jobs[job]...)
}

// Count returns the number of spells.
func (t *SpellTable) Count() int { return len(t.spells) }
