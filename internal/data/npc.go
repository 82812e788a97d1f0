package data

import (
	"fmt"
	"os"
	"sort"

	"github.com/samber/oops"

	"github.com/l1jgo/townsfolk/internal/world"
)

// MonsterTemplate holds static data for a monster type loaded from YAML.
type MonsterTemplate struct {
	Name         string       `yaml:"name"`
	Keywords     []string     `yaml:"keywords"`
	Level        int          `yaml:"level"`
	Attributes   *world.Stats `yaml:"attributes"` // nil means the critter preset
	Experience   int          `yaml:"experience"`
	Gold         int          `yaml:"gold"`
	Items        []string     `yaml:"items"`
	Behavior     string       `yaml:"behavior"`
	ArriveSuffix string       `yaml:"arrive_suffix"`
	Unarmed      string       `yaml:"unarmed"`
}

// Stats returns the template attributes or the critter preset.
func (m *MonsterTemplate) Stats() world.Stats {
	if m.Attributes == nil {
		return world.StatsCritter
	}
	return *m.Attributes
}

type monsterListFile struct {
	Monsters []MonsterTemplate `yaml:"monsters"`
}

// MonsterTable holds monster templates indexed by name.
type MonsterTable struct {
	templates map[string]*MonsterTemplate
}

// LoadMonsterTable loads monster templates from a YAML file.
func LoadMonsterTable(path string) (*MonsterTable, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, oops.In("catalog").With("path", path).Wrapf(err, "read monsters")
	}
	t, err := ParseMonsterTable(raw)
	if err != nil {
		return nil, nil, oops.In("catalog").With("path", path).Wrap(err)
	}
	return t, raw, nil
}

// ParseMonsterTable decodes and validates a monsters document. Missing
// levels default to 1, behaviors to default-monster and arrival suffixes to
// "has arrived".
func ParseMonsterTable(raw []byte) (*MonsterTable, error) {
	var f monsterListFile
	if err := decodeDoc(raw, "monsters", &f); err != nil {
		return nil, err
	}
	t := &MonsterTable{templates: make(map[string]*MonsterTemplate, len(f.Monsters))}
	for i := range f.Monsters {
		m := &f.Monsters[i]
		if _, dup := t.templates[m.Name]; dup {
			return nil, fmt.Errorf("duplicate monster %q", m.Name)
		}
		if m.Level == 0 {
			m.Level = 1
		}
		if m.Behavior == "" {
			m.Behavior = "default-monster"
		}
		if m.ArriveSuffix == "" {
			m.ArriveSuffix = "has arrived"
		}
		t.templates[m.Name] = m
	}
	return t, nil
}

// Get returns a template by name.
func (t *MonsterTable) Get(name string) (*MonsterTemplate, bool) {
	m, ok := t.templates[name]
	return m, ok
}

// Count returns the number of templates.
func (t *MonsterTable) Count() int { return len(t.templates) }

// Names returns the template names, sorted.
func (t *MonsterTable) Names() []string {
	out := make([]string, 0, len(t.templates))
	for n := range t.templates {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

type nameListFile struct {
	Names []string `yaml:"names"`
}

// LoadNameList loads the pool of friendly NPC first names.
func LoadNameList(path string) ([]string, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, oops.In("catalog").With("path", path).Wrapf(err, "read names")
	}
	var f nameListFile
	if err := decodeDoc(raw, "names", &f); err != nil {
		return nil, nil, oops.In("catalog").With("path", path).Wrap(err)
	}
	return f.Names, raw, nil
}
