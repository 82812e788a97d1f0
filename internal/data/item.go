package data

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/oops"

	"github.com/l1jgo/townsfolk/internal/world"
)

// ItemTemplate holds static data for one item type loaded from YAML.
type ItemTemplate struct {
	Name        string   `yaml:"name"`
	Kind        string   `yaml:"kind"` // junk, weapon, armor, food, drink, container, gem
	Description string   `yaml:"description"`
	Weight      float64  `yaml:"weight"`
	Value       int      `yaml:"value"`
	Keywords    []string `yaml:"keywords"`
	Power       int      `yaml:"power"`   // weapon
	Defense     int      `yaml:"defense"` // armor
	Slot        string   `yaml:"slot"`    // armor body slot
	Bites       int      `yaml:"bites"`   // food
	Quaffs      int      `yaml:"quaffs"`  // drink
	Closed      bool     `yaml:"closed"`  // container

	proto world.Item
}

// Matches compares str with the name and keywords.
func (t *ItemTemplate) Matches(str string) bool {
	return t.proto.MatchesKeyword(str)
}

// Instantiate creates a fresh item from the template.
func (t *ItemTemplate) Instantiate() *world.Item {
	return world.NewItem(t.proto)
}

type itemListFile struct {
	Items []ItemTemplate `yaml:"items"`
}

// ItemTable holds every item template, grouped by kind in load order.
type ItemTable struct {
	all    []*ItemTemplate
	byKind map[world.ItemKind][]*ItemTemplate
}

// LoadItemTable loads item templates from a YAML file.
func LoadItemTable(path string) (*ItemTable, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, oops.In("catalog").With("path", path).Wrapf(err, "read items")
	}
	t, err := ParseItemTable(raw)
	if err != nil {
		return nil, nil, oops.In("catalog").With("path", path).Wrap(err)
	}
	return t, raw, nil
}

// ParseItemTable decodes and validates an items document.
func ParseItemTable(raw []byte) (*ItemTable, error) {
	var f itemListFile
	if err := decodeDoc(raw, "items", &f); err != nil {
		return nil, err
	}
	t := &ItemTable{byKind: make(map[world.ItemKind][]*ItemTemplate)}
	seen := make(map[string]bool, len(f.Items))
	for i := range f.Items {
		it := &f.Items[i]
		if seen[it.Name] {
			return nil, fmt.Errorf("duplicate item %q", it.Name)
		}
		seen[it.Name] = true
		kind, ok := world.ParseItemKind(it.Kind)
		if !ok {
			return nil, fmt.Errorf("item %q: unknown kind %q", it.Name, it.Kind)
		}
		it.proto = world.Item{
			Kind:        kind,
			Name:        it.Name,
			Description: it.Description,
			Weight:      it.Weight,
			Value:       it.Value,
			Keywords:    it.Keywords,
			Power:       it.Power,
			Defense:     it.Defense,
			Bites:       it.Bites,
			Quaffs:      it.Quaffs,
			Closed:      it.Closed,
		}
		if kind == world.KindArmor {
			slot, ok := world.ParseBodySlot(it.Slot)
			if !ok {
				return nil, fmt.Errorf("item %q: unknown slot %q", it.Name, it.Slot)
			}
			it.proto.Slot = slot
		}
		t.all = append(t.all, it)
		t.byKind[kind] = append(t.byKind[kind], it)
	}
	return t, nil
}

// Count returns the number of templates.
func (t *ItemTable) Count() int { return len(t.all) }

// OfKind returns the templates of one kind.
func (t *ItemTable) OfKind(k world.ItemKind) []*ItemTemplate { return t.byKind[k] }

// Find returns the first template matching str, searching weapons, armor,
// food, drink, junk, containers and gems in that order.
func (t *ItemTable) Find(str string) (*ItemTemplate, bool) {
	str = strings.TrimSpace(str)
	for _, k := range []world.ItemKind{
		world.KindWeapon, world.KindArmor, world.KindFood, world.KindDrink,
		world.KindJunk, world.KindContainer, world.KindGem,
	} {
		for _, it := range t.byKind[k] {
			if it.Matches(str) {
				return it, true
			}
		}
	}
	return nil, false
}

// MustInstantiate creates an item by name or keyword. An unknown name is a
// data bug and panics.
func (t *ItemTable) MustInstantiate(str string) *world.Item {
	it, ok := t.Find(str)
	if !ok {
		panic(fmt.Sprintf("no item template matches %q", str))
	}
	return it.Instantiate()
}

// Random instantiates a random template of kind k, or returns nil when the
// catalog has none.
func (t *ItemTable) Random(r *world.Rand, k world.ItemKind) *world.Item {
	ts := t.byKind[k]
	if len(ts) == 0 {
		return nil
	}
	return world.Pick(r, ts).Instantiate()
}
