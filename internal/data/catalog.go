package data

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"sort"

	"golang.org/x/crypto/blake2b"

	"github.com/l1jgo/townsfolk/internal/ai"
	"github.com/l1jgo/townsfolk/internal/world"
)

// File names inside the catalog directory.
const (
	ItemsFile     = "items.yaml"
	MonstersFile  = "monsters.yaml"
	SpellsFile    = "spells.yaml"
	NamesFile     = "names.yaml"
	RegionsFile   = "regions.yaml"
	FactionsFile  = "factions.yaml"
	MessagesFile  = "messages.yaml"
	FlavorFile    = "flavor.yaml"
	BehaviorsFile = "behaviors.yaml"
)

// Catalog is every static table the simulation reads.
type Catalog struct {
	Items     *ItemTable
	Monsters  *MonsterTable
	Spells    *SpellTable
	Names     []string
	Regions   *RegionTable
	Factions  *world.FactionGraph
	Messages  *world.Messages
	Flavor    *Flavor
	Behaviors ai.PolicySet

	// Digests maps file name to the hex blake2b-256 of its bytes.
	Digests map[string]string
}

// Load reads every catalog file from dir. Behaviors in the file are merged
// over the built-in archetypes.
func Load(dir string) (*Catalog, error) {
	c := &Catalog{Digests: make(map[string]string)}
	p := func(name string) string { return filepath.Join(dir, name) }
	record := func(name string, raw []byte) {
		sum := blake2b.Sum256(raw)
		c.Digests[name] = hex.EncodeToString(sum[:])
	}

	var raw []byte
	var err error
	if c.Items, raw, err = LoadItemTable(p(ItemsFile)); err != nil {
		return nil, err
	}
	record(ItemsFile, raw)
	if c.Monsters, raw, err = LoadMonsterTable(p(MonstersFile)); err != nil {
		return nil, err
	}
	record(MonstersFile, raw)
	if c.Spells, raw, err = LoadSpellTable(p(SpellsFile)); err != nil {
		return nil, err
	}
	record(SpellsFile, raw)
	if c.Names, raw, err = LoadNameList(p(NamesFile)); err != nil {
		return nil, err
	}
	record(NamesFile, raw)
	if c.Regions, raw, err = LoadRegionTable(p(RegionsFile)); err != nil {
		return nil, err
	}
	record(RegionsFile, raw)
	if c.Factions, raw, err = LoadFactions(p(FactionsFile)); err != nil {
		return nil, err
	}
	record(FactionsFile, raw)
	if c.Messages, raw, err = LoadMessages(p(MessagesFile)); err != nil {
		return nil, err
	}
	record(MessagesFile, raw)
	if c.Flavor, raw, err = LoadFlavor(p(FlavorFile)); err != nil {
		return nil, err
	}
	record(FlavorFile, raw)
	var overrides ai.PolicySet
	if overrides, raw, err = LoadBehaviors(p(BehaviorsFile)); err != nil {
		return nil, err
	}
	record(BehaviorsFile, raw)
	c.Behaviors = ai.DefaultPolicies().Merge(overrides)

	if err := c.check(); err != nil {
		return nil, err
	}
	return c, nil
}

// check verifies cross-file references: monster items, monster behaviors and
// region monster lists.
func (c *Catalog) check() error {
	if err := c.Regions.CheckMonsters(c.Monsters); err != nil {
		return err
	}
	for _, name := range c.Monsters.Names() {
		m, _ := c.Monsters.Get(name)
		if _, ok := c.Behaviors[m.Behavior]; !ok {
			return fmt.Errorf("monster %q: unknown behavior %q", name, m.Behavior)
		}
		for _, it := range m.Items {
			if _, ok := c.Items.Find(it); !ok {
				return fmt.Errorf("monster %q: unknown item %q", name, it)
			}
		}
	}
	return nil
}

// Digest is one blake2b-256 over the per-file digests in name order.
func (c *Catalog) Digest() string {
	names := make([]string, 0, len(c.Digests))
	for n := range c.Digests {
		names = append(names, n)
	}
	sort.Strings(names)
	h, _ := blake2b.New256(nil)
	for _, n := range names {
		h.Write([]byte(n))
		h.Write([]byte(c.Digests[n]))
	}
	return hex.EncodeToString(h.Sum(nil))
}
