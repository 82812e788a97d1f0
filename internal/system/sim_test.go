package system

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/l1jgo/townsfolk/internal/data"
	"github.com/l1jgo/townsfolk/internal/scripting"
	"github.com/l1jgo/townsfolk/internal/world"
)

const catalogDir = "../../data/yaml"

var (
	square = world.Coordinates{Region: 0, Subregion: 0, Room: 0}
	lane   = world.Coordinates{Region: 0, Subregion: 0, Room: 1}
)

// transcript collects every narrated line.
type transcript struct {
	mu    sync.Mutex
	lines []string
}

func (t *transcript) Narrate(_ world.Coordinates, text string) {
	t.mu.Lock()
	t.lines = append(t.lines, text)
	t.mu.Unlock()
}

func (t *transcript) all() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.lines...)
}

func (t *transcript) text() string { return strings.Join(t.all(), "\n") }

func (t *transcript) reset() {
	t.mu.Lock()
	t.lines = nil
	t.mu.Unlock()
}

type fixture struct {
	sim  *Simulation
	said *transcript
}

func newFixture(t *testing.T, formulas scripting.Formulas) *fixture {
	t.Helper()
	cat, err := data.Load(catalogDir)
	require.NoError(t, err)

	said := &transcript{}
	g := world.NewGraph(world.GraphOptions{
		Factions: cat.Factions,
		Messages: cat.Messages,
		Rand:     world.NewRand(42),
		Narrator: said,
		Log:      zap.NewNop(),
	})
	dangling, err := cat.Regions.Build(g)
	require.NoError(t, err)
	require.Empty(t, dangling)

	sim := New(Options{
		World:    g,
		Catalog:  cat,
		Formulas: formulas,
		Tunables: Tunables{
			NpcDelay:        DelayRange{time.Millisecond, 2 * time.Millisecond},
			MonsterDelay:    DelayRange{time.Millisecond, 2 * time.Millisecond},
			WorkerDelay:     DelayRange{time.Millisecond, 2 * time.Millisecond},
			MicroDelay:      time.Millisecond,
			PopulationStep:  time.Millisecond,
			ValuableMin:     200,
			MaxMonsterLevel: 10,
		},
		Log: zap.NewNop(),
	})
	return &fixture{sim: sim, said: said}
}

func (f *fixture) room(t *testing.T, at world.Coordinates) *world.Room {
	t.Helper()
	r, ok := f.sim.World.Room(at)
	require.True(t, ok, "room %s", at)
	return r
}

func (f *fixture) item(name string) *world.Item {
	return f.sim.Catalog.Items.MustInstantiate(name)
}

func goblin(items ...*world.Item) *world.Actor {
	return world.NewActor(world.ActorSpec{
		Faction:  world.FactionMonster,
		Role:     world.Monster{Template: "goblin", Experience: 12, Gold: 5},
		Names:    world.MonsterNames("goblin", "has arrived"),
		Keywords: []string{"goblin"},
		Stats:    world.StatsDefaultNpc,
		Items:    items,
	})
}

func peasant(name string) *world.Actor {
	return world.NewActor(world.ActorSpec{
		Faction:   world.FactionNPC,
		Role:      world.FriendlyNpc{Job: JobPeasant},
		Names:     world.NpcNames(name, JobPeasant, "walks in"),
		Keywords:  []string{name},
		Stats:     world.StatsDefaultNpc,
		Body:      world.HumanoidBody,
		CanTravel: true,
	})
}

// fixedFormulas makes combat deterministic.
type fixedFormulas struct {
	scripting.Builtin
	damage int
}

func (f fixedFormulas) Damage(int, int) int { return f.damage }
