package handler

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/l1jgo/townsfolk/internal/command"
	"github.com/l1jgo/townsfolk/internal/data"
	"github.com/l1jgo/townsfolk/internal/system"
	"github.com/l1jgo/townsfolk/internal/world"
)

// fakeClient records what the handlers send.
type fakeClient struct {
	mu     sync.Mutex
	id     uint64
	state  command.SessionState
	sent   []string
	closed bool
}

func (c *fakeClient) SessionID() uint64                { return c.id }
func (c *fakeClient) State() command.SessionState      { return c.state }
func (c *fakeClient) SetState(st command.SessionState) { c.state = st }
func (c *fakeClient) Close()                           { c.closed = true }

func (c *fakeClient) Send(text string) {
	c.mu.Lock()
	c.sent = append(c.sent, text)
	c.mu.Unlock()
}

func (c *fakeClient) text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.sent, "\n")
}

func (c *fakeClient) reset() {
	c.mu.Lock()
	c.sent = nil
	c.mu.Unlock()
}

type harness struct {
	deps *Deps
	reg  *command.Registry
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cat, err := data.Load("../../data/yaml")
	require.NoError(t, err)
	g := world.NewGraph(world.GraphOptions{
		Factions: cat.Factions,
		Messages: cat.Messages,
		Rand:     world.NewRand(7),
		Log:      zap.NewNop(),
	})
	_, err = cat.Regions.Build(g)
	require.NoError(t, err)

	sim := system.New(system.Options{World: g, Catalog: cat, Log: zap.NewNop()})
	d := &Deps{Sim: sim, Log: zap.NewNop()}
	reg := command.NewRegistry(zap.NewNop())
	RegisterAll(reg, d)
	return &harness{deps: d, reg: reg}
}

func (h *harness) run(t *testing.T, c *fakeClient, line string) {
	t.Helper()
	cmd, err := command.Parse(line)
	require.NoError(t, err)
	require.NoError(t, h.reg.Dispatch(c, c.state, cmd))
}

func (h *harness) msg(kind world.MessageKind, args ...string) string {
	return h.deps.msg(kind, args...)
}

// enter puts a named player for c into the given room.
func (h *harness) enter(t *testing.T, c *fakeClient, name string, at world.Coordinates) *world.Player {
	t.Helper()
	room, ok := h.deps.Sim.World.Room(at)
	require.True(t, ok)
	p := world.NewPlayer(name, c.id, c.Send)
	h.deps.Sim.Players.Add(p)
	h.deps.Sim.PlacePlayer(p, room)
	c.state = command.StateInWorld
	c.reset()
	return p
}

var (
	square = world.Coordinates{Region: 0, Subregion: 0, Room: 0}
	lane   = world.Coordinates{Region: 0, Subregion: 0, Room: 1}
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ann", "Ann"},
		{"  BERTRAND ", "Bertrand"},
		{"x", ""},
		{"r2d2", ""},
		{"two words", ""},
		{"abcdefghijklmnopq", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeName(tt.in))
		})
	}
}

func TestNamingEntersWorld(t *testing.T) {
	h := newHarness(t)
	c := &fakeClient{id: 1, state: command.StateNaming}

	h.run(t, c, "x")
	assert.Contains(t, c.text(), h.msg(world.MsgNameInvalid))
	assert.Equal(t, command.StateNaming, c.state)

	h.run(t, c, "ann")
	assert.Equal(t, command.StateInWorld, c.state)
	assert.Contains(t, c.text(), h.msg(world.MsgWelcome, "Ann"))
	p := h.deps.Sim.Players.BySession(1)
	require.NotNil(t, p)
	assert.Equal(t, "Ann", p.Name)
	assert.Equal(t, 0, p.Coordinates().Region)
}

func TestNamingRejectsTakenName(t *testing.T) {
	h := newHarness(t)
	first := &fakeClient{id: 1, state: command.StateNaming}
	h.run(t, first, "Ann")

	second := &fakeClient{id: 2, state: command.StateNaming}
	h.run(t, second, "ANN")
	assert.Contains(t, second.text(), h.msg(world.MsgNameTaken, "Ann"))
	assert.Equal(t, command.StateNaming, second.state)
	assert.Equal(t, 1, h.deps.Sim.Players.Count())
}

func TestMovementVerbs(t *testing.T) {
	h := newHarness(t)
	c := &fakeClient{id: 1}
	p := h.enter(t, c, "Ann", square)

	h.run(t, c, "go up")
	assert.Contains(t, c.text(), h.msg(world.MsgNoExit))
	assert.Equal(t, square, p.Coordinates())

	h.run(t, c, "n")
	assert.Equal(t, lane, p.Coordinates())

	c.reset()
	h.run(t, c, "dance wildly")
	assert.Contains(t, c.text(), h.msg(world.MsgUnhandledInput))
}

func TestDeadPlayerMayOnlyLook(t *testing.T) {
	h := newHarness(t)
	c := &fakeClient{id: 1}
	p := h.enter(t, c, "Ann", square)
	p.Attrs.Damage(1 << 20)

	h.run(t, c, "go north")
	assert.Contains(t, c.text(), h.msg(world.MsgPlayerIsDead))
	assert.Equal(t, square, p.Coordinates())

	c.reset()
	h.run(t, c, "look")
	assert.Contains(t, c.text(), "Town Square")

	c.reset()
	h.run(t, c, "hp")
	assert.Contains(t, c.text(), p.Attrs.HealthString())
}

func TestItemVerbs(t *testing.T) {
	h := newHarness(t)
	c := &fakeClient{id: 1}
	p := h.enter(t, c, "Ann", square)
	room, _ := h.deps.Sim.World.Room(square)
	room.AddItems(h.deps.Sim.Catalog.Items.MustInstantiate("apple"))

	h.run(t, c, "get")
	assert.Equal(t, 0, p.Inventory.Len())

	h.run(t, c, "pick up the apple")
	assert.Equal(t, 1, p.Inventory.Len())

	h.run(t, c, "drop pear")
	assert.Contains(t, c.text(), h.msg(world.MsgNotCarryingItem, "pear"))

	h.run(t, c, "eat apple")
	h.run(t, c, "eat apple")
	assert.True(t, p.Inventory.IsEmpty())
}

func TestSayKeepsCase(t *testing.T) {
	h := newHarness(t)
	c := &fakeClient{id: 1}
	h.enter(t, c, "Ann", square)
	other := &fakeClient{id: 2}
	h.enter(t, other, "Bob", square)

	h.run(t, c, "say Hello, Bob!")
	assert.Contains(t, other.text(), `Ann says, "Hello, Bob!"`)
	assert.Contains(t, c.text(), `Ann says, "Hello, Bob!"`)

	c.reset()
	h.run(t, c, "say")
	assert.Contains(t, c.text(), h.msg(world.MsgSayWhat))
}

func TestQuitClosesAndLeaves(t *testing.T) {
	h := newHarness(t)
	c := &fakeClient{id: 1}
	h.enter(t, c, "Ann", square)

	h.run(t, c, "bye")
	assert.True(t, c.closed)
	assert.Contains(t, c.text(), h.msg(world.MsgFarewell))

	HandleDisconnect(c, h.deps)
	assert.Zero(t, h.deps.Sim.Players.Count())
	room, _ := h.deps.Sim.World.Room(square)
	assert.Empty(t, room.Players())
}
