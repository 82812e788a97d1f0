// Package handler implements the player commands.
package handler

import (
	"github.com/l1jgo/townsfolk/internal/command"
	"github.com/l1jgo/townsfolk/internal/net"
	"github.com/l1jgo/townsfolk/internal/system"
	"github.com/l1jgo/townsfolk/internal/world"
	"go.uber.org/zap"
)

// Client is the part of a session the handlers need. *net.Session
// satisfies it.
type Client interface {
	SessionID() uint64
	Send(text string)
	State() command.SessionState
	SetState(st command.SessionState)
	Close()
}

var _ Client = (*net.Session)(nil)

// Deps holds shared dependencies injected into all command handlers.
type Deps struct {
	Sim *system.Simulation
	Log *zap.Logger
}

func (d *Deps) msg(kind world.MessageKind, args ...string) string {
	return d.Sim.World.Messages.Format(kind, args...)
}

// player resolves the client's player and current room. A player who is
// dead is told so and gets ok=false unless allowDead is set.
func (d *Deps) player(c Client, allowDead bool) (*world.Player, *world.Room, bool) {
	p := d.Sim.Players.BySession(c.SessionID())
	if p == nil {
		return nil, nil, false
	}
	room, ok := d.Sim.World.Room(p.Coordinates())
	if !ok {
		d.Log.Warn("player outside any room", zap.String("player", p.Name), zap.Stringer("at", p.Coordinates()))
		return nil, nil, false
	}
	if !allowDead && !p.IsAlive() {
		c.Send(d.msg(world.MsgPlayerIsDead))
		return nil, nil, false
	}
	return p, room, true
}

var inWorld = []command.SessionState{command.StateInWorld}

// RegisterAll registers all command handlers into the registry.
func RegisterAll(reg *command.Registry, d *Deps) {
	on := func(verbs []string, fn func(Client, *command.Command, *Deps)) {
		reg.Register(verbs, inWorld, func(sess any, cmd *command.Command) {
			fn(sess.(Client), cmd, d)
		})
	}

	// Naming phase: the whole line is the name.
	reg.Fallback(command.StateNaming, func(sess any, cmd *command.Command) {
		HandleName(sess.(Client), cmd, d)
	})

	on([]string{command.VerbLook}, HandleLook)
	on([]string{command.VerbGo}, HandleGo)
	on([]string{command.VerbAttack}, HandleAttack)
	on([]string{command.VerbSearch}, HandleSearch)
	on([]string{command.VerbGet}, HandleGet)
	on([]string{command.VerbDrop}, HandleDrop)
	on([]string{command.VerbEat}, HandleEat)
	on([]string{command.VerbSit, command.VerbStand, command.VerbKneel, command.VerbLie}, HandlePosture)
	on([]string{command.VerbHealth}, HandleHealth)
	on([]string{command.VerbInventory}, HandleInventory)
	on([]string{command.VerbStats}, HandleStats)
	on([]string{command.VerbSay}, HandleSay)
	on([]string{command.VerbQuit}, HandleQuit)

	// Anything else in the world may be a room-specific exit phrase
	// ("climb the ladder").
	reg.Fallback(command.StateInWorld, func(sess any, cmd *command.Command) {
		HandleExitPhrase(sess.(Client), cmd, d)
	})
}

// Hooks wires session life-cycle events to the player surface.
func Hooks(d *Deps) system.SessionHooks {
	return system.SessionHooks{
		Connect: func(sess *net.Session) {
			sess.Send(d.msg(world.MsgAskName))
		},
		Disconnect: func(sess *net.Session) {
			HandleDisconnect(sess, d)
		},
		Unhandled: func(sess *net.Session) {
			sess.Send(d.msg(world.MsgUnhandledInput))
		},
	}
}
