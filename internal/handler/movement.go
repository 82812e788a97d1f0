package handler

import (
	"github.com/l1jgo/townsfolk/internal/command"
	"github.com/l1jgo/townsfolk/internal/world"
)

// HandleLook shows the current room again.
func HandleLook(c Client, _ *command.Command, d *Deps) {
	_, room, ok := d.player(c, true)
	if !ok {
		return
	}
	c.Send(d.Sim.LookText(room))
	c.Send(room.Ground.ItemsText())
	c.Send(room.NpcsText())
	c.Send(room.MonstersText())
}

// HandleGo moves along "go <direction>" or "go <phrase>". Bare direction
// words arrive here already rewritten by the registry.
func HandleGo(c Client, cmd *command.Command, d *Deps) {
	if len(cmd.Args) == 0 {
		c.Send(d.msg(world.MsgNoExit))
		return
	}
	move(c, world.ParseInput("go "+cmd.Rest()), d)
}

// HandleExitPhrase tries an unrecognized line as one of the room's exit
// phrases before giving up on it.
func HandleExitPhrase(c Client, cmd *command.Command, d *Deps) {
	p, room, ok := d.player(c, false)
	if !ok {
		return
	}
	if !d.Sim.MovePlayer(p, room, cmd.Input()) {
		c.Send(d.msg(world.MsgUnhandledInput))
	}
}

func move(c Client, in world.Input, d *Deps) {
	p, room, ok := d.player(c, false)
	if !ok {
		return
	}
	if !d.Sim.MovePlayer(p, room, in) {
		c.Send(d.msg(world.MsgNoExit))
	}
}

var postures = map[string]world.Posture{
	command.VerbSit:   world.Sitting,
	command.VerbStand: world.Standing,
	command.VerbKneel: world.Kneeling,
	command.VerbLie:   world.LyingDown,
}

// HandlePosture covers sit, stand, kneel and lie.
func HandlePosture(c Client, cmd *command.Command, d *Deps) {
	p, _, ok := d.player(c, false)
	if !ok {
		return
	}
	d.Sim.PlayerPosture(p, postures[cmd.Verb])
}
