package handler

import (
	"slices"

	"github.com/l1jgo/townsfolk/internal/command"
	"github.com/l1jgo/townsfolk/internal/world"
)

// keyword drops the filler words players type in front of an item name.
func keyword(cmd *command.Command) string {
	args := cmd.Args
	for len(args) > 0 && slices.Contains([]string{"up", "the", "a", "an", "some"}, args[0]) {
		args = args[1:]
	}
	return (&command.Command{Args: args}).Rest()
}

// HandleGet picks an item up off the ground.
func HandleGet(c Client, cmd *command.Command, d *Deps) {
	p, room, ok := d.player(c, false)
	if !ok {
		return
	}
	kw := keyword(cmd)
	if kw == "" {
		c.Send(d.msg(world.MsgGetWhat))
		return
	}
	if !d.Sim.PlayerGet(p, room, kw) {
		c.Send(d.msg(world.MsgNotHere, kw))
	}
}

// HandleDrop puts a carried item on the ground.
func HandleDrop(c Client, cmd *command.Command, d *Deps) {
	p, room, ok := d.player(c, false)
	if !ok {
		return
	}
	kw := keyword(cmd)
	if kw == "" {
		c.Send(d.msg(world.MsgDropWhat))
		return
	}
	if !d.Sim.PlayerDrop(p, room, kw) {
		c.Send(d.msg(world.MsgNotCarryingItem, kw))
	}
}

// HandleEat covers both eating and drinking; the item decides which.
func HandleEat(c Client, cmd *command.Command, d *Deps) {
	p, _, ok := d.player(c, false)
	if !ok {
		return
	}
	if !d.Sim.PlayerConsume(p, keyword(cmd)) {
		c.Send(d.msg(world.MsgEatWhat))
	}
}
