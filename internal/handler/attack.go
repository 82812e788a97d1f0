package handler

import (
	"github.com/l1jgo/townsfolk/internal/command"
	"github.com/l1jgo/townsfolk/internal/world"
)

// HandleAttack swings at a living hostile matching the keyword.
func HandleAttack(c Client, cmd *command.Command, d *Deps) {
	p, room, ok := d.player(c, false)
	if !ok {
		return
	}
	kw := cmd.Rest()
	if kw == "" {
		c.Send(d.msg(world.MsgAttackWhom))
		return
	}
	if !d.Sim.PlayerAttack(p, room, kw) {
		c.Send(d.msg(world.MsgNotHere, kw))
	}
}

// HandleSearch loots the first unsearched corpse matching the keyword, or
// any unsearched corpse when no keyword is given.
func HandleSearch(c Client, cmd *command.Command, d *Deps) {
	p, room, ok := d.player(c, false)
	if !ok {
		return
	}
	if !d.Sim.PlayerSearch(p, room, cmd.Rest()) {
		c.Send(d.msg(world.MsgNoCorpse))
	}
}
