package handler

import (
	"strconv"
	"strings"

	"github.com/l1jgo/townsfolk/internal/command"
	"github.com/l1jgo/townsfolk/internal/world"
	"go.uber.org/zap"
)

func HandleHealth(c Client, _ *command.Command, d *Deps) {
	p, _, ok := d.player(c, true)
	if !ok {
		return
	}
	c.Send(p.Attrs.HealthString() + "\n" + p.Attrs.MagicString())
}

func HandleInventory(c Client, _ *command.Command, d *Deps) {
	p, _, ok := d.player(c, true)
	if !ok {
		return
	}
	if p.Inventory.IsEmpty() {
		c.Send(d.msg(world.MsgPlayerNotCarrying))
	} else {
		c.Send(d.msg(world.MsgPlayerCarrying, p.Inventory.CollectionString()))
	}
	c.Send(d.msg(world.MsgPlayerCurrentGold, strconv.Itoa(p.Gold())))
}

// HandleStats shows the world kill tallies and the player's own standing.
func HandleStats(c Client, _ *command.Command, d *Deps) {
	p, _, ok := d.player(c, true)
	if !ok {
		return
	}
	c.Send(d.Sim.Stats.Text())
	c.Send(d.msg(world.MsgPlayerStatus, strconv.Itoa(p.Experience()), strconv.Itoa(p.Gold())))
}

// HandleSay speaks to the room. The text keeps the case it was typed in.
func HandleSay(c Client, cmd *command.Command, d *Deps) {
	p, room, ok := d.player(c, false)
	if !ok {
		return
	}
	_, text, _ := strings.Cut(strings.TrimSpace(cmd.Raw), " ")
	text = strings.TrimSpace(text)
	if text == "" {
		c.Send(d.msg(world.MsgSayWhat))
		return
	}
	d.Sim.PlayerSay(p, room, text)
}

// HandleQuit says goodbye and closes the session. The disconnect hook does
// the world cleanup.
func HandleQuit(c Client, _ *command.Command, d *Deps) {
	c.Send(d.msg(world.MsgFarewell))
	d.Log.Info("player quit", zap.Uint64("session", c.SessionID()))
	c.Close()
}
