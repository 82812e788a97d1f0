package handler

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/l1jgo/townsfolk/internal/command"
	"github.com/l1jgo/townsfolk/internal/world"
	"go.uber.org/zap"
)

const (
	minNameLen = 2
	maxNameLen = 16
)

// normalizeName returns the display form of a candidate name, or "" when it
// is not 2 to 16 letters.
func normalizeName(raw string) string {
	name := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(name)
	if n < minNameLen || n > maxNameLen {
		return ""
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return ""
		}
	}
	return world.Capitalize(strings.ToLower(name))
}

// HandleName takes the first line of a session as the player's name and
// enters them into the world.
func HandleName(c Client, cmd *command.Command, d *Deps) {
	name := normalizeName(cmd.Raw)
	if name == "" {
		c.Send(d.msg(world.MsgNameInvalid))
		return
	}
	if d.Sim.Players.ByName(name) != nil {
		c.Send(d.msg(world.MsgNameTaken, name))
		return
	}

	p := world.NewPlayer(name, c.SessionID(), c.Send)
	c.Send(d.msg(world.MsgWelcome, name))
	if !d.Sim.Join(p) {
		d.Log.Error("no room to place player", zap.String("player", name))
		c.Close()
		return
	}
	c.SetState(command.StateInWorld)
}

// HandleDisconnect removes the session's player, if any, from the world.
func HandleDisconnect(c Client, d *Deps) {
	d.Sim.Leave(c.SessionID())
}
