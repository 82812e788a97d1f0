package system

import (
	"github.com/l1jgo/townsfolk/internal/core/event"
	"github.com/l1jgo/townsfolk/internal/world"
	"go.uber.org/zap"
)

// ==================== Actor movement ====================

// randomMove walks through a random exit the actor may use. Actors that are
// not standing get up instead.
func (s *Simulation) randomMove(a *world.Actor, room *world.Room) {
	if a.Posture() != world.Standing {
		s.stand(a, room)
		return
	}
	conns := room.ConnectionsFor(a.CanTravel)
	if len(conns) == 0 {
		return
	}
	conn := world.Pick(s.Rand, conns)
	s.MoveActor(a, room, conn)
}

// MoveActor takes a out of from and into the connection's target. A missing
// target is logged and the actor stays put.
func (s *Simulation) MoveActor(a *world.Actor, from *world.Room, conn world.Connection) bool {
	to, ok := s.World.Room(conn.Target)
	if !ok {
		from.Warn("connection to missing room", zap.String("phrase", conn.Phrase), zap.Stringer("target", conn.Target))
		return false
	}
	if !from.RemoveActor(a, &conn) {
		return false
	}
	to.AddActor(a)
	return true
}

// ==================== Player movement ====================

// LookText is the title line plus the room description.
func (s *Simulation) LookText(room *world.Room) string {
	region, sub := s.World.Title(room.Coords)
	return s.msg(world.MsgLookCurrentRoom, region, sub, room.DisplayText())
}

// PlacePlayer drops p into room and shows it around.
func (s *Simulation) PlacePlayer(p *world.Player, room *world.Room) {
	room.AddPlayer(p)
	p.Send(s.LookText(room))
	p.Send(room.NpcsText())
	p.Send(room.MonstersText())
	event.Emit(s.Bus, event.LocationVisited{Player: p.Name, At: room.Coords})
}

// MovePlayer follows the exit selected by in. It reports false when no
// exit matches.
func (s *Simulation) MovePlayer(p *world.Player, from *world.Room, in world.Input) bool {
	conn, ok := from.MatchConnection(in)
	if !ok {
		return false
	}
	to, ok := s.World.Room(conn.Target)
	if !ok {
		from.Warn("connection to missing room", zap.String("phrase", conn.Phrase), zap.Stringer("target", conn.Target))
		return false
	}
	if p.Posture() != world.Standing {
		p.SetPosture(world.Standing)
		p.Send(s.msg(world.MsgPlayerStands))
	}
	from.RemovePlayer(p, &conn)
	s.PlacePlayer(p, to)
	return true
}

// ==================== Posture ====================

func (s *Simulation) sit(a *world.Actor, room *world.Room) {
	s.setPosture(a, room, world.Sitting, world.MsgEntitySits)
}

func (s *Simulation) stand(a *world.Actor, room *world.Room) {
	s.setPosture(a, room, world.Standing, world.MsgEntityStands)
}

func (s *Simulation) kneel(a *world.Actor, room *world.Room) {
	s.setPosture(a, room, world.Kneeling, world.MsgEntityKneels)
}

// setPosture narrates only real changes.
func (s *Simulation) setPosture(a *world.Actor, room *world.Room, p world.Posture, kind world.MessageKind) {
	if !a.SetPosture(p) {
		return
	}
	room.Broadcast(s.msg(kind, s.who(a)))
	room.SendActorLists()
}

var playerPostures = map[world.Posture]struct{ done, already world.MessageKind }{
	world.Standing:  {world.MsgPlayerStands, world.MsgPlayerAlreadyStand},
	world.Sitting:   {world.MsgPlayerSits, world.MsgPlayerAlreadySitting},
	world.Kneeling:  {world.MsgPlayerKneels, world.MsgPlayerAlreadyKneel},
	world.LyingDown: {world.MsgPlayerLiesDown, world.MsgPlayerAlreadyLying},
}

// PlayerPosture changes p's posture and tells them how it went.
func (s *Simulation) PlayerPosture(p *world.Player, to world.Posture) {
	m := playerPostures[to]
	if !p.SetPosture(to) {
		p.Send(s.msg(m.already))
		return
	}
	p.Send(s.msg(m.done))
}
