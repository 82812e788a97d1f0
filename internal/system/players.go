package system

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"github.com/l1jgo/townsfolk/internal/core/event"
	"github.com/l1jgo/townsfolk/internal/world"
	"go.uber.org/zap"
)

// Players is the directory of players in the world, keyed by session.
type Players struct {
	mu        sync.RWMutex
	bySession map[uint64]*world.Player
}

func NewPlayers() *Players {
	return &Players{bySession: make(map[uint64]*world.Player)}
}

func (d *Players) Add(p *world.Player) {
	d.mu.Lock()
	d.bySession[p.SessionID] = p
	d.mu.Unlock()
}

// Remove returns the player that was registered for the session.
func (d *Players) Remove(sessionID uint64) *world.Player {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.bySession[sessionID]
	delete(d.bySession, sessionID)
	return p
}

func (d *Players) BySession(sessionID uint64) *world.Player {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.bySession[sessionID]
}

// ByName is case-insensitive.
func (d *Players) ByName(name string) *world.Player {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, p := range d.bySession {
		if strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return nil
}

// All returns players ordered by session id.
func (d *Players) All() []*world.Player {
	d.mu.RLock()
	out := make([]*world.Player, 0, len(d.bySession))
	for _, p := range d.bySession {
		out = append(out, p)
	}
	d.mu.RUnlock()
	slices.SortFunc(out, func(a, b *world.Player) int { return cmp.Compare(a.SessionID, b.SessionID) })
	return out
}

func (d *Players) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.bySession)
}

// SendAll delivers text to every player.
func (d *Players) SendAll(text string) {
	for _, p := range d.All() {
		p.Send(text)
	}
}

// ==================== Join / leave ====================

// Join registers p and places them in a random room of the start region.
// It reports false when the world has no room to put them in.
func (s *Simulation) Join(p *world.Player) bool {
	room, ok := s.World.RandomRoomInRegion(s.Tun.StartRegion)
	if !ok {
		if room, ok = s.World.RandomRoom(); !ok {
			return false
		}
	}
	s.Players.Add(p)
	s.PlacePlayer(p, room)
	p.Send(s.Stats.Text())
	event.Emit(s.Bus, event.PlayerJoined{Player: p.Name, SessionID: p.SessionID})
	s.log.Info("player entered world", zap.String("player", p.Name), zap.Stringer("room", room.Coords))
	return true
}

// Leave takes the session's player out of the world. Unknown sessions are
// ignored.
func (s *Simulation) Leave(sessionID uint64) {
	p := s.Players.Remove(sessionID)
	if p == nil {
		return
	}
	if room, ok := s.World.Room(p.Coordinates()); ok {
		room.RemovePlayer(p, nil)
	}
	event.Emit(s.Bus, event.PlayerLeft{Player: p.Name, SessionID: sessionID})
}
