package system

import (
	"github.com/l1jgo/townsfolk/internal/world"
	"go.uber.org/zap"
)

// Live is an actor's whole life: arrive in a random room of region, act on
// a randomized delay until the corpse is looted or the simulation stops,
// then leave the world. Dead actors skip their turn, though a ghost may
// speak up now and then.
func (s *Simulation) Live(a *world.Actor, region int) {
	start, ok := s.World.RandomRoomInRegion(region)
	if !ok {
		s.log.Warn("region has no rooms", zap.Int("region", region), zap.String("actor", a.Names.WithJob))
		return
	}
	log := s.actorLog(a)
	start.AddActor(a)
	log.Debug("actor placed", zap.Stringer("room", start.Coords))

	policy := s.Policies.Get(a.Behavior)
	for a.Unsearched() && s.Running() {
		if !s.sleep(s.Rand.Duration(a.DelayMin, a.DelayMax), a.Unsearched) {
			continue
		}
		room, ok := s.roomOf(a)
		if !ok {
			break
		}
		if a.IsDead() {
			s.ghostQuip(a, room)
			continue
		}
		act := policy.Decide(a, s.view(room), s.Rand)
		log.Debug("action", zap.String("action", string(act)), zap.Stringer("room", room.Coords))
		s.Execute(a, act)
	}

	if room, ok := s.roomOf(a); ok {
		s.finalCleanup(a, room)
	}
	log.Debug("actor gone")
}
