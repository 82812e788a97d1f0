package world

import (
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Room holds the actors, players and ground items at one coordinate.
// mu guards the actor and player lists. It is held only for the list
// mutation itself; narration goes out after it is released so no goroutine
// ever holds two room locks.
type Room struct {
	ID          int
	Coords      Coordinates
	Description string
	Connections []Connection
	Ground      *Inventory

	graph *Graph

	mu      sync.Mutex
	actors  []*Actor
	players []*Player
}

func (r *Room) msg(kind MessageKind, args ...string) string {
	return r.graph.Messages.Format(kind, args...)
}

// Broadcast sends text to every player in the room and to the narrator.
func (r *Room) Broadcast(text string) {
	text = strings.Trim(text, "\n")
	if text == "" {
		return
	}
	for _, p := range r.Players() {
		p.Send(text)
	}
	r.graph.narrator.Narrate(r.Coords, text)
}

// JoinLines joins the non-empty lines with newlines.
func JoinLines(lines []string) string {
	kept := slices.DeleteFunc(slices.Clone(lines), func(l string) bool { return l == "" })
	return strings.Join(kept, "\n")
}

// BroadcastLines joins non-empty lines into one broadcast.
func (r *Room) BroadcastLines(lines []string) {
	r.Broadcast(JoinLines(lines))
}

// BroadcastExcept skips one player.
func (r *Room) BroadcastExcept(skip *Player, text string) {
	text = strings.Trim(text, "\n")
	if text == "" {
		return
	}
	for _, p := range r.Players() {
		if p != skip {
			p.Send(text)
		}
	}
	r.graph.narrator.Narrate(r.Coords, text)
}

// refresh sends client list messages that are not narration.
func (r *Room) refresh(lines ...string) {
	for _, p := range r.Players() {
		for _, l := range lines {
			p.Send(l)
		}
	}
}

// Actors returns a snapshot.
func (r *Room) Actors() []*Actor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.actors)
}

// Players returns a snapshot.
func (r *Room) Players() []*Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.players)
}

// HasActor reports membership.
func (r *Room) HasActor(a *Actor) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Contains(r.actors, a)
}

// AddActor places a in the room and announces the arrival.
func (r *Room) AddActor(a *Actor) {
	r.mu.Lock()
	if !slices.Contains(r.actors, a) {
		r.actors = append(r.actors, a)
	}
	r.mu.Unlock()
	a.setCoordinates(r.Coords)

	r.Broadcast(r.msg(MsgEntityArrives, a.Names.Arrive, a.Names.ArriveSuffix))
	r.SendActorLists()
}

// RemoveActor takes a out of the room. Living actors get a departure line
// naming conn, or a "leaves" line when conn is nil.
func (r *Room) RemoveActor(a *Actor, conn *Connection) bool {
	r.mu.Lock()
	i := slices.Index(r.actors, a)
	if i >= 0 {
		r.actors = slices.Delete(r.actors, i, i+1)
	}
	r.mu.Unlock()
	if i < 0 {
		return false
	}
	if a.IsAlive() {
		r.Broadcast(r.DepartureText(a, conn))
	}
	r.SendActorLists()
	return true
}

// DepartureText narrates an actor leaving through conn.
func (r *Room) DepartureText(a *Actor, conn *Connection) string {
	who := Capitalize(a.Names.PrefixedRandom(r.graph.Rand))
	switch {
	case conn == nil:
		return r.msg(MsgEntityLeavesGame, who)
	case conn.Direction != DirNone:
		return r.msg(MsgEntityHeadsDirection, who, conn.Direction.String())
	case strings.Contains(conn.Phrase, "gates"):
		return r.msg(MsgEntityHeadsThroughGates, who)
	case strings.Contains(conn.Phrase, "path"):
		return r.msg(MsgEntityHeadsDownPath, who)
	default:
		return r.msg(MsgEntityHeadsOverTo, who, conn.Input.Suffix())
	}
}

// AddPlayer places p in the room.
func (r *Room) AddPlayer(p *Player) {
	r.mu.Lock()
	if !slices.Contains(r.players, p) {
		r.players = append(r.players, p)
	}
	r.mu.Unlock()
	p.setCoordinates(r.Coords)

	p.Send(r.Ground.ItemsText())
	r.BroadcastExcept(p, r.msg(MsgPlayerArrives, p.Name))
}

// RemovePlayer takes p out. conn nil means the player left the game.
func (r *Room) RemovePlayer(p *Player, conn *Connection) bool {
	r.mu.Lock()
	i := slices.Index(r.players, p)
	if i >= 0 {
		r.players = slices.Delete(r.players, i, i+1)
	}
	r.mu.Unlock()
	if i < 0 {
		return false
	}
	switch {
	case conn == nil:
		r.Broadcast(r.msg(MsgPlayerLeavesGame, p.Name))
	case conn.Direction != DirNone:
		r.Broadcast(r.msg(MsgPlayerHeads, p.Name, conn.Direction.String()))
	case strings.Contains(conn.Phrase, "gates"):
		r.Broadcast(r.msg(MsgEntityHeadsThroughGates, p.Name))
	default:
		r.Broadcast(r.msg(MsgEntityHeadsOverTo, p.Name, conn.Input.Suffix()))
	}
	return true
}

// Monsters are actors of the monster faction.
func (r *Room) Monsters() []*Actor { return r.byFaction(FactionMonster) }

// Npcs are actors of the NPC faction.
func (r *Room) Npcs() []*Actor { return r.byFaction(FactionNPC) }

func (r *Room) byFaction(f FactionID) []*Actor {
	var out []*Actor
	for _, a := range r.Actors() {
		if a.Faction == f {
			out = append(out, a)
		}
	}
	return out
}

// NpcsText is the client list message for NPCs.
func (r *Room) NpcsText() string { return "NPCS:" + joinCollectionNames(r.Npcs()) }

// MonstersText is the client list message for monsters.
func (r *Room) MonstersText() string { return "MONSTERS:" + joinCollectionNames(r.Monsters()) }

func joinCollectionNames(as []*Actor) string {
	names := make([]string, len(as))
	for i, a := range as {
		names[i] = a.CollectionName()
	}
	return strings.Join(names, "\n")
}

// SendActorLists refreshes players' NPC and monster lists.
func (r *Room) SendActorLists() {
	r.refresh(r.NpcsText(), r.MonstersText())
}

// SendItemList refreshes players' ground item list.
func (r *Room) SendItemList() {
	r.refresh(r.Ground.ItemsText())
}

// AddItems drops items on the ground.
func (r *Room) AddItems(items ...*Item) {
	if len(items) == 0 {
		return
	}
	r.Ground.Add(items...)
	r.SendItemList()
}

// RemoveItem takes it off the ground.
func (r *Room) RemoveItem(it *Item) bool {
	ok := r.Ground.Remove(it)
	if ok {
		r.SendItemList()
	}
	return ok
}

// TakeRandomItem removes a random ground item matching pred (nil for any).
func (r *Room) TakeRandomItem(pred func(*Item) bool) *Item {
	it := r.Ground.TakeRandom(r.graph.Rand, pred)
	if it != nil {
		r.SendItemList()
	}
	return it
}

// TakeItemKeyword removes the first ground item matching kw.
func (r *Room) TakeItemKeyword(kw string) *Item {
	it := r.Ground.TakeKeyword(kw)
	if it != nil {
		r.SendItemList()
	}
	return it
}

// ConsumeGround eats or drinks from a ground item.
func (r *Room) ConsumeGround(it *Item) (int, bool) {
	remaining, ok := r.Ground.Consume(it)
	if ok && remaining == 0 {
		r.SendItemList()
	}
	return remaining, ok
}

// ConnectionsFor returns the exits an actor may take.
func (r *Room) ConnectionsFor(canTravel bool) []Connection {
	if canTravel {
		return r.Connections
	}
	var out []Connection
	for _, c := range r.Connections {
		if c.InRegion {
			out = append(out, c)
		}
	}
	return out
}

// MatchConnection finds the connection selected by in.
func (r *Room) MatchConnection(in Input) (Connection, bool) {
	for _, c := range r.Connections {
		if c.Matches(in) {
			return c, true
		}
	}
	return Connection{}, false
}

// ExitsText lists the directional exits.
func (r *Room) ExitsText() string {
	var dirs []string
	for _, c := range r.Connections {
		if c.Input.Verb() == "go" {
			dirs = append(dirs, c.Input.Suffix())
		}
	}
	return "Obvious exits: " + strings.Join(dirs, ", ")
}

// DisplayText is the full look description.
func (r *Room) DisplayText() string {
	var b strings.Builder
	b.WriteString(r.Description)
	b.WriteString("\n")
	if !r.Ground.IsEmpty() {
		b.WriteString("You also see " + r.Ground.CollectionString() + ".\n")
	}
	if npcs := r.Npcs(); len(npcs) > 0 {
		names := make([]string, len(npcs))
		for i, a := range npcs {
			names[i] = a.CollectionName()
		}
		b.WriteString("You also see " + CollectionString(names, false) + ".\n")
	}
	if mons := r.Monsters(); len(mons) > 0 {
		names := make([]string, len(mons))
		for i, a := range mons {
			names[i] = a.CollectionName()
		}
		b.WriteString("You also see " + CollectionString(names, true) + ".\n")
	}
	b.WriteString(r.ExitsText())
	return b.String()
}

// Hostiles are actors that view regards as hostile.
func (r *Room) Hostiles(view FactionID) []*Actor {
	var out []*Actor
	for _, a := range r.Actors() {
		if r.graph.Factions.Hostile(view, a.Faction) {
			out = append(out, a)
		}
	}
	return out
}

// LivingHostiles filters Hostiles to the living.
func (r *Room) LivingHostiles(view FactionID) []*Actor {
	var out []*Actor
	for _, a := range r.Hostiles(view) {
		if a.IsAlive() {
			out = append(out, a)
		}
	}
	return out
}

// UnsearchedDeadHostiles are corpses view may loot.
func (r *Room) UnsearchedDeadHostiles(view FactionID) []*Actor {
	var out []*Actor
	for _, a := range r.Hostiles(view) {
		if a.IsDead() && a.Unsearched() {
			out = append(out, a)
		}
	}
	return out
}

// RandomLivingHostile picks a living hostile, optionally matching keyword.
func (r *Room) RandomLivingHostile(view FactionID, keyword string) *Actor {
	cands := r.LivingHostiles(view)
	if keyword != "" {
		cands = slices.DeleteFunc(cands, func(a *Actor) bool { return !a.MatchesKeyword(keyword) })
	}
	return Pick(r.graph.Rand, cands)
}

// RandomLivingNonHostile picks a living actor view does not regard as hostile.
func (r *Room) RandomLivingNonHostile(view FactionID) *Actor {
	var cands []*Actor
	for _, a := range r.Actors() {
		if a.IsAlive() && !r.graph.Factions.Hostile(view, a.Faction) {
			cands = append(cands, a)
		}
	}
	return Pick(r.graph.Rand, cands)
}

// RandomUnsearchedDeadHostile picks a corpse to loot.
func (r *Room) RandomUnsearchedDeadHostile(view FactionID) *Actor {
	return Pick(r.graph.Rand, r.UnsearchedDeadHostiles(view))
}

// FirstUnsearchedDead returns the first unsearched corpse matching keyword
// that view regards as hostile.
func (r *Room) FirstUnsearchedDead(view FactionID, keyword string) *Actor {
	for _, a := range r.UnsearchedDeadHostiles(view) {
		if a.MatchesKeyword(keyword) {
			return a
		}
	}
	return nil
}

// InjuredFriendlies are living, non-hostile actors below the minor injury
// threshold, the viewer included.
func (r *Room) InjuredFriendlies(view FactionID) []*Actor {
	var out []*Actor
	for _, a := range r.Actors() {
		if a.IsAlive() && !r.graph.Factions.Hostile(view, a.Faction) && a.Attrs.IsInjuredMinor() {
			out = append(out, a)
		}
	}
	return out
}

// RandomInjuredFriendly picks from InjuredFriendlies.
func (r *Room) RandomInjuredFriendly(view FactionID) *Actor {
	return Pick(r.graph.Rand, r.InjuredFriendlies(view))
}

// RandomActor picks any actor, the caller included.
func (r *Room) RandomActor() *Actor {
	return Pick(r.graph.Rand, r.Actors())
}

// LivingPlayers are players above zero health.
func (r *Room) LivingPlayers() []*Player {
	var out []*Player
	for _, p := range r.Players() {
		if p.IsAlive() {
			out = append(out, p)
		}
	}
	return out
}

// ContainsLivingPlayer reports any living player.
func (r *Room) ContainsLivingPlayer() bool { return len(r.LivingPlayers()) > 0 }

// RandomLivingPlayer picks one or returns nil.
func (r *Room) RandomLivingPlayer() *Player {
	return Pick(r.graph.Rand, r.LivingPlayers())
}

// Warn logs a recoverable room-level problem.
func (r *Room) Warn(msg string, fields ...zap.Field) {
	r.graph.log.Warn(msg, append(fields, zap.Stringer("room", r.Coords))...)
}
