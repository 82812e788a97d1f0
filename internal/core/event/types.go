package event

import "github.com/l1jgo/townsfolk/internal/world"

// ActorKilled fires when an attack or spell drops an actor to zero health.
type ActorKilled struct {
	ActorID  string
	Name     string
	Template string // monster template, empty for npcs
	Monster  bool
	Killer   string
	At       world.Coordinates
}

// LocationVisited fires when a player enters a room.
type LocationVisited struct {
	Player string
	At     world.Coordinates
}

// PossibleDelivery fires when a player drops an item in a room.
type PossibleDelivery struct {
	Player string
	Item   string
	At     world.Coordinates
}

// PlayerJoined fires when a player enters the world.
type PlayerJoined struct {
	Player    string
	SessionID uint64
}

// PlayerLeft fires when a player's session ends.
type PlayerLeft struct {
	Player    string
	SessionID uint64
}
