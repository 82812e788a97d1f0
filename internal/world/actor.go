package world

import (
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
)

// Posture is how an actor or player is positioned.
type Posture int

const (
	Standing Posture = iota
	Sitting
	Kneeling
	LyingDown
)

func (p Posture) String() string {
	switch p {
	case Sitting:
		return "SITTING"
	case Kneeling:
		return "KNEELING"
	case LyingDown:
		return "LYING_DOWN"
	default:
		return "STANDING"
	}
}

// Role is the tagged variant carried by every actor: Monster or FriendlyNpc.
type Role interface {
	isRole()
}

// Monster role data.
type Monster struct {
	Template   string
	Experience int
	Gold       int
}

// FriendlyNpc role data. Job is healer, wizard, farmer, janitor, berserker
// or peasant.
type FriendlyNpc struct {
	Job string
}

func (Monster) isRole()     {}
func (FriendlyNpc) isRole() {}

// Combatant is anything that can be attacked: actors and players.
type Combatant interface {
	FactionID() FactionID
	Attributes() *Attributes
	IsAlive() bool
	DisplayName() string
	MatchesKeyword(kw string) bool
	WeaponPower() int
}

// ActorSpec configures NewActor.
type ActorSpec struct {
	Faction        FactionID
	Role           Role
	Behavior       string
	Names          Names
	Level          int
	Keywords       []string
	Stats          Stats
	Body           []BodySlot
	Spells         []string
	DelayMin       time.Duration
	DelayMax       time.Duration
	CanTravel      bool
	AttackModifier int
	Weapon         *Item
	Items          []*Item
	// UnarmedName is used in narration when no weapon is equipped.
	UnarmedName string
}

// Actor is an autonomous monster or NPC. The record is shared between its
// own goroutines and every other actor in the same room; mutable equipment,
// posture and location sit behind mu, health behind Attributes.
type Actor struct {
	ID             ulid.ULID
	Faction        FactionID
	Role           Role
	Behavior       string
	Names          Names
	Level          int
	Keywords       []string
	Attrs          *Attributes
	Inventory      *Inventory
	Spells         []string
	DelayMin       time.Duration
	DelayMax       time.Duration
	CanTravel      bool
	AttackModifier int
	UnarmedName    string

	mu      sync.Mutex
	weapon  *Item
	body    []BodySlot
	armor   map[BodySlot]*Item
	posture Posture
	coords  Coordinates
	placed  bool

	unsearched atomic.Bool
}

// NewActor builds an actor standing, unplaced and unsearched.
func NewActor(spec ActorSpec) *Actor {
	unarmed := spec.UnarmedName
	if unarmed == "" {
		unarmed = "fists"
	}
	a := &Actor{
		ID:             ulid.Make(),
		Faction:        spec.Faction,
		Role:           spec.Role,
		Behavior:       spec.Behavior,
		Names:          spec.Names,
		Level:          spec.Level,
		Keywords:       slices.Clone(spec.Keywords),
		Attrs:          NewAttributes(spec.Stats),
		Inventory:      NewInventory(spec.Items...),
		Spells:         slices.Clone(spec.Spells),
		DelayMin:       spec.DelayMin,
		DelayMax:       spec.DelayMax,
		CanTravel:      spec.CanTravel,
		AttackModifier: spec.AttackModifier,
		UnarmedName:    unarmed,
		weapon:         spec.Weapon,
		body:           slices.Clone(spec.Body),
		armor:          make(map[BodySlot]*Item, len(spec.Body)),
	}
	a.unsearched.Store(true)
	return a
}

func (a *Actor) FactionID() FactionID    { return a.Faction }
func (a *Actor) Attributes() *Attributes { return a.Attrs }
func (a *Actor) IsAlive() bool           { return !a.Attrs.IsDead() }
func (a *Actor) IsDead() bool            { return a.Attrs.IsDead() }
func (a *Actor) DisplayName() string     { return a.Names.Full }

// MatchesKeyword compares against the primary name and keywords.
func (a *Actor) MatchesKeyword(kw string) bool {
	kw = strings.ToLower(strings.TrimSpace(kw))
	if kw == "" {
		return false
	}
	if strings.ToLower(a.Names.Primary) == kw {
		return true
	}
	for _, k := range a.Keywords {
		if strings.ToLower(k) == kw {
			return true
		}
	}
	return false
}

// Unsearched is true until the corpse has been looted.
func (a *Actor) Unsearched() bool { return a.unsearched.Load() }

// MarkSearched flips the flag; it reports false if someone else already did.
func (a *Actor) MarkSearched() bool { return a.unsearched.CompareAndSwap(true, false) }

// IsMonster reports a Monster role.
func (a *Actor) IsMonster() bool {
	_, ok := a.Role.(Monster)
	return ok
}

// Job returns the FriendlyNpc job or "".
func (a *Actor) Job() string {
	if n, ok := a.Role.(FriendlyNpc); ok {
		return n.Job
	}
	return ""
}

// Coordinates returns where the actor is. ok is false before placement.
func (a *Actor) Coordinates() (Coordinates, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.coords, a.placed
}

func (a *Actor) setCoordinates(c Coordinates) {
	a.mu.Lock()
	a.coords = c
	a.placed = true
	a.mu.Unlock()
}

func (a *Actor) Posture() Posture {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.posture
}

// SetPosture reports whether the posture changed.
func (a *Actor) SetPosture(p Posture) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.posture == p {
		return false
	}
	a.posture = p
	return true
}

func (a *Actor) Weapon() *Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.weapon
}

// EquipWeapon swaps in w and returns the previous weapon.
func (a *Actor) EquipWeapon(w *Item) *Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	old := a.weapon
	a.weapon = w
	return old
}

// WeaponPower is 0 when unarmed.
func (a *Actor) WeaponPower() int {
	if w := a.Weapon(); w != nil {
		return w.Power
	}
	return 0
}

// WeaponName is the equipped weapon name or the unarmed name.
func (a *Actor) WeaponName() string {
	if w := a.Weapon(); w != nil {
		return w.Name
	}
	return a.UnarmedName
}

// Body lists the armor slots this actor has.
func (a *Actor) Body() []BodySlot {
	return slices.Clone(a.body)
}

func (a *Actor) Armor(slot BodySlot) *Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.armor[slot]
}

// EquipArmor places it on its slot and returns the previous piece.
// It is a no-op for slots the body lacks.
func (a *Actor) EquipArmor(it *Item) *Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !slices.Contains(a.body, it.Slot) {
		return nil
	}
	old := a.armor[it.Slot]
	a.armor[it.Slot] = it
	return old
}

// Strip removes the weapon and all worn armor, in body slot order.
func (a *Actor) Strip() (weapon *Item, armor []*Item) {
	a.mu.Lock()
	defer a.mu.Unlock()
	weapon = a.weapon
	a.weapon = nil
	for _, s := range a.body {
		if it := a.armor[s]; it != nil {
			armor = append(armor, it)
			delete(a.armor, s)
		}
	}
	return weapon, armor
}

// CollectionName is the form used in room listings.
func (a *Actor) CollectionName() string {
	if a.IsDead() {
		return a.Names.Dead
	}
	switch a.Posture() {
	case Kneeling:
		return a.Names.Kneeling()
	case Sitting:
		return a.Names.Sitting()
	case LyingDown:
		return a.Names.LyingDown()
	}
	return a.Names.Full
}
