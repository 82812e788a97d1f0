package world

import (
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
)

// Player is a human-controlled character. It shares the Combatant contract
// with actors but is never driven by the behavior loop.
type Player struct {
	ID        ulid.ULID
	Name      string
	SessionID uint64
	Attrs     *Attributes
	Inventory *Inventory

	send func(string)

	mu         sync.Mutex
	weapon     *Item
	posture    Posture
	coords     Coordinates
	gold       int
	experience int
}

// NewPlayer creates a player using the player stat preset. send delivers
// text to the player's session and must not block.
func NewPlayer(name string, sessionID uint64, send func(string)) *Player {
	if send == nil {
		send = func(string) {}
	}
	return &Player{
		ID:        ulid.Make(),
		Name:      name,
		SessionID: sessionID,
		Attrs:     NewAttributes(StatsPlayer),
		Inventory: NewInventory(),
		send:      send,
	}
}

func (p *Player) FactionID() FactionID    { return FactionPlayer }
func (p *Player) Attributes() *Attributes { return p.Attrs }
func (p *Player) IsAlive() bool           { return !p.Attrs.IsDead() }
func (p *Player) DisplayName() string     { return p.Name }

func (p *Player) MatchesKeyword(kw string) bool {
	return strings.EqualFold(strings.TrimSpace(kw), p.Name)
}

// Send delivers text to the player.
func (p *Player) Send(text string) {
	if text == "" {
		return
	}
	p.send(text)
}

func (p *Player) Coordinates() Coordinates {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.coords
}

func (p *Player) setCoordinates(c Coordinates) {
	p.mu.Lock()
	p.coords = c
	p.mu.Unlock()
}

func (p *Player) Posture() Posture {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.posture
}

// SetPosture reports whether the posture changed.
func (p *Player) SetPosture(ps Posture) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.posture == ps {
		return false
	}
	p.posture = ps
	return true
}

func (p *Player) Weapon() *Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.weapon
}

// EquipWeapon swaps in w and returns the previous weapon.
func (p *Player) EquipWeapon(w *Item) *Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	old := p.weapon
	p.weapon = w
	return old
}

// WeaponName is the weapon or "fists".
func (p *Player) WeaponName() string {
	if w := p.Weapon(); w != nil {
		return w.Name
	}
	return "fists"
}

func (p *Player) WeaponPower() int {
	if w := p.Weapon(); w != nil {
		return w.Power
	}
	return 0
}

func (p *Player) Gold() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gold
}

// AddGold returns the new balance.
func (p *Player) AddGold(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gold += n
	return p.gold
}

func (p *Player) Experience() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.experience
}

// AddExperience returns the new total.
func (p *Player) AddExperience(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.experience += n
	return p.experience
}
