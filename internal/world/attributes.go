package world

import (
	"fmt"
	"sync"
)

// Injury thresholds as a fraction of maximum health.
const (
	injuredMinorRatio    = 0.9
	injuredModerateRatio = 0.6
	injuredMajorRatio    = 0.3
)

// Stats is the plain value form of Attributes used by templates and presets.
type Stats struct {
	Strength      int `yaml:"strength" json:"strength"`
	Intelligence  int `yaml:"intelligence" json:"intelligence"`
	Vitality      int `yaml:"vitality" json:"vitality"`
	Speed         int `yaml:"speed" json:"speed"`
	BaseDefense   int `yaml:"base_defense" json:"base_defense"`
	MaximumHealth int `yaml:"maximum_health" json:"maximum_health"`
	MaximumMagic  int `yaml:"maximum_magic" json:"maximum_magic"`
}

// Presets.
var (
	StatsDefault    = Stats{20, 20, 20, 20, 20, 20, 20}
	StatsDefaultNpc = Stats{5, 5, 5, 5, 5, 30, 10}
	StatsBerserker  = Stats{50, 2, 50, 10, 30, 200, 0}
	StatsCritter    = Stats{1, 1, 1, 1, 1, 1, 1}
	StatsPlayer     = Stats{50, 50, 50, 50, 100, 500, 500}
)

// Attributes are an actor's numbers. Current health and magic are always
// clamped to [0, maximum]; every write goes through the mutex so that
// attacks and regeneration from different goroutines cannot break the clamp.
type Attributes struct {
	mu sync.Mutex

	strength      int
	intelligence  int
	vitality      int
	speed         int
	baseDefense   int
	maximumHealth int
	maximumMagic  int
	currentHealth int
	currentMagic  int

	healthRegenRate int
	magicRegenRate  int
}

// NewAttributes starts an actor slightly below full: health at max-10
// (at least 1) and magic at max-3 (at least 0).
func NewAttributes(s Stats) *Attributes {
	a := &Attributes{
		strength:        s.Strength,
		intelligence:    s.Intelligence,
		vitality:        s.Vitality,
		speed:           s.Speed,
		baseDefense:     s.BaseDefense,
		maximumHealth:   max(s.MaximumHealth, 0),
		maximumMagic:    max(s.MaximumMagic, 0),
		healthRegenRate: 1,
		magicRegenRate:  1,
	}
	a.currentHealth = clamp(max(a.maximumHealth-10, 1), 0, a.maximumHealth)
	a.currentMagic = clamp(max(a.maximumMagic-3, 0), 0, a.maximumMagic)
	return a
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (a *Attributes) Strength() int     { a.mu.Lock(); defer a.mu.Unlock(); return a.strength }
func (a *Attributes) Intelligence() int { a.mu.Lock(); defer a.mu.Unlock(); return a.intelligence }
func (a *Attributes) Vitality() int     { a.mu.Lock(); defer a.mu.Unlock(); return a.vitality }
func (a *Attributes) Speed() int        { a.mu.Lock(); defer a.mu.Unlock(); return a.speed }
func (a *Attributes) BaseDefense() int  { a.mu.Lock(); defer a.mu.Unlock(); return a.baseDefense }
func (a *Attributes) MaxHealth() int    { a.mu.Lock(); defer a.mu.Unlock(); return a.maximumHealth }
func (a *Attributes) MaxMagic() int     { a.mu.Lock(); defer a.mu.Unlock(); return a.maximumMagic }
func (a *Attributes) Health() int       { a.mu.Lock(); defer a.mu.Unlock(); return a.currentHealth }
func (a *Attributes) Magic() int        { a.mu.Lock(); defer a.mu.Unlock(); return a.currentMagic }

// HealthRegenRate is the natural restoration per regen tick.
func (a *Attributes) HealthRegenRate() int { a.mu.Lock(); defer a.mu.Unlock(); return a.healthRegenRate }

// MagicRegenRate is the natural restoration per regen tick.
func (a *Attributes) MagicRegenRate() int { a.mu.Lock(); defer a.mu.Unlock(); return a.magicRegenRate }

// SetHealth stores v clamped and returns the stored value.
func (a *Attributes) SetHealth(v int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.currentHealth = clamp(v, 0, a.maximumHealth)
	return a.currentHealth
}

// SetMagic stores v clamped and returns the stored value.
func (a *Attributes) SetMagic(v int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.currentMagic = clamp(v, 0, a.maximumMagic)
	return a.currentMagic
}

// AdjustHealth adds delta (negative for damage) and returns the clamped result.
func (a *Attributes) AdjustHealth(delta int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.currentHealth = clamp(a.currentHealth+delta, 0, a.maximumHealth)
	return a.currentHealth
}

// Damage subtracts n. killed is true only for the blow that takes health
// from above zero to zero, so concurrent attackers see exactly one kill.
func (a *Attributes) Damage(n int) (remaining int, killed bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	was := a.currentHealth
	a.currentHealth = clamp(a.currentHealth-max(n, 0), 0, a.maximumHealth)
	return a.currentHealth, was > 0 && a.currentHealth == 0
}

// Heal adds n to a living actor. The dead stay dead.
func (a *Attributes) Heal(n int) (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.currentHealth <= 0 {
		return 0, false
	}
	a.currentHealth = clamp(a.currentHealth+n, 0, a.maximumHealth)
	return a.currentHealth, true
}

// AdjustMagic adds delta and returns the clamped result.
func (a *Attributes) AdjustMagic(delta int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.currentMagic = clamp(a.currentMagic+delta, 0, a.maximumMagic)
	return a.currentMagic
}

// SpendMagic deducts cost if enough magic is available.
func (a *Attributes) SpendMagic(cost int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.currentMagic < cost {
		return false
	}
	a.currentMagic = clamp(a.currentMagic-cost, 0, a.maximumMagic)
	return true
}

// IsDead reports health at or below zero.
func (a *Attributes) IsDead() bool {
	return a.Health() <= 0
}

func (a *Attributes) healthRatio() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.maximumHealth == 0 {
		return 0
	}
	return float64(a.currentHealth) / float64(a.maximumHealth)
}

func (a *Attributes) IsInjuredMinor() bool    { return a.healthRatio() < injuredMinorRatio }
func (a *Attributes) IsInjuredModerate() bool { return a.healthRatio() < injuredModerateRatio }
func (a *Attributes) IsInjuredMajor() bool    { return a.healthRatio() < injuredMajorRatio }

// Snapshot returns the current values.
func (a *Attributes) Snapshot() (Stats, int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Stats{
		Strength:      a.strength,
		Intelligence:  a.intelligence,
		Vitality:      a.vitality,
		Speed:         a.speed,
		BaseDefense:   a.baseDefense,
		MaximumHealth: a.maximumHealth,
		MaximumMagic:  a.maximumMagic,
	}, a.currentHealth, a.currentMagic
}

// HealthString is "Health: cur/max".
func (a *Attributes) HealthString() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return fmt.Sprintf("Health: %d/%d", a.currentHealth, a.maximumHealth)
}

// MagicString is "Magic: cur/max".
func (a *Attributes) MagicString() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return fmt.Sprintf("Magic: %d/%d", a.currentMagic, a.maximumMagic)
}
