package world

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttributesStartsBelowMax(t *testing.T) {
	a := NewAttributes(StatsDefaultNpc)
	assert.Equal(t, 20, a.Health())
	assert.Equal(t, 7, a.Magic())

	c := NewAttributes(StatsCritter)
	assert.Equal(t, 1, c.Health(), "health floor is 1")
	assert.Equal(t, 0, c.Magic(), "magic floor is 0")
}

func TestAttributesClamp(t *testing.T) {
	a := NewAttributes(StatsDefaultNpc)

	assert.Equal(t, 0, a.AdjustHealth(-1000))
	assert.True(t, a.IsDead())
	assert.Equal(t, 30, a.AdjustHealth(1000))
	assert.Equal(t, 30, a.SetHealth(31))
	assert.Equal(t, 0, a.SetHealth(-5))
	assert.Equal(t, 10, a.SetMagic(99))
	assert.Equal(t, 0, a.AdjustMagic(-99))
}

func TestAttributesClampUnderConcurrency(t *testing.T) {
	a := NewAttributes(StatsBerserker)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				a.AdjustHealth(-7)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				a.AdjustHealth(3)
			}
		}()
	}
	wg.Wait()
	h := a.Health()
	assert.GreaterOrEqual(t, h, 0)
	assert.LessOrEqual(t, h, a.MaxHealth())
}

func TestDamageReportsKillOnce(t *testing.T) {
	a := NewAttributes(Stats{MaximumHealth: 20})
	left, killed := a.Damage(4)
	assert.Equal(t, 6, left)
	assert.False(t, killed)

	_, killed = a.Damage(50)
	assert.True(t, killed)
	_, killed = a.Damage(50)
	assert.False(t, killed, "already dead")

	_, ok := a.Heal(5)
	assert.False(t, ok)
	assert.True(t, a.IsDead())
}

func TestSpendMagic(t *testing.T) {
	a := NewAttributes(Stats{MaximumHealth: 10, MaximumMagic: 10})
	require.Equal(t, 7, a.Magic())
	assert.False(t, a.SpendMagic(8))
	assert.Equal(t, 7, a.Magic())
	assert.True(t, a.SpendMagic(7))
	assert.Equal(t, 0, a.Magic())
}

func TestInjuryThresholds(t *testing.T) {
	tests := []struct {
		health                 int
		minor, moderate, major bool
	}{
		{100, false, false, false},
		{89, true, false, false},
		{59, true, true, false},
		{29, true, true, true},
	}
	for _, tt := range tests {
		a := NewAttributes(Stats{MaximumHealth: 100})
		a.SetHealth(tt.health)
		assert.Equal(t, tt.minor, a.IsInjuredMinor(), "minor at %d", tt.health)
		assert.Equal(t, tt.moderate, a.IsInjuredModerate(), "moderate at %d", tt.health)
		assert.Equal(t, tt.major, a.IsInjuredMajor(), "major at %d", tt.health)
	}
}
