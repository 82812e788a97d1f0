package scripting

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T, dir string) *Engine {
	t.Helper()
	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestBuiltinScriptsMatchGo(t *testing.T) {
	e := newTestEngine(t, "")
	var b Builtin

	tests := []struct{ atk, def, want int }{
		{30, 40, 0},
		{50, 20, 30},
		{10, 10, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, e.Damage(tt.atk, tt.def))
		assert.Equal(t, tt.want, b.Damage(tt.atk, tt.def))
	}

	in := AttackInput{Strength: 40, WeaponPower: 9, Modifier: -30}
	assert.Equal(t, 19, e.AttackPower(in))
	assert.Equal(t, b.AttackPower(in), e.AttackPower(in))

	r := RegenInput{Rate: 1, Vitality: 10}
	assert.Equal(t, 1, e.HealthRegen(r))
	assert.Equal(t, 1, e.MagicRegen(r))
}

func TestOverrideScriptsReplaceFormulas(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "regen.lua"), []byte(`
function calc_health_regen(ctx)
    return ctx.rate + math.floor(ctx.vitality / 10)
end
function calc_damage(ctx)
    return ctx.attack_power - ctx.defense
end
`), 0o644))
	e := newTestEngine(t, dir)

	assert.Equal(t, 3, e.HealthRegen(RegenInput{Rate: 1, Vitality: 25}))
	assert.Equal(t, 0, e.Damage(5, 50), "negative script results are floored")
}

func TestBrokenScriptFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.lua"), []byte(`
function calc_attack_power(ctx)
    error("boom")
end
function calc_magic_regen(ctx)
    return "lots"
end
`), 0o644))
	e := newTestEngine(t, dir)

	assert.Equal(t, 12, e.AttackPower(AttackInput{Strength: 10, WeaponPower: 2}))
	assert.Equal(t, 1, e.MagicRegen(RegenInput{Rate: 1}))
}

func TestSyntaxErrorFailsLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.lua"), []byte(`function (`), 0o644))
	_, err := NewEngine(dir, zap.NewNop())
	assert.Error(t, err)
}

func TestEngineIsSafeForConcurrentUse(t *testing.T) {
	e := newTestEngine(t, "")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				assert.Equal(t, i+j, e.AttackPower(AttackInput{Strength: i, WeaponPower: j}))
			}
		}(i)
	}
	wg.Wait()
}
