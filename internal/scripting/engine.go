package scripting

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

//go:embed scripts/*.lua
var builtinScripts embed.FS

// AttackInput feeds the attack power formula.
type AttackInput struct {
	Strength    int
	WeaponPower int
	Modifier    int
	Level       int
}

// RegenInput feeds the regeneration formulas.
type RegenInput struct {
	Vitality     int
	Intelligence int
	Level        int
	Rate         int
}

// Formulas computes combat and regeneration numbers.
type Formulas interface {
	AttackPower(in AttackInput) int
	Damage(attackPower, defense int) int
	HealthRegen(in RegenInput) int
	MagicRegen(in RegenInput) int
}

// Builtin is the Go rendition of the default scripts. The engine falls back
// to it whenever a script is missing or fails.
type Builtin struct{}

func (Builtin) AttackPower(in AttackInput) int {
	return in.Strength + in.WeaponPower + in.Modifier
}

func (Builtin) Damage(attackPower, defense int) int {
	return max(0, attackPower-defense)
}

func (Builtin) HealthRegen(in RegenInput) int { return in.Rate }
func (Builtin) MagicRegen(in RegenInput) int  { return in.Rate }

// Engine wraps a single gopher-lua VM. Actor goroutines call it
// concurrently, so every call holds mu.
type Engine struct {
	mu       sync.Mutex
	vm       *lua.LState
	log      *zap.Logger
	fallback Builtin
}

// NewEngine creates a Lua engine with the built-in formulas loaded, then
// loads every .lua file in scriptsDir on top so that operators can
// redefine any formula. An empty scriptsDir skips the override step.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	if err := e.loadBuiltin(); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load builtin scripts: %w", err)
	}
	if scriptsDir != "" {
		if err := e.loadDir(scriptsDir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load scripts: %w", err)
		}
	}
	return e, nil
}

func (e *Engine) loadBuiltin() error {
	names, err := fs.Glob(builtinScripts, "scripts/*.lua")
	if err != nil {
		return err
	}
	sort.Strings(names)
	for _, n := range names {
		src, err := builtinScripts.ReadFile(n)
		if err != nil {
			return err
		}
		if err := e.vm.DoString(string(src)); err != nil {
			return fmt.Errorf("load %s: %w", path.Base(n), err)
		}
		e.log.Debug("loaded lua script", zap.String("file", n))
	}
	return nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		p := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", p))
	}
	return nil
}

// Close releases the VM.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vm.Close()
}

// callInt calls a global Lua function with one table argument built from
// fields and returns its numeric result. ok is false when the function is
// missing, errors or returns a non-number.
func (e *Engine) callInt(name string, fields map[string]int) (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("fn", name))
		return 0, false
	}

	t := e.vm.NewTable()
	for k, v := range fields {
		t.RawSetString(k, lua.LNumber(v))
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua call error", zap.String("fn", name), zap.Error(err))
		return 0, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua function returned non-number", zap.String("fn", name), zap.String("type", result.Type().String()))
		return 0, false
	}
	return int(n), true
}

// AttackPower calls calc_attack_power.
func (e *Engine) AttackPower(in AttackInput) int {
	v, ok := e.callInt("calc_attack_power", map[string]int{
		"strength":     in.Strength,
		"weapon_power": in.WeaponPower,
		"modifier":     in.Modifier,
		"level":        in.Level,
	})
	if !ok {
		return e.fallback.AttackPower(in)
	}
	return v
}

// Damage calls calc_damage. Negative script results are floored at zero.
func (e *Engine) Damage(attackPower, defense int) int {
	v, ok := e.callInt("calc_damage", map[string]int{
		"attack_power": attackPower,
		"defense":      defense,
	})
	if !ok {
		return e.fallback.Damage(attackPower, defense)
	}
	return max(0, v)
}

// HealthRegen calls calc_health_regen.
func (e *Engine) HealthRegen(in RegenInput) int {
	v, ok := e.callInt("calc_health_regen", regenFields(in))
	if !ok {
		return e.fallback.HealthRegen(in)
	}
	return max(0, v)
}

// MagicRegen calls calc_magic_regen.
func (e *Engine) MagicRegen(in RegenInput) int {
	v, ok := e.callInt("calc_magic_regen", regenFields(in))
	if !ok {
		return e.fallback.MagicRegen(in)
	}
	return max(0, v)
}

func regenFields(in RegenInput) map[string]int {
	return map[string]int{
		"vitality":     in.Vitality,
		"intelligence": in.Intelligence,
		"level":        in.Level,
		"rate":         in.Rate,
	}
}
