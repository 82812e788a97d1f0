package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShippedConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load("../../config/townsfolk.toml")
	require.NoError(t, err)

	want := defaults()
	want.Server.StartTime = cfg.Server.StartTime
	assert.Equal(t, want, cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[simulation]
npc_delay_min = "10ms"
npc_delay_max = "20ms"
seed = 42

[database]
driver = "none"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Millisecond, cfg.Simulation.NpcDelayMin)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, "none", cfg.Database.Driver)
	assert.Equal(t, -30, cfg.Simulation.MonsterAttackModifier, "untouched keys keep defaults")
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, body string
	}{
		{"driver", "[database]\ndriver = \"mysql\"\n"},
		{"delays", "[simulation]\nmonster_delay_min = \"5s\"\nmonster_delay_max = \"1s\"\n"},
		{"micro", "[simulation]\nmicro_delay = \"0s\"\n"},
		{"syntax", "[simulation\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "t.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
