package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Logging    LoggingConfig    `toml:"logging"`
	Simulation SimulationConfig `toml:"simulation"`
	Data       DataConfig       `toml:"data"`
	Scripting  ScriptingConfig  `toml:"scripting"`
	Database   DatabaseConfig   `toml:"database"`
	Journal    JournalConfig    `toml:"journal"`
	Network    NetworkConfig    `toml:"network"`
}

type ServerConfig struct {
	Name      string `toml:"name"`
	StartTime int64  // set at boot, not from config
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// SimulationConfig tunes the actor loops. Delays are per action.
type SimulationConfig struct {
	Seed int64 `toml:"seed"` // 0 seeds from the clock

	NpcDelayMin     time.Duration `toml:"npc_delay_min"`
	NpcDelayMax     time.Duration `toml:"npc_delay_max"`
	MonsterDelayMin time.Duration `toml:"monster_delay_min"`
	MonsterDelayMax time.Duration `toml:"monster_delay_max"`
	WorkerDelayMin  time.Duration `toml:"worker_delay_min"` // janitors and farmers
	WorkerDelayMax  time.Duration `toml:"worker_delay_max"`

	MicroDelay     time.Duration `toml:"micro_delay"`
	PopulationStep time.Duration `toml:"population_step"`

	MonsterAttackModifier int `toml:"monster_attack_modifier"`
	NpcAttackModifier     int `toml:"npc_attack_modifier"`
	ValuableItemMinimum   int `toml:"valuable_item_minimum"`
	MaxMonsterLevel       int `toml:"max_monster_level"`
	BerserkerPercent      int `toml:"berserker_percent"`
	AttackQuipPercent     int `toml:"attack_quip_percent"`
	GetItemRemarkPercent  int `toml:"get_item_remark_percent"`

	InitialFood  int `toml:"initial_food"`
	InitialDrink int `toml:"initial_drink"`

	StartRegion int `toml:"start_region"` // where players spawn
}

type DataConfig struct {
	Dir string `toml:"dir"`
}

type ScriptingConfig struct {
	Dir string `toml:"dir"` // optional overrides; missing dir means built-in scripts only
}

type DatabaseConfig struct {
	Driver          string        `toml:"driver"` // "postgres", "sqlite" or "none"
	DSN             string        `toml:"dsn"`
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
	FlushInterval   time.Duration `toml:"flush_interval"`
}

type JournalConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type NetworkConfig struct {
	BindAddress      string        `toml:"bind_address"`
	TickRate         time.Duration `toml:"tick_rate"`
	InQueueSize      int           `toml:"in_queue_size"`
	OutQueueSize     int           `toml:"out_queue_size"`
	MaxInputsPerTick int           `toml:"max_inputs_per_tick"`
	WriteTimeout     time.Duration `toml:"write_timeout"`
	ReadTimeout      time.Duration `toml:"read_timeout"`
	PingInterval     time.Duration `toml:"ping_interval"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config { return defaults() }

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite", "none":
	default:
		return fmt.Errorf("database.driver %q: want postgres, sqlite or none", c.Database.Driver)
	}
	s := c.Simulation
	if s.NpcDelayMax < s.NpcDelayMin || s.MonsterDelayMax < s.MonsterDelayMin || s.WorkerDelayMax < s.WorkerDelayMin {
		return fmt.Errorf("simulation: a delay max is below its min")
	}
	if s.MicroDelay <= 0 {
		return fmt.Errorf("simulation.micro_delay must be positive")
	}
	if c.Network.TickRate <= 0 {
		return fmt.Errorf("network.tick_rate must be positive")
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "townsfolk",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Simulation: SimulationConfig{
			NpcDelayMin:     2000 * time.Millisecond,
			NpcDelayMax:     3000 * time.Millisecond,
			MonsterDelayMin: 3000 * time.Millisecond,
			MonsterDelayMax: 4000 * time.Millisecond,
			WorkerDelayMin:  500 * time.Millisecond,
			WorkerDelayMax:  1000 * time.Millisecond,

			MicroDelay:     100 * time.Millisecond,
			PopulationStep: 2 * time.Second,

			MonsterAttackModifier: -30,
			NpcAttackModifier:     0,
			ValuableItemMinimum:   200,
			MaxMonsterLevel:       5,
			BerserkerPercent:      2,
			AttackQuipPercent:     25,
			GetItemRemarkPercent:  10,

			InitialFood:  20,
			InitialDrink: 20,
		},
		Data: DataConfig{
			Dir: "data/yaml",
		},
		Scripting: ScriptingConfig{
			Dir: "scripts",
		},
		Database: DatabaseConfig{
			Driver:          "sqlite",
			DSN:             "var/townsfolk.db",
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: 30 * time.Minute,
			FlushInterval:   10 * time.Second,
		},
		Journal: JournalConfig{
			Enabled: true,
			Dir:     "var/journal",
		},
		Network: NetworkConfig{
			BindAddress:      "0.0.0.0:7070",
			TickRate:         200 * time.Millisecond,
			InQueueSize:      64,
			OutQueueSize:     256,
			MaxInputsPerTick: 8,
			WriteTimeout:     10 * time.Second,
			ReadTimeout:      60 * time.Second,
			PingInterval:     30 * time.Second,
		},
	}
}
