package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/l1jgo/townsfolk/internal/config"
	"go.uber.org/zap"
)

// KillRecord is one death, written as it happens.
type KillRecord struct {
	ID        string // ulid
	Victim    string
	Template  string // monster template, empty for npcs
	Monster   bool
	Killer    string
	Region    int
	Subregion int
	Room      int
	KilledAt  time.Time
}

// Snapshot is the running tally of kills.
type Snapshot struct {
	TakenAt        time.Time
	NpcsKilled     int64
	MonstersKilled int64
	ByMonster      map[string]int64
}

// StatsStore journals kills and tally snapshots.
type StatsStore interface {
	RecordKills(ctx context.Context, kills []KillRecord) error
	SaveSnapshot(ctx context.Context, s Snapshot) error
	// LatestSnapshot returns the newest snapshot; ok is false on an empty store.
	LatestSnapshot(ctx context.Context) (s Snapshot, ok bool, err error)
	Close()
}

// Open connects the configured backend and applies its migrations.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (StatsStore, error) {
	switch cfg.Driver {
	case "postgres":
		db, err := NewDB(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err := RunMigrations(ctx, db.Pool); err != nil {
			db.Close()
			return nil, err
		}
		return NewPGStore(db), nil
	case "sqlite":
		return OpenSQLite(ctx, cfg.DSN)
	case "none", "":
		return NopStore{}, nil
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}

// NopStore discards everything.
type NopStore struct{}

func (NopStore) RecordKills(context.Context, []KillRecord) error { return nil }
func (NopStore) SaveSnapshot(context.Context, Snapshot) error     { return nil }
func (NopStore) LatestSnapshot(context.Context) (Snapshot, bool, error) {
	return Snapshot{}, false, nil
}
func (NopStore) Close() {}
