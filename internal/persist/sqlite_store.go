package persist

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps stats in a single-file database. One connection; the
// stats flush is the only writer.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite creates the file (and its directory) if needed and migrates it.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("empty sqlite path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, p := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	} {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}
	if err := RunSQLiteMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) RecordKills(ctx context.Context, kills []KillRecord) error {
	if len(kills) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("kills begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO kills (id, victim, template, monster, killer, region, subregion, room, killed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("kills prepare: %w", err)
	}
	defer stmt.Close()

	for _, k := range kills {
		if _, err := stmt.ExecContext(ctx,
			k.ID, k.Victim, k.Template, k.Monster, k.Killer, k.Region, k.Subregion, k.Room,
			k.KilledAt.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("kills insert: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	by := snap.ByMonster
	if by == nil {
		by = map[string]int64{}
	}
	raw, err := json.Marshal(by)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO stats_snapshots (taken_at, npcs_killed, monsters_killed, by_monster)
		 VALUES (?, ?, ?, ?)`,
		snap.TakenAt.UTC().Format(time.RFC3339Nano), snap.NpcsKilled, snap.MonstersKilled, string(raw),
	); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LatestSnapshot(ctx context.Context) (Snapshot, bool, error) {
	var (
		snap    Snapshot
		takenAt string
		by      string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT taken_at, npcs_killed, monsters_killed, by_monster
		 FROM stats_snapshots ORDER BY id DESC LIMIT 1`,
	).Scan(&takenAt, &snap.NpcsKilled, &snap.MonstersKilled, &by)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("latest snapshot: %w", err)
	}
	if snap.TakenAt, err = time.Parse(time.RFC3339Nano, takenAt); err != nil {
		return Snapshot{}, false, fmt.Errorf("latest snapshot time: %w", err)
	}
	if err := json.Unmarshal([]byte(by), &snap.ByMonster); err != nil {
		return Snapshot{}, false, fmt.Errorf("latest snapshot tally: %w", err)
	}
	return snap, true, nil
}

// CountKills returns how many kills are journaled.
func (s *SQLiteStore) CountKills(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kills`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count kills: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) Close() {
	_ = s.db.Close()
}
