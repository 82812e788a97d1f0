package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PGStore keeps stats in Postgres.
type PGStore struct {
	db *DB
}

func NewPGStore(db *DB) *PGStore {
	return &PGStore{db: db}
}

// RecordKills writes a batch of kills in a single transaction.
func (s *PGStore) RecordKills(ctx context.Context, kills []KillRecord) error {
	if len(kills) == 0 {
		return nil
	}
	return s.db.InTx(ctx, func(tx pgx.Tx) error {
		for _, k := range kills {
			if _, err := tx.Exec(ctx,
				`INSERT INTO kills (id, victim, template, monster, killer, region, subregion, room, killed_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				 ON CONFLICT (id) DO NOTHING`,
				k.ID, k.Victim, k.Template, k.Monster, k.Killer, k.Region, k.Subregion, k.Room, k.KilledAt,
			); err != nil {
				return fmt.Errorf("kills insert %s: %w", k.ID, err)
			}
		}
		return nil
	})
}

func (s *PGStore) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	by := snap.ByMonster
	if by == nil {
		by = map[string]int64{}
	}
	_, err := s.db.Pool.Exec(ctx,
		`INSERT INTO stats_snapshots (taken_at, npcs_killed, monsters_killed, by_monster)
		 VALUES ($1, $2, $3, $4)`,
		snap.TakenAt, snap.NpcsKilled, snap.MonstersKilled, by,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *PGStore) LatestSnapshot(ctx context.Context) (Snapshot, bool, error) {
	var snap Snapshot
	err := s.db.Pool.QueryRow(ctx,
		`SELECT taken_at, npcs_killed, monsters_killed, by_monster
		 FROM stats_snapshots ORDER BY id DESC LIMIT 1`,
	).Scan(&snap.TakenAt, &snap.NpcsKilled, &snap.MonstersKilled, &snap.ByMonster)
	if errors.Is(err, pgx.ErrNoRows) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("latest snapshot: %w", err)
	}
	return snap, true, nil
}

func (s *PGStore) Close() {
	s.db.Close()
}
