package persist

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/l1jgo/townsfolk/internal/config"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "stats", "t.db"))
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestSQLiteSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, ok, err := s.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "fresh store has no snapshot")

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveSnapshot(ctx, Snapshot{TakenAt: at, NpcsKilled: 1, MonstersKilled: 2, ByMonster: map[string]int64{"rat": 2}}))
	require.NoError(t, s.SaveSnapshot(ctx, Snapshot{TakenAt: at.Add(time.Minute), NpcsKilled: 3, MonstersKilled: 5, ByMonster: map[string]int64{"rat": 4, "goblin": 1}}))

	got, ok, err := s.LatestSnapshot(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(3), got.NpcsKilled)
	assert.Equal(t, int64(5), got.MonstersKilled)
	assert.Equal(t, map[string]int64{"rat": 4, "goblin": 1}, got.ByMonster)
	assert.True(t, got.TakenAt.Equal(at.Add(time.Minute)))
}

func TestSQLiteRecordKillsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	kills := []KillRecord{
		{ID: ulid.Make().String(), Victim: "goblin", Template: "goblin", Monster: true, Killer: "Bert the peasant", KilledAt: time.Now()},
		{ID: ulid.Make().String(), Victim: "Ada the healer", Killer: "wolf", Region: 1, Room: 2, KilledAt: time.Now()},
	}
	require.NoError(t, s.RecordKills(ctx, kills))
	require.NoError(t, s.RecordKills(ctx, kills[:1]))
	require.NoError(t, s.RecordKills(ctx, nil))

	n, err := s.CountKills(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "t.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.SaveSnapshot(ctx, Snapshot{TakenAt: time.Now(), MonstersKilled: 7}))
	s.Close()

	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err, "migrations are re-runnable")
	defer s.Close()
	got, ok, err := s.LatestSnapshot(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(7), got.MonstersKilled)
	assert.Empty(t, got.ByMonster)
}

func TestOpenSelectsDriver(t *testing.T) {
	ctx := context.Background()

	st, err := Open(ctx, config.DatabaseConfig{Driver: "none"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, NopStore{}, st)

	st, err = Open(ctx, config.DatabaseConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "x.db")}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, st)
	st.Close()

	_, err = Open(ctx, config.DatabaseConfig{Driver: "oracle"}, zap.NewNop())
	assert.Error(t, err)
}
