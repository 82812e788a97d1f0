package journal

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/l1jgo/townsfolk/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func readEntries(t *testing.T, path string) []Entry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	dec, err := zstd.NewReader(f)
	require.NoError(t, err)
	defer dec.Close()

	var out []Entry
	sc := bufio.NewScanner(dec)
	for sc.Scan() {
		var e Entry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		out = append(out, e)
	}
	require.NoError(t, sc.Err())
	return out
}

func TestJournalWritesHeaderThenLines(t *testing.T) {
	dir := t.TempDir()
	j := New(dir, Header{Server: "test", Catalog: "abc123"}, zap.NewNop())
	at := time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)
	j.w.now = func() time.Time { return at }

	j.Narrate(world.Coordinates{Region: 0, Subregion: 1, Room: 2}, "The goblin dies.")
	j.Record("kill", map[string]string{"victim": "goblin"})
	require.NoError(t, j.Close())

	entries := readEntries(t, filepath.Join(dir, "journal-2026-05-04-10.jsonl.zst"))
	require.Len(t, entries, 3)
	assert.Equal(t, KindHeader, entries[0].Kind)
	assert.Equal(t, map[string]any{"server": "test", "catalog": "abc123"}, entries[0].Data)
	assert.Equal(t, KindNarration, entries[1].Kind)
	assert.Equal(t, "0, 1, 2", entries[1].At)
	assert.Equal(t, "The goblin dies.", entries[1].Text)
	assert.Equal(t, "kill", entries[2].Kind)
}

func TestWriterRotatesHourly(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "events")
	now := time.Date(2026, 5, 4, 10, 59, 0, 0, time.UTC)
	w.now = func() time.Time { return now }

	require.NoError(t, w.Write(Entry{Kind: "a"}))
	now = now.Add(2 * time.Minute)
	require.NoError(t, w.Write(Entry{Kind: "b"}))
	require.NoError(t, w.Close())

	first := readEntries(t, filepath.Join(dir, "events-2026-05-04-10.jsonl.zst"))
	second := readEntries(t, filepath.Join(dir, "events-2026-05-04-11.jsonl.zst"))
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "a", first[0].Kind)
	assert.Equal(t, "b", second[0].Kind)
}

func TestJournalConcurrentNarration(t *testing.T) {
	dir := t.TempDir()
	j := New(dir, Header{}, zap.NewNop())
	at := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	j.w.now = func() time.Time { return at }

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 50; k++ {
				j.Narrate(world.Coordinates{}, "line")
			}
		}()
	}
	wg.Wait()
	require.NoError(t, j.Close())

	entries := readEntries(t, filepath.Join(dir, "journal-2026-05-04-10.jsonl.zst"))
	assert.Len(t, entries, 1+8*50)
}
