package system

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/l1jgo/townsfolk/internal/persist"
)

// Stats are the running kill counters. Totals are atomic; the per-monster
// tally sits behind mu.
type Stats struct {
	npcsKilled     atomic.Int64
	monstersKilled atomic.Int64
	dirty          atomic.Bool

	mu        sync.Mutex
	byMonster map[string]int64
}

func NewStats() *Stats {
	return &Stats{byMonster: make(map[string]int64)}
}

// MonsterKilled counts one death of the named monster.
func (s *Stats) MonsterKilled(name string) {
	s.mu.Lock()
	s.byMonster[name]++
	s.mu.Unlock()
	s.monstersKilled.Add(1)
	s.dirty.Store(true)
}

// NpcKilled counts one NPC death.
func (s *Stats) NpcKilled() {
	s.npcsKilled.Add(1)
	s.dirty.Store(true)
}

func (s *Stats) NpcsKilled() int64     { return s.npcsKilled.Load() }
func (s *Stats) MonstersKilled() int64 { return s.monstersKilled.Load() }

// KillsOf returns the tally for one monster name.
func (s *Stats) KillsOf(name string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byMonster[name]
}

// Text is the STATS: message pushed to players.
func (s *Stats) Text() string {
	var b strings.Builder
	b.WriteString("STATS:")
	fmt.Fprintf(&b, "NPCs killed: %d\n", s.NpcsKilled())
	fmt.Fprintf(&b, "Monsters killed: %d\n", s.MonstersKilled())

	s.mu.Lock()
	names := slices.Sorted(maps.Keys(s.byMonster))
	for _, n := range names {
		fmt.Fprintf(&b, "%s: %d\n", n, s.byMonster[n])
	}
	s.mu.Unlock()
	return strings.TrimRight(b.String(), "\n")
}

// Snapshot copies the counters for the store.
func (s *Stats) Snapshot(at time.Time) persist.Snapshot {
	s.mu.Lock()
	by := maps.Clone(s.byMonster)
	s.mu.Unlock()
	return persist.Snapshot{
		TakenAt:        at,
		NpcsKilled:     s.NpcsKilled(),
		MonstersKilled: s.MonstersKilled(),
		ByMonster:      by,
	}
}

// Restore loads counters from a stored snapshot. Call before Start.
func (s *Stats) Restore(snap persist.Snapshot) {
	s.npcsKilled.Store(snap.NpcsKilled)
	s.monstersKilled.Store(snap.MonstersKilled)
	s.mu.Lock()
	s.byMonster = maps.Clone(snap.ByMonster)
	if s.byMonster == nil {
		s.byMonster = make(map[string]int64)
	}
	s.mu.Unlock()
}

// TakeDirty reports a change since the last call and clears the flag.
func (s *Stats) TakeDirty() bool { return s.dirty.Swap(false) }
