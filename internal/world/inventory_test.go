package world

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryConsume(t *testing.T) {
	bread := NewItem(Item{Kind: KindFood, Name: "bread", Bites: 2})
	inv := NewInventory(bread)

	left, ok := inv.Consume(bread)
	require.True(t, ok)
	assert.Equal(t, 1, left)
	assert.Equal(t, 1, inv.Len(), "retained while bites remain")

	left, ok = inv.Consume(bread)
	require.True(t, ok)
	assert.Equal(t, 0, left)
	assert.True(t, inv.IsEmpty(), "removed at zero")

	_, ok = inv.Consume(bread)
	assert.False(t, ok)
}

func TestInventoryBestAndBetter(t *testing.T) {
	r := NewRand(1)
	stick := NewItem(Item{Kind: KindWeapon, Name: "stick", Power: 1})
	sword := NewItem(Item{Kind: KindWeapon, Name: "sword", Power: 10})
	helm := NewItem(Item{Kind: KindArmor, Name: "cap", Slot: SlotHead, Defense: 2})
	inv := NewInventory(stick, sword, helm)

	assert.Equal(t, sword, inv.BestWeapon())
	assert.Equal(t, helm, inv.BestArmor(SlotHead))
	assert.Nil(t, inv.BestArmor(SlotFeet))

	assert.Nil(t, inv.TakeRandom(r, WeaponAtLeast(11)))
	assert.Equal(t, sword, inv.TakeRandom(r, WeaponAtLeast(2)))
	assert.Equal(t, 2, inv.Len())
}

func TestInventoryTakeRandomIsExclusive(t *testing.T) {
	r := NewRand(3)
	inv := NewInventory()
	for i := 0; i < 100; i++ {
		inv.Add(NewItem(Item{Kind: KindJunk, Name: "pebble"}))
	}
	var mu sync.Mutex
	seen := map[*Item]int{}
	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				it := inv.TakeRandom(r, nil)
				if it == nil {
					return
				}
				mu.Lock()
				seen[it]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 100)
	for _, n := range seen {
		assert.Equal(t, 1, n)
	}
}

func TestInventoryKeywordsAndText(t *testing.T) {
	apple := NewItem(Item{Kind: KindFood, Name: "apple", Keywords: []string{"fruit"}, Bites: 1})
	ring := NewItem(Item{Kind: KindGem, Name: "ruby ring", Value: 250})
	inv := NewInventory(apple, ring)

	assert.Equal(t, apple, inv.FindKeyword("FRUIT"))
	assert.True(t, inv.ContainsValuable(200))
	assert.False(t, inv.ContainsValuable(300))
	assert.Equal(t, "an apple and a ruby ring", inv.CollectionString())
	assert.Equal(t, "ITEMS:apple\nruby ring", inv.ItemsText())
	assert.Equal(t, ring, inv.TakeKeyword("ruby ring"))
	assert.Equal(t, 1, inv.Len())
}
