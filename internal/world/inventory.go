package world

import (
	"slices"
	"strings"
	"sync"
)

// Inventory is an ordered item collection shared by actors, players, rooms
// and containers. All methods lock, so a room's ground items can be raced for
// by several actors and only one of them gets each item.
type Inventory struct {
	mu    sync.Mutex
	items []*Item
}

// NewInventory returns an inventory holding items.
func NewInventory(items ...*Item) *Inventory {
	inv := &Inventory{items: make([]*Item, 0, max(len(items), 4))}
	inv.items = append(inv.items, items...)
	return inv
}

// Len returns the item count.
func (inv *Inventory) Len() int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return len(inv.items)
}

// IsEmpty reports whether nothing is held.
func (inv *Inventory) IsEmpty() bool { return inv.Len() == 0 }

// Items returns a snapshot.
func (inv *Inventory) Items() []*Item {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return slices.Clone(inv.items)
}

// Add appends items.
func (inv *Inventory) Add(items ...*Item) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	for _, it := range items {
		if it != nil {
			inv.items = append(inv.items, it)
		}
	}
}

// Remove deletes it and reports whether it was present.
func (inv *Inventory) Remove(it *Item) bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.removeLocked(it)
}

func (inv *Inventory) removeLocked(it *Item) bool {
	i := slices.Index(inv.items, it)
	if i < 0 {
		return false
	}
	inv.items = slices.Delete(inv.items, i, i+1)
	return true
}

// Drain removes and returns everything.
func (inv *Inventory) Drain() []*Item {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	out := inv.items
	inv.items = make([]*Item, 0, 4)
	return out
}

// Contains reports whether any item has kind k.
func (inv *Inventory) Contains(k ItemKind) bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	for _, it := range inv.items {
		if it.Kind == k {
			return true
		}
	}
	return false
}

// ContainsValuable reports whether any item is worth at least minValue.
func (inv *Inventory) ContainsValuable(minValue int) bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	for _, it := range inv.items {
		if it.Value >= minValue {
			return true
		}
	}
	return false
}

func (inv *Inventory) matching(pred func(*Item) bool) []*Item {
	var out []*Item
	for _, it := range inv.items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// Random returns a random item satisfying pred without removing it.
func (inv *Inventory) Random(r *Rand, pred func(*Item) bool) *Item {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return Pick(r, inv.matching(pred))
}

// TakeRandom removes and returns a random item satisfying pred (nil for any).
func (inv *Inventory) TakeRandom(r *Rand, pred func(*Item) bool) *Item {
	if pred == nil {
		pred = func(*Item) bool { return true }
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	it := Pick(r, inv.matching(pred))
	if it != nil {
		inv.removeLocked(it)
	}
	return it
}

// OfKind is a predicate for TakeRandom and Random.
func OfKind(k ItemKind) func(*Item) bool {
	return func(it *Item) bool { return it.Kind == k }
}

// WeaponAtLeast matches weapons with power >= minPower.
func WeaponAtLeast(minPower int) func(*Item) bool {
	return func(it *Item) bool { return it.Kind == KindWeapon && it.Power >= minPower }
}

// ArmorAtLeast matches armor for slot with defense >= minDefense.
func ArmorAtLeast(slot BodySlot, minDefense int) func(*Item) bool {
	return func(it *Item) bool { return it.Kind == KindArmor && it.Slot == slot && it.Defense >= minDefense }
}

// ValuableAtLeast matches items worth at least minValue.
func ValuableAtLeast(minValue int) func(*Item) bool {
	return func(it *Item) bool { return it.Value >= minValue }
}

// Any reports whether some item satisfies pred.
func (inv *Inventory) Any(pred func(*Item) bool) bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return slices.ContainsFunc(inv.items, pred)
}

// BestWeapon returns the highest-power weapon or nil.
func (inv *Inventory) BestWeapon() *Item {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	var best *Item
	for _, it := range inv.items {
		if it.Kind == KindWeapon && (best == nil || it.Power > best.Power) {
			best = it
		}
	}
	return best
}

// BestArmor returns the highest-defense armor for slot or nil.
func (inv *Inventory) BestArmor(slot BodySlot) *Item {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	var best *Item
	for _, it := range inv.items {
		if it.Kind == KindArmor && it.Slot == slot && (best == nil || it.Defense > best.Defense) {
			best = it
		}
	}
	return best
}

// FindKeyword returns the first item matching kw.
func (inv *Inventory) FindKeyword(kw string) *Item {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	for _, it := range inv.items {
		if it.MatchesKeyword(kw) {
			return it
		}
	}
	return nil
}

// TakeKeyword removes and returns the first item matching kw.
func (inv *Inventory) TakeKeyword(kw string) *Item {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	for _, it := range inv.items {
		if it.MatchesKeyword(kw) {
			inv.removeLocked(it)
			return it
		}
	}
	return nil
}

// Consume takes one bite or quaff from it. When nothing is left the item is
// removed. ok is false if it is not held here (someone else finished it).
func (inv *Inventory) Consume(it *Item) (remaining int, ok bool) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if !slices.Contains(inv.items, it) {
		return 0, false
	}
	switch it.Kind {
	case KindFood:
		it.Bites--
		remaining = it.Bites
	case KindDrink:
		it.Quaffs--
		remaining = it.Quaffs
	default:
		return 0, false
	}
	if remaining <= 0 {
		inv.removeLocked(it)
		remaining = 0
	}
	return remaining, true
}

// Names returns the item names in order.
func (inv *Inventory) Names() []string {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	out := make([]string, len(inv.items))
	for i, it := range inv.items {
		out[i] = it.Name
	}
	return out
}

// CollectionString is "a sword, a shield, and an apple".
func (inv *Inventory) CollectionString() string {
	return CollectionString(inv.Names(), true)
}

// ItemsText is the client-facing ground list.
func (inv *Inventory) ItemsText() string {
	return "ITEMS:" + strings.Join(inv.Names(), "\n")
}
