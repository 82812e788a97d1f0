package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l1jgo/townsfolk/internal/world"
)

func TestConsumeLastBite(t *testing.T) {
	tests := []struct {
		name     string
		item     string
		kind     world.ItemKind
		wantKept bool
		wantLast bool
	}{
		{"single bite is finished", "strip of jerky", world.KindFood, false, true},
		{"two bites leave one", "apple", world.KindFood, true, false},
		{"last quaff of ale", "bottle of ale", world.KindDrink, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			room := f.room(t, square)
			it := f.item(tt.item)
			bert := peasant("Bert")
			bert.Inventory.Add(it)
			room.AddActor(bert)
			f.said.reset()

			f.sim.consume(bert, room, tt.kind)
			assert.Equal(t, tt.wantKept, bert.Inventory.Len() == 1)
			if tt.wantLast {
				assert.Contains(t, f.said.text(), "That was the last of it.")
			} else {
				assert.NotContains(t, f.said.text(), "That was the last of it.")
			}
		})
	}
}

func TestConsumeFromGroundRemovesFinishedItem(t *testing.T) {
	f := newFixture(t, nil)
	room := f.room(t, square)
	room.AddItems(f.item("strip of jerky"))
	bert := peasant("Bert")
	room.AddActor(bert)

	f.sim.consume(bert, room, world.KindFood)
	assert.False(t, room.Ground.Contains(world.KindFood))
	assert.Contains(t, f.said.text(), "which is on the ground")
}

func TestWeakerWeaponNeverReplacesEquipped(t *testing.T) {
	f := newFixture(t, nil)
	room := f.room(t, square)
	bert := peasant("Bert")
	sword := f.item("longsword")
	bert.EquipWeapon(sword)
	room.AddActor(bert)
	room.AddItems(f.item("dagger"))

	f.sim.getBetterWeapon(bert, room)
	assert.Same(t, sword, bert.Weapon())
	assert.True(t, room.Ground.Contains(world.KindWeapon), "dagger stays on the ground")
}

func TestBetterWeaponSwapsAndDropsOld(t *testing.T) {
	f := newFixture(t, nil)
	room := f.room(t, square)
	bert := peasant("Bert")
	bert.EquipWeapon(f.item("dagger"))
	room.AddActor(bert)
	room.AddItems(f.item("battle axe"))

	f.sim.getBetterWeapon(bert, room)
	require.NotNil(t, bert.Weapon())
	assert.Equal(t, "battle axe", bert.Weapon().Name)
	assert.NotNil(t, room.Ground.FindKeyword("dagger"))
	assert.Contains(t, f.said.text(), "a dagger")
}

func TestFindAndEquipArmorFillsEmptySlots(t *testing.T) {
	f := newFixture(t, nil)
	room := f.room(t, square)
	bert := peasant("Bert")
	room.AddActor(bert)
	room.AddItems(f.item("leather cap"), f.item("leather boots"))

	f.sim.findAndEquipArmor(bert, room)
	require.NotNil(t, bert.Armor(world.SlotHead))
	require.NotNil(t, bert.Armor(world.SlotFeet))
	assert.False(t, room.Ground.Contains(world.KindArmor))
}

func TestEquipOnLootedCorpseReturnsItems(t *testing.T) {
	f := newFixture(t, nil)
	room := f.room(t, square)
	bert := peasant("Bert")
	room.AddActor(bert)
	room.AddItems(f.item("battle axe"), f.item("leather cap"))

	// killed and looted between the decision and the equip
	bert.Attrs.Damage(1000)
	require.True(t, bert.MarkSearched())

	f.sim.findAndEquipWeapon(bert, room)
	assert.Nil(t, bert.Weapon())
	assert.NotNil(t, room.Ground.FindKeyword("axe"))

	f.sim.findAndEquipArmor(bert, room)
	assert.Nil(t, bert.Armor(world.SlotHead))
	assert.True(t, room.Ground.Contains(world.KindArmor))
	assert.Contains(t, f.said.text(), "drops a battle axe")
}

func TestValuableItemThreshold(t *testing.T) {
	f := newFixture(t, nil)
	room := f.room(t, square)
	bert := peasant("Bert")
	room.AddActor(bert)
	room.AddItems(f.item("bent nail"), f.item("golden goblet"))

	f.sim.getValuableItem(bert, room)
	assert.True(t, bert.Inventory.ContainsValuable(200))
	assert.NotNil(t, room.Ground.FindKeyword("nail"))
}

func TestPlayerGetDropAndConsume(t *testing.T) {
	f := newFixture(t, nil)
	room := f.room(t, square)
	var got []string
	p := world.NewPlayer("Ann", 1, func(s string) { got = append(got, s) })
	room.AddPlayer(p)
	room.AddItems(f.item("apple"))

	assert.False(t, f.sim.PlayerGet(p, room, "pear"))
	require.True(t, f.sim.PlayerGet(p, room, "apple"))
	assert.Equal(t, 1, p.Inventory.Len())

	require.True(t, f.sim.PlayerConsume(p, "apple"))
	assert.Contains(t, got, "You take a bite of your apple. There is 1 bite left.")
	require.True(t, f.sim.PlayerConsume(p, "apple"))
	assert.Contains(t, got, "You take a bite of your apple. That was the last of it.")
	assert.True(t, p.Inventory.IsEmpty())

	p.Inventory.Add(f.item("bent nail"))
	assert.False(t, f.sim.PlayerConsume(p, "nail"))
	require.True(t, f.sim.PlayerDrop(p, room, "nail"))
	assert.NotNil(t, room.Ground.FindKeyword("nail"))
}

func TestSeedItems(t *testing.T) {
	f := newFixture(t, nil)
	f.sim.Tun.InitialFood, f.sim.Tun.InitialDrink = 3, 2
	assert.Equal(t, 5, f.sim.SeedItems())
}
