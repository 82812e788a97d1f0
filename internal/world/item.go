package world

import (
	"slices"
	"strings"

	"github.com/oklog/ulid/v2"
)

// ItemKind tags the item variant.
type ItemKind int

const (
	KindJunk ItemKind = iota
	KindWeapon
	KindArmor
	KindFood
	KindDrink
	KindContainer
	KindGem
)

func (k ItemKind) String() string {
	switch k {
	case KindWeapon:
		return "weapon"
	case KindArmor:
		return "armor"
	case KindFood:
		return "food"
	case KindDrink:
		return "drink"
	case KindContainer:
		return "container"
	case KindGem:
		return "gem"
	default:
		return "junk"
	}
}

// ParseItemKind maps the catalog category names to kinds.
func ParseItemKind(s string) (ItemKind, bool) {
	switch strings.ToLower(s) {
	case "junk":
		return KindJunk, true
	case "weapon", "weapons":
		return KindWeapon, true
	case "armor":
		return KindArmor, true
	case "food":
		return KindFood, true
	case "drink", "drinks":
		return KindDrink, true
	case "container", "containers":
		return KindContainer, true
	case "gem", "gems":
		return KindGem, true
	}
	return KindJunk, false
}

// BodySlot is a place armor can be worn.
type BodySlot int

const (
	SlotHead BodySlot = iota
	SlotChest
	SlotArms
	SlotLegs
	SlotHands
	SlotFeet
)

func (s BodySlot) String() string {
	switch s {
	case SlotHead:
		return "HUMANOID_HEAD"
	case SlotChest:
		return "HUMANOID_CHEST"
	case SlotArms:
		return "HUMANOID_ARMS"
	case SlotLegs:
		return "HUMANOID_LEGS"
	case SlotHands:
		return "HUMANOID_HANDS"
	default:
		return "HUMANOID_FEET"
	}
}

// ParseBodySlot accepts "HUMANOID_HEAD" or "head".
func ParseBodySlot(s string) (BodySlot, bool) {
	switch strings.TrimPrefix(strings.ToUpper(s), "HUMANOID_") {
	case "HEAD":
		return SlotHead, true
	case "CHEST":
		return SlotChest, true
	case "ARMS":
		return SlotArms, true
	case "LEGS":
		return SlotLegs, true
	case "HANDS":
		return SlotHands, true
	case "FEET":
		return SlotFeet, true
	}
	return SlotHead, false
}

// HumanoidBody lists the slots a humanoid can wear armor on.
var HumanoidBody = []BodySlot{SlotChest, SlotHands, SlotFeet, SlotArms, SlotLegs, SlotHead}

// Item is one item instance. Kind selects which variant fields apply:
// Power for weapons, Defense and Slot for armor, Bites for food, Quaffs for
// drink, Contents and Closed for containers.
type Item struct {
	ID          ulid.ULID
	Kind        ItemKind
	Name        string
	Description string
	Weight      float64
	Value       int
	Keywords    []string

	Power    int
	Defense  int
	Slot     BodySlot
	Bites    int
	Quaffs   int
	Contents *Inventory
	Closed   bool
}

// NewItem stamps a fresh id on a copy of proto. Containers get an empty inventory.
func NewItem(proto Item) *Item {
	it := proto
	it.ID = ulid.Make()
	it.Keywords = slices.Clone(proto.Keywords)
	if it.Kind == KindContainer && it.Contents == nil {
		it.Contents = NewInventory()
	}
	return &it
}

// MatchesKeyword compares against the name and every keyword.
func (it *Item) MatchesKeyword(kw string) bool {
	kw = strings.ToLower(strings.TrimSpace(kw))
	if kw == "" {
		return false
	}
	if strings.ToLower(it.Name) == kw {
		return true
	}
	for _, k := range it.Keywords {
		if strings.ToLower(k) == kw {
			return true
		}
	}
	return false
}

// WithArticle is the item name with "a" or "an".
func (it *Item) WithArticle() string {
	return WithIndefiniteArticle(it.Name, false)
}
