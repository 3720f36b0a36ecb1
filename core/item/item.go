package item

import (
	"errors"
	"fmt"
)

// ErrMalformed is wrapped by Validate for records missing required fields.
var ErrMalformed = errors.New("malformed item")

// Rarity is the item frame rarity. The empty value means the field was absent.
type Rarity string

const (
	RarityNormal Rarity = "normal"
	RarityMagic  Rarity = "magic"
	RarityRare   Rarity = "rare"
	RarityUnique Rarity = "unique"
)

// Rank orders rarities from Normal (1) to Unique (4). Unknown rarities rank 0.
func (r Rarity) Rank() int {
	switch r {
	case RarityNormal:
		return 1
	case RarityMagic:
		return 2
	case RarityRare:
		return 3
	case RarityUnique:
		return 4
	default:
		return 0
	}
}

// IsValid reports whether r is one of the known rarities.
func (r Rarity) IsValid() bool {
	return r.Rank() > 0
}

// Class is the broad item class. The empty value means the field was absent.
type Class string

const (
	ClassOneHandWeapon Class = "one_hand_weapon"
	ClassTwoHandWeapon Class = "two_hand_weapon"
	ClassShield        Class = "shield"
	ClassQuiver        Class = "quiver"
	ClassHelmet        Class = "helmet"
	ClassBodyArmour    Class = "body_armour"
	ClassGloves        Class = "gloves"
	ClassBoots         Class = "boots"
	ClassBelt          Class = "belt"
	ClassAmulet        Class = "amulet"
	ClassRing          Class = "ring"
	ClassFlask         Class = "flask"
	ClassMap           Class = "map"
	ClassGem           Class = "gem"
	ClassJewel         Class = "jewel"
	ClassCurrency      Class = "currency"
	ClassOther         Class = "other"
)

// Item is a single stash entry.
type Item struct {
	// ID is the unique item identifier within the snapshot.
	ID string `json:"id"`
	// Position is the item's place in the stash.
	Position Position `json:"position"`
	// BaseType is the base item name (e.g. "Vaal Regalia").
	BaseType string `json:"base_type"`
	// Name is the rolled name for rare and unique items. Empty for unidentified items.
	Name string `json:"name,omitempty"`
	// Rarity is the item rarity.
	Rarity Rarity `json:"rarity"`
	// Class is the item class.
	Class Class `json:"class"`
	// Quality is the item quality percentage.
	Quality int `json:"quality"`
	// Sockets lists the sockets in socket order.
	Sockets []Socket `json:"sockets,omitempty"`
	// Identified is false for unidentified items.
	Identified bool `json:"identified"`
	// ItemLevel is the item level.
	ItemLevel int `json:"item_level"`
	// Corrupted marks corrupted items.
	Corrupted bool `json:"corrupted"`
	// MapTier is the map tier; zero for non-map items.
	MapTier int `json:"map_tier,omitempty"`
	// StackSize is the stack size for stackable items.
	StackSize int `json:"stack_size,omitempty"`
}

// Position locates an item inside the stash.
type Position struct {
	Tab int `json:"tab"`
	X   int `json:"x"`
	Y   int `json:"y"`
	W   int `json:"w"`
	H   int `json:"h"`
}

// Less orders positions by tab, then row, then column.
func (p Position) Less(o Position) bool {
	if p.Tab != o.Tab {
		return p.Tab < o.Tab
	}
	if p.Y != o.Y {
		return p.Y < o.Y
	}
	return p.X < o.X
}

// String renders the position as "tab:x,y".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d,%d", p.Tab, p.X, p.Y)
}

// Validate checks that the record carries the fields classification depends on.
func (i Item) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("%w: missing id", ErrMalformed)
	}
	if i.Rarity == "" {
		return fmt.Errorf("%w: missing rarity", ErrMalformed)
	}
	if !i.Rarity.IsValid() {
		return fmt.Errorf("%w: unknown rarity %q", ErrMalformed, i.Rarity)
	}
	if i.Class == "" {
		return fmt.Errorf("%w: missing item class", ErrMalformed)
	}
	if i.ItemLevel < 0 {
		return fmt.Errorf("%w: negative item level %d", ErrMalformed, i.ItemLevel)
	}
	if i.Quality < 0 {
		return fmt.Errorf("%w: negative quality %d", ErrMalformed, i.Quality)
	}
	if i.Class == ClassMap && i.MapTier <= 0 {
		return fmt.Errorf("%w: map without tier", ErrMalformed)
	}
	return nil
}

// Less is the deterministic tie-break order used when several items can fill the
// same slot: lower item level, then lower stash position, then base type, then id.
func Less(a, b Item) bool {
	if a.ItemLevel != b.ItemLevel {
		return a.ItemLevel < b.ItemLevel
	}
	if a.Position != b.Position {
		if a.Position.Less(b.Position) {
			return true
		}
		if b.Position.Less(a.Position) {
			return false
		}
	}
	if a.BaseType != b.BaseType {
		return a.BaseType < b.BaseType
	}
	return a.ID < b.ID
}
