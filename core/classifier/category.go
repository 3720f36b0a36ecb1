package classifier

import (
	"sort"
	"strings"

	"stash-recipes/core/item"
)

// Category is a recipe-relevant item category.
type Category string

// Slot is a gear slot used to build equipment categories.
type Slot string

const (
	SlotWeapon1H   Slot = "Weapon1H"
	SlotWeapon2H   Slot = "Weapon2H"
	SlotShield     Slot = "Shield"
	SlotHelmet     Slot = "Helmet"
	SlotBodyArmour Slot = "BodyArmour"
	SlotGloves     Slot = "Gloves"
	SlotBoots      Slot = "Boots"
	SlotBelt       Slot = "Belt"
	SlotAmulet     Slot = "Amulet"
	SlotRing       Slot = "Ring"
)

// Slots lists the gear slots in display order.
var Slots = []Slot{
	SlotWeapon1H, SlotWeapon2H, SlotShield, SlotHelmet, SlotBodyArmour,
	SlotGloves, SlotBoots, SlotBelt, SlotAmulet, SlotRing,
}

var rarities = []item.Rarity{item.RarityNormal, item.RarityMagic, item.RarityRare, item.RarityUnique}

const (
	FullLinkChest  Category = "FullLinkChest"
	FullLinkWeapon Category = "FullLinkWeapon"
	SixSocket      Category = "SixSocket"
	RGBLinked      Category = "RGBLinked"
	QualityGem     Category = "QualityGem"
	QualityFlask   Category = "QualityFlask"
	WhiteMap       Category = "WhiteMap"
	YellowMap      Category = "YellowMap"
	RedMap         Category = "RedMap"

	// Unclassified groups items without any category in inventory counts.
	// It is never produced by Classify and never accepted by a recipe.
	Unclassified Category = "Unclassified"
)

var special = []Category{
	FullLinkChest, FullLinkWeapon, SixSocket, RGBLinked,
	QualityGem, QualityFlask, WhiteMap, YellowMap, RedMap,
}

// Equipment returns the category for an item of the given rarity in the given slot,
// e.g. Equipment(item.RarityRare, SlotRing) == "RareRing".
func Equipment(r item.Rarity, s Slot) Category {
	name := string(r)
	if name == "" {
		return ""
	}
	return Category(strings.ToUpper(name[:1]) + name[1:] + string(s))
}

// EquipmentAny returns the equipment categories for every listed rarity in the slot.
func EquipmentAny(s Slot, rs ...item.Rarity) []Category {
	out := make([]Category, 0, len(rs))
	for _, r := range rs {
		out = append(out, Equipment(r, s))
	}
	return out
}

var vocabulary = buildVocabulary()

func buildVocabulary() map[Category]struct{} {
	v := make(map[Category]struct{})
	for _, r := range rarities {
		for _, s := range Slots {
			v[Equipment(r, s)] = struct{}{}
		}
	}
	for _, c := range special {
		v[c] = struct{}{}
	}
	v[Unclassified] = struct{}{}
	return v
}

// Vocabulary returns every known category, sorted.
func Vocabulary() []Category {
	out := make([]Category, 0, len(vocabulary))
	for c := range vocabulary {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Known reports whether c belongs to the vocabulary.
func Known(c Category) bool {
	_, ok := vocabulary[c]
	return ok
}

// Tag is a bitset of sub-tags that gate specific recipes.
type Tag uint8

const (
	TagUnidentified Tag = 1 << iota
	TagCorrupted
	// TagQuality marks items at or above QualityThreshold.
	TagQuality
)

// Has reports whether all bits of o are set.
func (t Tag) Has(o Tag) bool {
	return t&o == o
}

// Strings lists the tag names, for reports.
func (t Tag) Strings() []string {
	var out []string
	if t.Has(TagUnidentified) {
		out = append(out, "unidentified")
	}
	if t.Has(TagCorrupted) {
		out = append(out, "corrupted")
	}
	if t.Has(TagQuality) {
		out = append(out, "quality")
	}
	return out
}
