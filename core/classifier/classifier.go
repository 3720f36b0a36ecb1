package classifier

import (
	"sort"

	"stash-recipes/core/item"
)

const (
	// QualityThreshold is the quality a set must reach for quality recipes.
	QualityThreshold = 20

	// FullLinks is the link count of a fully linked item.
	FullLinks = 6

	// Map tier bands.
	whiteMapMaxTier  = 5
	yellowMapMaxTier = 10

	// Item level bands for the rare set recipes.
	ChaosMinItemLevel = 60
	RegalMinItemLevel = 75
)

var classSlots = map[item.Class]Slot{
	item.ClassOneHandWeapon: SlotWeapon1H,
	item.ClassTwoHandWeapon: SlotWeapon2H,
	item.ClassShield:        SlotShield,
	item.ClassHelmet:        SlotHelmet,
	item.ClassBodyArmour:    SlotBodyArmour,
	item.ClassGloves:        SlotGloves,
	item.ClassBoots:         SlotBoots,
	item.ClassBelt:          SlotBelt,
	item.ClassAmulet:        SlotAmulet,
	item.ClassRing:          SlotRing,
}

// Classification is the classifier output for one item.
type Classification struct {
	// Categories holds every candidate category, sorted. Empty when the item is
	// outside all known recipes.
	Categories []Category
	// Tags holds the sub-tags.
	Tags Tag
}

// Has reports whether c is among the candidate categories.
func (c Classification) Has(cat Category) bool {
	i := sort.Search(len(c.Categories), func(i int) bool { return c.Categories[i] >= cat })
	return i < len(c.Categories) && c.Categories[i] == cat
}

// Matches reports whether any of the accepted categories is a candidate.
func (c Classification) Matches(accept []Category) bool {
	for _, a := range accept {
		if c.Has(a) {
			return true
		}
	}
	return false
}

// SlotOf returns the gear slot for an item class.
func SlotOf(c item.Class) (Slot, bool) {
	s, ok := classSlots[c]
	return s, ok
}

// Classify returns the candidate categories and sub-tags of an item.
// Malformed and corrupted items get no categories.
func Classify(it item.Item) Classification {
	var out Classification

	if !it.Identified {
		out.Tags |= TagUnidentified
	}
	if it.Quality >= QualityThreshold {
		out.Tags |= TagQuality
	}
	if it.Corrupted {
		out.Tags |= TagCorrupted
		return out
	}
	if it.Validate() != nil {
		return out
	}

	add := func(c Category) {
		out.Categories = append(out.Categories, c)
	}

	if slot, ok := classSlots[it.Class]; ok {
		add(Equipment(it.Rarity, slot))
	}

	if it.SocketCount() == FullLinks {
		add(SixSocket)
	}
	if it.MaxLinks() == FullLinks {
		switch it.Class {
		case item.ClassBodyArmour:
			add(FullLinkChest)
		case item.ClassTwoHandWeapon:
			add(FullLinkWeapon)
		}
	}
	if it.HasRGBLink() {
		add(RGBLinked)
	}

	switch it.Class {
	case item.ClassGem:
		if it.Quality > 0 {
			add(QualityGem)
		}
	case item.ClassFlask:
		if it.Quality > 0 {
			add(QualityFlask)
		}
	case item.ClassMap:
		add(mapBand(it.MapTier))
	}

	sort.Slice(out.Categories, func(i, j int) bool { return out.Categories[i] < out.Categories[j] })
	return out
}

func mapBand(tier int) Category {
	switch {
	case tier <= whiteMapMaxTier:
		return WhiteMap
	case tier <= yellowMapMaxTier:
		return YellowMap
	default:
		return RedMap
	}
}

// Band names for ItemLevelBand.
const (
	BandChaos = "chaos"
	BandRegal = "regal"
)

// ItemLevelBand returns the rare set band of an item: BandChaos for rare gear with item
// level 60-74, BandRegal for 75 and above, and "" for anything else.
func ItemLevelBand(it item.Item) string {
	if it.Rarity != item.RarityRare || it.Corrupted {
		return ""
	}
	if _, ok := classSlots[it.Class]; !ok {
		return ""
	}
	switch {
	case it.ItemLevel >= RegalMinItemLevel:
		return BandRegal
	case it.ItemLevel >= ChaosMinItemLevel:
		return BandChaos
	default:
		return ""
	}
}
