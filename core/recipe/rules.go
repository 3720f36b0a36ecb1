package recipe

import (
	"stash-recipes/core/classifier"
	"stash-recipes/core/item"
)

// Recipe ids.
const (
	SixLink           = "six-link"
	ChaosUnidentified = "chaos-unidentified"
	RegalTwoHand      = "regal-two-hand"
	RegalOneHand      = "regal-one-hand"
	ChaosTwoHand      = "chaos-two-hand"
	ChaosOneHand      = "chaos-one-hand"
	SixSocket         = "six-socket"
	Chromatic         = "chromatic"
	Gemcutter         = "gemcutter"
	Glassblower       = "glassblower"
	MapWhite          = "map-white"
	MapYellow         = "map-yellow"
	MapRed            = "map-red"
)

var (
	rare       = []item.Rarity{item.RarityRare}
	nonUnique  = []item.Rarity{item.RarityNormal, item.RarityMagic, item.RarityRare}
	rulesCache = build()
)

// All returns the recipe definitions in priority order. The slice is a fresh copy;
// callers may not alter the compiled-in rules through it.
//
// Full gear sets come before the single-item socket recipes so a set piece with six
// sockets or an R-G-B link is only spent alone when it cannot complete a set. The
// 6-link comes first.
func All() []Definition {
	out := make([]Definition, len(rulesCache))
	for i, d := range rulesCache {
		out[i] = clone(d)
	}
	return out
}

func clone(d Definition) Definition {
	slots := make([]Slot, len(d.Slots))
	for i, s := range d.Slots {
		s.Accept = append([]classifier.Category(nil), s.Accept...)
		slots[i] = s
	}
	d.Slots = slots
	return d
}

func build() []Definition {
	return []Definition{
		{
			ID:     SixLink,
			Name:   "6-link",
			Reward: "1 Divine Orb",
			Slots: []Slot{
				{Name: "six-link", Accept: []classifier.Category{classifier.FullLinkChest, classifier.FullLinkWeapon}, Count: 1},
			},
		},
		{
			ID:     ChaosUnidentified,
			Name:   "Chaos Orb via full unidentified set",
			Reward: "2 Chaos Orbs",
			Slots: []Slot{
				{
					Name: "weapon",
					Accept: append(
						classifier.EquipmentAny(classifier.SlotWeapon1H, nonUnique...),
						classifier.EquipmentAny(classifier.SlotWeapon2H, nonUnique...)...,
					),
					Count: 1,
				},
				{Name: "shield", Accept: classifier.EquipmentAny(classifier.SlotShield, nonUnique...), Count: 1},
				{Name: "helmet", Accept: classifier.EquipmentAny(classifier.SlotHelmet, nonUnique...), Count: 1},
				{Name: "body", Accept: classifier.EquipmentAny(classifier.SlotBodyArmour, nonUnique...), Count: 1},
				{Name: "gloves", Accept: classifier.EquipmentAny(classifier.SlotGloves, nonUnique...), Count: 1},
				{Name: "boots", Accept: classifier.EquipmentAny(classifier.SlotBoots, nonUnique...), Count: 1},
			},
			Requirements: Requirements{
				Unidentified: true,
				MinItemLevel: classifier.ChaosMinItemLevel,
				MaxRarity:    item.RarityRare,
			},
		},
		{
			ID:           RegalTwoHand,
			Name:         "Regal Orb set (two-hand)",
			Reward:       "1 Regal Orb",
			Slots:        gearSlots(rare, twoHand(rare)),
			Requirements: Requirements{MinItemLevel: classifier.RegalMinItemLevel, MaxRarity: item.RarityRare},
		},
		{
			ID:           RegalOneHand,
			Name:         "Regal Orb set (one-hand)",
			Reward:       "1 Regal Orb",
			Slots:        gearSlots(rare, oneHandPair(rare)),
			Requirements: Requirements{MinItemLevel: classifier.RegalMinItemLevel, MaxRarity: item.RarityRare},
		},
		{
			ID:     ChaosTwoHand,
			Name:   "Chaos Orb set (two-hand)",
			Reward: "1 Chaos Orb",
			Slots:  gearSlots(rare, twoHand(rare)),
			Requirements: Requirements{
				MinItemLevel:      classifier.ChaosMinItemLevel,
				MaxRarity:         item.RarityRare,
				AnyBelowItemLevel: classifier.RegalMinItemLevel,
			},
		},
		{
			ID:     ChaosOneHand,
			Name:   "Chaos Orb set (one-hand)",
			Reward: "1 Chaos Orb",
			Slots:  gearSlots(rare, oneHandPair(rare)),
			Requirements: Requirements{
				MinItemLevel:      classifier.ChaosMinItemLevel,
				MaxRarity:         item.RarityRare,
				AnyBelowItemLevel: classifier.RegalMinItemLevel,
			},
		},
		{
			ID:     SixSocket,
			Name:   "6-socket",
			Reward: "7 Jeweller's Orbs",
			Slots: []Slot{
				{Name: "six-socket", Accept: []classifier.Category{classifier.SixSocket}, Count: 1},
			},
		},
		{
			ID:     Chromatic,
			Name:   "R-G-B linked",
			Reward: "1 Chromatic Orb",
			Slots: []Slot{
				{Name: "rgb", Accept: []classifier.Category{classifier.RGBLinked}, Count: 1},
			},
		},
		{
			ID:     Gemcutter,
			Name:   "Quality gems",
			Reward: "1 Gemcutter's Prism",
			Slots: []Slot{
				{Name: "gems", Accept: []classifier.Category{classifier.QualityGem}, Count: 1, FillToQuality: classifier.QualityThreshold},
			},
		},
		{
			ID:     Glassblower,
			Name:   "Quality flasks",
			Reward: "1 Glassblower's Bauble",
			Slots: []Slot{
				{Name: "flasks", Accept: []classifier.Category{classifier.QualityFlask}, Count: 1, FillToQuality: classifier.QualityThreshold},
			},
		},
		{
			ID:     MapWhite,
			Name:   "White maps",
			Reward: "1 map of the next tier",
			Slots:  []Slot{{Name: "maps", Accept: []classifier.Category{classifier.WhiteMap}, Count: 3}},
		},
		{
			ID:     MapYellow,
			Name:   "Yellow maps",
			Reward: "1 map of the next tier",
			Slots:  []Slot{{Name: "maps", Accept: []classifier.Category{classifier.YellowMap}, Count: 3}},
		},
		{
			ID:     MapRed,
			Name:   "Red maps",
			Reward: "1 map of the next tier",
			Slots:  []Slot{{Name: "maps", Accept: []classifier.Category{classifier.RedMap}, Count: 3}},
		},
	}
}

func twoHand(rs []item.Rarity) Slot {
	return Slot{Name: "two-hand weapon", Accept: classifier.EquipmentAny(classifier.SlotWeapon2H, rs...), Count: 1}
}

func oneHandPair(rs []item.Rarity) Slot {
	return Slot{
		Name: "one-hand weapons",
		Accept: append(
			classifier.EquipmentAny(classifier.SlotWeapon1H, rs...),
			classifier.EquipmentAny(classifier.SlotShield, rs...)...,
		),
		Count: 2,
	}
}

// gearSlots builds the full rare set: weapon slot first, then armour and jewellery.
func gearSlots(rs []item.Rarity, weapon Slot) []Slot {
	return []Slot{
		weapon,
		{Name: "helmet", Accept: classifier.EquipmentAny(classifier.SlotHelmet, rs...), Count: 1},
		{Name: "body", Accept: classifier.EquipmentAny(classifier.SlotBodyArmour, rs...), Count: 1},
		{Name: "gloves", Accept: classifier.EquipmentAny(classifier.SlotGloves, rs...), Count: 1},
		{Name: "boots", Accept: classifier.EquipmentAny(classifier.SlotBoots, rs...), Count: 1},
		{Name: "belt", Accept: classifier.EquipmentAny(classifier.SlotBelt, rs...), Count: 1},
		{Name: "amulet", Accept: classifier.EquipmentAny(classifier.SlotAmulet, rs...), Count: 1},
		{Name: "rings", Accept: classifier.EquipmentAny(classifier.SlotRing, rs...), Count: 2},
	}
}
