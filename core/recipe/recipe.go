package recipe

import (
	"errors"
	"fmt"

	"stash-recipes/core/classifier"
	"stash-recipes/core/item"
)

// ErrUnknownCategory is wrapped by Validate when a slot names a category outside the
// classifier vocabulary.
var ErrUnknownCategory = errors.New("unknown category")

// Definition is a vendor recipe.
type Definition struct {
	// ID is the stable machine name (e.g. "chaos-two-hand").
	ID string `json:"id" yaml:"id"`
	// Name is the display name used to group report counts.
	Name string `json:"name" yaml:"name"`
	// Reward describes what the vendor pays for one set.
	Reward string `json:"reward" yaml:"reward"`
	// Slots are filled in order.
	Slots []Slot `json:"slots" yaml:"slots"`
	// Requirements constrain every set of this recipe.
	Requirements Requirements `json:"requirements" yaml:"requirements"`
}

// Slot is one required position of a recipe.
type Slot struct {
	// Name labels the slot in reports and errors.
	Name string `json:"name" yaml:"name"`
	// Accept lists the categories that can fill the slot.
	Accept []classifier.Category `json:"accept" yaml:"accept"`
	// Count is the number of items the slot needs.
	Count int `json:"count" yaml:"count"`
	// FillToQuality, when positive, makes the slot keep taking items past Count
	// until their summed quality reaches it.
	FillToQuality int `json:"fill_to_quality,omitempty" yaml:"fill_to_quality,omitempty"`
}

// Requirements are cross-slot constraints.
type Requirements struct {
	// Unidentified requires every item to be unidentified.
	Unidentified bool `json:"unidentified,omitempty" yaml:"unidentified,omitempty"`
	// MinItemLevel is the lowest item level any item may have.
	MinItemLevel int `json:"min_item_level,omitempty" yaml:"min_item_level,omitempty"`
	// MaxItemLevel is the highest item level any item may have. Zero means unbounded.
	MaxItemLevel int `json:"max_item_level,omitempty" yaml:"max_item_level,omitempty"`
	// MaxRarity caps item rarity. Empty means any rarity.
	MaxRarity item.Rarity `json:"max_rarity,omitempty" yaml:"max_rarity,omitempty"`
	// AnyBelowItemLevel, when positive, needs at least one item of the set below it.
	AnyBelowItemLevel int `json:"any_below_item_level,omitempty" yaml:"any_below_item_level,omitempty"`
}

// Size returns the minimum number of items a set of this recipe consumes.
func (d Definition) Size() int {
	n := 0
	for _, s := range d.Slots {
		n += s.Count
	}
	return n
}

// Admits reports whether a single item satisfies the per-item requirements.
// Slot categories are checked separately.
func (d Definition) Admits(it item.Item, c classifier.Classification) bool {
	if c.Tags.Has(classifier.TagCorrupted) || it.Corrupted {
		return false
	}
	r := d.Requirements
	if r.Unidentified && it.Identified {
		return false
	}
	if it.ItemLevel < r.MinItemLevel {
		return false
	}
	if r.MaxItemLevel > 0 && it.ItemLevel > r.MaxItemLevel {
		return false
	}
	if r.MaxRarity != "" && it.Rarity.Rank() > r.MaxRarity.Rank() {
		return false
	}
	return true
}

// SetSatisfied checks the set-level requirements against a complete candidate set.
func (d Definition) SetSatisfied(items []item.Item) bool {
	if limit := d.Requirements.AnyBelowItemLevel; limit > 0 {
		for _, it := range items {
			if it.ItemLevel < limit {
				return true
			}
		}
		return false
	}
	return true
}

// Validate checks a rule set for structural errors: duplicate ids, empty slot lists,
// non-positive counts and categories outside the classifier vocabulary.
func Validate(defs []Definition) error {
	seen := make(map[string]struct{}, len(defs))
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("recipe %q: missing id", d.Name)
		}
		if _, dup := seen[d.ID]; dup {
			return fmt.Errorf("recipe %s: duplicate id", d.ID)
		}
		seen[d.ID] = struct{}{}

		if len(d.Slots) == 0 {
			return fmt.Errorf("recipe %s: no slots", d.ID)
		}
		for _, s := range d.Slots {
			if s.Count <= 0 {
				return fmt.Errorf("recipe %s slot %s: count must be positive", d.ID, s.Name)
			}
			if len(s.Accept) == 0 {
				return fmt.Errorf("recipe %s slot %s: accepts nothing", d.ID, s.Name)
			}
			for _, c := range s.Accept {
				if !classifier.Known(c) || c == classifier.Unclassified {
					return fmt.Errorf("recipe %s slot %s: %w %q", d.ID, s.Name, ErrUnknownCategory, c)
				}
			}
		}
	}
	return nil
}

// Find returns the definition with the given id.
func Find(defs []Definition, id string) (Definition, bool) {
	for _, d := range defs {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}
