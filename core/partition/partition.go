package partition

import (
	"errors"
	"fmt"
	"sort"

	"stash-recipes/core/classifier"
	"stash-recipes/core/item"
	"stash-recipes/core/recipe"
)

// ErrInvariant is returned when the matcher detects an internal inconsistency.
var ErrInvariant = errors.New("partition invariant violated")

// Warning is a non-fatal anomaly found in the input.
type Warning struct {
	ItemID string `json:"item_id" yaml:"item_id"`
	Reason string `json:"reason" yaml:"reason"`
}

// RecipeSet is one complete set of a recipe.
type RecipeSet struct {
	RecipeID string      `json:"recipe_id"`
	Recipe   string      `json:"recipe"`
	Reward   string      `json:"reward"`
	Items    []item.Item `json:"items"`
}

// MatchResult is the output of Match.
type MatchResult struct {
	// Sets in recipe priority order, then in assembly order.
	Sets []RecipeSet `json:"sets"`
	// Leftovers are the items no set consumed, in tie-break order.
	Leftovers []item.Item `json:"leftovers"`
	// CategoryCounts counts every input item under each of its candidate categories.
	// Items without any category are counted as classifier.Unclassified.
	CategoryCounts map[classifier.Category]int `json:"category_counts"`
	// Warnings lists excluded input records.
	Warnings []Warning `json:"warnings,omitempty"`
}

// entry is a pool member: a valid item with its classification.
type entry struct {
	item  item.Item
	class classifier.Classification
}

// assembled is one set as indexes into the pool.
type assembled struct {
	def   *recipe.Definition
	picks []int
	// slotOf[i] is the slot index that picks[i] filled.
	slotOf []int
}

// Match partitions items into recipe sets and leftovers.
func Match(items []item.Item, recipes []recipe.Definition) (*MatchResult, error) {
	if err := recipe.Validate(recipes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvariant, err)
	}

	// Sort a copy first so duplicate resolution does not depend on input order.
	sorted := make([]item.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return item.Less(sorted[i], sorted[j])
	})

	result := &MatchResult{
		CategoryCounts: make(map[classifier.Category]int),
	}

	var (
		pool     []entry
		excluded []item.Item
		seen     = make(map[string]struct{}, len(sorted))
	)
	for _, it := range sorted {
		if err := it.Validate(); err != nil {
			result.Warnings = append(result.Warnings, Warning{ItemID: it.ID, Reason: err.Error()})
			result.CategoryCounts[classifier.Unclassified]++
			excluded = append(excluded, it)
			continue
		}
		if _, dup := seen[it.ID]; dup {
			result.Warnings = append(result.Warnings, Warning{ItemID: it.ID, Reason: "duplicate item id"})
			result.CategoryCounts[classifier.Unclassified]++
			excluded = append(excluded, it)
			continue
		}
		seen[it.ID] = struct{}{}

		c := classifier.Classify(it)
		for _, cat := range c.Categories {
			if !classifier.Known(cat) || cat == classifier.Unclassified {
				return nil, fmt.Errorf("%w: item %s classified as unknown category %q", ErrInvariant, it.ID, cat)
			}
			result.CategoryCounts[cat]++
		}
		if len(c.Categories) == 0 {
			result.CategoryCounts[classifier.Unclassified]++
		}
		pool = append(pool, entry{item: it, class: c})
	}

	claimed := make([]bool, len(pool))
	var sets []assembled
	for i := range recipes {
		def := &recipes[i]
		for {
			set, ok := assemble(def, pool, claimed)
			if !ok {
				break
			}
			for _, p := range set.picks {
				claimed[p] = true
			}
			sets = append(sets, set)
		}
	}

	if err := verify(pool, claimed, sets); err != nil {
		return nil, err
	}

	for _, s := range sets {
		rs := RecipeSet{
			RecipeID: s.def.ID,
			Recipe:   s.def.Name,
			Reward:   s.def.Reward,
			Items:    make([]item.Item, 0, len(s.picks)),
		}
		for _, p := range s.picks {
			rs.Items = append(rs.Items, pool[p].item)
		}
		result.Sets = append(result.Sets, rs)
	}

	// Merge unclaimed pool items and excluded records, both already in tie-break order.
	result.Leftovers = make([]item.Item, 0, len(pool)-countTrue(claimed)+len(excluded))
	for i, e := range pool {
		if !claimed[i] {
			result.Leftovers = append(result.Leftovers, e.item)
		}
	}
	result.Leftovers = append(result.Leftovers, excluded...)
	sort.SliceStable(result.Leftovers, func(i, j int) bool {
		return item.Less(result.Leftovers[i], result.Leftovers[j])
	})

	return result, nil
}

// assemble tries to build one set of def from unclaimed pool entries.
// Nothing is claimed here; the caller commits a successful set.
func assemble(def *recipe.Definition, pool []entry, claimed []bool) (assembled, bool) {
	set := assembled{def: def}
	taken := make(map[int]struct{}, def.Size())

	for si, slot := range def.Slots {
		n, quality := 0, 0
		for i := range pool {
			if claimed[i] {
				continue
			}
			if _, ok := taken[i]; ok {
				continue
			}
			e := &pool[i]
			if !e.class.Matches(slot.Accept) || !def.Admits(e.item, e.class) {
				continue
			}
			taken[i] = struct{}{}
			set.picks = append(set.picks, i)
			set.slotOf = append(set.slotOf, si)
			n++
			quality += e.item.Quality
			if slotFilled(slot, n, quality) {
				break
			}
		}
		if !slotFilled(slot, n, quality) {
			return assembled{}, false
		}
	}

	members := make([]item.Item, len(set.picks))
	for i, p := range set.picks {
		members[i] = pool[p].item
	}
	if !def.SetSatisfied(members) {
		return assembled{}, false
	}
	return set, true
}

func slotFilled(s recipe.Slot, n, quality int) bool {
	if n < s.Count {
		return false
	}
	return s.FillToQuality <= 0 || quality >= s.FillToQuality
}

// verify re-checks disjointness and per-item slot satisfaction of the committed sets.
func verify(pool []entry, claimed []bool, sets []assembled) error {
	uses := make([]int, len(pool))
	for _, s := range sets {
		for k, p := range s.picks {
			uses[p]++
			slot := s.def.Slots[s.slotOf[k]]
			e := pool[p]
			if !e.class.Matches(slot.Accept) || !s.def.Admits(e.item, e.class) {
				return fmt.Errorf("%w: item %s does not satisfy slot %s of %s", ErrInvariant, e.item.ID, slot.Name, s.def.ID)
			}
		}
	}
	for i, n := range uses {
		if n > 1 {
			return fmt.Errorf("%w: item %s claimed by %d sets", ErrInvariant, pool[i].item.ID, n)
		}
		if (n == 1) != claimed[i] {
			return fmt.Errorf("%w: item %s claim state out of sync", ErrInvariant, pool[i].item.ID)
		}
	}
	return nil
}

func countTrue(bs []bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}
