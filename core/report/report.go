package report

import (
	"sort"

	"stash-recipes/core/classifier"
	"stash-recipes/core/item"
	"stash-recipes/core/partition"
	"stash-recipes/core/recipe"
)

// ItemRef is the presentation view of one item.
type ItemRef struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	BaseType  string `json:"base_type,omitempty" yaml:"base_type,omitempty"`
	Rarity    string `json:"rarity,omitempty" yaml:"rarity,omitempty"`
	Class     string `json:"class,omitempty" yaml:"class,omitempty"`
	ItemLevel int    `json:"item_level" yaml:"item_level"`
	Quality   int    `json:"quality,omitempty" yaml:"quality,omitempty"`
	Position  string `json:"position" yaml:"position"`
}

// Set is one matched recipe set.
type Set struct {
	RecipeID string    `json:"recipe_id" yaml:"recipe_id"`
	Recipe   string    `json:"recipe" yaml:"recipe"`
	Reward   string    `json:"reward" yaml:"reward"`
	Items    []ItemRef `json:"items" yaml:"items"`
}

// RecipeSummary is the set count of one recipe, in priority order.
type RecipeSummary struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Reward string `json:"reward" yaml:"reward"`
	Sets   int    `json:"sets" yaml:"sets"`
}

// BandCount counts rare gear per item level band.
type BandCount struct {
	Chaos int `json:"chaos" yaml:"chaos"`
	Regal int `json:"regal" yaml:"regal"`
}

// Report is the aggregated match outcome.
type Report struct {
	// Fingerprint identifies the snapshot the report was built from. Set by callers.
	Fingerprint string `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`

	SetCounts      map[string]int                `json:"set_counts" yaml:"set_counts"`
	Recipes        []RecipeSummary               `json:"recipes" yaml:"recipes"`
	TotalSets      int                           `json:"total_sets" yaml:"total_sets"`
	Sets           []Set                         `json:"sets" yaml:"sets"`
	CategoryCounts map[classifier.Category]int   `json:"category_counts" yaml:"category_counts"`
	ItemLevelBands map[classifier.Slot]BandCount `json:"item_level_bands" yaml:"item_level_bands"`
	Leftovers      []ItemRef                     `json:"leftovers" yaml:"leftovers"`
	Warnings       []partition.Warning           `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Build aggregates a match result. Every recipe of defs appears in SetCounts, with zero
// when nothing matched.
func Build(res *partition.MatchResult, defs []recipe.Definition) *Report {
	r := &Report{
		SetCounts:      make(map[string]int, len(defs)),
		Recipes:        make([]RecipeSummary, 0, len(defs)),
		Sets:           make([]Set, 0),
		CategoryCounts: make(map[classifier.Category]int),
		ItemLevelBands: make(map[classifier.Slot]BandCount),
		Leftovers:      make([]ItemRef, 0),
	}
	if res == nil {
		for _, d := range defs {
			r.SetCounts[d.Name] = 0
			r.Recipes = append(r.Recipes, RecipeSummary{ID: d.ID, Name: d.Name, Reward: d.Reward})
		}
		return r
	}

	perRecipe := make(map[string]int, len(defs))
	for _, s := range res.Sets {
		perRecipe[s.RecipeID]++
		set := Set{
			RecipeID: s.RecipeID,
			Recipe:   s.Recipe,
			Reward:   s.Reward,
			Items:    make([]ItemRef, 0, len(s.Items)),
		}
		for _, it := range s.Items {
			set.Items = append(set.Items, Ref(it))
			countBand(r.ItemLevelBands, it)
		}
		r.Sets = append(r.Sets, set)
	}
	r.TotalSets = len(res.Sets)

	for _, d := range defs {
		n := perRecipe[d.ID]
		r.SetCounts[d.Name] += n
		r.Recipes = append(r.Recipes, RecipeSummary{ID: d.ID, Name: d.Name, Reward: d.Reward, Sets: n})
	}

	for _, it := range res.Leftovers {
		r.Leftovers = append(r.Leftovers, Ref(it))
		countBand(r.ItemLevelBands, it)
	}

	for c, n := range res.CategoryCounts {
		r.CategoryCounts[c] = n
	}
	if len(res.Warnings) > 0 {
		r.Warnings = append([]partition.Warning(nil), res.Warnings...)
	}
	return r
}

// Ref converts an item to its presentation view.
func Ref(it item.Item) ItemRef {
	return ItemRef{
		ID:        it.ID,
		Name:      it.Name,
		BaseType:  it.BaseType,
		Rarity:    string(it.Rarity),
		Class:     string(it.Class),
		ItemLevel: it.ItemLevel,
		Quality:   it.Quality,
		Position:  it.Position.String(),
	}
}

func countBand(bands map[classifier.Slot]BandCount, it item.Item) {
	slot, ok := classifier.SlotOf(it.Class)
	if !ok {
		return
	}
	b := bands[slot]
	switch classifier.ItemLevelBand(it) {
	case classifier.BandChaos:
		b.Chaos++
	case classifier.BandRegal:
		b.Regal++
	default:
		return
	}
	bands[slot] = b
}

// Empty reports whether no set was found. This is a normal state, not an error.
func (r *Report) Empty() bool {
	return r.TotalSets == 0
}

// Categories returns the inventory categories sorted by name.
func (r *Report) Categories() []classifier.Category {
	out := make([]classifier.Category, 0, len(r.CategoryCounts))
	for c := range r.CategoryCounts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
