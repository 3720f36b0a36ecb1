package partition

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"stash-recipes/core/classifier"
	"stash-recipes/core/item"
	"stash-recipes/core/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gear(id string, class item.Class, rarity item.Rarity, ilvl int, x int) item.Item {
	return item.Item{
		ID:        id,
		Position:  item.Position{X: x, W: 1, H: 1},
		BaseType:  string(class),
		Rarity:    rarity,
		Class:     class,
		ItemLevel: ilvl,
	}
}

func unidentifiedSet(prefix string, ilvl int) []item.Item {
	classes := []item.Class{
		item.ClassOneHandWeapon, item.ClassShield, item.ClassHelmet,
		item.ClassBodyArmour, item.ClassGloves, item.ClassBoots,
	}
	out := make([]item.Item, 0, len(classes))
	for i, c := range classes {
		out = append(out, gear(fmt.Sprintf("%s%d", prefix, i), c, item.RarityNormal, ilvl, i))
	}
	return out
}

func rareSet(prefix string, ilvl int) []item.Item {
	classes := []item.Class{
		item.ClassOneHandWeapon, item.ClassOneHandWeapon, item.ClassHelmet, item.ClassBodyArmour,
		item.ClassGloves, item.ClassBoots, item.ClassBelt, item.ClassAmulet, item.ClassRing, item.ClassRing,
	}
	out := make([]item.Item, 0, len(classes))
	for i, c := range classes {
		it := gear(fmt.Sprintf("%s%d", prefix, i), c, item.RarityRare, ilvl, i)
		it.Identified = true
		out = append(out, it)
	}
	return out
}

func ids(items []item.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

// compositions returns every set as "recipe:sorted ids", sorted.
func compositions(r *MatchResult) []string {
	out := make([]string, 0, len(r.Sets))
	for _, s := range r.Sets {
		members := ids(s.Items)
		sort.Strings(members)
		out = append(out, s.RecipeID+":"+strings.Join(members, ","))
	}
	sort.Strings(out)
	return out
}

func countSets(r *MatchResult) map[string]int {
	out := make(map[string]int)
	for _, s := range r.Sets {
		out[s.RecipeID]++
	}
	return out
}

func assertPartition(t *testing.T, input []item.Item, r *MatchResult) {
	t.Helper()
	seen := make(map[string]int)
	for _, s := range r.Sets {
		for _, it := range s.Items {
			seen[it.ID]++
		}
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "item %s in more than one set", id)
	}
	total := len(r.Leftovers)
	for _, s := range r.Sets {
		total += len(s.Items)
	}
	assert.Equal(t, len(input), total)
}

func TestMatch_Scenarios(t *testing.T) {
	sixLink := item.Item{
		ID: "sl", Rarity: item.RarityRare, Class: item.ClassBodyArmour, Identified: true, ItemLevel: 84,
		BaseType: "Astral Plate",
	}
	for _, c := range []item.Colour{"R", "G", "B", "R", "R", "R"} {
		sixLink.Sockets = append(sixLink.Sockets, item.Socket{Group: 0, Colour: c})
	}

	var boots []item.Item
	for i := 0; i < 20; i++ {
		boots = append(boots, gear(fmt.Sprintf("b%02d", i), item.ClassBoots, item.RarityNormal, 12, i))
	}

	ring := gear("ring", item.ClassRing, item.RarityNormal, 70, 20)

	tests := []struct {
		name      string
		items     []item.Item
		sets      map[string]int
		setSize   int
		leftovers int
	}{
		{
			name:      "FullUnidentifiedSet",
			items:     unidentifiedSet("u", 65),
			sets:      map[string]int{recipe.ChaosUnidentified: 1},
			setSize:   6,
			leftovers: 0,
		},
		{
			name:      "SixLinkAlone",
			items:     []item.Item{sixLink},
			sets:      map[string]int{recipe.SixLink: 1},
			setSize:   1,
			leftovers: 0,
		},
		{
			name:      "DuplicateBoots",
			items:     boots,
			sets:      map[string]int{},
			leftovers: 20,
		},
		{
			name:      "SetPlusRing",
			items:     append(unidentifiedSet("u", 65), ring),
			sets:      map[string]int{recipe.ChaosUnidentified: 1},
			setSize:   6,
			leftovers: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Match(tt.items, recipe.All())
			require.NoError(t, err)
			assert.Equal(t, tt.sets, countSets(r))
			assert.Len(t, r.Leftovers, tt.leftovers)
			for _, s := range r.Sets {
				assert.Len(t, s.Items, tt.setSize)
			}
			assert.Empty(t, r.Warnings)
			assertPartition(t, tt.items, r)
		})
	}

	r, err := Match(append(unidentifiedSet("u", 65), ring), recipe.All())
	require.NoError(t, err)
	assert.Equal(t, []string{"ring"}, ids(r.Leftovers))
	assert.Equal(t, "Chaos Orb via full unidentified set", r.Sets[0].Recipe)
}

func TestMatch_RareSets(t *testing.T) {
	t.Run("ChaosTier", func(t *testing.T) {
		r, err := Match(rareSet("c", 70), recipe.All())
		require.NoError(t, err)
		assert.Equal(t, map[string]int{recipe.ChaosOneHand: 1}, countSets(r))
		assert.Len(t, r.Sets[0].Items, 10)
	})

	t.Run("RegalTier", func(t *testing.T) {
		r, err := Match(rareSet("r", 80), recipe.All())
		require.NoError(t, err)
		assert.Equal(t, map[string]int{recipe.RegalOneHand: 1}, countSets(r))
	})

	t.Run("MixedTierIsChaos", func(t *testing.T) {
		items := rareSet("m", 80)
		items[3].ItemLevel = 62
		r, err := Match(items, recipe.All())
		require.NoError(t, err)
		assert.Equal(t, map[string]int{recipe.ChaosOneHand: 1}, countSets(r))
	})

	t.Run("TwoHandVariant", func(t *testing.T) {
		items := rareSet("t", 70)
		items[0].Class = item.ClassTwoHandWeapon
		items = append(items[:1], items[2:]...)
		r, err := Match(items, recipe.All())
		require.NoError(t, err)
		assert.Equal(t, map[string]int{recipe.ChaosTwoHand: 1}, countSets(r))
		assert.Len(t, r.Sets[0].Items, 9)
	})

	t.Run("MissingRing", func(t *testing.T) {
		items := rareSet("x", 70)[:9]
		r, err := Match(items, recipe.All())
		require.NoError(t, err)
		assert.Empty(t, r.Sets)
		assert.Len(t, r.Leftovers, 9)
	})
}

// claims maps every set member to the recipe that claimed it.
func claims(r *MatchResult) map[string]string {
	out := make(map[string]string)
	for _, s := range r.Sets {
		for _, it := range s.Items {
			out[it.ID] = s.RecipeID
		}
	}
	return out
}

func withSockets(it item.Item, groups []int, colours ...item.Colour) item.Item {
	it.Sockets = nil
	for i, c := range colours {
		it.Sockets = append(it.Sockets, item.Socket{Group: groups[i], Colour: c})
	}
	return it
}

func TestMatch_Contention(t *testing.T) {
	linked := []int{0, 0, 0, 0, 0, 0}
	apart := []int{0, 1, 2, 3, 4, 5}

	rgbHelmet := rareSet("c", 70)
	rgbHelmet[2] = withSockets(rgbHelmet[2], linked[:3], "R", "G", "B")

	rgbBody := unidentifiedSet("u", 65)
	rgbBody[3] = withSockets(rgbBody[3], linked[:3], "R", "G", "B")

	sixSocketChest := rareSet("c", 70)
	sixSocketChest[3] = withSockets(sixSocketChest[3], apart, "R", "R", "R", "R", "R", "R")

	lonelyChest := rareSet("c", 70)[:9]
	lonelyChest[3] = withSockets(lonelyChest[3], apart, "R", "R", "R", "R", "R", "R")

	sixLinkChest := rareSet("c", 70)
	sixLinkChest[3] = withSockets(sixLinkChest[3], linked, "R", "G", "B", "R", "R", "R")

	unidRares := rareSet("u", 70)
	unidRares[1].Class = item.ClassShield
	for i := range unidRares {
		unidRares[i].Identified = false
	}

	regalSpare := rareSet("r", 80)
	for _, it := range rareSet("c", 70) {
		if it.Class != item.ClassAmulet {
			regalSpare = append(regalSpare, it)
		}
	}
	regalSpare = append(regalSpare, gear("x", item.ClassAmulet, item.RarityRare, 82, 20))

	tests := []struct {
		name      string
		items     []item.Item
		sets      map[string]int
		claimedBy map[string]string
		leftovers int
	}{
		{
			name:      "RGBPieceStaysInRareSet",
			items:     rgbHelmet,
			sets:      map[string]int{recipe.ChaosOneHand: 1},
			claimedBy: map[string]string{"c2": recipe.ChaosOneHand},
		},
		{
			name:      "RGBPieceStaysInUnidentifiedSet",
			items:     rgbBody,
			sets:      map[string]int{recipe.ChaosUnidentified: 1},
			claimedBy: map[string]string{"u3": recipe.ChaosUnidentified},
		},
		{
			name:      "RGBPieceAlone",
			items:     rgbHelmet[2:3],
			sets:      map[string]int{recipe.Chromatic: 1},
			claimedBy: map[string]string{"c2": recipe.Chromatic},
		},
		{
			name:      "SixSocketChestInRareSet",
			items:     sixSocketChest,
			sets:      map[string]int{recipe.ChaosOneHand: 1},
			claimedBy: map[string]string{"c3": recipe.ChaosOneHand},
		},
		{
			name:      "SixSocketChestWithoutSet",
			items:     lonelyChest,
			sets:      map[string]int{recipe.SixSocket: 1},
			claimedBy: map[string]string{"c3": recipe.SixSocket},
			leftovers: 8,
		},
		{
			name:      "SixLinkBeatsRareSet",
			items:     sixLinkChest,
			sets:      map[string]int{recipe.SixLink: 1},
			claimedBy: map[string]string{"c3": recipe.SixLink},
			leftovers: 9,
		},
		{
			name:  "UnidentifiedRaresPreferUnidentifiedRecipe",
			items: unidRares,
			sets:  map[string]int{recipe.ChaosUnidentified: 1},
			claimedBy: map[string]string{
				"u0": recipe.ChaosUnidentified,
				"u1": recipe.ChaosUnidentified,
				"u5": recipe.ChaosUnidentified,
			},
			leftovers: 4,
		},
		{
			name:  "RegalTierSpareCompletesChaosSet",
			items: regalSpare,
			sets:  map[string]int{recipe.RegalOneHand: 1, recipe.ChaosOneHand: 1},
			claimedBy: map[string]string{
				"r7": recipe.RegalOneHand,
				"x":  recipe.ChaosOneHand,
				"c0": recipe.ChaosOneHand,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Match(tt.items, recipe.All())
			require.NoError(t, err)
			assert.Equal(t, tt.sets, countSets(r))
			got := claims(r)
			for id, want := range tt.claimedBy {
				assert.Equal(t, want, got[id], "item %s", id)
			}
			assert.Len(t, r.Leftovers, tt.leftovers)
			assertPartition(t, tt.items, r)
		})
	}
}

func TestMatch_Repeats(t *testing.T) {
	items := append(unidentifiedSet("a", 65), unidentifiedSet("b", 70)...)
	items = append(items, unidentifiedSet("c", 61)[:5]...)

	r, err := Match(items, recipe.All())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{recipe.ChaosUnidentified: 2}, countSets(r))
	assert.Len(t, r.Leftovers, 5)
	assertPartition(t, items, r)

	// Lowest item level is preferred, so the incomplete c-set donates its pieces first.
	for _, it := range r.Sets[0].Items {
		assert.True(t, strings.HasPrefix(it.ID, "c") || it.ID == "a5", "unexpected %s", it.ID)
	}
}

func TestMatch_QualityFill(t *testing.T) {
	gem := func(id string, q, x int) item.Item {
		return item.Item{ID: id, Rarity: item.RarityNormal, Class: item.ClassGem, Identified: true, Quality: q, Position: item.Position{X: x}}
	}
	items := []item.Item{gem("g1", 10, 0), gem("g2", 5, 1), gem("g3", 8, 2), gem("g4", 1, 3)}

	r, err := Match(items, recipe.All())
	require.NoError(t, err)
	require.Len(t, r.Sets, 1)
	assert.Equal(t, recipe.Gemcutter, r.Sets[0].RecipeID)
	assert.Equal(t, []string{"g1", "g2", "g3"}, ids(r.Sets[0].Items))
	assert.Equal(t, []string{"g4"}, ids(r.Leftovers))
}

func TestMatch_Maps(t *testing.T) {
	m := func(id string, tier int) item.Item {
		return item.Item{ID: id, Rarity: item.RarityNormal, Class: item.ClassMap, Identified: true, MapTier: tier}
	}
	items := []item.Item{m("w1", 1), m("w2", 3), m("w3", 5), m("y1", 6), m("y2", 9), m("r1", 14)}

	r, err := Match(items, recipe.All())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{recipe.MapWhite: 1}, countSets(r))
	assert.ElementsMatch(t, []string{"y1", "y2", "r1"}, ids(r.Leftovers))
}

func TestMatch_Determinism(t *testing.T) {
	items := append(rareSet("r", 72), unidentifiedSet("u", 66)...)
	items = append(items, rareSet("s", 78)...)

	first, err := Match(items, recipe.All())
	require.NoError(t, err)
	second, err := Match(items, recipe.All())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMatch_OrderIndependence(t *testing.T) {
	items := append(rareSet("r", 72), unidentifiedSet("u", 66)...)
	items = append(items, rareSet("s", 78)...)
	items = append(items, unidentifiedSet("v", 60)[:4]...)

	base, err := Match(items, recipe.All())
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := make([]item.Item, len(items))
		copy(shuffled, items)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := Match(shuffled, recipe.All())
		require.NoError(t, err)
		assert.Equal(t, compositions(base), compositions(got))
		assert.Equal(t, ids(base.Leftovers), ids(got.Leftovers))
	}
}

func TestMatch_NoOpItem(t *testing.T) {
	items := append(rareSet("r", 72), unidentifiedSet("u", 66)...)
	before, err := Match(items, recipe.All())
	require.NoError(t, err)

	currency := item.Item{ID: "cur", Rarity: item.RarityNormal, Class: item.ClassCurrency, Identified: true, StackSize: 20}
	after, err := Match(append(items, currency), recipe.All())
	require.NoError(t, err)

	assert.Equal(t, countSets(before), countSets(after))
	assert.Len(t, after.Leftovers, len(before.Leftovers)+1)
}

func TestMatch_NoRecipes(t *testing.T) {
	items := unidentifiedSet("u", 65)
	r, err := Match(items, nil)
	require.NoError(t, err)
	assert.Empty(t, r.Sets)
	assert.Len(t, r.Leftovers, 6)
}

func TestMatch_MalformedAndDuplicates(t *testing.T) {
	items := unidentifiedSet("u", 65)
	items = append(items,
		item.Item{ID: "bad", Class: item.ClassRing},
		gear("u0", item.ClassRing, item.RarityMagic, 70, 30),
	)

	r, err := Match(items, recipe.All())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{recipe.ChaosUnidentified: 1}, countSets(r))
	require.Len(t, r.Warnings, 2)
	reasons := map[string]string{}
	for _, w := range r.Warnings {
		reasons[w.ItemID] = w.Reason
	}
	assert.Contains(t, reasons["bad"], "missing rarity")
	assert.Equal(t, "duplicate item id", reasons["u0"])
	assert.Len(t, r.Leftovers, 2)
	assertPartition(t, items, r)
}

func TestMatch_CorruptedIsLeftover(t *testing.T) {
	items := unidentifiedSet("u", 65)
	items[2].Corrupted = true

	r, err := Match(items, recipe.All())
	require.NoError(t, err)
	assert.Empty(t, r.Sets)
	assert.Len(t, r.Leftovers, 6)
}

func TestMatch_InputNotMutated(t *testing.T) {
	items := append(rareSet("r", 72), unidentifiedSet("u", 66)...)
	snapshot := make([]item.Item, len(items))
	copy(snapshot, items)

	_, err := Match(items, recipe.All())
	require.NoError(t, err)
	assert.Equal(t, snapshot, items)
}

func TestMatch_CategoryCounts(t *testing.T) {
	items := append(unidentifiedSet("u", 65),
		item.Item{ID: "cur", Rarity: item.RarityNormal, Class: item.ClassCurrency, Identified: true},
		item.Item{ID: "bad"},
	)
	r, err := Match(items, recipe.All())
	require.NoError(t, err)
	assert.Equal(t, 1, r.CategoryCounts["NormalWeapon1H"])
	assert.Equal(t, 1, r.CategoryCounts["NormalBoots"])
	assert.Equal(t, 2, r.CategoryCounts[classifier.Unclassified])
}

func TestMatch_InvalidRecipes(t *testing.T) {
	defs := []recipe.Definition{{
		ID:    "broken",
		Slots: []recipe.Slot{{Name: "s", Accept: []classifier.Category{"NotACategory"}, Count: 1}},
	}}
	_, err := Match(unidentifiedSet("u", 65), defs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvariant))
}

func TestVerify_DoubleClaim(t *testing.T) {
	def := &recipe.Definition{ID: "d", Slots: []recipe.Slot{{Name: "s", Accept: []classifier.Category{"NormalBoots"}, Count: 1}}}
	it := gear("b", item.ClassBoots, item.RarityNormal, 10, 0)
	pool := []entry{{item: it, class: classifier.Classify(it)}}
	sets := []assembled{
		{def: def, picks: []int{0}, slotOf: []int{0}},
		{def: def, picks: []int{0}, slotOf: []int{0}},
	}
	err := verify(pool, []bool{true}, sets)
	assert.ErrorIs(t, err, ErrInvariant)
	assert.ErrorContains(t, err, "claimed by 2 sets")
}
