package report

import (
	"encoding/json"
	"fmt"
	"testing"

	"stash-recipes/core/classifier"
	"stash-recipes/core/item"
	"stash-recipes/core/partition"
	"stash-recipes/core/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inventory() []item.Item {
	classes := []item.Class{
		item.ClassOneHandWeapon, item.ClassShield, item.ClassHelmet,
		item.ClassBodyArmour, item.ClassGloves, item.ClassBoots,
	}
	var out []item.Item
	for i, c := range classes {
		out = append(out, item.Item{
			ID: fmt.Sprintf("u%d", i), Rarity: item.RarityNormal, Class: c, ItemLevel: 66,
			Position: item.Position{X: i},
		})
	}
	out = append(out,
		item.Item{ID: "r1", Rarity: item.RarityRare, Class: item.ClassRing, Identified: true, ItemLevel: 70, Position: item.Position{X: 8}},
		item.Item{ID: "r2", Rarity: item.RarityRare, Class: item.ClassRing, Identified: true, ItemLevel: 80, Position: item.Position{X: 9}},
		item.Item{ID: "cur", Rarity: item.RarityNormal, Class: item.ClassCurrency, Identified: true, StackSize: 5},
		item.Item{ID: "bad", Class: item.ClassBelt},
	)
	return out
}

func build(t *testing.T, items []item.Item) *Report {
	t.Helper()
	defs := recipe.All()
	res, err := partition.Match(items, defs)
	require.NoError(t, err)
	return Build(res, defs)
}

func TestBuild(t *testing.T) {
	r := build(t, inventory())

	assert.Equal(t, 1, r.TotalSets)
	assert.False(t, r.Empty())
	assert.Len(t, r.SetCounts, len(recipe.All()))
	assert.Equal(t, 1, r.SetCounts["Chaos Orb via full unidentified set"])
	assert.Equal(t, 0, r.SetCounts["6-link"])

	require.Len(t, r.Recipes, len(recipe.All()))
	assert.Equal(t, recipe.SixLink, r.Recipes[0].ID)
	for _, s := range r.Recipes {
		if s.ID == recipe.ChaosUnidentified {
			assert.Equal(t, 1, s.Sets)
			assert.Equal(t, "2 Chaos Orbs", s.Reward)
		}
	}

	require.Len(t, r.Sets, 1)
	assert.Equal(t, recipe.ChaosUnidentified, r.Sets[0].RecipeID)
	assert.Len(t, r.Sets[0].Items, 6)
	assert.Equal(t, "0:0,0", r.Sets[0].Items[0].Position)

	assert.Len(t, r.Leftovers, 4)
	assert.Equal(t, 2, r.CategoryCounts["RareRing"])
	assert.Equal(t, 2, r.CategoryCounts[classifier.Unclassified])

	assert.Equal(t, BandCount{Chaos: 1, Regal: 1}, r.ItemLevelBands[classifier.SlotRing])
	_, ok := r.ItemLevelBands[classifier.SlotBoots]
	assert.False(t, ok, "normal boots have no rare band")

	require.Len(t, r.Warnings, 1)
	assert.Equal(t, "bad", r.Warnings[0].ItemID)
}

func TestBuild_Empty(t *testing.T) {
	r := build(t, nil)
	assert.True(t, r.Empty())
	assert.Len(t, r.SetCounts, len(recipe.All()))
	assert.NotNil(t, r.Sets)
	assert.NotNil(t, r.Leftovers)

	nilRes := Build(nil, recipe.All())
	assert.True(t, nilRes.Empty())
	assert.Len(t, nilRes.Recipes, len(recipe.All()))
}

func TestBuild_ByteIdentical(t *testing.T) {
	items := inventory()
	first, err := json.Marshal(build(t, items))
	require.NoError(t, err)
	second, err := json.Marshal(build(t, items))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestBuild_DoesNotAliasResult(t *testing.T) {
	defs := recipe.All()
	res, err := partition.Match(inventory(), defs)
	require.NoError(t, err)
	r := Build(res, defs)

	res.CategoryCounts["RareRing"] = 99
	res.Warnings[0].Reason = "changed"
	assert.Equal(t, 2, r.CategoryCounts["RareRing"])
	assert.NotEqual(t, "changed", r.Warnings[0].Reason)
}

func TestReport_Categories(t *testing.T) {
	r := build(t, inventory())
	cats := r.Categories()
	require.NotEmpty(t, cats)
	for i := 1; i < len(cats); i++ {
		assert.True(t, cats[i-1] < cats[i])
	}
}
