package outfit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectPicksBestPerCategory(t *testing.T) {
	catalog := mustCatalog(t,
		testItem(1, "gym tee", CategoryTop, withOccasions("gym")),
		testItem(2, "casual tee", CategoryTop, withOccasions("casual")),
		testItem(3, "jeans", CategoryBottom, withOccasions("casual")),
		testItem(4, "sneakers", CategoryShoes, withOccasions("casual")),
	)
	ctx := &GenerationContext{Occasion: "casual", Catalog: catalog}

	outfit := Select(ScoreCatalog(ctx), ctx)

	require.Len(t, outfit.Items, 3)
	assert.True(t, outfit.HasItem(2))
	assert.False(t, outfit.HasItem(1))
}

func TestSelectHonorsTargetCounts(t *testing.T) {
	catalog := mustCatalog(t,
		testItem(1, "watch", CategoryAccessory),
		testItem(2, "belt", CategoryAccessory),
		testItem(3, "scarf", CategoryAccessory),
	)
	ctx := &GenerationContext{
		Occasion:     "casual",
		Catalog:      catalog,
		TargetCounts: map[Category]int{CategoryAccessory: 2},
	}

	outfit := Select(ScoreCatalog(ctx), ctx)
	assert.Len(t, outfit.ItemsInCategory(CategoryAccessory), 2)
}

func TestSelectForcesBaseItemFirst(t *testing.T) {
	catalog := mustCatalog(t,
		testItem(1, "plain tee", CategoryTop, withOccasions("gym")),
		testItem(2, "casual tee", CategoryTop, withOccasions("casual")),
		testItem(3, "jeans", CategoryBottom),
	)
	base := uint(1)
	ctx := &GenerationContext{Occasion: "casual", Catalog: catalog, BaseItemID: &base}

	outfit := Select(ScoreCatalog(ctx), ctx)

	require.NotEmpty(t, outfit.Items)
	assert.Equal(t, base, outfit.Items[0].ID)
	// the forced item fills the single top slot, the higher-scored tee stays out
	assert.Len(t, outfit.ItemsInCategory(CategoryTop), 1)
}

func TestSelectLeavesEmptyCategoriesEmpty(t *testing.T) {
	catalog := mustCatalog(t, testItem(1, "tee", CategoryTop))
	ctx := &GenerationContext{Occasion: "casual", Catalog: catalog}

	outfit := Select(ScoreCatalog(ctx), ctx)
	assert.Len(t, outfit.Items, 1)
	assert.Empty(t, outfit.ItemsInCategory(CategoryShoes))
}

func TestSelectTieBreaksByWearCountThenID(t *testing.T) {
	catalog := mustCatalog(t,
		testItem(5, "rarely worn", CategoryTop, withWearCount(1)),
		testItem(3, "often worn", CategoryTop, withWearCount(9)),
		testItem(2, "also rarely worn", CategoryTop, withWearCount(1)),
	)
	ctx := &GenerationContext{Occasion: "casual", Catalog: catalog}

	outfit := Select(ScoreCatalog(ctx), ctx)
	require.Len(t, outfit.Items, 1)
	assert.Equal(t, uint(3), outfit.Items[0].ID)
}

func TestSelectIsDeterministic(t *testing.T) {
	catalog := mustCatalog(t,
		testItem(1, "tee a", CategoryTop),
		testItem(2, "tee b", CategoryTop),
		testItem(3, "jeans", CategoryBottom),
		testItem(4, "chinos", CategoryBottom),
		testItem(5, "sneakers", CategoryShoes),
	)
	ctx := &GenerationContext{Occasion: "casual", Catalog: catalog}

	first := Select(ScoreCatalog(ctx), ctx).ItemIDs()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Select(ScoreCatalog(ctx), ctx).ItemIDs())
	}
}
