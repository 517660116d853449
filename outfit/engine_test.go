package outfit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRejectsMalformedContext(t *testing.T) {
	_, err := Generate(nil)
	assert.Error(t, err)

	_, err = Generate(&GenerationContext{Occasion: "casual"})
	assert.Error(t, err)

	catalog := basicWardrobe(t)
	_, err = Generate(&GenerationContext{Catalog: catalog})
	assert.Error(t, err)

	missing := uint(99)
	_, err = Generate(&GenerationContext{Occasion: "casual", Catalog: catalog, BaseItemID: &missing})
	assert.Error(t, err)
}

func TestGeneratePrimaryPathLeavesNoHealingTrace(t *testing.T) {
	catalog := basicWardrobe(t)
	ctx := &GenerationContext{Occasion: "casual", Catalog: catalog}

	result, err := Generate(ctx)
	require.NoError(t, err)

	assert.Equal(t, StrategyPrimary, result.GenerationStrategy)
	assert.Nil(t, result.Healing)
	assert.Empty(t, result.RemainingErrors)
	assert.Equal(t, 3, result.ItemsSelected)
	assert.Equal(t, 3, result.WardrobeSize)
	assert.Greater(t, result.ConfidenceScore, 0.0)
}

func TestGenerateIsDeterministic(t *testing.T) {
	catalog := mustCatalog(t,
		testItem(1, "tee a", CategoryTop),
		testItem(2, "tee b", CategoryTop),
		testItem(3, "jeans", CategoryBottom),
		testItem(4, "sneakers", CategoryShoes),
		testItem(5, "loafers", CategoryShoes),
	)
	ctx := &GenerationContext{Occasion: "casual", Catalog: catalog}

	first, err := Generate(ctx)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Generate(ctx)
		require.NoError(t, err)
		assert.Equal(t, CandidateOutfit{Items: first.Items}.ItemIDs(), CandidateOutfit{Items: again.Items}.ItemIDs())
		assert.Equal(t, first.ConfidenceScore, again.ConfidenceScore)
	}
}

// The hot-day wardrobe: the cozy sweater outranks everything on style and
// favorite score, gets picked, trips the weather rule at 85°F and is healed
// into the t-shirt.
func TestGenerateHealsSweaterOnHotDay(t *testing.T) {
	catalog := mustCatalog(t,
		testItem(1, "wool sweater", CategoryTop, withTemp(30, 60), withStyles("cozy"), withFavoriteScore(1)),
		testItem(2, "fleece", CategoryTop, withTemp(40, 65), withStyles("cozy"), withFavoriteScore(0.9)),
		testItem(3, "t-shirt", CategoryTop, withTemp(60, 100)),
		testItem(4, "jeans", CategoryBottom),
		testItem(5, "sneakers", CategoryShoes),
	)
	ctx := &GenerationContext{
		Occasion: "casual",
		Style:    "cozy",
		Catalog:  catalog,
		Weather:  &WeatherSnapshot{Temperature: 85},
	}

	result, err := Generate(ctx)
	require.NoError(t, err)

	assert.Equal(t, StrategyHealed, result.GenerationStrategy)
	final := CandidateOutfit{Items: result.Items}
	assert.True(t, final.HasItem(3))
	assert.False(t, final.HasItem(1))
	assert.False(t, final.HasItem(2))

	require.NotNil(t, result.Healing)
	assert.True(t, result.Healing.Resolved)
	assert.GreaterOrEqual(t, result.Healing.Passes, 1)
	assert.Contains(t, result.Healing.ItemsRemoved, uint(1))

	// no severe errors survive healing here; the style warning may remain
	for _, e := range result.RemainingErrors {
		assert.Equal(t, SeverityWarning, e.Severity)
	}
}

func TestGenerateEmptyCatalogFallsBackToEmergencyDefault(t *testing.T) {
	catalog := mustCatalog(t)
	ctx := &GenerationContext{Occasion: "casual", Catalog: catalog}

	result, err := Generate(ctx)
	require.NoError(t, err)

	assert.Equal(t, StrategyEmergencyDefault, result.GenerationStrategy)
	assert.Empty(t, result.Items)
	assert.Equal(t, 0.1, result.ConfidenceScore)
	assert.True(t, HasKind(result.RemainingErrors, ErrMissingRequiredCategory))
}

func TestGenerateUnsatisfiableOccasionDegradesGracefully(t *testing.T) {
	catalog := mustCatalog(t,
		testItem(1, "gym tee", CategoryTop, withOccasions("gym")),
		testItem(2, "track pants", CategoryBottom, withOccasions("gym")),
		testItem(3, "trainers", CategoryShoes, withOccasions("gym")),
	)
	ctx := &GenerationContext{Occasion: "wedding", Catalog: catalog}

	result, err := Generate(ctx)
	require.NoError(t, err)

	assert.Equal(t, StrategyEmergencyDefault, result.GenerationStrategy)
	assert.Equal(t, 0.1, result.ConfidenceScore)
	// the emergency default still covers every required category
	final := CandidateOutfit{Items: result.Items}
	assert.Len(t, final.ItemsInCategory(CategoryTop), 1)
	assert.Len(t, final.ItemsInCategory(CategoryBottom), 1)
	assert.Len(t, final.ItemsInCategory(CategoryShoes), 1)
	require.NotNil(t, result.Healing)
	assert.False(t, result.Healing.Resolved)
}

func TestGenerateStyleWarningDoesNotForceEmergencyDefault(t *testing.T) {
	catalog := basicWardrobe(t)
	ctx := &GenerationContext{Occasion: "casual", Style: "streetwear", Catalog: catalog}

	result, err := Generate(ctx)
	require.NoError(t, err)

	assert.Equal(t, StrategyHealed, result.GenerationStrategy)
	assert.Len(t, result.Items, 3)
	assert.True(t, HasKind(result.RemainingErrors, ErrStyleConflict))
}

func TestGenerateNeverProducesDuplicateCategoryBeyondTarget(t *testing.T) {
	catalog := mustCatalog(t,
		testItem(1, "tee a", CategoryTop),
		testItem(2, "tee b", CategoryTop),
		testItem(3, "tee c", CategoryTop),
		testItem(4, "jeans", CategoryBottom),
		testItem(5, "sneakers", CategoryShoes),
	)
	ctx := &GenerationContext{Occasion: "casual", Catalog: catalog}

	result, err := Generate(ctx)
	require.NoError(t, err)

	final := CandidateOutfit{Items: result.Items}
	for _, cat := range AllCategories {
		assert.LessOrEqual(t, len(final.ItemsInCategory(cat)), ctx.TargetCount(cat))
	}
}

func TestGenerateWithBaseItem(t *testing.T) {
	catalog := mustCatalog(t,
		testItem(1, "lucky shirt", CategoryTop, withOccasions("gym")),
		testItem(2, "casual tee", CategoryTop, withOccasions("casual")),
		testItem(3, "jeans", CategoryBottom),
		testItem(4, "sneakers", CategoryShoes),
	)
	base := uint(1)
	ctx := &GenerationContext{Occasion: "casual", Catalog: catalog, BaseItemID: &base}

	result, err := Generate(ctx)
	require.NoError(t, err)

	final := CandidateOutfit{Items: result.Items}
	assert.True(t, final.HasItem(base))
}

func TestGenerateConfidenceDropsWithHealing(t *testing.T) {
	profile := &UserProfile{StylePreferences: []string{"cozy"}}
	weather := &WeatherSnapshot{Temperature: 85}

	cleanCatalog := mustCatalog(t,
		testItem(2, "t-shirt", CategoryTop, withTemp(60, 100)),
		testItem(3, "jeans", CategoryBottom),
		testItem(4, "sneakers", CategoryShoes),
	)
	clean, err := Generate(&GenerationContext{Occasion: "casual", Catalog: cleanCatalog, Weather: weather, Profile: profile})
	require.NoError(t, err)
	require.Equal(t, StrategyPrimary, clean.GenerationStrategy)

	// same wardrobe plus a trap: the cozy favorite sweater wins selection,
	// fails the weather rule and heals back into the t-shirt
	trapCatalog := mustCatalog(t,
		testItem(1, "wool sweater", CategoryTop, withTemp(30, 60), withStyles("cozy"), withFavoriteScore(1)),
		testItem(2, "t-shirt", CategoryTop, withTemp(60, 100)),
		testItem(3, "jeans", CategoryBottom),
		testItem(4, "sneakers", CategoryShoes),
	)
	healed, err := Generate(&GenerationContext{Occasion: "casual", Catalog: trapCatalog, Weather: weather, Profile: profile})
	require.NoError(t, err)
	require.Equal(t, StrategyHealed, healed.GenerationStrategy)

	// identical final items, so the gap is exactly the healing-pass penalty
	assert.Equal(t, CandidateOutfit{Items: clean.Items}.ItemIDs(), CandidateOutfit{Items: healed.Items}.ItemIDs())
	assert.Less(t, healed.ConfidenceScore, clean.ConfidenceScore)
}
