package outfit

import "testing"

// item builders shared across the package tests

func testItem(id uint, name string, cat Category, opts ...func(*Item)) Item {
	item := Item{
		ID:           id,
		Name:         name,
		Category:     cat,
		OccasionTags: []string{"casual"},
	}
	for _, opt := range opts {
		opt(&item)
	}
	return item
}

func withTemp(min, max float64) func(*Item) {
	return func(i *Item) {
		i.TempMin = min
		i.TempMax = max
	}
}

func withOccasions(tags ...string) func(*Item) {
	return func(i *Item) {
		i.OccasionTags = tags
	}
}

func withStyles(tags ...string) func(*Item) {
	return func(i *Item) {
		i.StyleTags = tags
	}
}

func withLayer(layer WearLayer) func(*Item) {
	return func(i *Item) {
		i.Layer = layer
	}
}

func withNeckline(neck string) func(*Item) {
	return func(i *Item) {
		i.Neckline = neck
	}
}

func withFavoriteScore(score float64) func(*Item) {
	return func(i *Item) {
		i.FavoriteScore = score
	}
}

func withWearCount(n int) func(*Item) {
	return func(i *Item) {
		i.WearCount = n
	}
}

func mustCatalog(t *testing.T, items ...Item) *CatalogView {
	t.Helper()
	view, err := NewCatalogView(items)
	if err != nil {
		t.Fatalf("catalog setup failed: %v", err)
	}
	return view
}

// basicWardrobe covers the three required categories, all casual, all
// weather-neutral.
func basicWardrobe(t *testing.T) *CatalogView {
	t.Helper()
	return mustCatalog(t,
		testItem(1, "white tee", CategoryTop),
		testItem(2, "blue jeans", CategoryBottom),
		testItem(3, "sneakers", CategoryShoes),
	)
}
