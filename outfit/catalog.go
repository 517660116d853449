package outfit

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lowerCaser = cases.Lower(language.AmericanEnglish)

// Temperature bounds applied when an item arrives without a comfort range.
// Wide enough to never trip the weather rule on its own.
const (
	defaultTempMin = -40.0
	defaultTempMax = 140.0
)

// NewItem is the single place attribute defaults are filled and tags
// normalized. Everything downstream (scorer, validator, strategies) assumes
// the record that comes out of here is complete.
func NewItem(item Item) (Item, error) {
	if item.ID == 0 {
		return Item{}, fmt.Errorf("item %q has no id", item.Name)
	}
	switch item.Category {
	case CategoryTop, CategoryBottom, CategoryShoes, CategoryOuterwear, CategoryAccessory:
	case "":
		return Item{}, fmt.Errorf("item %v has no category", item.ID)
	default:
		return Item{}, fmt.Errorf("item %v has unknown category %q", item.ID, item.Category)
	}
	switch item.Layer {
	case LayerBase, LayerMid, LayerOuter:
	case "":
		item.Layer = defaultLayerFor(item.Category)
	default:
		return Item{}, fmt.Errorf("item %v has unknown wear layer %q", item.ID, item.Layer)
	}
	if item.TempMin == 0 && item.TempMax == 0 {
		item.TempMin = defaultTempMin
		item.TempMax = defaultTempMax
	}
	if item.TempMin > item.TempMax {
		return Item{}, fmt.Errorf("item %v has inverted temperature range [%v, %v]", item.ID, item.TempMin, item.TempMax)
	}
	if item.FavoriteScore < 0 || item.FavoriteScore > 1 {
		return Item{}, fmt.Errorf("item %v has favorite score %v outside [0,1]", item.ID, item.FavoriteScore)
	}
	item.Color = normalizeTag(item.Color)
	item.Material = normalizeTag(item.Material)
	item.Pattern = normalizeTag(item.Pattern)
	item.Neckline = normalizeTag(item.Neckline)
	item.SleeveLength = normalizeTag(item.SleeveLength)
	item.OccasionTags = normalizeTags(item.OccasionTags)
	item.StyleTags = normalizeTags(item.StyleTags)
	return item, nil
}

func defaultLayerFor(cat Category) WearLayer {
	if cat == CategoryOuterwear {
		return LayerOuter
	}
	return LayerBase
}

func normalizeTag(tag string) string {
	return lowerCaser.String(strings.TrimSpace(tag))
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]bool{}
	for _, t := range tags {
		n := normalizeTag(t)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// CatalogView is the read-only, pre-fetched candidate pool for one request.
// Order is preserved from the caller: the emergency default leans on it.
type CatalogView struct {
	items      []Item
	byID       map[uint]Item
	byCategory map[Category][]Item
}

// NewCatalogView validates every raw item through NewItem. A malformed item
// is a data error and fails the whole view; silently skipping records would
// make downstream behavior depend on what got dropped.
func NewCatalogView(raw []Item) (*CatalogView, error) {
	view := &CatalogView{
		items:      make([]Item, 0, len(raw)),
		byID:       make(map[uint]Item, len(raw)),
		byCategory: make(map[Category][]Item),
	}
	for _, r := range raw {
		item, err := NewItem(r)
		if err != nil {
			return nil, fmt.Errorf("catalog rejected item: %w", err)
		}
		if _, dup := view.byID[item.ID]; dup {
			return nil, fmt.Errorf("catalog rejected item: duplicate id %v", item.ID)
		}
		view.items = append(view.items, item)
		view.byID[item.ID] = item
		view.byCategory[item.Category] = append(view.byCategory[item.Category], item)
	}
	return view, nil
}

func (c *CatalogView) Size() int {
	return len(c.items)
}

func (c *CatalogView) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *CatalogView) Get(id uint) (Item, bool) {
	item, ok := c.byID[id]
	return item, ok
}

func (c *CatalogView) InCategory(cat Category) []Item {
	src := c.byCategory[cat]
	out := make([]Item, len(src))
	copy(out, src)
	return out
}

// Alternatives returns items of cat that pass keep, skipping every id in
// exclude. Strategies use it to find replacements without ever touching
// items already removed during healing.
func (c *CatalogView) Alternatives(cat Category, exclude map[uint]bool, keep func(Item) bool) []Item {
	var out []Item
	for _, item := range c.byCategory[cat] {
		if exclude != nil && exclude[item.ID] {
			continue
		}
		if keep != nil && !keep(item) {
			continue
		}
		out = append(out, item)
	}
	return out
}
