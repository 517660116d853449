package outfit

import "sort"

// ScoredItem pairs an item with its score for the current request.
type ScoredItem struct {
	Item  Item
	Score float64
}

// ScoreCatalog rates the whole candidate pool once per request.
func ScoreCatalog(ctx *GenerationContext) []ScoredItem {
	items := ctx.Catalog.Items()
	scored := make([]ScoredItem, 0, len(items))
	for _, item := range items {
		scored = append(scored, ScoredItem{Item: item, Score: Score(item, ctx)})
	}
	return scored
}

// Select builds the initial candidate outfit: per category the top N by
// score, N coming from the context's explicit target counts. A forced base
// item goes first and is excluded from normal competition. The selector
// never fabricates items — a category with no candidates stays empty and the
// validator raises MISSING_REQUIRED_CATEGORY later.
func Select(scored []ScoredItem, ctx *GenerationContext) CandidateOutfit {
	var outfit CandidateOutfit
	taken := map[uint]bool{}

	if ctx.BaseItemID != nil {
		if base, ok := ctx.Catalog.Get(*ctx.BaseItemID); ok {
			outfit.Items = append(outfit.Items, base)
			taken[base.ID] = true
		}
	}

	byCategory := map[Category][]ScoredItem{}
	for _, s := range scored {
		byCategory[s.Item.Category] = append(byCategory[s.Item.Category], s)
	}

	for _, cat := range AllCategories {
		candidates := byCategory[cat]
		sortScoredDesc(candidates)

		want := ctx.TargetCount(cat)
		if ctx.BaseItemID != nil {
			for _, s := range candidates {
				if s.Item.ID == *ctx.BaseItemID && want > 0 {
					// the forced item fills one slot of its category
					want--
					break
				}
			}
		}
		for _, s := range candidates {
			if want == 0 {
				break
			}
			if taken[s.Item.ID] {
				continue
			}
			outfit.Items = append(outfit.Items, s.Item)
			taken[s.Item.ID] = true
			want--
		}
	}
	return outfit
}

// sortScoredDesc orders by score, then wear count (discovery bias), then id
// so selection stays deterministic for identical inputs.
func sortScoredDesc(items []ScoredItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		if items[i].Item.WearCount != items[j].Item.WearCount {
			return items[i].Item.WearCount > items[j].Item.WearCount
		}
		return items[i].Item.ID < items[j].Item.ID
	})
}

// bestScoredFirst resolves which of a category's items survives a duplicate
// fix: the same ordering the selector uses.
func bestScoredFirst(items []Item, ctx *GenerationContext) []Item {
	scored := make([]ScoredItem, 0, len(items))
	for _, it := range items {
		scored = append(scored, ScoredItem{Item: it, Score: Score(it, ctx)})
	}
	sortScoredDesc(scored)
	out := make([]Item, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.Item)
	}
	return out
}
