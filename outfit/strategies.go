package outfit

import "fmt"

// applyFunc is the uniform contract every fallback strategy implements.
// Strategies return a new outfit plus the audit record of what they did;
// they never mutate the incoming outfit and never reintroduce an item id
// already present in the healing context's removed set.
type applyFunc func(o CandidateOutfit, errs []ValidationError, ctx *GenerationContext, hc *HealingContext) (CandidateOutfit, FixRecord)

// fallbackStrategy is one tagged variant of the closed strategy set.
type fallbackStrategy struct {
	Type    FixType
	Handles []ErrorKind
	Apply   applyFunc
}

// strategyTable is priority-ordered: duplicates must be resolved before the
// downstream checks are meaningful, then weather, layering, occasion/style.
var strategyTable = []fallbackStrategy{
	{Type: FixDuplicate, Handles: []ErrorKind{ErrDuplicateCategory}, Apply: applyDuplicateFix},
	{Type: FixWeather, Handles: []ErrorKind{ErrWeatherMismatch}, Apply: applyWeatherFix},
	{Type: FixLayering, Handles: []ErrorKind{ErrLayeringConflict}, Apply: applyLayeringFix},
	{Type: FixOccasion, Handles: []ErrorKind{ErrOccasionMismatch, ErrStyleConflict}, Apply: applyOccasionFix},
}

// selectStrategy picks the highest-priority strategy that has work to do
// and the primary error it will be working on.
func selectStrategy(errs []ValidationError) (fallbackStrategy, ValidationError, bool) {
	for _, s := range strategyTable {
		matching := errorsOfKind(errs, s.Handles...)
		if len(matching) > 0 {
			return s, matching[0], true
		}
	}
	return fallbackStrategy{}, ValidationError{}, false
}

// applyDuplicateFix trims every over-full category down to its target
// count, keeping the highest-scored items. Dropping extras with nothing to
// swap in still resolves the duplicate, so the fix succeeds either way.
func applyDuplicateFix(o CandidateOutfit, errs []ValidationError, ctx *GenerationContext, hc *HealingContext) (CandidateOutfit, FixRecord) {
	record := FixRecord{FixType: FixDuplicate, Pass: hc.CurrentPass(), Success: true}
	next := o
	for _, e := range errorsOfKind(errs, ErrDuplicateCategory) {
		if record.Category == "" {
			record.Category = e.Category
		}
		items := bestScoredFirst(next.ItemsInCategory(e.Category), ctx)
		target := ctx.TargetCount(e.Category)
		if len(items) <= target {
			continue
		}
		for _, extra := range items[target:] {
			next = next.Without(extra.ID)
			record.RemovedItemIDs = append(record.RemovedItemIDs, extra.ID)
			hc.RecordRuleTrigger("duplicate_category", fmt.Sprintf("dropped %s from %s", extra.Name, e.Category), record.Pass)
		}
	}
	record.Details = fmt.Sprintf("kept top-scored items, dropped %d extras", len(record.RemovedItemIDs))
	return next, record
}

// applyWeatherFix swaps every weather-offending item for a same-category
// alternative whose comfort range contains the current temperature. When no
// alternative exists the item is removed anyway — forward progress beats
// keeping a sweater in 85°F heat — and the fix is marked failed-but-applied.
func applyWeatherFix(o CandidateOutfit, errs []ValidationError, ctx *GenerationContext, hc *HealingContext) (CandidateOutfit, FixRecord) {
	record := FixRecord{FixType: FixWeather, Pass: hc.CurrentPass(), Success: true}
	next := o
	if ctx.Weather == nil {
		record.Success = false
		record.Details = "no weather snapshot in context"
		return next, record
	}
	temp := ctx.Weather.Temperature
	for _, e := range errorsOfKind(errs, ErrWeatherMismatch) {
		if record.Category == "" {
			record.Category = e.Category
		}
		for _, offendingID := range e.ItemIDs {
			if !next.HasItem(offendingID) {
				continue
			}
			exclude := excludeSet(hc, next, offendingID)
			alts := bestScoredFirst(ctx.Catalog.Alternatives(e.Category, exclude, func(it Item) bool {
				return it.SuitsTemperature(temp)
			}), ctx)
			if len(alts) > 0 {
				next = next.WithReplacement(offendingID, alts[0])
				record.RemovedItemIDs = append(record.RemovedItemIDs, offendingID)
				record.ReplacementIDs = append(record.ReplacementIDs, alts[0].ID)
				hc.RecordRuleTrigger("weather_mismatch", fmt.Sprintf("replaced item %d with %d for %v°F", offendingID, alts[0].ID, temp), record.Pass)
			} else {
				next = next.Without(offendingID)
				record.RemovedItemIDs = append(record.RemovedItemIDs, offendingID)
				record.Success = false
				hc.RecordRuleTrigger("weather_mismatch", fmt.Sprintf("removed item %d, no alternative for %v°F", offendingID, temp), record.Pass)
			}
		}
	}
	record.Details = fmt.Sprintf("%d removed, %d replaced", len(record.RemovedItemIDs), len(record.ReplacementIDs))
	return next, record
}

// applyLayeringFix resolves each conflicting pair by dropping the
// lower-priority side (outer beats mid beats base; score breaks the tie)
// and trying a compatible replacement for the dropped slot.
func applyLayeringFix(o CandidateOutfit, errs []ValidationError, ctx *GenerationContext, hc *HealingContext) (CandidateOutfit, FixRecord) {
	record := FixRecord{FixType: FixLayering, Pass: hc.CurrentPass(), Success: true}
	next := o
	for _, e := range errorsOfKind(errs, ErrLayeringConflict) {
		if record.Category == "" {
			record.Category = e.Category
		}
		if len(e.ItemIDs) < 2 {
			continue
		}
		keepID, dropID, ok := resolveLayerPair(next, e.ItemIDs[0], e.ItemIDs[1], ctx)
		if !ok {
			// a previous pair already removed one side
			continue
		}
		kept, _ := ctx.Catalog.Get(keepID)
		dropped, _ := ctx.Catalog.Get(dropID)
		exclude := excludeSet(hc, next, dropID)
		alts := bestScoredFirst(ctx.Catalog.Alternatives(dropped.Category, exclude, func(it Item) bool {
			if it.Layer == kept.Layer && occasionDisallowsSharedLayer(ctx.Occasion) {
				return false
			}
			if necklinesConflict(it.Neckline, kept.Neckline) {
				return false
			}
			if ctx.Weather != nil && !it.SuitsTemperature(ctx.Weather.Temperature) {
				return false
			}
			return true
		}), ctx)
		if len(alts) > 0 {
			next = next.WithReplacement(dropID, alts[0])
			record.ReplacementIDs = append(record.ReplacementIDs, alts[0].ID)
		} else {
			next = next.Without(dropID)
		}
		record.RemovedItemIDs = append(record.RemovedItemIDs, dropID)
		hc.RecordRuleTrigger("layering_conflict", fmt.Sprintf("kept %s over %s", kept.Name, dropped.Name), record.Pass)
	}
	record.Details = fmt.Sprintf("resolved %d conflicting pairs", len(record.RemovedItemIDs))
	return next, record
}

// resolveLayerPair decides which side of a conflicting pair survives.
func resolveLayerPair(o CandidateOutfit, aID, bID uint, ctx *GenerationContext) (keep uint, drop uint, ok bool) {
	if !o.HasItem(aID) || !o.HasItem(bID) {
		return 0, 0, false
	}
	var a, b Item
	for _, it := range o.Items {
		if it.ID == aID {
			a = it
		}
		if it.ID == bID {
			b = it
		}
	}
	if layerPriority[a.Layer] != layerPriority[b.Layer] {
		if layerPriority[a.Layer] > layerPriority[b.Layer] {
			return a.ID, b.ID, true
		}
		return b.ID, a.ID, true
	}
	if Score(a, ctx) >= Score(b, ctx) {
		return a.ID, b.ID, true
	}
	return b.ID, a.ID, true
}

// applyOccasionFix first widens matching through the fallback-tag expansion
// (already baked into MatchesOccasion) by hunting the catalog for any item
// that satisfies it, swapping out the weakest non-matching piece. Only when
// the whole catalog has nothing to offer does it give up and remove the
// weakest item, marked failed-but-applied.
func applyOccasionFix(o CandidateOutfit, errs []ValidationError, ctx *GenerationContext, hc *HealingContext) (CandidateOutfit, FixRecord) {
	record := FixRecord{FixType: FixOccasion, Pass: hc.CurrentPass(), Success: true}
	next := o

	occErrs := errorsOfKind(errs, ErrOccasionMismatch)
	styleErrs := errorsOfKind(errs, ErrStyleConflict)
	if len(occErrs) > 0 {
		record.Category = occErrs[0].Category
		next, record = swapForTagMatch(next, record, ctx, hc, func(it Item) bool {
			return MatchesOccasion(it, ctx.Occasion)
		}, "occasion_fallback_expansion", true)
	} else if len(styleErrs) > 0 {
		record.Category = styleErrs[0].Category
		style := normalizeTag(ctx.Style)
		// style conflicts are warning-grade: never remove without replacement
		next, record = swapForTagMatch(next, record, ctx, hc, func(it Item) bool {
			return it.HasStyleTag(style)
		}, "style_conflict", false)
	}
	return next, record
}

// swapForTagMatch looks across the outfit's categories for a catalog
// alternative satisfying matches, replacing the lowest-scored current item
// of that category. removeOnFailure controls the last-resort removal.
func swapForTagMatch(o CandidateOutfit, record FixRecord, ctx *GenerationContext, hc *HealingContext, matches func(Item) bool, rule string, removeOnFailure bool) (CandidateOutfit, FixRecord) {
	for _, cat := range AllCategories {
		current := bestScoredFirst(o.ItemsInCategory(cat), ctx)
		if len(current) == 0 {
			continue
		}
		victim := current[len(current)-1]
		if ctx.BaseItemID != nil && victim.ID == *ctx.BaseItemID {
			continue
		}
		exclude := excludeSet(hc, o, victim.ID)
		alts := bestScoredFirst(ctx.Catalog.Alternatives(cat, exclude, func(it Item) bool {
			if !matches(it) {
				return false
			}
			if ctx.Weather != nil && !it.SuitsTemperature(ctx.Weather.Temperature) {
				return false
			}
			return true
		}), ctx)
		if len(alts) == 0 {
			continue
		}
		next := o.WithReplacement(victim.ID, alts[0])
		record.RemovedItemIDs = append(record.RemovedItemIDs, victim.ID)
		record.ReplacementIDs = append(record.ReplacementIDs, alts[0].ID)
		record.Details = fmt.Sprintf("swapped %s for %s in %s", victim.Name, alts[0].Name, cat)
		hc.RecordRuleTrigger(rule, record.Details, record.Pass)
		return next, record
	}

	if !removeOnFailure {
		record.Success = false
		record.Details = "no matching alternative in catalog"
		hc.RecordRuleTrigger(rule, record.Details, record.Pass)
		return o, record
	}

	// last resort: drop the weakest removable item
	all := bestScoredFirst(o.Items, ctx)
	for i := len(all) - 1; i >= 0; i-- {
		victim := all[i]
		if ctx.BaseItemID != nil && victim.ID == *ctx.BaseItemID {
			continue
		}
		record.Success = false
		record.RemovedItemIDs = append(record.RemovedItemIDs, victim.ID)
		record.Details = fmt.Sprintf("no alternative found, removed %s", victim.Name)
		hc.RecordRuleTrigger(rule, record.Details, record.Pass)
		return o.Without(victim.ID), record
	}
	record.Success = false
	record.Details = "nothing removable"
	return o, record
}

// excludeSet merges the healing context's removed ids with the ids already
// worn, plus the item being swapped out, so replacements never collide with
// the current outfit or resurrect a removed piece.
func excludeSet(hc *HealingContext, o CandidateOutfit, extra ...uint) map[uint]bool {
	out := map[uint]bool{}
	for id := range hc.removedSet() {
		out[id] = true
	}
	for _, it := range o.Items {
		out[it.ID] = true
	}
	for _, id := range extra {
		out[id] = true
	}
	return out
}
