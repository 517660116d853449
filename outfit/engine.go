package outfit

import "fmt"

// Generate runs the full pipeline for one request: score the catalog,
// select a candidate, validate, heal if needed, fall back to the emergency
// default when healing exhausts. The only Go errors it returns are
// programmer/data errors (malformed context); an unsatisfiable wardrobe is
// a degraded Result, not a failure.
func Generate(ctx *GenerationContext) (Result, error) {
	if ctx == nil || ctx.Catalog == nil {
		return Result{}, fmt.Errorf("generation context has no catalog")
	}
	if ctx.Occasion == "" {
		return Result{}, fmt.Errorf("generation context has no occasion")
	}
	if ctx.BaseItemID != nil {
		if _, ok := ctx.Catalog.Get(*ctx.BaseItemID); !ok {
			return Result{}, fmt.Errorf("base item %v is not in the catalog", *ctx.BaseItemID)
		}
	}

	scored := ScoreCatalog(ctx)
	candidate := Select(scored, ctx)
	errs := Validate(candidate, ctx)

	strategy := StrategyPrimary
	var summary *HealingSummary

	if len(errs) > 0 {
		healed, remaining, hc, passes := Heal(candidate, errs, ctx)
		candidate = healed
		errs = remaining
		resolved := !hasSevere(remaining)
		summary = hc.Summary(passes, resolved)
		strategy = StrategyHealed

		if hasSevere(errs) {
			candidate = EmergencyDefault(ctx)
			strategy = StrategyEmergencyDefault
		}
	}

	return Result{
		Items:              candidate.Items,
		GenerationStrategy: strategy,
		ConfidenceScore:    confidence(candidate, ctx, strategy, summary),
		RemainingErrors:    errs,
		Healing:            summary,
		WardrobeSize:       ctx.Catalog.Size(),
		ItemsSelected:      len(candidate.Items),
	}, nil
}

// confidence folds average item fit and healing depth into [0,1]. The
// emergency default is pinned low so callers can sort degraded results last.
func confidence(o CandidateOutfit, ctx *GenerationContext, strategy string, summary *HealingSummary) float64 {
	if strategy == StrategyEmergencyDefault {
		return 0.1
	}
	if len(o.Items) == 0 {
		return 0
	}
	total := 0.0
	for _, item := range o.Items {
		total += Score(item, ctx)
	}
	base := total / float64(len(o.Items)) / maxItemScore
	if summary != nil {
		// each healing pass spent chips away at certainty
		base -= 0.05 * float64(summary.Passes)
	}
	return clamp01(base)
}
