package outfit

import "fmt"

// MaxHealingPasses bounds the repair loop. Five passes comfortably cover
// one application of every strategy with one retry to spare; the bound is
// what guarantees termination and the latency envelope.
const MaxHealingPasses = 5

// Heal runs the bounded repair loop: validate → pick strategy → apply →
// re-validate, until the outfit is clean, no strategy is left to try, or
// the pass limit hits. The returned HealingContext carries the full audit
// trail; remaining errors are returned as data, never swallowed.
func Heal(o CandidateOutfit, errs []ValidationError, ctx *GenerationContext) (CandidateOutfit, []ValidationError, *HealingContext, int) {
	hc := NewHealingContext()
	pass := 0

	for len(errs) > 0 && pass < MaxHealingPasses {
		pass++
		hc.BeginPass(pass)
		for _, e := range errs {
			hc.RecordError(e, pass)
		}

		strategy, primary, ok := selectStrategy(errs)
		if !ok {
			// only errors no strategy repairs are left (e.g. missing category)
			break
		}
		if hc.WasFixAttempted(strategy.Type, primary.Category) {
			// the same fix on the same category already ran; retrying
			// would loop on an unfixable state
			break
		}

		next, record := strategy.Apply(o, errs, ctx, hc)
		hc.RecordFix(record)
		o = next
		fmt.Printf("[Healing] pass %d: %s on %s removed=%v replaced=%v success=%v\n",
			pass, record.FixType, record.Category, record.RemovedItemIDs, record.ReplacementIDs, record.Success)

		errs = Validate(o, ctx)
	}

	return o, errs, hc, pass
}

// hasSevere reports whether any remaining error is error-grade. Warnings
// (style conflicts) degrade quality but never justify throwing the outfit
// away for the emergency default.
func hasSevere(errs []ValidationError) bool {
	for _, e := range errs {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

// EmergencyDefault builds the terminal fallback outfit: the first catalog
// item of every required category, nothing else. It satisfies only the
// completeness rule by construction and is never itself healed.
func EmergencyDefault(ctx *GenerationContext) CandidateOutfit {
	var o CandidateOutfit
	for _, cat := range ctx.Required() {
		items := ctx.Catalog.InCategory(cat)
		if len(items) > 0 {
			o.Items = append(o.Items, items[0])
		}
	}
	return o
}
