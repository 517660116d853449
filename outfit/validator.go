package outfit

import "fmt"

// Validate runs every rule check against the outfit and returns all
// violations at once. Checks are independent and never short-circuit: one
// pass surfaces the complete error picture. Pure function — identical
// outfit and context always produce the identical list.
func Validate(o CandidateOutfit, ctx *GenerationContext) []ValidationError {
	var errs []ValidationError
	errs = append(errs, checkDuplicates(o, ctx)...)
	errs = append(errs, checkWeather(o, ctx)...)
	errs = append(errs, checkLayering(o, ctx)...)
	errs = append(errs, checkOccasionStyle(o, ctx)...)
	errs = append(errs, checkCompleteness(o, ctx)...)
	return errs
}

func checkDuplicates(o CandidateOutfit, ctx *GenerationContext) []ValidationError {
	var errs []ValidationError
	for _, cat := range AllCategories {
		items := o.ItemsInCategory(cat)
		target := ctx.TargetCount(cat)
		if len(items) > target {
			ids := make([]uint, 0, len(items))
			for _, it := range items {
				ids = append(ids, it.ID)
			}
			errs = append(errs, ValidationError{
				Kind:     ErrDuplicateCategory,
				Message:  fmt.Sprintf("category %s holds %d items, %d allowed", cat, len(items), target),
				ItemIDs:  ids,
				Category: cat,
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// checkWeather is skipped entirely when the request carries no weather
// snapshot: absence of data is not a violation.
func checkWeather(o CandidateOutfit, ctx *GenerationContext) []ValidationError {
	if ctx.Weather == nil {
		return nil
	}
	var errs []ValidationError
	temp := ctx.Weather.Temperature
	for _, item := range o.Items {
		if !item.SuitsTemperature(temp) {
			errs = append(errs, ValidationError{
				Kind:     ErrWeatherMismatch,
				Message:  fmt.Sprintf("%s suits %v–%v°F, current %v°F", item.Name, item.TempMin, item.TempMax, temp),
				ItemIDs:  []uint{item.ID},
				Category: item.Category,
				Severity: SeverityError,
			})
		}
	}
	return errs
}

func checkLayering(o CandidateOutfit, ctx *GenerationContext) []ValidationError {
	var errs []ValidationError
	strict := occasionDisallowsSharedLayer(ctx.Occasion)
	for i := 0; i < len(o.Items); i++ {
		for j := i + 1; j < len(o.Items); j++ {
			a, b := o.Items[i], o.Items[j]
			// shoes and accessories sit outside the layering model
			if !layeredCategory(a.Category) || !layeredCategory(b.Category) {
				continue
			}
			if strict && a.Layer == b.Layer && a.Category == b.Category {
				errs = append(errs, ValidationError{
					Kind:     ErrLayeringConflict,
					Message:  fmt.Sprintf("%s and %s both sit on the %s layer", a.Name, b.Name, a.Layer),
					ItemIDs:  []uint{a.ID, b.ID},
					Category: a.Category,
					Severity: SeverityError,
				})
			}
			if a.Neckline != "" && b.Neckline != "" && necklinesConflict(a.Neckline, b.Neckline) {
				errs = append(errs, ValidationError{
					Kind:     ErrLayeringConflict,
					Message:  fmt.Sprintf("%s (%s) cannot be worn with %s (%s)", a.Name, a.Neckline, b.Name, b.Neckline),
					ItemIDs:  []uint{a.ID, b.ID},
					Category: a.Category,
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}

func layeredCategory(cat Category) bool {
	return cat == CategoryTop || cat == CategoryOuterwear
}

// checkOccasionStyle fires when no item carries the requested occasion tag,
// even after the fallback-tag expansion. Style is softer: a requested style
// nobody matches is a warning-level conflict, not a hard error.
func checkOccasionStyle(o CandidateOutfit, ctx *GenerationContext) []ValidationError {
	if len(o.Items) == 0 {
		return nil
	}
	var errs []ValidationError
	if ctx.Occasion != "" {
		matched := false
		for _, item := range o.Items {
			if MatchesOccasion(item, ctx.Occasion) {
				matched = true
				break
			}
		}
		if !matched {
			errs = append(errs, ValidationError{
				Kind:     ErrOccasionMismatch,
				Message:  fmt.Sprintf("no item is tagged for occasion %q", ctx.Occasion),
				ItemIDs:  o.ItemIDs(),
				Category: CategoryTop,
				Severity: SeverityError,
			})
		}
	}
	if ctx.Style != "" {
		style := normalizeTag(ctx.Style)
		matched := false
		for _, item := range o.Items {
			if item.HasStyleTag(style) {
				matched = true
				break
			}
		}
		if !matched {
			errs = append(errs, ValidationError{
				Kind:     ErrStyleConflict,
				Message:  fmt.Sprintf("no item carries style %q", ctx.Style),
				ItemIDs:  o.ItemIDs(),
				Category: CategoryTop,
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}

func checkCompleteness(o CandidateOutfit, ctx *GenerationContext) []ValidationError {
	var errs []ValidationError
	for _, cat := range ctx.Required() {
		if len(o.ItemsInCategory(cat)) == 0 {
			errs = append(errs, ValidationError{
				Kind:     ErrMissingRequiredCategory,
				Message:  fmt.Sprintf("required category %s is empty", cat),
				Category: cat,
				Severity: SeverityError,
			})
		}
	}
	return errs
}
