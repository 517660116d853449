package outfit

// Scoring weights. Occasion fit dominates, then style, then weather comfort,
// then the favorite/usage boost. There are no penalty terms: the floor is 0
// so downstream comparisons never deal with negative scores.
const (
	occasionWeight = 3.0
	styleWeight    = 2.0
	weatherWeight  = 2.0
	profileWeight  = 1.0
	favoriteWeight = 1.0

	// maxItemScore is the ceiling one item can reach, used to normalize
	// the confidence score of a final outfit.
	maxItemScore = occasionWeight + styleWeight + weatherWeight + profileWeight + favoriteWeight
)

// Score rates how suitable an item is for the request. Deterministic for
// identical inputs; ties are broken later in the selector by wear count
// (discovery bias toward pieces the user actually reaches for — a policy
// choice, not a hard rule).
func Score(item Item, ctx *GenerationContext) float64 {
	score := 0.0

	if ctx.Occasion != "" && MatchesOccasion(item, ctx.Occasion) {
		score += occasionWeight
	}
	if ctx.Style != "" && item.HasStyleTag(normalizeTag(ctx.Style)) {
		score += styleWeight
	}
	if ctx.Weather != nil {
		score += weatherWeight * temperatureFit(item, ctx.Weather.Temperature)
	}
	if ctx.Profile != nil {
		score += profileWeight * profileFit(item, ctx.Profile)
	}
	score += favoriteWeight * clamp01(item.FavoriteScore)

	return score
}

// temperatureFit is 0 outside the comfort range and grows toward 1 as the
// current temperature sits closer to the center of the range.
func temperatureFit(item Item, temp float64) float64 {
	if !item.SuitsTemperature(temp) {
		return 0
	}
	span := item.TempMax - item.TempMin
	if span <= 0 {
		return 1
	}
	center := item.TempMin + span/2
	offset := temp - center
	if offset < 0 {
		offset = -offset
	}
	// offset spans 0..span/2 inside the range
	return 1 - offset/(span/2+1)
}

func profileFit(item Item, profile *UserProfile) float64 {
	if len(profile.StylePreferences) == 0 {
		return 0
	}
	matched := 0
	for _, pref := range profile.StylePreferences {
		if item.HasStyleTag(normalizeTag(pref)) {
			matched++
		}
	}
	return float64(matched) / float64(len(profile.StylePreferences))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
