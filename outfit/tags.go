package outfit

// occasionFallbackTags widens an occasion to tags that are close enough to
// count as a match once the direct tag fails. The table is the documented
// policy for both the validator's occasion check and the occasion fix.
var occasionFallbackTags = map[string][]string{
	"gym":      {"athletic", "sport", "workout"},
	"sport":    {"athletic", "gym", "workout"},
	"business": {"formal", "office", "work"},
	"office":   {"business", "work", "smart casual"},
	"formal":   {"business", "evening"},
	"casual":   {"everyday", "weekend", "relaxed"},
	"date":     {"evening", "smart casual", "party"},
	"party":    {"evening", "date", "festive"},
	"wedding":  {"formal", "evening"},
	"travel":   {"casual", "comfortable", "everyday"},
	"beach":    {"summer", "vacation", "casual"},
}

// ExpandOccasion returns the occasion itself plus its fallback tags.
func ExpandOccasion(occasion string) []string {
	occasion = normalizeTag(occasion)
	if occasion == "" {
		return nil
	}
	out := []string{occasion}
	out = append(out, occasionFallbackTags[occasion]...)
	return out
}

// MatchesOccasion reports whether the item carries the occasion tag
// directly or through the fallback expansion.
func MatchesOccasion(item Item, occasion string) bool {
	for _, tag := range ExpandOccasion(occasion) {
		if item.HasOccasionTag(tag) {
			return true
		}
	}
	return false
}

// strictLayerOccasions disallow two items sharing a wear layer; stacking
// base layers reads sloppy in these settings.
var strictLayerOccasions = map[string]bool{
	"business": true,
	"office":   true,
	"formal":   true,
	"wedding":  true,
	"date":     true,
}

func occasionDisallowsSharedLayer(occasion string) bool {
	return strictLayerOccasions[normalizeTag(occasion)]
}

// conflictingNecklines lists pairs that cannot be worn together regardless
// of layer, e.g. a collared shirt under a turtleneck.
var conflictingNecklines = map[string][]string{
	"collar":     {"turtleneck", "mock neck"},
	"turtleneck": {"collar", "hood"},
	"mock neck":  {"collar"},
	"hood":       {"turtleneck"},
}

func necklinesConflict(a, b string) bool {
	for _, bad := range conflictingNecklines[a] {
		if bad == b {
			return true
		}
	}
	for _, bad := range conflictingNecklines[b] {
		if bad == a {
			return true
		}
	}
	return false
}
