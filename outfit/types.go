package outfit

// Category is the structural slot an item occupies in an outfit.
type Category string

const (
	CategoryTop       Category = "top"
	CategoryBottom    Category = "bottom"
	CategoryShoes     Category = "shoes"
	CategoryOuterwear Category = "outerwear"
	CategoryAccessory Category = "accessory"
)

// AllCategories in the order items are laid out in a final outfit.
var AllCategories = []Category{
	CategoryTop, CategoryBottom, CategoryShoes, CategoryOuterwear, CategoryAccessory,
}

type WearLayer string

const (
	LayerBase  WearLayer = "base"
	LayerMid   WearLayer = "mid"
	LayerOuter WearLayer = "outer"
)

// layerPriority: outer wins over mid wins over base when a layering
// conflict has to drop one side of the pair.
var layerPriority = map[WearLayer]int{
	LayerBase:  0,
	LayerMid:   1,
	LayerOuter: 2,
}

// Item is the engine's read-only view of one wardrobe piece. It is built
// and validated once at the catalog boundary (see NewItem) so scoring,
// validation and repair can assume every field is populated.
type Item struct {
	ID           uint
	Name         string
	Category     Category
	Color        string
	Material     string
	Pattern      string
	Formality    int
	Layer        WearLayer
	Neckline     string
	SleeveLength string
	// Temperature comfort range in Fahrenheit, inclusive on both ends.
	TempMin float64
	TempMax float64

	OccasionTags []string
	StyleTags    []string

	WearCount     int
	Favorite      bool
	FavoriteScore float64
}

// SuitsTemperature reports whether temp falls inside the item's comfort range.
func (i Item) SuitsTemperature(temp float64) bool {
	return temp >= i.TempMin && temp <= i.TempMax
}

func (i Item) HasOccasionTag(tag string) bool {
	for _, t := range i.OccasionTags {
		if t == tag {
			return true
		}
	}
	return false
}

func (i Item) HasStyleTag(tag string) bool {
	for _, t := range i.StyleTags {
		if t == tag {
			return true
		}
	}
	return false
}

type WeatherSnapshot struct {
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
}

type UserProfile struct {
	BodyType         string   `json:"body_type"`
	Gender           string   `json:"gender"`
	SkinTone         string   `json:"skin_tone"`
	StylePreferences []string `json:"style_preferences"`
}

// GenerationContext is the immutable input of one generation request.
// Weather and Profile are optional; a nil Weather skips the weather rule
// instead of failing it.
type GenerationContext struct {
	UserID   uint
	Occasion string
	Style    string
	Mood     string
	Weather  *WeatherSnapshot
	Profile  *UserProfile

	// BaseItemID forces one item into the outfit, placed first.
	BaseItemID *uint

	Catalog *CatalogView

	// TargetCounts is explicit configuration: how many items each category
	// is allowed to hold. Intent is never inferred from category names.
	TargetCounts map[Category]int

	// RequiredCategories must end up non-empty or the completeness rule fires.
	RequiredCategories []Category
}

// DefaultTargetCounts allows a single item everywhere.
func DefaultTargetCounts() map[Category]int {
	return map[Category]int{
		CategoryTop:       1,
		CategoryBottom:    1,
		CategoryShoes:     1,
		CategoryOuterwear: 1,
		CategoryAccessory: 1,
	}
}

// DefaultRequiredCategories covers the minimum wearable outfit.
func DefaultRequiredCategories() []Category {
	return []Category{CategoryTop, CategoryBottom, CategoryShoes}
}

// TargetCount falls back to 1 for categories the context does not configure.
func (ctx *GenerationContext) TargetCount(cat Category) int {
	if ctx.TargetCounts == nil {
		return 1
	}
	n, ok := ctx.TargetCounts[cat]
	if !ok {
		return 1
	}
	return n
}

func (ctx *GenerationContext) IsRequired(cat Category) bool {
	required := ctx.RequiredCategories
	if required == nil {
		required = DefaultRequiredCategories()
	}
	for _, c := range required {
		if c == cat {
			return true
		}
	}
	return false
}

func (ctx *GenerationContext) Required() []Category {
	if ctx.RequiredCategories == nil {
		return DefaultRequiredCategories()
	}
	return ctx.RequiredCategories
}

// CandidateOutfit is one attempt at an outfit. Repair steps return a new
// value instead of mutating in place, so every prior state stays inspectable.
type CandidateOutfit struct {
	Items []Item
}

func (o CandidateOutfit) HasItem(id uint) bool {
	for _, it := range o.Items {
		if it.ID == id {
			return true
		}
	}
	return false
}

func (o CandidateOutfit) ItemsInCategory(cat Category) []Item {
	var out []Item
	for _, it := range o.Items {
		if it.Category == cat {
			out = append(out, it)
		}
	}
	return out
}

// Without returns a copy with the given item ids dropped.
func (o CandidateOutfit) Without(ids ...uint) CandidateOutfit {
	drop := make(map[uint]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	next := CandidateOutfit{Items: make([]Item, 0, len(o.Items))}
	for _, it := range o.Items {
		if !drop[it.ID] {
			next.Items = append(next.Items, it)
		}
	}
	return next
}

// WithReplacement swaps oldID for the replacement item, keeping position.
func (o CandidateOutfit) WithReplacement(oldID uint, replacement Item) CandidateOutfit {
	next := CandidateOutfit{Items: make([]Item, len(o.Items))}
	copy(next.Items, o.Items)
	for i, it := range next.Items {
		if it.ID == oldID {
			next.Items[i] = replacement
		}
	}
	return next
}

func (o CandidateOutfit) ItemIDs() []uint {
	ids := make([]uint, 0, len(o.Items))
	for _, it := range o.Items {
		ids = append(ids, it.ID)
	}
	return ids
}

// Generation strategies tagged on the final result so callers can tell a
// degraded response from a healthy one.
const (
	StrategyPrimary          = "primary"
	StrategyHealed           = "healed"
	StrategyEmergencyDefault = "emergency_default"
)

// Result is the externally visible product of one generation request.
type Result struct {
	Items              []Item            `json:"items"`
	GenerationStrategy string            `json:"generation_strategy"`
	ConfidenceScore    float64           `json:"confidence_score"`
	RemainingErrors    []ValidationError `json:"remaining_errors"`
	Healing            *HealingSummary   `json:"healing_summary,omitempty"`
	WardrobeSize       int               `json:"wardrobe_size"`
	ItemsSelected      int               `json:"items_selected"`
}
