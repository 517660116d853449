package outfit

// FixType tags the closed set of repair strategies.
type FixType string

const (
	FixDuplicate FixType = "duplicate_fix"
	FixWeather   FixType = "weather_fix"
	FixLayering  FixType = "layering_fix"
	FixOccasion  FixType = "occasion_fix"
)

// FixRecord is the audit entry of one strategy invocation. Success means
// the category ended in a consistent state, not that a replacement was
// found: dropping an extra with nothing to swap in still counts.
type FixRecord struct {
	FixType        FixType  `json:"fix_type"`
	Category       Category `json:"category"`
	Pass           int      `json:"pass_number"`
	Success        bool     `json:"success"`
	RemovedItemIDs []uint   `json:"removed_item_ids,omitempty"`
	ReplacementIDs []uint   `json:"replacement_ids,omitempty"`
	Details        string   `json:"details,omitempty"`
}

// PassError tags a validation error with the healing pass that saw it.
type PassError struct {
	Error ValidationError `json:"error"`
	Pass  int             `json:"pass_number"`
}

// RuleTrigger records one firing of a named rule during healing.
type RuleTrigger struct {
	Reason  string `json:"reason"`
	Pass    int    `json:"pass_number"`
	Context string `json:"context,omitempty"`
}

// HealingContext is the audit trail of exactly one generation request.
// Every log is append-only: no method deletes a prior entry, so strategies
// can trust it to answer "was this tried before" and "is this item gone".
// A fresh instance is created per request and discarded at the end — the
// summary attached to the result is the only thing that leaves the loop.
type HealingContext struct {
	pass           int
	errorsSeen     []PassError
	itemsRemoved   map[uint]bool
	removedOrder   []uint
	rulesTriggered map[string][]RuleTrigger
	fixesAttempted []FixRecord
}

// BeginPass advances the pass counter the audit entries are tagged with.
func (hc *HealingContext) BeginPass(pass int) {
	hc.pass = pass
}

func (hc *HealingContext) CurrentPass() int {
	return hc.pass
}

func NewHealingContext() *HealingContext {
	return &HealingContext{
		itemsRemoved:   map[uint]bool{},
		rulesTriggered: map[string][]RuleTrigger{},
	}
}

func (hc *HealingContext) RecordError(err ValidationError, pass int) {
	hc.errorsSeen = append(hc.errorsSeen, PassError{Error: err, Pass: pass})
}

func (hc *HealingContext) RecordRemoved(itemID uint) {
	if hc.itemsRemoved[itemID] {
		return
	}
	hc.itemsRemoved[itemID] = true
	hc.removedOrder = append(hc.removedOrder, itemID)
}

func (hc *HealingContext) RecordRuleTrigger(rule string, reason string, pass int) {
	hc.rulesTriggered[rule] = append(hc.rulesTriggered[rule], RuleTrigger{Reason: reason, Pass: pass})
}

func (hc *HealingContext) RecordFix(record FixRecord) {
	hc.fixesAttempted = append(hc.fixesAttempted, record)
	for _, id := range record.RemovedItemIDs {
		hc.RecordRemoved(id)
	}
}

func (hc *HealingContext) IsItemRemoved(itemID uint) bool {
	return hc.itemsRemoved[itemID]
}

// WasFixAttempted guards the orchestrator against retrying the same
// (fix type, category) pair forever.
func (hc *HealingContext) WasFixAttempted(fixType FixType, cat Category) bool {
	for _, f := range hc.fixesAttempted {
		if f.FixType == fixType && f.Category == cat {
			return true
		}
	}
	return false
}

// RemovedItemIDs returns removal order, oldest first.
func (hc *HealingContext) RemovedItemIDs() []uint {
	out := make([]uint, len(hc.removedOrder))
	copy(out, hc.removedOrder)
	return out
}

// removedSet is handed to CatalogView.Alternatives as the exclusion set.
func (hc *HealingContext) removedSet() map[uint]bool {
	return hc.itemsRemoved
}

// HealingSummary is the outward-facing digest of the audit trail.
type HealingSummary struct {
	Passes         int            `json:"passes"`
	ErrorsSeen     []PassError    `json:"errors_seen"`
	ItemsRemoved   []uint         `json:"items_removed"`
	FixesAttempted []FixRecord    `json:"fixes_attempted"`
	RulesTriggered map[string]int `json:"rules_triggered,omitempty"`
	Resolved       bool           `json:"resolved"`
}

func (hc *HealingContext) Summary(passes int, resolved bool) *HealingSummary {
	s := &HealingSummary{
		Passes:         passes,
		ErrorsSeen:     append([]PassError(nil), hc.errorsSeen...),
		ItemsRemoved:   hc.RemovedItemIDs(),
		FixesAttempted: append([]FixRecord(nil), hc.fixesAttempted...),
		Resolved:       resolved,
	}
	if len(hc.rulesTriggered) > 0 {
		s.RulesTriggered = map[string]int{}
		for rule, triggers := range hc.rulesTriggered {
			s.RulesTriggered[rule] = len(triggers)
		}
	}
	return s
}
