package outfit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealingContextRecordsAreAppendOnly(t *testing.T) {
	hc := NewHealingContext()
	hc.BeginPass(1)

	hc.RecordError(ValidationError{Kind: ErrWeatherMismatch}, 1)
	hc.RecordFix(FixRecord{FixType: FixWeather, Category: CategoryTop, Pass: 1, RemovedItemIDs: []uint{4}})
	hc.BeginPass(2)
	hc.RecordError(ValidationError{Kind: ErrLayeringConflict}, 2)
	hc.RecordFix(FixRecord{FixType: FixLayering, Category: CategoryTop, Pass: 2, RemovedItemIDs: []uint{7}})

	summary := hc.Summary(2, true)
	require.Len(t, summary.ErrorsSeen, 2)
	require.Len(t, summary.FixesAttempted, 2)
	// earlier entries survive later passes untouched
	assert.Equal(t, ErrWeatherMismatch, summary.ErrorsSeen[0].Error.Kind)
	assert.Equal(t, 1, summary.ErrorsSeen[0].Pass)
	assert.Equal(t, []uint{4, 7}, summary.ItemsRemoved)
}

func TestHealingContextTracksRemovedItems(t *testing.T) {
	hc := NewHealingContext()

	hc.RecordRemoved(3)
	hc.RecordRemoved(9)
	hc.RecordRemoved(3) // idempotent

	assert.True(t, hc.IsItemRemoved(3))
	assert.True(t, hc.IsItemRemoved(9))
	assert.False(t, hc.IsItemRemoved(5))
	assert.Equal(t, []uint{3, 9}, hc.RemovedItemIDs())
}

func TestHealingContextFixRecordsRemovals(t *testing.T) {
	hc := NewHealingContext()
	hc.RecordFix(FixRecord{FixType: FixDuplicate, Category: CategoryTop, RemovedItemIDs: []uint{11, 12}})

	assert.True(t, hc.IsItemRemoved(11))
	assert.True(t, hc.IsItemRemoved(12))
}

func TestWasFixAttemptedMatchesTypeAndCategory(t *testing.T) {
	hc := NewHealingContext()
	hc.RecordFix(FixRecord{FixType: FixWeather, Category: CategoryTop})

	assert.True(t, hc.WasFixAttempted(FixWeather, CategoryTop))
	assert.False(t, hc.WasFixAttempted(FixWeather, CategoryBottom))
	assert.False(t, hc.WasFixAttempted(FixLayering, CategoryTop))
}

func TestHealingContextCountsRuleTriggers(t *testing.T) {
	hc := NewHealingContext()
	hc.RecordRuleTrigger("weather_mismatch", "first", 1)
	hc.RecordRuleTrigger("weather_mismatch", "second", 2)
	hc.RecordRuleTrigger("duplicate_category", "once", 1)

	summary := hc.Summary(2, true)
	assert.Equal(t, 2, summary.RulesTriggered["weather_mismatch"])
	assert.Equal(t, 1, summary.RulesTriggered["duplicate_category"])
}

func TestSummaryIsSnapshotNotView(t *testing.T) {
	hc := NewHealingContext()
	hc.RecordFix(FixRecord{FixType: FixDuplicate, Category: CategoryTop})

	summary := hc.Summary(1, true)
	hc.RecordFix(FixRecord{FixType: FixWeather, Category: CategoryBottom})

	assert.Len(t, summary.FixesAttempted, 1)
}
