package alerting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verdantlab/gardensense/internal/datastore/entities"
)

func floatPtr(v float64) *float64 { return &v }

func TestClassify_NilThreshold(t *testing.T) {
	t.Parallel()
	assert.Equal(t, LevelNormal, Classify(1000, nil))
}

func TestClassify_ExclusiveBounds(t *testing.T) {
	t.Parallel()

	threshold := &entities.Threshold{WarningMax: floatPtr(30)}

	assert.Equal(t, LevelNormal, Classify(30, threshold), "value on the boundary is in range")
	assert.Equal(t, LevelWarning, Classify(30.01, threshold))
	assert.Equal(t, LevelNormal, Classify(29.99, threshold))
}

func TestClassify_CriticalTakesPrecedence(t *testing.T) {
	t.Parallel()

	threshold := &entities.Threshold{
		WarningMax:  floatPtr(30),
		CriticalMax: floatPtr(32),
	}

	assert.Equal(t, LevelWarning, Classify(31, threshold))
	assert.Equal(t, LevelCritical, Classify(35, threshold))
	assert.Equal(t, LevelWarning, Classify(32, threshold), "the critical boundary itself stays in the warning tier")
}

func TestClassify_MinBounds(t *testing.T) {
	t.Parallel()

	threshold := &entities.Threshold{
		WarningMin:  floatPtr(20),
		CriticalMin: floatPtr(10),
	}

	assert.Equal(t, LevelNormal, Classify(25, threshold))
	assert.Equal(t, LevelNormal, Classify(20, threshold))
	assert.Equal(t, LevelWarning, Classify(15, threshold))
	assert.Equal(t, LevelCritical, Classify(5, threshold))
}

func TestClassify_UnsetBoundsNeverTrigger(t *testing.T) {
	t.Parallel()

	threshold := &entities.Threshold{}
	assert.Equal(t, LevelNormal, Classify(-1e9, threshold))
	assert.Equal(t, LevelNormal, Classify(1e9, threshold))
}

func TestBreachedBound(t *testing.T) {
	t.Parallel()

	threshold := &entities.Threshold{
		WarningMin:  floatPtr(20),
		WarningMax:  floatPtr(30),
		CriticalMin: floatPtr(10),
		CriticalMax: floatPtr(32),
	}

	limit, belowMin := BreachedBound(35, threshold, LevelCritical)
	assert.InDelta(t, 32, limit, 0.0001)
	assert.False(t, belowMin)

	limit, belowMin = BreachedBound(5, threshold, LevelCritical)
	assert.InDelta(t, 10, limit, 0.0001)
	assert.True(t, belowMin)

	limit, belowMin = BreachedBound(31, threshold, LevelWarning)
	assert.InDelta(t, 30, limit, 0.0001)
	assert.False(t, belowMin)

	limit, belowMin = BreachedBound(15, threshold, LevelWarning)
	assert.InDelta(t, 20, limit, 0.0001)
	assert.True(t, belowMin)
}

func TestLevelSeverity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, entities.AlertSeverityCritical, LevelCritical.Severity())
	assert.Equal(t, entities.AlertSeverityWarning, LevelWarning.Severity())
	assert.Equal(t, entities.AlertSeverityInfo, LevelNormal.Severity())
}
