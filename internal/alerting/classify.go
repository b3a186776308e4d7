// Package alerting evaluates readings against configured thresholds and
// maintains alert incident state.
package alerting

import (
	"github.com/verdantlab/gardensense/internal/datastore/entities"
)

// Level is the three-tier classification of one value against one threshold.
type Level int

const (
	LevelNormal Level = iota
	LevelWarning
	LevelCritical
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelCritical:
		return "critical"
	default:
		return "normal"
	}
}

// Severity maps a level to the persisted alert severity class.
func (l Level) Severity() string {
	switch l {
	case LevelCritical:
		return entities.AlertSeverityCritical
	case LevelWarning:
		return entities.AlertSeverityWarning
	default:
		return entities.AlertSeverityInfo
	}
}

// Classify places a value in the normal/warning/critical tiers. Bounds are
// exclusive: a value exactly on a threshold is in range. Unset bounds never
// trigger, and a nil threshold always classifies as normal.
func Classify(value float64, t *entities.Threshold) Level {
	if t == nil {
		return LevelNormal
	}
	if (t.CriticalMin != nil && value < *t.CriticalMin) ||
		(t.CriticalMax != nil && value > *t.CriticalMax) {
		return LevelCritical
	}
	if (t.WarningMin != nil && value < *t.WarningMin) ||
		(t.WarningMax != nil && value > *t.WarningMax) {
		return LevelWarning
	}
	return LevelNormal
}

// BreachedBound reports which bound a non-normal classification tripped:
// the limit value and whether the reading fell below a minimum.
func BreachedBound(value float64, t *entities.Threshold, level Level) (limit float64, belowMin bool) {
	switch level {
	case LevelCritical:
		if t.CriticalMin != nil && value < *t.CriticalMin {
			return *t.CriticalMin, true
		}
		if t.CriticalMax != nil {
			return *t.CriticalMax, false
		}
	case LevelWarning:
		if t.WarningMin != nil && value < *t.WarningMin {
			return *t.WarningMin, true
		}
		if t.WarningMax != nil {
			return *t.WarningMax, false
		}
	}
	return 0, false
}
