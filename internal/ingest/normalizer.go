package ingest

import (
	"fmt"
	"time"

	"github.com/verdantlab/gardensense/internal/datastore/entities"
)

// Normalize validates a payload and reshapes it into a canonical reading
// set. It is pure: no store access, no side effects. Validation failures
// wrap ErrValidation and leave nothing to roll back.
//
// For batch form, entries with a null value are skipped individually and
// the remaining entries are ordered canonically so output is deterministic.
func Normalize(payload *ReadingPayload, now time.Time) (*NormalizedReading, error) {
	if payload.DeviceID == "" {
		return nil, fmt.Errorf("%w: missing required field %q", ErrValidation, "device_id")
	}
	if payload.UserID == "" {
		return nil, fmt.Errorf("%w: missing required field %q", ErrValidation, "user_id")
	}

	observedAt := now
	if payload.Timestamp != "" {
		t, err := time.Parse(time.RFC3339, payload.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("%w: timestamp must be ISO-8601: %v", ErrValidation, err)
		}
		observedAt = t
	}

	normalized := &NormalizedReading{
		DeviceID:   payload.DeviceID,
		UserID:     payload.UserID,
		Location:   payload.Location,
		ObservedAt: observedAt,
	}

	if len(payload.Sensors) > 0 {
		return normalizeBatch(payload, normalized)
	}
	return normalizeSingle(payload, normalized)
}

func normalizeSingle(payload *ReadingPayload, normalized *NormalizedReading) (*NormalizedReading, error) {
	if payload.SensorType == "" {
		return nil, fmt.Errorf("%w: missing required field %q", ErrValidation, "sensor_type")
	}
	sensorType, ok := entities.ParseSensorType(payload.SensorType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown sensor_type %q", ErrValidation, payload.SensorType)
	}
	if payload.Value == nil {
		return nil, fmt.Errorf("%w: missing required field %q", ErrValidation, "value")
	}

	normalized.DeviceType = string(sensorType)
	normalized.Points = []Point{{Type: sensorType, Value: *payload.Value}}
	return normalized, nil
}

func normalizeBatch(payload *ReadingPayload, normalized *NormalizedReading) (*NormalizedReading, error) {
	normalized.DeviceType = entities.SensorTypeMulti

	// Iterate the closed type set rather than the map so point order is
	// canonical and unknown keys fall away.
	for _, sensorType := range entities.AllSensorTypes {
		value, ok := payload.Sensors[string(sensorType)]
		if !ok || value == nil {
			continue
		}
		normalized.Points = append(normalized.Points, Point{Type: sensorType, Value: *value})
	}

	if len(normalized.Points) == 0 {
		return nil, fmt.Errorf("%w: sensors must contain at least one value", ErrValidation)
	}
	return normalized, nil
}
