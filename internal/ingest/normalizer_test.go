package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlab/gardensense/internal/datastore/entities"
)

func floatPtr(v float64) *float64 { return &v }

func TestNormalize_SingleForm(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	payload := &ReadingPayload{
		DeviceID:   "D1",
		UserID:     "U1",
		SensorType: "temperature",
		Value:      floatPtr(21.5),
		Location:   "greenhouse",
	}

	normalized, err := Normalize(payload, now)
	require.NoError(t, err)

	assert.Equal(t, "D1", normalized.DeviceID)
	assert.Equal(t, "U1", normalized.UserID)
	assert.Equal(t, "greenhouse", normalized.Location)
	assert.Equal(t, "temperature", normalized.DeviceType)
	assert.True(t, normalized.ObservedAt.Equal(now), "timestamp should default to receipt time")
	require.Len(t, normalized.Points, 1)
	assert.Equal(t, entities.SensorTypeTemperature, normalized.Points[0].Type)
	assert.InDelta(t, 21.5, normalized.Points[0].Value, 0.0001)
}

func TestNormalize_SingleFormMissingFields(t *testing.T) {
	t.Parallel()

	now := time.Now()
	cases := []struct {
		name    string
		payload ReadingPayload
	}{
		{"missing device_id", ReadingPayload{UserID: "U1", SensorType: "temperature", Value: floatPtr(1)}},
		{"missing user_id", ReadingPayload{DeviceID: "D1", SensorType: "temperature", Value: floatPtr(1)}},
		{"missing sensor_type", ReadingPayload{DeviceID: "D1", UserID: "U1", Value: floatPtr(1)}},
		{"missing value", ReadingPayload{DeviceID: "D1", UserID: "U1", SensorType: "temperature"}},
		{"unknown sensor_type", ReadingPayload{DeviceID: "D1", UserID: "U1", SensorType: "wind_speed", Value: floatPtr(1)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Normalize(&tc.payload, now)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestNormalize_BatchForm(t *testing.T) {
	t.Parallel()

	payload := &ReadingPayload{
		DeviceID: "D1",
		UserID:   "U1",
		Sensors: map[string]*float64{
			"humidity":    floatPtr(55),
			"temperature": floatPtr(22),
			"light":       floatPtr(12000),
		},
	}

	normalized, err := Normalize(payload, time.Now())
	require.NoError(t, err)

	assert.Equal(t, entities.SensorTypeMulti, normalized.DeviceType)
	require.Len(t, normalized.Points, 3)
	// Points follow canonical type order regardless of map iteration.
	assert.Equal(t, entities.SensorTypeTemperature, normalized.Points[0].Type)
	assert.Equal(t, entities.SensorTypeHumidity, normalized.Points[1].Type)
	assert.Equal(t, entities.SensorTypeLight, normalized.Points[2].Type)
}

func TestNormalize_BatchSkipsNullEntries(t *testing.T) {
	t.Parallel()

	payload := &ReadingPayload{
		DeviceID: "D1",
		UserID:   "U1",
		Sensors: map[string]*float64{
			"temperature":   floatPtr(22),
			"humidity":      nil,
			"soil_moisture": floatPtr(40),
		},
	}

	normalized, err := Normalize(payload, time.Now())
	require.NoError(t, err)
	require.Len(t, normalized.Points, 2, "null entries are skipped, not errored")
}

func TestNormalize_BatchAllNull(t *testing.T) {
	t.Parallel()

	payload := &ReadingPayload{
		DeviceID: "D1",
		UserID:   "U1",
		Sensors:  map[string]*float64{"temperature": nil},
	}

	_, err := Normalize(payload, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNormalize_DeviceTimestamp(t *testing.T) {
	t.Parallel()

	payload := &ReadingPayload{
		DeviceID:   "D1",
		UserID:     "U1",
		SensorType: "humidity",
		Value:      floatPtr(60),
		Timestamp:  "2026-02-15T08:30:00Z",
	}

	normalized, err := Normalize(payload, time.Now())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 15, 8, 30, 0, 0, time.UTC), normalized.ObservedAt.UTC())
}

func TestNormalize_InvalidTimestamp(t *testing.T) {
	t.Parallel()

	payload := &ReadingPayload{
		DeviceID:   "D1",
		UserID:     "U1",
		SensorType: "humidity",
		Value:      floatPtr(60),
		Timestamp:  "yesterday",
	}

	_, err := Normalize(payload, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}
