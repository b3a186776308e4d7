package ingest

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlab/gardensense/internal/datastore/entities"
	"github.com/verdantlab/gardensense/internal/logger"
	"github.com/verdantlab/gardensense/internal/observability"
)

// mockSensorRepo is a minimal in-memory mock of SensorRepository.
type mockSensorRepo struct {
	sensors map[string]*entities.Sensor // keyed on deviceID|userID
	nextID  uint
	failing bool
	mu      sync.Mutex
}

func newMockSensorRepo() *mockSensorRepo {
	return &mockSensorRepo{sensors: make(map[string]*entities.Sensor), nextID: 1}
}

func (m *mockSensorRepo) Upsert(_ context.Context, sensor *entities.Sensor) (*entities.Sensor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return nil, errors.New("store unavailable")
	}
	key := sensor.DeviceID + "|" + sensor.UserID
	if existing, ok := m.sensors[key]; ok {
		existing.Location = sensor.Location
		existing.UpdatedAt = time.Now()
		return existing, nil
	}
	created := *sensor
	created.ID = m.nextID
	m.nextID++
	m.sensors[key] = &created
	return &created, nil
}

func (m *mockSensorRepo) GetByDeviceAndUser(_ context.Context, deviceID, userID string) (*entities.Sensor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sensors[deviceID+"|"+userID]; ok {
		return s, nil
	}
	return nil, errors.New("sensor not found")
}

func (m *mockSensorRepo) ListByUser(_ context.Context, _ string) ([]entities.Sensor, error) {
	return nil, nil
}

func (m *mockSensorRepo) UpdateStatus(_ context.Context, _ uint, _ string) error { return nil }

// mockReadingRepo is a minimal in-memory mock of ReadingRepository.
type mockReadingRepo struct {
	rows    []*entities.Reading
	failing bool
	mu      sync.Mutex
}

func (m *mockReadingRepo) Append(_ context.Context, reading *entities.Reading) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errors.New("store unavailable")
	}
	m.rows = append(m.rows, reading)
	return nil
}

func (m *mockReadingRepo) ListWindow(_ context.Context, _ string, _ uint, _ time.Time) ([]entities.Reading, error) {
	return nil, nil
}

func (m *mockReadingRepo) ListBySensor(_ context.Context, _ uint, _ int) ([]entities.Reading, error) {
	return nil, nil
}

// mockEvaluator records evaluated points.
type mockEvaluator struct {
	evaluated []entities.SensorType
	err       error
	mu        sync.Mutex
}

func (m *mockEvaluator) EvaluateReading(_ context.Context, _ *entities.Sensor, sensorType entities.SensorType, _ float64, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evaluated = append(m.evaluated, sensorType)
	return m.err
}

func testLogger() logger.Logger {
	return logger.NewSlogLogger(io.Discard, logger.LogLevelError, nil)
}

func newTestPipeline(sensors *mockSensorRepo, readings *mockReadingRepo, evaluator *mockEvaluator) *Pipeline {
	return NewPipeline(sensors, readings, evaluator, observability.NewMetrics(), testLogger())
}

func TestPipeline_SingleForm(t *testing.T) {
	t.Parallel()

	sensors := newMockSensorRepo()
	readings := &mockReadingRepo{}
	evaluator := &mockEvaluator{}
	pipeline := newTestPipeline(sensors, readings, evaluator)

	result, err := pipeline.Ingest(t.Context(), &ReadingPayload{
		DeviceID:   "D1",
		UserID:     "U1",
		SensorType: "temperature",
		Value:      floatPtr(21),
	}, "http")
	require.NoError(t, err)

	assert.Equal(t, "D1", result.DeviceID)
	assert.Equal(t, "temperature", result.SensorType)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "Processed 1 sensor reading", result.Message)

	require.Len(t, sensors.sensors, 1)
	assert.Equal(t, entities.SensorStatusActive, sensors.sensors["D1|U1"].Status)
	require.Len(t, readings.rows, 1)
	require.NotNil(t, readings.rows[0].Temperature)
	assert.InDelta(t, 21, *readings.rows[0].Temperature, 0.0001)
	assert.Equal(t, []entities.SensorType{entities.SensorTypeTemperature}, evaluator.evaluated)
}

func TestPipeline_BatchFormOneWideRow(t *testing.T) {
	t.Parallel()

	sensors := newMockSensorRepo()
	readings := &mockReadingRepo{}
	evaluator := &mockEvaluator{}
	pipeline := newTestPipeline(sensors, readings, evaluator)

	result, err := pipeline.Ingest(t.Context(), &ReadingPayload{
		DeviceID: "D1",
		UserID:   "U1",
		Sensors: map[string]*float64{
			"temperature": floatPtr(35),
			"humidity":    floatPtr(90),
			"ph":          nil,
		},
	}, "http")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Count, "null entries are skipped")
	assert.Empty(t, result.SensorType, "batch results carry no single sensor type")
	assert.Equal(t, "Processed 2 sensor readings", result.Message)

	require.Len(t, readings.rows, 1, "batch persists one wide row")
	row := readings.rows[0]
	assert.Equal(t, 2, row.ValueCount())
	require.NotNil(t, row.Temperature)
	require.NotNil(t, row.Humidity)
	assert.Nil(t, row.PHLevel)

	assert.Len(t, evaluator.evaluated, 2, "each persisted value is evaluated once")
}

func TestPipeline_ReplayDoesNotDuplicateSensor(t *testing.T) {
	t.Parallel()

	sensors := newMockSensorRepo()
	readings := &mockReadingRepo{}
	pipeline := newTestPipeline(sensors, readings, &mockEvaluator{})

	for range 3 {
		_, err := pipeline.Ingest(t.Context(), &ReadingPayload{
			DeviceID:   "D1",
			UserID:     "U1",
			SensorType: "humidity",
			Value:      floatPtr(50),
		}, "http")
		require.NoError(t, err)
	}

	assert.Len(t, sensors.sensors, 1, "same (device, owner) never creates a second sensor")
	assert.Len(t, readings.rows, 3)
}

func TestPipeline_ValidationFailureHasNoSideEffects(t *testing.T) {
	t.Parallel()

	sensors := newMockSensorRepo()
	readings := &mockReadingRepo{}
	evaluator := &mockEvaluator{}
	pipeline := newTestPipeline(sensors, readings, evaluator)

	_, err := pipeline.Ingest(t.Context(), &ReadingPayload{
		DeviceID:   "D1",
		UserID:     "U1",
		SensorType: "temperature",
	}, "http")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, sensors.sensors, "no sensor written on validation failure")
	assert.Empty(t, readings.rows, "no reading written on validation failure")
	assert.Empty(t, evaluator.evaluated)
}

func TestPipeline_RegistryFailureAbortsRequest(t *testing.T) {
	t.Parallel()

	sensors := newMockSensorRepo()
	sensors.failing = true
	readings := &mockReadingRepo{}
	pipeline := newTestPipeline(sensors, readings, &mockEvaluator{})

	_, err := pipeline.Ingest(t.Context(), &ReadingPayload{
		DeviceID:   "D1",
		UserID:     "U1",
		SensorType: "temperature",
		Value:      floatPtr(21),
	}, "http")
	require.Error(t, err)
	assert.Empty(t, readings.rows, "no orphaned readings without a resolvable sensor")
}

func TestPipeline_EvaluatorFailureDoesNotFailIngestion(t *testing.T) {
	t.Parallel()

	sensors := newMockSensorRepo()
	readings := &mockReadingRepo{}
	evaluator := &mockEvaluator{err: errors.New("threshold store down")}
	pipeline := newTestPipeline(sensors, readings, evaluator)

	result, err := pipeline.Ingest(t.Context(), &ReadingPayload{
		DeviceID:   "D1",
		UserID:     "U1",
		SensorType: "temperature",
		Value:      floatPtr(21),
	}, "http")
	require.NoError(t, err, "alerting is best-effort, durability is the contract")
	assert.Equal(t, 1, result.Count)
	assert.Len(t, readings.rows, 1)
}
