package dashboard

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlab/gardensense/internal/datastore/entities"
	"github.com/verdantlab/gardensense/internal/datastore/repository"
	"github.com/verdantlab/gardensense/internal/logger"
)

type stubReadingRepo struct {
	rows []entities.Reading
	err  error
}

func (s *stubReadingRepo) Append(_ context.Context, _ *entities.Reading) error { return nil }

func (s *stubReadingRepo) ListWindow(_ context.Context, _ string, _ uint, _ time.Time) ([]entities.Reading, error) {
	return s.rows, s.err
}

func (s *stubReadingRepo) ListBySensor(_ context.Context, _ uint, _ int) ([]entities.Reading, error) {
	return s.rows, nil
}

type stubThresholdRepo struct {
	threshold *entities.Threshold
}

func (s *stubThresholdRepo) Get(_ context.Context, _ string, _ uint, _ entities.SensorType) (*entities.Threshold, error) {
	if s.threshold == nil {
		return nil, repository.ErrThresholdNotFound
	}
	return s.threshold, nil
}

func (s *stubThresholdRepo) Upsert(_ context.Context, _ *entities.Threshold) error { return nil }
func (s *stubThresholdRepo) ListByUser(_ context.Context, _ string) ([]entities.Threshold, error) {
	return nil, nil
}
func (s *stubThresholdRepo) Delete(_ context.Context, _ string, _ uint) error { return nil }

func floatPtr(v float64) *float64 { return &v }

func temperatureReading(value float64, age time.Duration) entities.Reading {
	return entities.Reading{
		SensorID:    1,
		UserID:      "U1",
		Temperature: floatPtr(value),
		ObservedAt:  time.Now().Add(-age),
	}
}

func newTestAggregator(readings *stubReadingRepo, thresholds *stubThresholdRepo) *Aggregator {
	return NewAggregator(readings, thresholds, logger.NewSlogLogger(io.Discard, logger.LogLevelError, nil))
}

func findSummary(t *testing.T, summaries []MetricSummary, sensorType entities.SensorType) MetricSummary {
	t.Helper()
	for _, s := range summaries {
		if s.SensorType == sensorType {
			return s
		}
	}
	t.Fatalf("no summary for %s", sensorType)
	return MetricSummary{}
}

func TestComputeDashboard_EmptyWindowIsOffline(t *testing.T) {
	t.Parallel()

	agg := newTestAggregator(&stubReadingRepo{}, &stubThresholdRepo{})
	summaries, err := agg.ComputeDashboard(t.Context(), "U1", 0, WindowDay)
	require.NoError(t, err)

	require.Len(t, summaries, 4, "one tile per tracked metric")
	for _, s := range summaries {
		assert.Equal(t, StatusOffline, s.Status)
		assert.Equal(t, ValuePlaceholder, s.Value)
		assert.Equal(t, TrendStable, s.Trend)
	}
}

func TestComputeDashboard_LatestValueWins(t *testing.T) {
	t.Parallel()

	readings := &stubReadingRepo{rows: []entities.Reading{
		temperatureReading(22.5, time.Minute),
		temperatureReading(19, time.Hour),
	}}
	agg := newTestAggregator(readings, &stubThresholdRepo{})

	summaries, err := agg.ComputeDashboard(t.Context(), "U1", 0, WindowDay)
	require.NoError(t, err)

	temp := findSummary(t, summaries, entities.SensorTypeTemperature)
	assert.Equal(t, "22.5", temp.Value)
	assert.Equal(t, StatusOptimal, temp.Status, "no threshold configured defaults to optimal")
}

func TestComputeDashboard_SparseTypes(t *testing.T) {
	t.Parallel()

	row := entities.Reading{
		SensorID:    1,
		UserID:      "U1",
		Temperature: floatPtr(21),
		Humidity:    floatPtr(55),
		ObservedAt:  time.Now().Add(-time.Minute),
	}
	agg := newTestAggregator(&stubReadingRepo{rows: []entities.Reading{row}}, &stubThresholdRepo{})

	summaries, err := agg.ComputeDashboard(t.Context(), "U1", 0, WindowDay)
	require.NoError(t, err)

	assert.Equal(t, "21", findSummary(t, summaries, entities.SensorTypeTemperature).Value)
	assert.Equal(t, "55", findSummary(t, summaries, entities.SensorTypeHumidity).Value)
	assert.Equal(t, StatusOffline, findSummary(t, summaries, entities.SensorTypeSoilMoisture).Status)
	assert.Equal(t, StatusOffline, findSummary(t, summaries, entities.SensorTypeLight).Status)
}

func TestComputeDashboard_StatusFromThreshold(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		value float64
		want  string
	}{
		{name: "in range", value: 25, want: StatusOptimal},
		{name: "on the warning bound", value: 30, want: StatusOptimal},
		{name: "warning breach", value: 31, want: StatusWarning},
		{name: "critical breach", value: 36, want: StatusCritical},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			thresholds := &stubThresholdRepo{threshold: &entities.Threshold{
				UserID:      "U1",
				SensorID:    1,
				SensorType:  entities.SensorTypeTemperature,
				WarningMax:  floatPtr(30),
				CriticalMax: floatPtr(35),
			}}
			readings := &stubReadingRepo{rows: []entities.Reading{temperatureReading(tc.value, time.Minute)}}
			agg := newTestAggregator(readings, thresholds)

			summaries, err := agg.ComputeDashboard(t.Context(), "U1", 0, WindowDay)
			require.NoError(t, err)
			assert.Equal(t, tc.want, findSummary(t, summaries, entities.SensorTypeTemperature).Status)
		})
	}
}

func TestComputeDashboard_TrendFromWindow(t *testing.T) {
	t.Parallel()

	// Rows arrive newest first; the newest three average well above the rest.
	rows := make([]entities.Reading, 0, 10)
	for _, v := range []float64{15, 15, 15, 10, 10, 10, 10, 10, 10, 10} {
		rows = append(rows, temperatureReading(v, time.Duration(len(rows))*time.Minute))
	}
	agg := newTestAggregator(&stubReadingRepo{rows: rows}, &stubThresholdRepo{})

	summaries, err := agg.ComputeDashboard(t.Context(), "U1", 0, WindowDay)
	require.NoError(t, err)
	assert.Equal(t, TrendUp, findSummary(t, summaries, entities.SensorTypeTemperature).Trend)
}

func TestParseWindow(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"24h", "7d", "30d"} {
		w, err := ParseWindow(valid)
		require.NoError(t, err)
		assert.Equal(t, Window(valid), w)
	}

	_, err := ParseWindow("48h")
	assert.Error(t, err)

	assert.Equal(t, 7*24*time.Hour, WindowWeek.Duration())
	assert.Equal(t, 30*24*time.Hour, WindowMonth.Duration())
	assert.Equal(t, 24*time.Hour, WindowDay.Duration())
}
