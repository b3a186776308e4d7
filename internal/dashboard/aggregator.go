package dashboard

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/verdantlab/gardensense/internal/alerting"
	"github.com/verdantlab/gardensense/internal/datastore/entities"
	"github.com/verdantlab/gardensense/internal/datastore/repository"
	"github.com/verdantlab/gardensense/internal/logger"
)

// Metric status classifications.
const (
	StatusOptimal  = "optimal"
	StatusWarning  = "warning"
	StatusCritical = "critical"
	StatusOffline  = "offline"
)

// ValuePlaceholder is displayed when a metric has no readings in the window.
const ValuePlaceholder = "--"

// trackedTypes is the fixed metric set the dashboard displays.
var trackedTypes = []entities.SensorType{
	entities.SensorTypeTemperature,
	entities.SensorTypeHumidity,
	entities.SensorTypeSoilMoisture,
	entities.SensorTypeLight,
}

// MetricSummary is one dashboard tile.
type MetricSummary struct {
	Name         string              `json:"name"`
	SensorType   entities.SensorType `json:"sensor_type"`
	Value        string              `json:"value"`
	OptimalRange string              `json:"optimal_range"`
	Status       string              `json:"status"`
	Trend        string              `json:"trend"`
}

// Aggregator turns a raw reading window into per-metric summaries.
type Aggregator struct {
	readings   repository.ReadingRepository
	thresholds repository.ThresholdRepository
	log        logger.Logger
}

// NewAggregator creates a dashboard aggregator.
func NewAggregator(readings repository.ReadingRepository, thresholds repository.ThresholdRepository, log logger.Logger) *Aggregator {
	return &Aggregator{
		readings:   readings,
		thresholds: thresholds,
		log:        log,
	}
}

// ComputeDashboard summarizes the user's readings within the window, one
// summary per tracked sensor type. sensorID restricts to one device when
// non-zero. A metric with no readings reports offline with a placeholder
// value; a freshly provisioned account yields all-offline tiles, never an
// error.
func (a *Aggregator) ComputeDashboard(ctx context.Context, userID string, sensorID uint, window Window) ([]MetricSummary, error) {
	since := time.Now().Add(-window.Duration())
	rows, err := a.readings.ListWindow(ctx, userID, sensorID, since)
	if err != nil {
		return nil, err
	}

	summaries := make([]MetricSummary, 0, len(trackedTypes))
	for _, sensorType := range trackedTypes {
		summaries = append(summaries, a.summarize(ctx, userID, sensorType, rows))
	}
	return summaries, nil
}

// summarize builds one metric tile from the newest-first reading window.
func (a *Aggregator) summarize(ctx context.Context, userID string, sensorType entities.SensorType, rows []entities.Reading) MetricSummary {
	summary := MetricSummary{
		Name:         sensorType.DisplayName(),
		SensorType:   sensorType,
		Value:        ValuePlaceholder,
		OptimalRange: optimalRange(sensorType),
		Status:       StatusOffline,
		Trend:        TrendStable,
	}

	// Collect the newest values carrying this type; rows are newest first.
	var (
		values         []float64 // newest first, capped at the trend sample
		latest         *float64
		latestSensorID uint
	)
	for i := range rows {
		v := rows[i].Value(sensorType)
		if v == nil {
			continue
		}
		if latest == nil {
			latest = v
			latestSensorID = rows[i].SensorID
		}
		if len(values) < trendSampleSize {
			values = append(values, *v)
		}
	}
	if latest == nil {
		return summary
	}

	summary.Value = strconv.FormatFloat(*latest, 'f', -1, 64)
	summary.Status = a.classifyStatus(ctx, userID, latestSensorID, sensorType, *latest)

	// Reverse to chronological order for the trend comparison.
	chronological := make([]float64, len(values))
	for i, v := range values {
		chronological[len(values)-1-i] = v
	}
	summary.Trend = ComputeTrend(chronological)

	return summary
}

// classifyStatus applies the same three-tier threshold classification the
// ingestion evaluator uses, defaulting to optimal for unthresholded
// metrics. Lookup failures degrade to optimal rather than failing the
// dashboard read.
func (a *Aggregator) classifyStatus(ctx context.Context, userID string, sensorID uint, sensorType entities.SensorType, value float64) string {
	threshold, err := a.thresholds.Get(ctx, userID, sensorID, sensorType)
	if err != nil {
		if !errors.Is(err, repository.ErrThresholdNotFound) {
			a.log.Warn("threshold lookup failed for dashboard",
				logger.String("sensor_type", sensorType.String()),
				logger.Error(err))
		}
		return StatusOptimal
	}

	switch alerting.Classify(value, threshold) {
	case alerting.LevelCritical:
		return StatusCritical
	case alerting.LevelWarning:
		return StatusWarning
	default:
		return StatusOptimal
	}
}

// optimalRange is a static display label per sensor type, not derived from
// data.
func optimalRange(sensorType entities.SensorType) string {
	switch sensorType {
	case entities.SensorTypeTemperature:
		return "18-26 °C"
	case entities.SensorTypeHumidity:
		return "40-70 %"
	case entities.SensorTypeSoilMoisture:
		return "30-60 %"
	case entities.SensorTypeLight:
		return "10000-25000 lux"
	default:
		return ""
	}
}
