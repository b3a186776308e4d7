package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/verdantlab/gardensense/internal/datastore/entities"
	"github.com/verdantlab/gardensense/internal/datastore/repository"
	"github.com/verdantlab/gardensense/internal/logger"
	"github.com/verdantlab/gardensense/internal/observability"
)

// AlertEvaluator evaluates one persisted value against the owner's
// thresholds. Implemented by the alerting package.
type AlertEvaluator interface {
	EvaluateReading(ctx context.Context, sensor *entities.Sensor, sensorType entities.SensorType, value float64, observedAt time.Time) error
}

// Result summarizes one processed ingestion message.
type Result struct {
	DeviceID   string
	SensorType string // set for single-form messages only
	Count      int    // sensor-type values durably written
	Message    string
}

// Pipeline runs normalize → ensure identity → persist → evaluate for one
// inbound message. It holds no mutable state, so concurrent requests share
// one instance safely.
type Pipeline struct {
	sensors   repository.SensorRepository
	readings  repository.ReadingRepository
	evaluator AlertEvaluator
	metrics   *observability.Metrics
	log       logger.Logger
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(
	sensors repository.SensorRepository,
	readings repository.ReadingRepository,
	evaluator AlertEvaluator,
	metrics *observability.Metrics,
	log logger.Logger,
) *Pipeline {
	return &Pipeline{
		sensors:   sensors,
		readings:  readings,
		evaluator: evaluator,
		metrics:   metrics,
		log:       log,
	}
}

// Ingest processes one message. Validation failures return a wrapped
// ErrValidation before any write. Identity or reading persistence failures
// abort the request. Threshold evaluation runs after the reading is
// durable and never fails the request: alerting is a side channel, data
// durability is the contract.
func (p *Pipeline) Ingest(ctx context.Context, payload *ReadingPayload, source string) (*Result, error) {
	start := time.Now()

	normalized, err := Normalize(payload, time.Now())
	if err != nil {
		p.metrics.RecordIngestError("validation")
		return nil, err
	}

	sensor, err := p.sensors.Upsert(ctx, &entities.Sensor{
		DeviceID: normalized.DeviceID,
		UserID:   normalized.UserID,
		Name:     normalized.DeviceID,
		Type:     normalized.DeviceType,
		Location: normalized.Location,
		Status:   entities.SensorStatusActive,
	})
	if err != nil {
		p.metrics.RecordIngestError("registry")
		return nil, err
	}

	reading := &entities.Reading{
		SensorID:   sensor.ID,
		UserID:     normalized.UserID,
		ObservedAt: normalized.ObservedAt,
	}
	for _, point := range normalized.Points {
		reading.SetValue(point.Type, point.Value)
	}
	if err := p.readings.Append(ctx, reading); err != nil {
		p.metrics.RecordIngestError("timeseries")
		return nil, err
	}
	p.metrics.RecordReadings(source, len(normalized.Points))

	// The reading is committed; evaluation errors are logged, not returned.
	for _, point := range normalized.Points {
		if err := p.evaluator.EvaluateReading(ctx, sensor, point.Type, point.Value, normalized.ObservedAt); err != nil {
			p.metrics.RecordIngestError("alerting")
			p.log.Error("threshold evaluation failed",
				logger.String("device_id", sensor.DeviceID),
				logger.String("sensor_type", point.Type.String()),
				logger.Error(err))
		}
	}

	p.metrics.ObserveIngestDuration(time.Since(start).Seconds())
	p.log.Debug("ingested reading",
		logger.String("device_id", sensor.DeviceID),
		logger.Int("values", len(normalized.Points)),
		logger.String("source", source))

	result := &Result{
		DeviceID: normalized.DeviceID,
		Count:    len(normalized.Points),
		Message:  readingsMessage(len(normalized.Points)),
	}
	if len(normalized.Points) == 1 && normalized.DeviceType != entities.SensorTypeMulti {
		result.SensorType = string(normalized.Points[0].Type)
	}
	return result, nil
}

func readingsMessage(count int) string {
	if count == 1 {
		return "Processed 1 sensor reading"
	}
	return fmt.Sprintf("Processed %d sensor readings", count)
}
