package alerting

import (
	"context"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/verdantlab/gardensense/internal/datastore/entities"
	"github.com/verdantlab/gardensense/internal/datastore/repository"
	"github.com/verdantlab/gardensense/internal/logger"
	"github.com/verdantlab/gardensense/internal/observability"
)

// NotificationCreator abstracts the notification service for testability.
type NotificationCreator interface {
	CreateAndBroadcast(title, message string) error
}

// Evaluator compares incoming values against the owner's thresholds and
// transitions alerts between absent and open. Resolution is driven by the
// owner through the API, never by the evaluator itself: an open alert stays
// open across further breaching samples, one incident per breach.
type Evaluator struct {
	thresholds repository.ThresholdRepository
	alerts     repository.AlertRepository
	notifier   NotificationCreator
	cache      *gocache.Cache
	metrics    *observability.Metrics
	log        logger.Logger
}

// thresholdEntry caches a lookup result, including the negative case so an
// unthresholded sensor does not hit the store on every sample.
type thresholdEntry struct {
	threshold *entities.Threshold
}

// NewEvaluator creates a threshold evaluator. cacheTTL bounds how long a
// threshold edit may take to reach the hot path.
func NewEvaluator(
	thresholds repository.ThresholdRepository,
	alerts repository.AlertRepository,
	notifier NotificationCreator,
	cacheTTL time.Duration,
	metrics *observability.Metrics,
	log logger.Logger,
) *Evaluator {
	return &Evaluator{
		thresholds: thresholds,
		alerts:     alerts,
		notifier:   notifier,
		cache:      gocache.New(cacheTTL, 2*cacheTTL),
		metrics:    metrics,
		log:        log,
	}
}

// EvaluateReading classifies one persisted value and opens an alert when it
// breaches a configured bound and no unresolved alert for the same
// (sensor, sensor type) exists. The existence check is a conditional write
// inside the alert store, so racing samples cannot double-open.
func (e *Evaluator) EvaluateReading(ctx context.Context, sensor *entities.Sensor, sensorType entities.SensorType, value float64, observedAt time.Time) error {
	threshold, err := e.lookupThreshold(ctx, sensor.UserID, sensor.ID, sensorType)
	if err != nil {
		return err
	}

	level := Classify(value, threshold)
	if level == LevelNormal {
		return nil
	}

	limit, belowMin := BreachedBound(value, threshold, level)
	alert := &entities.Alert{
		UserID:         sensor.UserID,
		SensorID:       sensor.ID,
		SensorType:     sensorType,
		Severity:       level.Severity(),
		Value:          value,
		ThresholdValue: limit,
		Message:        alertMessage(sensor, sensorType, level, value, limit, belowMin),
	}

	created, err := e.alerts.CreateIfAbsent(ctx, alert)
	if err != nil {
		return err
	}
	if !created {
		// An incident is already open for this key; no duplicate spam.
		return nil
	}

	e.metrics.RecordAlertOpened(alert.Severity)
	e.log.Info("alert opened",
		logger.String("device_id", sensor.DeviceID),
		logger.String("sensor_type", sensorType.String()),
		logger.String("severity", alert.Severity),
		logger.Float64("value", value))

	if e.notifier != nil {
		title := fmt.Sprintf("%s alert: %s", sensorType.DisplayName(), sensor.Name)
		if err := e.notifier.CreateAndBroadcast(title, alert.Message); err != nil {
			e.log.Error("failed to broadcast alert notification", logger.Error(err))
		}
	}
	return nil
}

// InvalidateThreshold purges a cached threshold after an owner edit.
func (e *Evaluator) InvalidateThreshold(userID string, sensorID uint, sensorType entities.SensorType) {
	e.cache.Delete(thresholdCacheKey(userID, sensorID, sensorType))
}

func (e *Evaluator) lookupThreshold(ctx context.Context, userID string, sensorID uint, sensorType entities.SensorType) (*entities.Threshold, error) {
	key := thresholdCacheKey(userID, sensorID, sensorType)
	if cached, ok := e.cache.Get(key); ok {
		return cached.(*thresholdEntry).threshold, nil
	}

	threshold, err := e.thresholds.Get(ctx, userID, sensorID, sensorType)
	if err != nil {
		if errors.Is(err, repository.ErrThresholdNotFound) {
			e.cache.SetDefault(key, &thresholdEntry{})
			return nil, nil
		}
		return nil, err
	}
	e.cache.SetDefault(key, &thresholdEntry{threshold: threshold})
	return threshold, nil
}

func thresholdCacheKey(userID string, sensorID uint, sensorType entities.SensorType) string {
	return fmt.Sprintf("%s:%d:%s", userID, sensorID, sensorType)
}

func alertMessage(sensor *entities.Sensor, sensorType entities.SensorType, level Level, value, limit float64, belowMin bool) string {
	direction := "above"
	bound := "maximum"
	if belowMin {
		direction = "below"
		bound = "minimum"
	}
	return fmt.Sprintf("%s on %s is %s: %g is %s the %s %s of %g",
		sensorType.DisplayName(), sensor.Name, level.String(), value, direction, level.String(), bound, limit)
}
