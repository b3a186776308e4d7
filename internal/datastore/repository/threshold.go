package repository

import (
	"context"

	"github.com/verdantlab/gardensense/internal/datastore/entities"
)

// ThresholdRepository handles per-user, per-sensor threshold configuration.
type ThresholdRepository interface {
	// Get returns the threshold for a (user, sensor, type) key.
	// Returns ErrThresholdNotFound when none is configured.
	Get(ctx context.Context, userID string, sensorID uint, sensorType entities.SensorType) (*entities.Threshold, error)

	// Upsert creates or replaces the threshold for its
	// (user, sensor, type) key.
	Upsert(ctx context.Context, threshold *entities.Threshold) error

	// ListByUser returns all thresholds a user has configured.
	ListByUser(ctx context.Context, userID string) ([]entities.Threshold, error)

	// Delete removes a threshold by ID, scoped to its owner.
	Delete(ctx context.Context, userID string, id uint) error
}
