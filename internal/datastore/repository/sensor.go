package repository

import (
	"context"

	"github.com/verdantlab/gardensense/internal/datastore/entities"
)

// SensorRepository handles device identity persistence.
type SensorRepository interface {
	// Upsert atomically inserts or refreshes a sensor keyed on
	// (device_id, user_id) and returns the durable row.
	Upsert(ctx context.Context, sensor *entities.Sensor) (*entities.Sensor, error)

	// GetByDeviceAndUser returns the sensor for a natural key.
	GetByDeviceAndUser(ctx context.Context, deviceID, userID string) (*entities.Sensor, error)

	// ListByUser returns all sensors owned by a user.
	ListByUser(ctx context.Context, userID string) ([]entities.Sensor, error)

	// UpdateStatus sets the status of a sensor.
	UpdateStatus(ctx context.Context, id uint, status string) error
}
