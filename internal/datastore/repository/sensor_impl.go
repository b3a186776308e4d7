package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/verdantlab/gardensense/internal/datastore/entities"
)

// sensorRepository implements SensorRepository.
type sensorRepository struct {
	db *gorm.DB
}

// NewSensorRepository creates a new SensorRepository.
func NewSensorRepository(db *gorm.DB) SensorRepository {
	return &sensorRepository{db: db}
}

// Upsert inserts the sensor or, when the (device_id, user_id) key already
// exists, refreshes its mutable metadata. The conflict clause makes this a
// single conditional write so concurrent messages from the same device
// cannot create duplicate rows.
func (r *sensorRepository) Upsert(ctx context.Context, sensor *entities.Sensor) (*entities.Sensor, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "device_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"location", "status", "updated_at",
			}),
		}).
		Create(sensor).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert sensor %s: %w", sensor.DeviceID, err)
	}

	// On conflict GORM does not reliably backfill the surviving row's ID,
	// so re-read by natural key.
	return r.GetByDeviceAndUser(ctx, sensor.DeviceID, sensor.UserID)
}

// GetByDeviceAndUser returns the sensor for a (device_id, user_id) pair.
func (r *sensorRepository) GetByDeviceAndUser(ctx context.Context, deviceID, userID string) (*entities.Sensor, error) {
	var sensor entities.Sensor
	err := r.db.WithContext(ctx).
		Where("device_id = ? AND user_id = ?", deviceID, userID).
		First(&sensor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSensorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sensor %s: %w", deviceID, err)
	}
	return &sensor, nil
}

// ListByUser returns all sensors owned by a user, newest first.
func (r *sensorRepository) ListByUser(ctx context.Context, userID string) ([]entities.Sensor, error) {
	var sensors []entities.Sensor
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&sensors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sensors for user %s: %w", userID, err)
	}
	return sensors, nil
}

// UpdateStatus sets the status of a sensor.
func (r *sensorRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Sensor{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update sensor %d status: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSensorNotFound
	}
	return nil
}
