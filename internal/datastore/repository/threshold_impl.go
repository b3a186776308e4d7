package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/verdantlab/gardensense/internal/datastore/entities"
)

// thresholdRepository implements ThresholdRepository.
type thresholdRepository struct {
	db *gorm.DB
}

// NewThresholdRepository creates a new ThresholdRepository.
func NewThresholdRepository(db *gorm.DB) ThresholdRepository {
	return &thresholdRepository{db: db}
}

// Get returns the threshold for a (user, sensor, type) key.
func (r *thresholdRepository) Get(ctx context.Context, userID string, sensorID uint, sensorType entities.SensorType) (*entities.Threshold, error) {
	var threshold entities.Threshold
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND sensor_id = ? AND sensor_type = ?", userID, sensorID, sensorType).
		First(&threshold).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrThresholdNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get threshold for sensor %d type %s: %w", sensorID, sensorType, err)
	}
	return &threshold, nil
}

// Upsert creates or replaces the threshold for its (user, sensor, type) key.
func (r *thresholdRepository) Upsert(ctx context.Context, threshold *entities.Threshold) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "sensor_id"}, {Name: "sensor_type"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"warning_min", "warning_max", "critical_min", "critical_max", "updated_at",
			}),
		}).
		Create(threshold).Error
	if err != nil {
		return fmt.Errorf("failed to upsert threshold for sensor %d type %s: %w",
			threshold.SensorID, threshold.SensorType, err)
	}
	return nil
}

// ListByUser returns all thresholds a user has configured.
func (r *thresholdRepository) ListByUser(ctx context.Context, userID string) ([]entities.Threshold, error) {
	var thresholds []entities.Threshold
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sensor_id ASC, sensor_type ASC").
		Find(&thresholds).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list thresholds for user %s: %w", userID, err)
	}
	return thresholds, nil
}

// Delete removes a threshold by ID, scoped to its owner.
func (r *thresholdRepository) Delete(ctx context.Context, userID string, id uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&entities.Threshold{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete threshold %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrThresholdNotFound
	}
	return nil
}
