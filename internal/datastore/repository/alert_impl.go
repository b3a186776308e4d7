package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/verdantlab/gardensense/internal/datastore/entities"
)

// alertRepository implements AlertRepository.
type alertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new AlertRepository.
func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

// CreateIfAbsent inserts the alert unless an unresolved one already occupies
// the (sensor_id, open_slot) slot. The slot column carries the sensor type
// while open, so the conflict clause turns "is there already an open alert
// for this key" into one atomic insert that racing requests cannot split.
func (r *alertRepository) CreateIfAbsent(ctx context.Context, alert *entities.Alert) (bool, error) {
	slot := string(alert.SensorType)
	alert.OpenSlot = &slot
	alert.IsResolved = false

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sensor_id"}, {Name: "open_slot"}},
			DoNothing: true,
		}).
		Create(alert)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create alert for sensor %d type %s: %w",
			alert.SensorID, alert.SensorType, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Resolve marks an alert resolved and clears its open slot so the next
// breach can raise a fresh incident.
func (r *alertRepository) Resolve(ctx context.Context, userID string, id uint) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&entities.Alert{}).
		Where("id = ? AND user_id = ? AND is_resolved = ?", id, userID, false).
		Updates(map[string]any{
			"is_resolved": true,
			"resolved_at": now,
			"open_slot":   nil,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to resolve alert %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAlertNotFound
	}
	return nil
}

// List returns alerts matching the filter, newest first.
func (r *alertRepository) List(ctx context.Context, filter AlertFilter) ([]entities.Alert, error) {
	var alerts []entities.Alert
	query := r.db.WithContext(ctx).Where("user_id = ?", filter.UserID)
	if filter.SensorID > 0 {
		query = query.Where("sensor_id = ?", filter.SensorID)
	}
	if filter.Resolved != nil {
		query = query.Where("is_resolved = ?", *filter.Resolved)
	}
	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if err := query.Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to list alerts for user %s: %w", filter.UserID, err)
	}
	return alerts, nil
}

// CountOpen returns the number of unresolved alerts for a user.
func (r *alertRepository) CountOpen(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Alert{}).
		Where("user_id = ? AND is_resolved = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count open alerts for user %s: %w", userID, err)
	}
	return count, nil
}
