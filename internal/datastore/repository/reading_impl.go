package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/verdantlab/gardensense/internal/datastore/entities"
)

// readingRepository implements ReadingRepository.
type readingRepository struct {
	db *gorm.DB
}

// NewReadingRepository creates a new ReadingRepository.
func NewReadingRepository(db *gorm.DB) ReadingRepository {
	return &readingRepository{db: db}
}

// Append durably writes one reading row. A single INSERT is atomic, so all
// sensor-type values on the row land together or not at all.
func (r *readingRepository) Append(ctx context.Context, reading *entities.Reading) error {
	if err := r.db.WithContext(ctx).Create(reading).Error; err != nil {
		return fmt.Errorf("failed to append reading for sensor %d: %w", reading.SensorID, err)
	}
	return nil
}

// ListWindow returns all readings for a user observed after since, newest
// first. A zero sensorID means all of the user's devices.
func (r *readingRepository) ListWindow(ctx context.Context, userID string, sensorID uint, since time.Time) ([]entities.Reading, error) {
	var readings []entities.Reading
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND observed_at > ?", userID, since)
	if sensorID > 0 {
		query = query.Where("sensor_id = ?", sensorID)
	}
	if err := query.Order("observed_at DESC").Find(&readings).Error; err != nil {
		return nil, fmt.Errorf("failed to list readings for user %s: %w", userID, err)
	}
	return readings, nil
}

// ListBySensor returns the most recent readings for one sensor.
func (r *readingRepository) ListBySensor(ctx context.Context, sensorID uint, limit int) ([]entities.Reading, error) {
	var readings []entities.Reading
	query := r.db.WithContext(ctx).
		Where("sensor_id = ?", sensorID).
		Order("observed_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&readings).Error; err != nil {
		return nil, fmt.Errorf("failed to list readings for sensor %d: %w", sensorID, err)
	}
	return readings, nil
}
