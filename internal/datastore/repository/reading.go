package repository

import (
	"context"
	"time"

	"github.com/verdantlab/gardensense/internal/datastore/entities"
)

// ReadingRepository handles time-series persistence. Readings are
// append-only; there is no update or delete path.
type ReadingRepository interface {
	// Append durably writes one reading row. The row may carry several
	// sensor-type values observed at the same instant; the write is atomic.
	Append(ctx context.Context, reading *entities.Reading) error

	// ListWindow returns all readings for a user newer than since, newest
	// first. sensorID restricts to one device when non-zero.
	ListWindow(ctx context.Context, userID string, sensorID uint, since time.Time) ([]entities.Reading, error)

	// ListBySensor returns the most recent readings for one sensor.
	ListBySensor(ctx context.Context, sensorID uint, limit int) ([]entities.Reading, error)
}
