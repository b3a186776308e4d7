package repository

import (
	"context"

	"github.com/verdantlab/gardensense/internal/datastore/entities"
)

// AlertRepository handles alert incident persistence.
type AlertRepository interface {
	// CreateIfAbsent inserts the alert unless one is already open for the
	// same (sensor, sensor type). Returns true when a row was created.
	// The check-and-insert is a single conditional write.
	CreateIfAbsent(ctx context.Context, alert *entities.Alert) (bool, error)

	// Resolve marks an alert resolved and frees its open slot.
	// Returns ErrAlertNotFound for a missing or already-resolved alert.
	Resolve(ctx context.Context, userID string, id uint) error

	// List returns a user's alerts, newest first. resolved filters on the
	// resolved flag when non-nil.
	List(ctx context.Context, filter AlertFilter) ([]entities.Alert, error)

	// CountOpen returns the number of unresolved alerts for a user.
	CountOpen(ctx context.Context, userID string) (int64, error)
}

// AlertFilter controls alert listing queries.
type AlertFilter struct {
	UserID   string
	SensorID uint
	Resolved *bool
	Limit    int
}
