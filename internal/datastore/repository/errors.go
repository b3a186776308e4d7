// Package repository defines store access interfaces and their GORM
// implementations.
package repository

import "errors"

var (
	// ErrSensorNotFound is returned when a sensor lookup matches no row.
	ErrSensorNotFound = errors.New("sensor not found")
	// ErrThresholdNotFound is returned when no threshold is configured for
	// the requested (user, sensor, type) key.
	ErrThresholdNotFound = errors.New("threshold not found")
	// ErrAlertNotFound is returned when an alert lookup or resolve matches
	// no row.
	ErrAlertNotFound = errors.New("alert not found")
)
