// Package ingest normalizes inbound device messages and drives the
// persist-then-evaluate pipeline.
package ingest

import (
	"errors"
	"time"

	"github.com/verdantlab/gardensense/internal/datastore/entities"
)

// ErrValidation marks payloads rejected before any side effect. Callers map
// it to a 400-class response.
var ErrValidation = errors.New("invalid payload")

// ReadingPayload is the wire format of one ingestion message. A message is
// either single form (SensorType + Value set) or batch form (Sensors set);
// both share the device and owner context.
type ReadingPayload struct {
	DeviceID   string              `json:"device_id"`
	UserID     string              `json:"user_id"`
	SensorType string              `json:"sensor_type,omitempty"`
	Value      *float64            `json:"value,omitempty"`
	Location   string              `json:"location,omitempty"`
	Timestamp  string              `json:"timestamp,omitempty"`
	Sensors    map[string]*float64 `json:"sensors,omitempty"`
}

// Point is one normalized (sensor type, value) pair.
type Point struct {
	Type  entities.SensorType
	Value float64
}

// NormalizedReading is the canonical output of payload validation: an
// ordered point set sharing one device, owner and observation instant.
type NormalizedReading struct {
	DeviceID   string
	UserID     string
	Location   string
	DeviceType string // declared sensor type, or multi_sensor for batches
	ObservedAt time.Time
	Points     []Point
}
