package entities

import "time"

// Alert severity classes.
const (
	AlertSeverityCritical = "critical"
	AlertSeverityWarning  = "warning"
	AlertSeverityInfo     = "info"
)

// Alert is a stateful incident raised when a reading breaches a threshold.
//
// OpenSlot enforces at most one unresolved alert per (sensor, sensor type):
// it holds the sensor type while the alert is open and is set to NULL on
// resolution. The unique index on (sensor_id, open_slot) then rejects a
// second open alert for the same key, while any number of resolved rows
// coexist (NULL never collides). The insert is a single conditional write,
// never read-then-check.
type Alert struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         string     `gorm:"size:64;not null;index" json:"user_id"`
	SensorID       uint       `gorm:"not null;index;uniqueIndex:idx_alerts_open_slot,priority:1" json:"sensor_id"`
	SensorType     SensorType `gorm:"size:50;not null" json:"sensor_type"`
	Severity       string     `gorm:"size:20;not null" json:"severity"`
	Value          float64    `gorm:"not null" json:"value"`
	ThresholdValue float64    `gorm:"not null" json:"threshold_value"`
	Message        string     `gorm:"size:500;default:''" json:"message"`
	IsResolved     bool       `gorm:"not null;default:false;index" json:"is_resolved"`
	OpenSlot       *string    `gorm:"size:50;uniqueIndex:idx_alerts_open_slot,priority:2" json:"-"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
}

// TableName returns the table name for GORM.
func (Alert) TableName() string {
	return "alerts"
}
