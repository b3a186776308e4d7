package entities

import "time"

// Sensor status values.
const (
	SensorStatusActive   = "active"
	SensorStatusInactive = "inactive"
	SensorStatusError    = "error"
)

// SensorTypeMulti marks a composite device reporting several quantities.
const SensorTypeMulti = "multi_sensor"

// Sensor is a registered device owned by a user. The (device_id, user_id)
// pair is the natural key: the ingestion pipeline upserts on it, so at most
// one row exists per pair.
type Sensor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DeviceID  string    `gorm:"size:100;not null;uniqueIndex:idx_sensors_device_user,priority:1" json:"device_id"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex:idx_sensors_device_user,priority:2;index" json:"user_id"`
	Name      string    `gorm:"size:255;default:''" json:"name"`
	Type      string    `gorm:"size:50;not null" json:"type"`
	Location  string    `gorm:"size:255;default:''" json:"location"`
	Status    string    `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for GORM.
func (Sensor) TableName() string {
	return "sensors"
}
