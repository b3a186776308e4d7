package entities

import "time"

// Threshold holds the warning and critical bounds one owner configured for
// one sensor and sensor type. Each bound is independently optional; a nil
// bound never triggers. Uniqueness per (user_id, sensor_id, sensor_type)
// makes the row an upsert target.
type Threshold struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      string     `gorm:"size:64;not null;uniqueIndex:idx_thresholds_key,priority:1" json:"user_id"`
	SensorID    uint       `gorm:"not null;uniqueIndex:idx_thresholds_key,priority:2" json:"sensor_id"`
	SensorType  SensorType `gorm:"size:50;not null;uniqueIndex:idx_thresholds_key,priority:3" json:"sensor_type"`
	WarningMin  *float64   `json:"warning_min,omitempty"`
	WarningMax  *float64   `json:"warning_max,omitempty"`
	CriticalMin *float64   `json:"critical_min,omitempty"`
	CriticalMax *float64   `json:"critical_max,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for GORM.
func (Threshold) TableName() string {
	return "thresholds"
}
