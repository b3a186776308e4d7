package entities

import "time"

// Reading is one immutable, timestamped observation from a sensor. It is a
// wide sparse row: one optional column per sensor type, only the columns
// present in the source payload are set. Rows are append-only; corrections
// are new rows.
type Reading struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	SensorID     uint       `gorm:"not null;index:idx_readings_sensor_time,priority:1" json:"sensor_id"`
	UserID       string     `gorm:"size:64;not null;index:idx_readings_user_time,priority:1" json:"user_id"`
	Temperature  *float64   `json:"temperature,omitempty"`
	Humidity     *float64   `json:"humidity,omitempty"`
	SoilMoisture *float64   `json:"soil_moisture,omitempty"`
	PHLevel      *float64   `json:"ph_level,omitempty"`
	Nutrients    *float64   `json:"nutrients,omitempty"`
	LightLevel   *float64   `json:"light_level,omitempty"`
	ObservedAt   time.Time  `gorm:"not null;index:idx_readings_sensor_time,priority:2;index:idx_readings_user_time,priority:2" json:"observed_at"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	Sensor       Sensor     `gorm:"foreignKey:SensorID;constraint:OnDelete:CASCADE" json:"sensor,omitzero"`
}

// TableName returns the table name for GORM.
func (Reading) TableName() string {
	return "readings"
}

// Value returns the stored value for the given sensor type, or nil when the
// reading does not carry that type.
func (r *Reading) Value(t SensorType) *float64 {
	switch t {
	case SensorTypeTemperature:
		return r.Temperature
	case SensorTypeHumidity:
		return r.Humidity
	case SensorTypeSoilMoisture:
		return r.SoilMoisture
	case SensorTypePH:
		return r.PHLevel
	case SensorTypeNPK:
		return r.Nutrients
	case SensorTypeLight:
		return r.LightLevel
	default:
		return nil
	}
}

// SetValue stores a value for the given sensor type. Unknown types are
// ignored; the set of columns is closed.
func (r *Reading) SetValue(t SensorType, v float64) {
	switch t {
	case SensorTypeTemperature:
		r.Temperature = &v
	case SensorTypeHumidity:
		r.Humidity = &v
	case SensorTypeSoilMoisture:
		r.SoilMoisture = &v
	case SensorTypePH:
		r.PHLevel = &v
	case SensorTypeNPK:
		r.Nutrients = &v
	case SensorTypeLight:
		r.LightLevel = &v
	}
}

// ValueCount returns the number of sensor types present on this row.
func (r *Reading) ValueCount() int {
	var n int
	for _, t := range AllSensorTypes {
		if r.Value(t) != nil {
			n++
		}
	}
	return n
}
