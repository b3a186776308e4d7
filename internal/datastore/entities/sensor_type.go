// Package entities defines the persisted data model.
package entities

// SensorType identifies one physical quantity a device can report.
// The set is closed: values outside it are rejected at the edge.
type SensorType string

const (
	SensorTypeTemperature  SensorType = "temperature"
	SensorTypeHumidity     SensorType = "humidity"
	SensorTypeSoilMoisture SensorType = "soil_moisture"
	SensorTypePH           SensorType = "ph"
	SensorTypeNPK          SensorType = "npk"
	SensorTypeLight        SensorType = "light"
)

// AllSensorTypes lists every supported type in canonical order. Batch
// payloads are normalized into this order so output is deterministic.
var AllSensorTypes = []SensorType{
	SensorTypeTemperature,
	SensorTypeHumidity,
	SensorTypeSoilMoisture,
	SensorTypePH,
	SensorTypeNPK,
	SensorTypeLight,
}

// ParseSensorType validates a wire-format sensor type string.
func ParseSensorType(s string) (SensorType, bool) {
	t := SensorType(s)
	switch t {
	case SensorTypeTemperature, SensorTypeHumidity, SensorTypeSoilMoisture,
		SensorTypePH, SensorTypeNPK, SensorTypeLight:
		return t, true
	default:
		return "", false
	}
}

func (t SensorType) String() string {
	return string(t)
}

// DisplayName returns the human-readable label used by the dashboard.
func (t SensorType) DisplayName() string {
	switch t {
	case SensorTypeTemperature:
		return "Temperature"
	case SensorTypeHumidity:
		return "Humidity"
	case SensorTypeSoilMoisture:
		return "Soil Moisture"
	case SensorTypePH:
		return "pH Level"
	case SensorTypeNPK:
		return "Nutrients"
	case SensorTypeLight:
		return "Light Level"
	default:
		return string(t)
	}
}
