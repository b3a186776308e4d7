// Package conf loads and holds the application configuration.
package conf

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Database backend types.
const (
	DatabaseSQLite = "sqlite"
	DatabaseMySQL  = "mysql"
)

// ServerSettings configures the HTTP listener.
type ServerSettings struct {
	Host            string   `mapstructure:"host"`
	Port            int      `mapstructure:"port"`
	ShutdownTimeout Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseSettings selects and configures the backing store.
type DatabaseSettings struct {
	Type string `mapstructure:"type"` // sqlite or mysql
	Path string `mapstructure:"path"` // sqlite file path
	DSN  string `mapstructure:"dsn"`  // mysql DSN
}

// MQTTSettings configures the optional MQTT ingest source.
type MQTTSettings struct {
	Enabled        bool     `mapstructure:"enabled"`
	Broker         string   `mapstructure:"broker"`
	Topic          string   `mapstructure:"topic"`
	ClientID       string   `mapstructure:"client_id"`
	Username       string   `mapstructure:"username"`
	Password       string   `mapstructure:"password"`
	ConnectTimeout Duration `mapstructure:"connect_timeout"`
}

// AlertingSettings configures the threshold evaluator.
type AlertingSettings struct {
	ThresholdCacheTTL Duration `mapstructure:"threshold_cache_ttl"`
}

// DashboardSettings configures the aggregation read path.
type DashboardSettings struct {
	DefaultWindow string `mapstructure:"default_window"`
}

// Settings is the root configuration object, injected into components
// rather than read from a global.
type Settings struct {
	Server    ServerSettings    `mapstructure:"server"`
	Database  DatabaseSettings  `mapstructure:"database"`
	MQTT      MQTTSettings      `mapstructure:"mqtt"`
	Alerting  AlertingSettings  `mapstructure:"alerting"`
	Dashboard DashboardSettings `mapstructure:"dashboard"`
	LogLevel  string            `mapstructure:"log_level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("database.type", DatabaseSQLite)
	v.SetDefault("database.path", "gardensense.db")
	v.SetDefault("mqtt.enabled", false)
	v.SetDefault("mqtt.topic", "gardensense/+/readings")
	v.SetDefault("mqtt.connect_timeout", "30s")
	v.SetDefault("alerting.threshold_cache_ttl", "30s")
	v.SetDefault("dashboard.default_window", "24h")
	v.SetDefault("log_level", "info")
}

// Load reads configuration from the given file (optional), the working
// directory and environment variables, applying defaults for anything unset.
func Load(configFile string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("GARDENSENSE")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("gardensense")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/gardensense")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// No config file is fine, defaults and env apply.
	}

	var settings Settings
	decodeOpt := viper.DecodeHook(DurationDecodeHook())
	if err := v.Unmarshal(&settings, decodeOpt); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate checks configuration invariants that defaults cannot guarantee.
func (s *Settings) Validate() error {
	switch s.Database.Type {
	case DatabaseSQLite:
		if s.Database.Path == "" {
			return fmt.Errorf("database.path is required for sqlite")
		}
	case DatabaseMySQL:
		if s.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for mysql")
		}
	default:
		return fmt.Errorf("unsupported database.type %q", s.Database.Type)
	}
	if s.MQTT.Enabled && s.MQTT.Broker == "" {
		return fmt.Errorf("mqtt.broker is required when mqtt is enabled")
	}
	return nil
}
