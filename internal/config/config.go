package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides: AQUABOT_SERVER_PORT overrides server.port.
const EnvPrefix = "AQUABOT"

// Config holds the service configuration.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	DB        DBConfig
	Telemetry TelemetryConfig
	Stream    StreamConfig
	Redis     RedisConfig
	Simulator SimulatorConfig
	Metrics   MetricsConfig
	MQTT      MQTTConfig
}

type ServerConfig struct {
	Port string
	Mode string // debug, release, test
}

type LogConfig struct {
	Level  string
	Format string // console, json
}

type DBConfig struct {
	Path string
}

// TelemetryConfig sizes the recency window served by GET /api/data.
type TelemetryConfig struct {
	Window int
}

type StreamConfig struct {
	Interval time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type SimulatorConfig struct {
	Enabled bool
	Tick    time.Duration
}

type MetricsConfig struct {
	Enabled bool
}

// MQTTConfig enables ingestion from a broker topic alongside POST /api/data.
type MQTTConfig struct {
	Enabled  bool
	Broker   string
	Topic    string
	ClientID string
	QoS      int
	Username string
	Password string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3001")
	v.SetDefault("server.mode", "release")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("db.path", "aquabot.db")

	v.SetDefault("telemetry.window", 10)
	v.SetDefault("stream.interval", 500*time.Millisecond)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 30*time.Second)

	v.SetDefault("simulator.enabled", false)
	v.SetDefault("simulator.tick", time.Second)

	v.SetDefault("metrics.enabled", true)

	v.SetDefault("mqtt.enabled", false)
	v.SetDefault("mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("mqtt.topic", "aquabot/telemetry")
	v.SetDefault("mqtt.client_id", "aquabot-telemetry")
	v.SetDefault("mqtt.qos", 1)
	v.SetDefault("mqtt.username", "")
	v.SetDefault("mqtt.password", "")
}

// Load reads cfgFile (or configs/config.yml when empty), applies AQUABOT_* env
// overrides on top of the defaults and decodes the result.
// A missing default config file is not an error; a missing explicit one is.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath("configs")
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("server.port"),
			Mode: v.GetString("server.mode"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		DB: DBConfig{
			Path: v.GetString("db.path"),
		},
		Telemetry: TelemetryConfig{
			Window: v.GetInt("telemetry.window"),
		},
		Stream: StreamConfig{
			Interval: v.GetDuration("stream.interval"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl"),
		},
		Simulator: SimulatorConfig{
			Enabled: v.GetBool("simulator.enabled"),
			Tick:    v.GetDuration("simulator.tick"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("metrics.enabled"),
		},
		MQTT: MQTTConfig{
			Enabled:  v.GetBool("mqtt.enabled"),
			Broker:   v.GetString("mqtt.broker"),
			Topic:    v.GetString("mqtt.topic"),
			ClientID: v.GetString("mqtt.client_id"),
			QoS:      v.GetInt("mqtt.qos"),
			Username: v.GetString("mqtt.username"),
			Password: v.GetString("mqtt.password"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Telemetry.Window <= 0 {
		return fmt.Errorf("telemetry.window must be positive, got %d", c.Telemetry.Window)
	}
	if c.Stream.Interval <= 0 {
		return fmt.Errorf("stream.interval must be positive, got %s", c.Stream.Interval)
	}
	if c.Simulator.Enabled && c.Simulator.Tick <= 0 {
		return fmt.Errorf("simulator.tick must be positive, got %s", c.Simulator.Tick)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode)
	}
	if c.MQTT.Enabled && (c.MQTT.QoS < 0 || c.MQTT.QoS > 2) {
		return fmt.Errorf("mqtt.qos must be 0, 1 or 2, got %d", c.MQTT.QoS)
	}
	if c.DB.Path == "" {
		return errors.New("db.path is required")
	}
	return nil
}
