package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // calendar.timezone must resolve without a system zoneinfo

	"github.com/spf13/viper"
)

// Store drivers
const (
	DriverFile   = "file"
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// ClockFormat is the layout of calendar slot times
const ClockFormat = "15:04"

// Config holds the complete service configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	Calendar CalendarConfig `mapstructure:"calendar"`
}

// ServerConfig configures the HTTP listener and edit mode
type ServerConfig struct {
	Port     int    `mapstructure:"port"`
	EditMode bool   `mapstructure:"edit_mode"`
	AuthFile string `mapstructure:"auth_file"`
}

// StoreConfig selects the key/value backend
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	Dir    string `mapstructure:"dir"`
}

// RedisConfig is only used with the redis driver
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// LogConfig configures zap
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CalendarConfig places the weekly slots on the clock for the iCalendar feed
type CalendarConfig struct {
	Timezone  string `mapstructure:"timezone"`
	Breakfast string `mapstructure:"breakfast"`
	Afternoon string `mapstructure:"afternoon"`
	Duration  int    `mapstructure:"duration"` // minutes
}

// Location loads the configured timezone
func (c CalendarConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Load reads defaults, an optional config file and CAFE_* environment variables.
// Precedence: environment > file > defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.edit_mode", true)
	v.SetDefault("server.auth_file", "auth.secret")

	v.SetDefault("store.driver", DriverFile)
	v.SetDefault("store.dir", "data")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "controle-cafe:")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("calendar.timezone", "America/Sao_Paulo")
	v.SetDefault("calendar.breakfast", "09:00")
	v.SetDefault("calendar.afternoon", "15:00")
	v.SetDefault("calendar.duration", 30)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CAFE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values the service cannot start without
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch c.Store.Driver {
	case DriverFile:
		if c.Store.Dir == "" {
			return fmt.Errorf("invalid config: store.dir is required for the file driver")
		}
	case DriverMemory:
	case DriverRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("invalid config: redis.addr is required for the redis driver")
		}
	default:
		return fmt.Errorf("invalid config: unknown store.driver %q", c.Store.Driver)
	}

	if _, err := c.Calendar.Location(); err != nil {
		return fmt.Errorf("invalid config: calendar.timezone: %w", err)
	}
	for name, v := range map[string]string{"breakfast": c.Calendar.Breakfast, "afternoon": c.Calendar.Afternoon} {
		if _, err := time.Parse(ClockFormat, v); err != nil {
			return fmt.Errorf("invalid config: calendar.%s must be HH:MM, got %q", name, v)
		}
	}
	if c.Calendar.Duration <= 0 {
		return fmt.Errorf("invalid config: calendar.duration must be positive, got %d", c.Calendar.Duration)
	}
	return nil
}
