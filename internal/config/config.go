package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var (
	// ErrReadConfig возвращается, когда файл конфигурации не удалось прочитать или разобрать
	ErrReadConfig = errors.New("config: failed to read config")

	// ErrInvalidConfig возвращается, когда значения конфигурации некорректны
	ErrInvalidConfig = errors.New("config: invalid config")
)

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Storage    StorageConfig    `toml:"storage"`
	Scheduling SchedulingConfig `toml:"scheduling"`
	Reminders  RemindersConfig  `toml:"reminders"`
	Seed       SeedConfig       `toml:"seed"`
}

// ServerConfig таймауты задаются в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type StorageConfig struct {
	Driver string `toml:"driver"`
}

type SchedulingConfig struct {
	// Timezone клиники, в которой заданы даты и время слотов
	Timezone string `toml:"timezone"`
}

// Location возвращает часовой пояс клиники
func (s SchedulingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

type RemindersConfig struct {
	Enabled   bool   `toml:"enabled"`
	Schedule  string `toml:"schedule"`
	BatchSize int    `toml:"batch_size"`
}

// SeedConfig демо-календари, создаваемые при старте
type SeedConfig struct {
	Enabled      bool             `toml:"enabled"`
	Days         int              `toml:"days"`
	DayStart     types.TimeString `toml:"day_start"`
	DayEnd       types.TimeString `toml:"day_end"`
	SkipWeekends bool             `toml:"skip_weekends"`
	Providers    []SeedProvider   `toml:"providers"`
}

type SeedProvider struct {
	ID        string `toml:"id"`
	Name      string `toml:"name"`
	Specialty string `toml:"specialty"`
	Location  string `toml:"location"`
}

// Load читает TOML файл, подставляет значения по умолчанию и проверяет конфигурацию
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse разбирает конфигурацию из строки (используется в тестах)
func Parse(data string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "clinic-booking"
	}

	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverPostgres
	}

	if c.Scheduling.Timezone == "" {
		c.Scheduling.Timezone = "UTC"
	}

	if c.Reminders.Schedule == "" {
		c.Reminders.Schedule = "@every 1m"
	}
	if c.Reminders.BatchSize == 0 {
		c.Reminders.BatchSize = 100
	}

	if c.Seed.Days == 0 {
		c.Seed.Days = 14
	}
	if c.Seed.DayStart == "" {
		c.Seed.DayStart = "09:00"
	}
	if c.Seed.DayEnd == "" {
		c.Seed.DayEnd = "17:00"
	}
}

// Validate проверяет значения после подстановки умолчаний
func (c *Config) Validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d is out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: storage.driver %q must be %q or %q", ErrInvalidConfig, c.Storage.Driver, DriverPostgres, DriverMemory)
	}

	if _, err := c.Scheduling.Location(); err != nil {
		return fmt.Errorf("%w: scheduling.timezone %q: %v", ErrInvalidConfig, c.Scheduling.Timezone, err)
	}

	if c.Reminders.BatchSize < 0 {
		return fmt.Errorf("%w: reminders.batch_size must be positive", ErrInvalidConfig)
	}

	if c.Seed.Enabled {
		if c.Seed.DayStart.Validate() != nil || c.Seed.DayEnd.Validate() != nil {
			return fmt.Errorf("%w: seed working hours must be HH:MM", ErrInvalidConfig)
		}
		for _, p := range c.Seed.Providers {
			if p.ID == "" {
				return fmt.Errorf("%w: seed provider without id", ErrInvalidConfig)
			}
		}
	}

	return nil
}
