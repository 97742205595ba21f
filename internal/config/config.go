// Package config загрузка конфигурации сервиса из TOML файла
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/salonbook/SalonBook-BookingService/pkg/types"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Booking      BookingConfig      `toml:"booking"`
	TrustService TrustServiceConfig `toml:"trust_service"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
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

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig параметры сетки слотов и лимитов бронирования.
// Рабочие часы и лимит активных бронирований заданы конфигурацией,
// а не константами, чтобы их можно было менять без пересборки.
type BookingConfig struct {
	OpenTime            string `toml:"open_time"`             // "10:00"
	CloseTime           string `toml:"close_time"`            // "17:30", включительно
	SlotDurationMinutes int    `toml:"slot_duration_minutes"` // шаг сетки
	MaxActiveBookings   int    `toml:"max_active_bookings"`   // лимит на пользователя
}

// TrustServiceConfig настройки клиента сервиса trust score
type TrustServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaultConfig значения по умолчанию, перекрываются файлом
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "salonbook-booking-service",
		},
		Booking: BookingConfig{
			OpenTime:            "10:00",
			CloseTime:           "17:30",
			SlotDurationMinutes: 30,
			MaxActiveBookings:   2,
		},
		TrustService: TrustServiceConfig{
			Timeout: 5,
		},
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in (0, 65535]", ErrInvalidConfig)
	}

	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}

	open, err := types.NewTimeStringFromString(c.Booking.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: booking.open_time: %v", ErrInvalidConfig, err)
	}
	close, err := types.NewTimeStringFromString(c.Booking.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: booking.close_time: %v", ErrInvalidConfig, err)
	}
	if !open.IsBefore(close) {
		return fmt.Errorf("%w: booking.open_time must be before booking.close_time", ErrInvalidConfig)
	}

	if c.Booking.SlotDurationMinutes <= 0 {
		return fmt.Errorf("%w: booking.slot_duration_minutes must be positive", ErrInvalidConfig)
	}

	if c.Booking.MaxActiveBookings <= 0 {
		return fmt.Errorf("%w: booking.max_active_bookings must be positive", ErrInvalidConfig)
	}

	return nil
}
