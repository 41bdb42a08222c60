package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-LoungeService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Schedule ScheduleConfig `toml:"schedule"`
	Sheets   SheetsConfig   `toml:"sheets"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
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

// DSN собирает строку подключения
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки прометей-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ScheduleConfig политика слотов: таймзона, длительность слота и окна
// доступности по дням недели
type ScheduleConfig struct {
	Timezone            string           `toml:"timezone"`
	SlotDurationMinutes int              `toml:"slot_duration_minutes"`
	Windows             []ScheduleWindow `toml:"windows"`
}

// ScheduleWindow окно доступности [start, end) для перечисленных дней недели
type ScheduleWindow struct {
	Weekdays []string `toml:"weekdays"`
	Start    string   `toml:"start"` // HH:MM
	End      string   `toml:"end"`   // HH:MM
}

// SheetsConfig настройки синхронизации с внешней таблицей.
// Раскладка листа: ячейка заголовка, колонка времени и по колонке на лаунж
// (ключ — номер лаунжа).
type SheetsConfig struct {
	Enabled             bool              `toml:"enabled"`
	SpreadsheetID       string            `toml:"spreadsheet_id"`
	WorksheetTitle      string            `toml:"worksheet_title"`
	TitleCell           string            `toml:"title_cell"`
	TitleFormat         string            `toml:"title_format"`
	TimeColumn          string            `toml:"time_column"`
	FirstRow            int               `toml:"first_row"`
	MaxRows             int               `toml:"max_rows"`
	Workers             int               `toml:"workers"`
	QueueSize           int               `toml:"queue_size"`
	MaxRetries          int               `toml:"max_retries"`
	RetryBackoffSeconds int               `toml:"retry_backoff_seconds"`
	LoungeColumns       map[string]string `toml:"lounge_columns"`
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8082
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "lounge-service"
	}
	if c.Schedule.Timezone == "" {
		c.Schedule.Timezone = domain.DefaultTimezone
	}
	if c.Schedule.SlotDurationMinutes == 0 {
		c.Schedule.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if c.Sheets.TitleCell == "" {
		c.Sheets.TitleCell = "A1"
	}
	if c.Sheets.TimeColumn == "" {
		c.Sheets.TimeColumn = "A"
	}
	if c.Sheets.FirstRow == 0 {
		c.Sheets.FirstRow = 3
	}
	if c.Sheets.MaxRows == 0 {
		c.Sheets.MaxRows = 4
	}
	if c.Sheets.Workers == 0 {
		c.Sheets.Workers = 2
	}
	if c.Sheets.QueueSize == 0 {
		c.Sheets.QueueSize = 64
	}
	if c.Sheets.RetryBackoffSeconds == 0 {
		c.Sheets.RetryBackoffSeconds = 2
	}
	if c.Sheets.TitleFormat == "" {
		c.Sheets.TitleFormat = "Лаунж — расписание на %s"
	}
}

func (c *Config) validate() error {
	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
		return fmt.Errorf("config: invalid schedule.timezone %q: %w", c.Schedule.Timezone, err)
	}

	if c.Schedule.SlotDurationMinutes < domain.MinSlotDurationMinutes ||
		c.Schedule.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("config: schedule.slot_duration_minutes must be in [%d, %d], got %d",
			domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes, c.Schedule.SlotDurationMinutes)
	}

	for i, w := range c.Schedule.Windows {
		if len(w.Weekdays) == 0 {
			return fmt.Errorf("config: schedule.windows[%d] has no weekdays", i)
		}
		if _, err := time.Parse(domain.TimeFormat, w.Start); err != nil {
			return fmt.Errorf("config: schedule.windows[%d].start %q: %w", i, w.Start, err)
		}
		if _, err := time.Parse(domain.TimeFormat, w.End); err != nil {
			return fmt.Errorf("config: schedule.windows[%d].end %q: %w", i, w.End, err)
		}
	}

	if c.Sheets.Enabled {
		if c.Sheets.SpreadsheetID == "" {
			return fmt.Errorf("config: sheets.spreadsheet_id is required when sheets sync is enabled")
		}
		if len(c.Sheets.LoungeColumns) == 0 {
			return fmt.Errorf("config: sheets.lounge_columns is required when sheets sync is enabled")
		}
	}

	return nil
}
