package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/robfig/cron"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	SinkLog   = "log"
	SinkHTTP  = "http"
	SinkKafka = "kafka"
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Storage      StorageConfig      `toml:"storage"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Reservations ReservationsConfig `toml:"reservations"`
	Lifecycle    LifecycleConfig    `toml:"lifecycle"`
	Events       EventsConfig       `toml:"events"`
	Reminders    RemindersConfig    `toml:"reminders"`
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

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// StorageConfig выбор хранилища; seed используется только драйвером memory
type StorageConfig struct {
	Driver string     `toml:"driver"`
	Seed   SeedConfig `toml:"seed"`
}

// SeedConfig начальные данные для хранилища в памяти
type SeedConfig struct {
	Schedules     []SeedSchedule     `toml:"schedules"`
	Registrations []SeedRegistration `toml:"registrations"`
}

type SeedSchedule struct {
	TrainerID   int64  `toml:"trainer_id"`
	DayOfWeek   int    `toml:"day_of_week"`
	StartTime   string `toml:"start_time"`
	EndTime     string `toml:"end_time"`
	IsAvailable *bool  `toml:"is_available"`
}

type SeedRegistration struct {
	ID                int64  `toml:"id"`
	MemberID          int64  `toml:"member_id"`
	TrainerID         *int64 `toml:"trainer_id"`
	TotalSessions     int    `toml:"total_sessions"`
	RemainingSessions int    `toml:"remaining_sessions"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ReservationsConfig ограничения бронирований
type ReservationsConfig struct {
	SlotMinutes        int `toml:"slot_minutes"`
	MinDurationMinutes int `toml:"min_duration_minutes"`
	MaxDurationMinutes int `toml:"max_duration_minutes"`
}

// LifecycleConfig политика уведомлений жизненного цикла
type LifecycleConfig struct {
	NotifyOnPendingCancel bool `toml:"notify_on_pending_cancel"`
}

// EventsConfig выбор и настройки получателя событий
type EventsConfig struct {
	Sink                string                    `toml:"sink"`
	PublishTimeout      int                       `toml:"publish_timeout"`
	Kafka               KafkaConfig               `toml:"kafka"`
	NotificationService NotificationServiceConfig `toml:"notification_service"`
}

type KafkaConfig struct {
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

type NotificationServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// RemindersConfig расписание ежедневных напоминаний (cron с секундами)
type RemindersConfig struct {
	Enabled bool   `toml:"enabled"`
	Cron    string `toml:"cron"`
}

// Load читает конфигурацию из TOML, применяет значения по умолчанию и переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
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
			User:            "postgres",
			DBName:          "reservations",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "reservation_service",
		},
		Reservations: ReservationsConfig{
			SlotMinutes:        domain.DefaultSlotMinutes,
			MinDurationMinutes: domain.MinDurationMinutes,
			MaxDurationMinutes: domain.MaxDurationMinutes,
		},
		Events: EventsConfig{
			Sink:           SinkLog,
			PublishTimeout: 5,
			Kafka:          KafkaConfig{Topic: "reservation-events"},
			NotificationService: NotificationServiceConfig{
				Timeout: 5,
			},
		},
		Reminders: RemindersConfig{
			Enabled: false,
			Cron:    "0 0 18 * * *",
		},
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DB_PORT %q: %w", v, err)
		}
		c.Database.Port = port
	}
	if v := os.Getenv("DB_USER"); v != "" {
		c.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.Database.DBName = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_PORT %q: %w", v, err)
		}
		c.Server.HTTPPort = port
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("EVENTS_SINK"); v != "" {
		c.Events.Sink = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Events.Kafka.Brokers = splitList(v)
	}
	if v := os.Getenv("NOTIFICATION_SERVICE_URL"); v != "" {
		c.Events.NotificationService.URL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logs.Level = v
	}
	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port must be in 1..65535, got %d", c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("database.host and database.dbname are required for postgres storage")
		}
	case StorageDriverMemory:
		if err := c.Storage.Seed.validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}

	r := c.Reservations
	if r.SlotMinutes <= 0 || r.MinDurationMinutes <= 0 || r.MaxDurationMinutes < r.MinDurationMinutes {
		return fmt.Errorf("reservations: slot_minutes=%d, min=%d, max=%d are inconsistent",
			r.SlotMinutes, r.MinDurationMinutes, r.MaxDurationMinutes)
	}

	switch c.Events.Sink {
	case SinkLog:
	case SinkHTTP:
		if c.Events.NotificationService.URL == "" {
			return fmt.Errorf("events.notification_service.url is required for http sink")
		}
	case SinkKafka:
		if len(c.Events.Kafka.Brokers) == 0 || c.Events.Kafka.Topic == "" {
			return fmt.Errorf("events.kafka.brokers and events.kafka.topic are required for kafka sink")
		}
	default:
		return fmt.Errorf("unknown events.sink %q", c.Events.Sink)
	}

	if c.Reminders.Enabled {
		if _, err := cron.Parse(c.Reminders.Cron); err != nil {
			return fmt.Errorf("invalid reminders.cron %q: %w", c.Reminders.Cron, err)
		}
	}

	return nil
}

func (s SeedConfig) validate() error {
	for i, ws := range s.Schedules {
		if ws.TrainerID <= 0 || ws.DayOfWeek < 0 || ws.DayOfWeek > 6 {
			return fmt.Errorf("storage.seed.schedules[%d]: invalid trainer_id or day_of_week", i)
		}
		start, err := types.NewTimeStringFromString(ws.StartTime)
		if err != nil {
			return fmt.Errorf("storage.seed.schedules[%d]: %w", i, err)
		}
		end, err := types.NewTimeStringFromString(ws.EndTime)
		if err != nil {
			return fmt.Errorf("storage.seed.schedules[%d]: %w", i, err)
		}
		if !start.IsBefore(end) {
			return fmt.Errorf("storage.seed.schedules[%d]: start_time must be before end_time", i)
		}
	}
	for i, reg := range s.Registrations {
		if reg.ID <= 0 || reg.MemberID <= 0 {
			return fmt.Errorf("storage.seed.registrations[%d]: id and member_id are required", i)
		}
		if reg.RemainingSessions < 0 || reg.RemainingSessions > reg.TotalSessions {
			return fmt.Errorf("storage.seed.registrations[%d]: remaining_sessions must be in 0..total_sessions", i)
		}
	}
	return nil
}

// ToDomain конвертирует seed в доменные модели
func (s SeedConfig) ToDomain() ([]domain.WeeklySchedule, []domain.PTRegistration) {
	schedules := make([]domain.WeeklySchedule, 0, len(s.Schedules))
	for _, ws := range s.Schedules {
		available := true
		if ws.IsAvailable != nil {
			available = *ws.IsAvailable
		}
		schedules = append(schedules, domain.WeeklySchedule{
			TrainerID:   ws.TrainerID,
			DayOfWeek:   ws.DayOfWeek,
			StartTime:   types.TimeString(ws.StartTime),
			EndTime:     types.TimeString(ws.EndTime),
			IsAvailable: available,
		})
	}

	registrations := make([]domain.PTRegistration, 0, len(s.Registrations))
	for _, reg := range s.Registrations {
		registrations = append(registrations, domain.PTRegistration{
			ID:                reg.ID,
			MemberID:          reg.MemberID,
			TrainerID:         reg.TrainerID,
			TotalSessions:     reg.TotalSessions,
			RemainingSessions: reg.RemainingSessions,
			Status:            "active",
		})
	}

	return schedules, registrations
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
