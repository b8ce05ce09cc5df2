package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata" // часовые пояса в минимальных контейнерах

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Tracing    TracingConfig    `toml:"tracing"`
	Calendar   CalendarConfig   `toml:"calendar"`
	Sequence   SequenceConfig   `toml:"sequence"`
	Redis      RedisConfig      `toml:"redis"`
	Kafka      KafkaConfig      `toml:"kafka"`
	Scheduling SchedulingConfig `toml:"scheduling"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
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

// TracingConfig настройки OpenTelemetry
type TracingConfig struct {
	Enabled      bool    `toml:"enabled"`
	OTLPEndpoint string  `toml:"otlp_endpoint"`
	SampleRatio  float64 `toml:"sample_ratio"`
}

// CalendarConfig настройки внешнего календаря. Пустой URL - интеграция отключена
type CalendarConfig struct {
	URL        string `toml:"url"`
	APIKey     string `toml:"api_key"`
	CalendarID string `toml:"calendar_id"`
	TimeoutMs  int    `toml:"timeout_ms"`
}

// Timeout таймаут одного вызова календаря
func (c CalendarConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// SequenceConfig настройки аллокатора номеров проектов
type SequenceConfig struct {
	Name      string `toml:"name"`
	TimeoutMs int    `toml:"timeout_ms"`
}

// Timeout таймаут выделения номера
func (s SequenceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutMs) * time.Millisecond
}

// RedisConfig настройки блокировки слотов
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	LockTTLSec int    `toml:"lock_ttl_sec"`
	KeyPrefix  string `toml:"key_prefix"`
}

// LockTTL время жизни блокировки слота
func (r RedisConfig) LockTTL() time.Duration {
	return time.Duration(r.LockTTLSec) * time.Second
}

// KafkaConfig настройки публикации уведомлений
type KafkaConfig struct {
	Brokers     string `toml:"brokers"` // через запятую
	TopicPrefix string `toml:"topic_prefix"`
	TimeoutMs   int    `toml:"timeout_ms"`
}

// Timeout таймаут публикации одного уведомления
func (k KafkaConfig) Timeout() time.Duration {
	return time.Duration(k.TimeoutMs) * time.Millisecond
}

// SchedulingConfig настройки генерации слотов
type SchedulingConfig struct {
	GranularityMinutes int    `toml:"granularity_minutes"`
	Timezone           string `toml:"timezone"`
	ApplyBreakWindow   bool   `toml:"apply_break_window"`
}

// Location часовой пояс студии
func (s SchedulingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// Load читает конфигурацию из TOML файла и применяет значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if password := os.Getenv("SMC_DB_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 10)
	setDefault(&c.Server.WriteTimeout, 10)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 15)

	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "smc-studio-scheduler"
	}
	if c.Tracing.OTLPEndpoint == "" {
		c.Tracing.OTLPEndpoint = "localhost:4317"
	}

	setDefault(&c.Calendar.TimeoutMs, 3000)
	if c.Calendar.CalendarID == "" {
		c.Calendar.CalendarID = "primary"
	}

	setDefault(&c.Sequence.TimeoutMs, 2000)
	if c.Sequence.Name == "" {
		c.Sequence.Name = "project_number_seq"
	}

	setDefault(&c.Redis.LockTTLSec, 30)
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "slot-lock"
	}

	setDefault(&c.Kafka.TimeoutMs, 5000)
	if c.Kafka.TopicPrefix == "" {
		c.Kafka.TopicPrefix = "studio.booking"
	}

	setDefault(&c.Scheduling.GranularityMinutes, 30)
	if c.Scheduling.Timezone == "" {
		c.Scheduling.Timezone = "UTC"
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port must be a valid TCP port (got %d)", c.Server.HTTPPort))
	}
	if c.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if c.Database.DBName == "" {
		errs = append(errs, errors.New("database.dbname is required"))
	}
	if c.Scheduling.GranularityMinutes <= 0 {
		errs = append(errs, errors.New("scheduling.granularity_minutes must be positive"))
	}
	if _, err := c.Scheduling.Location(); err != nil {
		errs = append(errs, fmt.Errorf("scheduling.timezone: %w", err))
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis.addr is required when redis.enabled = true"))
	}

	return errors.Join(errs...)
}

func setDefault(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}
