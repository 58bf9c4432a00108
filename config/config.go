package config

import (
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/Gunvolt24/order-accounting/internal/domain"
)

// DefaultPrefix — префикс переменных окружения сервиса.
const DefaultPrefix = "ACCOUNTING"

// Переменные без префикса, которые принимаются как запасной вариант.
const (
	fallbackKafkaAddrEnv   = "KAFKA_ADDR"
	fallbackPostgresDSNEnv = "DB_CONNECTION_STRING"
)

// HTTP — ops-сервер (/ping, /healthz, /readyz, /metrics).
type HTTP struct {
	Addr              string        `default:":8080" envconfig:"ADDR"`
	GinMode           string        `default:"release" envconfig:"GIN_MODE"`
	ReadTimeout       time.Duration `default:"10s" envconfig:"READ_TIMEOUT"`
	WriteTimeout      time.Duration `default:"10s" envconfig:"WRITE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `default:"5s" envconfig:"READ_HEADER_TIMEOUT"`
	IdleTimeout       time.Duration `default:"60s" envconfig:"IDLE_TIMEOUT"`
	HandlerTimeout    time.Duration `default:"2s" envconfig:"HANDLER_TIMEOUT"`
	GracefulTimeout   time.Duration `default:"5s" envconfig:"GRACEFUL_TIMEOUT"`
}

type Tracing struct {
	Enabled     bool    `default:"false" envconfig:"OTEL_ENABLED"`
	ServiceName string  `default:"accounting" envconfig:"OTEL_SERVICE_NAME"`
	Endpoint    string  `default:"jaeger:4318" envconfig:"OTEL_ENDPOINT"`
	SampleRatio float64 `default:"1" envconfig:"OTEL_SAMPLE_RATIO"`
}

type Postgres struct {
	DSN         string `envconfig:"DSN"`
	MaxConns    int32  `default:"10" envconfig:"MAX_CONNS"`
	AutoMigrate bool   `default:"false" envconfig:"AUTO_MIGRATE"`
}

type Kafka struct {
	Addr           []string      `envconfig:"ADDR"`
	GroupID        string        `default:"accounting" envconfig:"GROUP_ID"`
	StartOffset    string        `default:"first" envconfig:"START_OFFSET"`
	CommitMode     string        `default:"interval" envconfig:"COMMIT_MODE"`
	CommitInterval time.Duration `default:"1s" envconfig:"COMMIT_INTERVAL"`
	MinBytes       int           `default:"1" envconfig:"MIN_BYTES"`
	MaxBytes       int           `default:"10485760" envconfig:"MAX_BYTES"`
	MaxWait        time.Duration `default:"500ms" envconfig:"MAX_WAIT"`
	Delay          time.Duration `default:"50ms" envconfig:"DELAY"`
	ProcessTimeout time.Duration `default:"0s" envconfig:"PROCESS_TIMEOUT"`
	RetryInitial   time.Duration `default:"1s" envconfig:"RETRY_INITIAL"`
	RetryMax       time.Duration `default:"30s" envconfig:"RETRY_MAX"`
}

// Redelivery — окно детектора повторной доставки.
type Redelivery struct {
	Capacity int           `default:"10000" envconfig:"CAPACITY"`
	TTL      time.Duration `default:"10m" envconfig:"TTL"`
}

type Logger struct {
	IsProd bool `default:"false" envconfig:"IS_PROD"`
}

type Config struct {
	HTTP       HTTP
	Tracing    Tracing
	Postgres   Postgres
	Kafka      Kafka
	Redelivery Redelivery
	Logger     Logger

	prefix string
}

// Load — конфигурация с префиксом ACCOUNTING.
func Load() (Config, error) { return LoadWithPrefix(DefaultPrefix) }

// LoadWithPrefix — читает окружение, подставляет запасные переменные и проверяет обязательные поля.
func LoadWithPrefix(prefix string) (Config, error) {
	var c Config
	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, err
	}
	c.prefix = prefix

	if len(c.Kafka.Addr) == 0 {
		c.Kafka.Addr = splitList(os.Getenv(fallbackKafkaAddrEnv))
	}
	c.Kafka.Addr = splitList(strings.Join(c.Kafka.Addr, ","))
	if strings.TrimSpace(c.Postgres.DSN) == "" {
		c.Postgres.DSN = strings.TrimSpace(os.Getenv(fallbackPostgresDSNEnv))
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadPostgres — только секция Postgres (для cmd/migrate, которому брокер не нужен).
func LoadPostgres(prefix string) (Postgres, error) {
	var c struct{ Postgres Postgres }
	if err := envconfig.Process(prefix, &c); err != nil {
		return Postgres{}, err
	}
	if strings.TrimSpace(c.Postgres.DSN) == "" {
		c.Postgres.DSN = strings.TrimSpace(os.Getenv(fallbackPostgresDSNEnv))
	}
	if c.Postgres.DSN == "" {
		return Postgres{}, &domain.ConfigurationError{Field: "Postgres.DSN", Env: prefix + "_POSTGRES_DSN"}
	}
	return c.Postgres, nil
}

// Validate — обязательны адрес брокера и строка подключения к хранилищу.
func (c *Config) Validate() error {
	if len(c.Kafka.Addr) == 0 {
		return &domain.ConfigurationError{Field: "Kafka.Addr", Env: c.env("KAFKA_ADDR")}
	}
	if c.Postgres.DSN == "" {
		return &domain.ConfigurationError{Field: "Postgres.DSN", Env: c.env("POSTGRES_DSN")}
	}
	return nil
}

func (c *Config) env(name string) string {
	p := c.prefix
	if p == "" {
		p = DefaultPrefix
	}
	return p + "_" + name
}

// splitList — "a, b,,c" -> [a b c].
func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
