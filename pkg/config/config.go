package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config agrupa la configuración del servicio de stock (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	HTTP      HTTPConfig
	Storage   StorageConfig
	Ledger    LedgerConfig
	Outbox    OutboxConfig
	Broker    BrokerConfig
	Telemetry TelemetryConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string `validate:"required,oneof=development staging production test"`
	Name     string `validate:"required"`
	LogLevel string `validate:"oneof=trace debug info warn error"`
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int32 `validate:"min=1"`
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int `validate:"min=1,max=65535"`
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig selecciona el almacén del ledger: postgres (producción) o memory (desarrollo local).
type StorageConfig struct {
	Driver string `validate:"oneof=postgres memory"`
}

// Políticas ante faltante de stock al reservar en varias ubicaciones.
const (
	ReservationPolicyPartial      = "partial"
	ReservationPolicyAllOrNothing = "all_or_nothing"
)

// LedgerConfig parámetros del motor de reservas.
// LockTimeout acota la espera por el bloqueo de fila; LockRetries reintenta la transacción completa.
type LedgerConfig struct {
	LockTimeout       time.Duration `validate:"gt=0"`
	LockRetries       int           `validate:"min=0,max=20"`
	ReservationPolicy string        `validate:"oneof=partial all_or_nothing"`
}

// OutboxConfig parámetros del publicador asíncrono.
type OutboxConfig struct {
	Enabled      bool
	BatchSize    int           `validate:"min=1,max=1000"`
	PollInterval time.Duration `validate:"gt=0"`
	MaxRetries   int           `validate:"min=1"`
	MaxBackoff   time.Duration `validate:"gt=0"`
}

// BrokerConfig destino de los eventos de integración.
type BrokerConfig struct {
	Driver        string `validate:"oneof=nats kafka"`
	NatsURL       string
	StreamName    string
	SubjectPrefix string
	KafkaBrokers  []string
	KafkaTopic    string
}

// TelemetryConfig exportación OTLP; sin endpoint se quedan los providers no-op.
type TelemetryConfig struct {
	OTLPEndpoint string
	ServiceName  string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, LEDGER_LOCK_TIMEOUT, OUTBOX_BATCH_SIZE, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración a partir de una instancia de Viper ya cargada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "stock-ledger"),
			LogLevel: strings.ToLower(getString(v, "LOG_LEVEL", "info")),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "stock_ledger"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    int32(getInt(v, "DB_MAX_CONNS", 25)),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Storage: StorageConfig{
			Driver: getString(v, "STORAGE_DRIVER", "postgres"),
		},
		Ledger: LedgerConfig{
			LockTimeout:       getDuration(v, "LEDGER_LOCK_TIMEOUT", 5*time.Second),
			LockRetries:       getInt(v, "LEDGER_LOCK_RETRIES", 3),
			ReservationPolicy: getString(v, "RESERVATION_POLICY", ReservationPolicyPartial),
		},
		Outbox: OutboxConfig{
			Enabled:      getBool(v, "OUTBOX_ENABLED", true),
			BatchSize:    getInt(v, "OUTBOX_BATCH_SIZE", 100),
			PollInterval: getDuration(v, "OUTBOX_POLL_INTERVAL", 5*time.Second),
			MaxRetries:   getInt(v, "OUTBOX_MAX_RETRIES", 3),
			MaxBackoff:   getDuration(v, "OUTBOX_MAX_BACKOFF", time.Minute),
		},
		Broker: BrokerConfig{
			Driver:        getString(v, "BROKER_DRIVER", "nats"),
			NatsURL:       getString(v, "NATS_URL", "nats://localhost:4222"),
			StreamName:    getString(v, "NATS_STREAM", "ERP"),
			SubjectPrefix: getString(v, "BROKER_SUBJECT_PREFIX", "erp"),
			KafkaBrokers:  getStrings(v, "KAFKA_BROKERS", []string{"localhost:9092"}),
			KafkaTopic:    getString(v, "KAFKA_TOPIC", "erp.integration-events"),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getString(v, "OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName:  getString(v, "OTEL_SERVICE_NAME", "stock-ledger"),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

// getDuration acepta "5s", "250ms" o un entero en milisegundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := v.GetString(key)
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}

func getStrings(v *viper.Viper, key string, def []string) []string {
	if !v.IsSet(key) {
		return def
	}
	var out []string
	for _, s := range strings.Split(v.GetString(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
