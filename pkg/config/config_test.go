package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/pkg/config"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.Ledger.LockTimeout)
	assert.Equal(t, 3, cfg.Ledger.LockRetries)
	assert.Equal(t, config.ReservationPolicyPartial, cfg.Ledger.ReservationPolicy)
	assert.Equal(t, 3, cfg.Outbox.MaxRetries)
	assert.Equal(t, "nats", cfg.Broker.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_LeeDuracionesYListas(t *testing.T) {
	v := viper.New()
	v.Set("LEDGER_LOCK_TIMEOUT", "1500")
	v.Set("OUTBOX_POLL_INTERVAL", "2s")
	v.Set("KAFKA_BROKERS", "k1:9092, k2:9092")
	v.Set("BROKER_DRIVER", "kafka")
	v.Set("RESERVATION_POLICY", "all_or_nothing")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 1500*time.Millisecond, cfg.Ledger.LockTimeout)
	assert.Equal(t, 2*time.Second, cfg.Outbox.PollInterval)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Broker.KafkaBrokers)
	assert.Equal(t, config.ReservationPolicyAllOrNothing, cfg.Ledger.ReservationPolicy)
}

func TestFromViper_RechazaPoliticaDesconocida(t *testing.T) {
	v := viper.New()
	v.Set("RESERVATION_POLICY", "best_effort")

	_, err := config.FromViper(v)
	assert.Error(t, err, "una política fuera de partial|all_or_nothing debe fallar la validación")
}

func TestFromViper_NivelDeLog(t *testing.T) {
	v := viper.New()
	v.Set("LOG_LEVEL", "DEBUG")
	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.App.LogLevel)

	v.Set("LOG_LEVEL", "verbose")
	_, err = config.FromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DSNCodificaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss/word", DBName: "x", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%2Fword@db:5432/x?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://other"
	assert.Equal(t, "postgres://other", c.ConnectionString())
}
