package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"

	"github.com/jhoicas/stock-ledger/internal/infrastructure/telemetry"
)

func TestSetup_SinEndpointNoInstalaNada(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), telemetry.Config{ServiceName: "stock-ledger"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_ConEndpointDevuelveShutdown(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), telemetry.Config{
		Endpoint:    "localhost:4318",
		ServiceName: "stock-ledger",
		Insecure:    true,
	})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	_ = shutdown(context.Background())
}

func TestResource_MismoSchemaQueElSDK(t *testing.T) {
	res, err := telemetry.Resource(context.Background(), telemetry.Config{ServiceName: "stock-ledger", ServiceVersion: "1.2.3"})
	require.NoError(t, err)
	assert.Equal(t, resource.Default().SchemaURL(), res.SchemaURL())

	name, ok := res.Set().Value(attribute.Key("service.name"))
	require.True(t, ok)
	assert.Equal(t, "stock-ledger", name.AsString())
	version, ok := res.Set().Value(attribute.Key("service.version"))
	require.True(t, ok)
	assert.Equal(t, "1.2.3", version.AsString())

	_, err = resource.Merge(resource.Default(), res)
	assert.NoError(t, err)
}

func TestSetup_ConEndpointURL(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), telemetry.Config{
		Endpoint:    "http://localhost:4318",
		ServiceName: "stock-ledger",
	})
	require.NoError(t, err)
	_ = shutdown(context.Background())
}
