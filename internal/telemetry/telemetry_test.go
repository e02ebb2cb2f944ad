package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSetup_NoEndpointIsNoop(t *testing.T) {
	t.Parallel()

	before := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), Options{})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	require.NoError(t, shutdown(context.Background()))

	assert.Equal(t, before, otel.GetTracerProvider())
}

func TestSetup_InstallsProviders(t *testing.T) {
	// Mutates the global providers.
	prevTP := otel.GetTracerProvider()
	prevMP := otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetMeterProvider(prevMP)
	})

	// gRPC dials lazily, so no collector is needed for construction.
	shutdown, err := Setup(context.Background(), Options{
		Endpoint:       "127.0.0.1:4317",
		Insecure:       true,
		ServiceName:    "pricing-engine-test",
		SampleRatio:    1,
		MetricInterval: time.Hour,
	})
	require.NoError(t, err)

	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	// The final export has nowhere to go; only the call itself matters.
	_ = shutdown(ctx)
}
