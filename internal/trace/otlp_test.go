package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")
	t.Setenv("OTEL_SERVICE_NAME", "demo")

	cfg := ConfigFromEnv()
	assert.Equal(t, "localhost:4318", cfg.Endpoint)
	assert.Equal(t, "demo", cfg.ServiceName)
	assert.True(t, cfg.Insecure)
}

func TestNewProvider_NoEndpointIsNoop(t *testing.T) {
	p, err := NewProvider(context.Background(), ExporterConfig{})
	require.NoError(t, err)
	assert.False(t, p.Enabled())

	_, span := p.Tracer().Start(context.Background(), "navigation.push")
	assert.False(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_WithEndpoint(t *testing.T) {
	// The exporter connects lazily, so no collector is needed.
	p, err := NewProvider(context.Background(), ExporterConfig{Endpoint: "127.0.0.1:1", Insecure: true})
	require.NoError(t, err)
	assert.True(t, p.Enabled())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = p.Shutdown(ctx)
}
