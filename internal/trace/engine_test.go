package trace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"navfacade/internal/engine/recorder"
	"navfacade/internal/layout"
)

func newTraced(t *testing.T) (*Engine, *recorder.Engine, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	rec := recorder.New()
	return Wrap(rec, tp.Tracer("test")), rec, sr
}

func attrMap(kvs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(kvs))
	for _, kv := range kvs {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestEngine_PushSpan(t *testing.T) {
	e, rec, sr := newTraced(t)

	id, err := e.Push(context.Background(), "Home", layout.NewComponent("Details", nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "Home", id)
	require.Len(t, rec.Calls(), 1)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "navigation.push", spans[0].Name())

	attrs := attrMap(spans[0].Attributes())
	assert.Equal(t, "Home", attrs[AttrComponentID].AsString())
	assert.Equal(t, "component", attrs[AttrLayoutKind].AsString())
	assert.Equal(t, "Details", attrs[AttrLayoutName].AsString())
	assert.Equal(t, "Home", attrs[AttrResult].AsString())
}

func TestEngine_ErrorIsRecordedAndReturned(t *testing.T) {
	e, rec, sr := newTraced(t)
	boom := errors.New("boom")
	rec.FailWith("dismissModal", boom)

	_, err := e.DismissModal(context.Background(), "Modal1", nil)
	assert.Same(t, boom, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestEngine_StackAttributes(t *testing.T) {
	e, _, sr := newTraced(t)

	_, err := e.ShowModal(context.Background(), layout.StackOf(layout.NewComponent("A", nil, nil), layout.NewComponent("B", nil, nil)))
	require.NoError(t, err)
	_, err = e.SetRoot(context.Background(), layout.Root{Root: layout.External(layout.ExternalByID(4), nil)})
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 2)
	modal := attrMap(spans[0].Attributes())
	assert.Equal(t, "stack", modal[AttrLayoutKind].AsString())
	assert.Equal(t, int64(2), modal[AttrChildren].AsInt64())

	root := attrMap(spans[1].Attributes())
	assert.Equal(t, "externalComponent", root[AttrLayoutKind].AsString())
	assert.Equal(t, "4", root[AttrLayoutName].AsString())
}

func TestEngine_EveryCommandIsForwarded(t *testing.T) {
	e, rec, sr := newTraced(t)
	ctx := context.Background()

	_, _ = e.Pop(ctx, "A", nil)
	_, _ = e.PopTo(ctx, "A", nil)
	_, _ = e.PopToRoot(ctx, "A", nil)
	_, _ = e.SetStackRoot(ctx, "A", nil)
	_, _ = e.DismissAllModals(ctx, nil)
	_, _ = e.ShowOverlay(ctx, layout.NewComponent("T", nil, nil))
	_, _ = e.DismissOverlay(ctx, "T")
	_, _ = e.DismissAllOverlays(ctx)
	_ = e.MergeOptions("A", nil)
	_ = e.UpdateProps("A", nil)
	e.SetDefaultOptions(nil)
	_ = e.SetupSheetContentNodes("A", nil, nil, nil)
	_, _ = e.Constants(ctx)
	_, _ = e.TouchablePreview().Preview("A")

	assert.Len(t, rec.Calls(), 14)
	assert.Len(t, sr.Ended(), 13)
	assert.NotNil(t, e.Events())
}

func TestNewProvider_DisabledWithoutEndpoint(t *testing.T) {
	p, err := NewProvider(context.Background(), ExporterConfig{})
	require.NoError(t, err)
	assert.False(t, p.Enabled())
	assert.NotNil(t, p.Tracer())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestConfigFromEnv_Engine(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")
	t.Setenv("OTEL_SERVICE_NAME", "demo")

	cfg := ConfigFromEnv()
	assert.Equal(t, "localhost:4318", cfg.Endpoint)
	assert.Equal(t, "demo", cfg.ServiceName)
	assert.True(t, cfg.Insecure)
}
