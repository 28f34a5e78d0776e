package logging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"navfacade/internal/engine/recorder"
	"navfacade/internal/layout"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{"console debug", "debug", "console", false},
		{"json info", "info", "json", false},
		{"default format", "warn", "", false},
		{"bad level", "loud", "json", true},
		{"bad format", "info", "xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.level, tt.format, "stderr")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestEngine_LogsCommands(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	rec := recorder.New()
	e := Wrap(rec, zap.New(core))

	id, err := e.Push(context.Background(), "Home", layout.NewComponent("Details", nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "Home", id)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "navigation", entries[0].LoggerName)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "push", ctx["op"])
	assert.Equal(t, "Home", ctx["componentId"])
	assert.Equal(t, "component", ctx["layout"])
	assert.Equal(t, "Details", ctx["name"])
}

func TestEngine_ErrorsAreWarnedAndReturned(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	rec := recorder.New()
	boom := errors.New("no such component")
	rec.FailWith("mergeOptions", boom)
	e := Wrap(rec, zap.New(core))

	err := e.MergeOptions("Ghost", layout.Options{"a": 1})
	assert.Same(t, boom, err)

	warned := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warned, 1)
	assert.Equal(t, "no such component", warned[0].ContextMap()["error"])
}

func TestEngine_ForwardsEverything(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	rec := recorder.New()
	e := Wrap(rec, zap.New(core))
	ctx := context.Background()

	_, _ = e.Pop(ctx, "A", nil)
	_, _ = e.PopTo(ctx, "A", nil)
	_, _ = e.PopToRoot(ctx, "A", nil)
	_, _ = e.SetStackRoot(ctx, "A", []layout.Layout{layout.NewComponent("B", nil, nil)})
	_, _ = e.ShowModal(ctx, layout.StackOf())
	_, _ = e.DismissModal(ctx, "M", nil)
	_, _ = e.DismissAllModals(ctx, nil)
	_, _ = e.ShowOverlay(ctx, layout.NewComponent("T", nil, nil))
	_, _ = e.DismissOverlay(ctx, "T")
	_, _ = e.DismissAllOverlays(ctx)
	_, _ = e.SetRoot(ctx, layout.Root{Root: layout.NewComponent("R", nil, nil)})
	_ = e.UpdateProps("A", 1)
	e.SetDefaultOptions(nil)
	_ = e.SetupSheetContentNodes("A", nil, nil, nil)
	_, _ = e.Constants(ctx)
	_, _ = e.TouchablePreview().Preview("A")

	assert.Len(t, rec.Calls(), 16)
	assert.Equal(t, 14, logs.Len())
	assert.NotNil(t, e.Events())
}
