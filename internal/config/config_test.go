package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_SERVICE_NAME",
		"NAVFACADE_LOG_LEVEL", "NAVFACADE_LOG_FORMAT", "NAVFACADE_TRACE_ENDPOINT",
		"NAVFACADE_SCRIPT_STEP_DELAY",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "console", c.Log.Format)
	assert.Empty(t, c.Trace.Endpoint)
	assert.True(t, c.Trace.Insecure)
	assert.Zero(t, c.Script.StepDelay)
}

func TestLoad_OTELEnvDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")
	t.Setenv("OTEL_SERVICE_NAME", "demo")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "localhost:4318", c.Trace.Endpoint)
	assert.Equal(t, "demo", c.Trace.Exporter().ServiceName)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "navdemo.yaml")
	data := "log:\n  level: debug\n  format: json\nscript:\n  step_delay: 250ms\ntrace:\n  endpoint: collector:4318\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	t.Setenv("NAVFACADE_LOG_LEVEL", "warn")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", c.Log.Level, "env overrides file")
	assert.Equal(t, "json", c.Log.Format)
	assert.Equal(t, 250*time.Millisecond, c.Script.StepDelay)
	assert.Equal(t, "collector:4318", c.Trace.Endpoint)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
