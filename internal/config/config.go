// Package config loads navdemo settings from an optional YAML file and
// NAVFACADE_ environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"navfacade/internal/trace"
)

// EnvPrefix is prepended to every environment override, e.g. NAVFACADE_LOG_LEVEL.
const EnvPrefix = "NAVFACADE"

// Config holds application configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Trace  TraceConfig  `mapstructure:"trace"`
	Script ScriptConfig `mapstructure:"script"`
}

// LogConfig selects the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"` // empty logs to stderr
}

// TraceConfig selects the OTLP exporter.
type TraceConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
	Insecure    bool   `mapstructure:"insecure"`
}

// ScriptConfig controls script playback.
type ScriptConfig struct {
	StepDelay time.Duration `mapstructure:"step_delay"`
}

// Exporter converts the trace section for trace.NewProvider.
func (c TraceConfig) Exporter() trace.ExporterConfig {
	return trace.ExporterConfig{
		Endpoint:    c.Endpoint,
		ServiceName: c.ServiceName,
		Insecure:    c.Insecure,
	}
}

// Load reads path (if non-empty) then applies env overrides. A missing path is
// an error; an empty path uses defaults and env only.
func Load(path string) (Config, error) {
	v := viper.New()

	otel := trace.ConfigFromEnv()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("trace.endpoint", otel.Endpoint)
	v.SetDefault("trace.service_name", otel.ServiceName)
	v.SetDefault("trace.insecure", otel.Insecure)
	v.SetDefault("script.step_delay", "0s")

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
