// Package logging builds the process logger for applications embedding the
// configuration core. Setup also installs the built logger as the
// diagnostics sink of the faults package, so latent-defect signals end up
// in the same stream as everything else.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/grafana/loki-client-go/loki"
	"github.com/prometheus/common/model"
	"github.com/rs/zerolog"

	"github.com/timzifer/edgeconf/faults"
)

// Config controls logger construction.
type Config struct {
	Service string     `yaml:"service,omitempty"`
	Level   string     `yaml:"level,omitempty"`
	Format  string     `yaml:"format,omitempty"`
	Loki    LokiConfig `yaml:"loki,omitempty"`
}

// LokiConfig describes an optional Loki log sink.
type LokiConfig struct {
	Enabled bool              `yaml:"enabled,omitempty"`
	URL     string            `yaml:"url,omitempty"`
	Labels  map[string]string `yaml:"labels,omitempty"`
}

const defaultService = "edgeconf"

func (c Config) service() string {
	if c.Service != "" {
		return c.Service
	}
	return defaultService
}

// Setup builds the process logger according to the configuration and writes
// console output to stdout. The returned cleanup stops the Loki client when
// one is configured.
func Setup(cfg Config) (zerolog.Logger, func(), error) {
	return SetupWriter(cfg, os.Stdout)
}

// SetupWriter is Setup with an explicit console destination.
func SetupWriter(cfg Config, out io.Writer) (zerolog.Logger, func(), error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	if strings.EqualFold(cfg.Format, "text") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	writers := []io.Writer{out}
	cleanup := func() {}

	if cfg.Loki.Enabled {
		sink, closer, err := newLokiWriter(cfg.service(), cfg.Loki)
		if err != nil {
			return zerolog.Logger{}, nil, err
		}
		writers = append(writers, sink)
		cleanup = closer
	}

	multi := zerolog.MultiLevelWriter(writers...)
	logger := zerolog.New(multi).With().
		Timestamp().
		Str("service", cfg.service()).
		Logger().
		Level(level)
	faults.SetLogger(logger)
	return logger, cleanup, nil
}

func newLokiWriter(service string, cfg LokiConfig) (io.Writer, func(), error) {
	if cfg.URL == "" {
		return nil, nil, fmt.Errorf("loki url is required")
	}
	lokiCfg, err := loki.NewDefaultConfig(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("prepare loki config: %w", err)
	}
	client, err := loki.New(lokiCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create loki client: %w", err)
	}

	labels := model.LabelSet{"app": model.LabelValue(service)}
	for k, v := range cfg.Labels {
		labels[model.LabelName(k)] = model.LabelValue(v)
	}

	writer := &lokiWriter{client: client, labels: labels}
	cleanup := func() {
		client.Stop()
	}
	return writer, cleanup, nil
}

type lokiWriter struct {
	client *loki.Client
	labels model.LabelSet
}

func (l *lokiWriter) Write(p []byte) (int, error) {
	entry := strings.TrimSpace(string(p))
	if entry == "" {
		return len(p), nil
	}
	err := l.client.Handle(l.labels, time.Now(), entry)
	return len(p), err
}
