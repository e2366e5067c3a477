package edgeconfig

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/timzifer/edgeconf/faults"
	"github.com/timzifer/edgeconf/jsonval"
	"github.com/timzifer/edgeconf/telemetry"
)

// Decoder turns wire payloads into EdgeConfig values. The zero-config
// decoder is silent; loggers and telemetry collectors are attached through
// options.
type Decoder struct {
	logger    zerolog.Logger
	collector telemetry.Collector
}

// DecoderOption configures a Decoder during construction.
type DecoderOption func(*Decoder)

// WithLogger provides a custom logger instance for the decoder.
func WithLogger(logger zerolog.Logger) DecoderOption {
	return func(d *Decoder) {
		d.logger = logger
	}
}

// WithCollector attaches a telemetry collector to the decoder.
func WithCollector(collector telemetry.Collector) DecoderOption {
	return func(d *Decoder) {
		if collector != nil {
			d.collector = collector
		}
	}
}

// NewDecoder creates a decoder with the provided options applied.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{
		logger:    zerolog.Nop(),
		collector: telemetry.Noop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDecoder = NewDecoder()

// Decode parses a configuration from wire form. The first failure stops the
// decode; there is no aggregation of multiple errors. A payload carrying
// both a "things" and a "meta" member is treated as the obsolete legacy
// shape and upgraded.
func (d *Decoder) Decode(v jsonval.Value) (*EdgeConfig, error) {
	cfg, err := d.decode(v)
	if err != nil {
		var fe *faults.Error
		if errors.As(err, &fe) {
			d.collector.IncDecodeFailure(fe.Code())
		}
		return nil, err
	}
	return cfg, nil
}

func (d *Decoder) decode(v jsonval.Value) (*EdgeConfig, error) {
	obj, err := jsonval.AsObject(v)
	if err != nil {
		return nil, err
	}

	if _, hasThings := obj["things"]; hasThings {
		if _, hasMeta := obj["meta"]; hasMeta {
			d.logger.Debug().Msg("legacy wire format detected, upgrading")
			d.collector.IncLegacyMigration()
			return decodeLegacy(obj)
		}
	}

	cfg := New()

	components, err := jsonval.ObjectMember(obj, "components")
	if err != nil {
		return nil, err
	}
	for id, entry := range components {
		component, err := ComponentFromJSON(entry)
		if err != nil {
			return nil, err
		}
		cfg.AddComponent(id, component)
	}

	factories, err := jsonval.ObjectMember(obj, "factories")
	if err != nil {
		return nil, err
	}
	for id, entry := range factories {
		factory, err := FactoryFromJSON(entry)
		if err != nil {
			return nil, err
		}
		cfg.AddFactory(id, factory)
	}

	return cfg, nil
}
