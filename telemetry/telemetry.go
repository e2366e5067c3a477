package telemetry

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector captures telemetry events emitted while decoding configuration
// payloads.
//
// Implementations may forward metrics to Prometheus, loggers or other
// monitoring systems. They should be inexpensive to call because hooks are
// executed inline with decode paths.
type Collector interface {
	IncDecodeFailure(code int)
	IncLegacyMigration()
	IncUnknownErrorCode(code int)
}

type noopCollector struct{}

// Noop returns a collector that discards all metrics.
func Noop() Collector {
	return noopCollector{}
}

func (noopCollector) IncDecodeFailure(int)    {}
func (noopCollector) IncLegacyMigration()     {}
func (noopCollector) IncUnknownErrorCode(int) {}

// PrometheusCollector exposes decode telemetry via Prometheus.
type PrometheusCollector struct {
	decodeFailures   *prometheus.CounterVec
	legacyMigrations prometheus.Counter
	unknownCodes     *prometheus.CounterVec
}

var (
	decodeFailureCounter       *prometheus.CounterVec
	decodeFailureCounterLock   sync.Mutex
	legacyMigrationCounter     prometheus.Counter
	legacyMigrationCounterLock sync.Mutex
	unknownCodeCounter         *prometheus.CounterVec
	unknownCodeCounterLock     sync.Mutex
)

// NewPrometheusCollector registers the required metrics with the provided
// registerer. Registration is idempotent; an already registered collector is
// reused.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	decodeFailureCounterLock.Lock()
	if decodeFailureCounter == nil {
		counter := prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edgeconf_decode_failures_total",
			Help: "Number of configuration decode failures per error code.",
		}, []string{"code"})
		registered, err := registerCounterVec(reg, counter)
		if err != nil {
			decodeFailureCounterLock.Unlock()
			return nil, err
		}
		decodeFailureCounter = registered
	}
	decodeFailureCounterLock.Unlock()

	legacyMigrationCounterLock.Lock()
	if legacyMigrationCounter == nil {
		counter := prometheus.NewCounter(prometheus.CounterOpts{
			Name: "edgeconf_legacy_migrations_total",
			Help: "Number of legacy wire payloads upgraded to the current format.",
		})
		if err := reg.Register(counter); err != nil {
			if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
				if existing, ok := already.ExistingCollector.(prometheus.Counter); ok {
					counter = existing
				} else {
					legacyMigrationCounterLock.Unlock()
					return nil, err
				}
			} else {
				legacyMigrationCounterLock.Unlock()
				return nil, err
			}
		}
		legacyMigrationCounter = counter
	}
	legacyMigrationCounterLock.Unlock()

	unknownCodeCounterLock.Lock()
	if unknownCodeCounter == nil {
		counter := prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edgeconf_unknown_error_code_total",
			Help: "Number of lookups that resolved an unknown error code to the generic kind.",
		}, []string{"code"})
		registered, err := registerCounterVec(reg, counter)
		if err != nil {
			unknownCodeCounterLock.Unlock()
			return nil, err
		}
		unknownCodeCounter = registered
	}
	unknownCodeCounterLock.Unlock()

	return &PrometheusCollector{
		decodeFailures:   decodeFailureCounter,
		legacyMigrations: legacyMigrationCounter,
		unknownCodes:     unknownCodeCounter,
	}, nil
}

func registerCounterVec(reg prometheus.Registerer, counter *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(counter); err != nil {
		already, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, err
		}
		existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		return existing, nil
	}
	return counter, nil
}

// IncDecodeFailure records a decode failure for the given error code.
func (p *PrometheusCollector) IncDecodeFailure(code int) {
	if p == nil || p.decodeFailures == nil {
		return
	}
	p.decodeFailures.WithLabelValues(strconv.Itoa(code)).Inc()
}

// IncLegacyMigration records one upgraded legacy payload.
func (p *PrometheusCollector) IncLegacyMigration() {
	if p == nil || p.legacyMigrations == nil {
		return
	}
	p.legacyMigrations.Inc()
}

// IncUnknownErrorCode records a code lookup that fell back to the generic kind.
func (p *PrometheusCollector) IncUnknownErrorCode(code int) {
	if p == nil || p.unknownCodes == nil {
		return
	}
	p.unknownCodes.WithLabelValues(strconv.Itoa(code)).Inc()
}
