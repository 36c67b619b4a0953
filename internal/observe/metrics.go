// Package observe wires OpenTelemetry metrics and tracing for the phrase
// correction service. Metrics are exported to Prometheus through the OTel
// exporter bridge installed by [InitProvider]; tests build [Metrics] on a
// private meter provider with [NewMetrics].
package observe

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "phrasecorrector"

// Metrics holds the metric instruments of the service.
type Metrics struct {
	// CorrectionDuration tracks how long one query takes to map. Use with
	// attribute.String("language", ...).
	CorrectionDuration metric.Float64Histogram

	// Corrections counts queries. Use with attributes:
	//   attribute.String("language", ...), attribute.String("outcome", ...)
	Corrections metric.Int64Counter

	// CacheHits counts queries answered from the result cache.
	CacheHits metric.Int64Counter

	// DictionaryPhrases tracks how many phrases are loaded. Use with
	// attribute.String("language", ...).
	DictionaryPhrases metric.Int64UpDownCounter

	// HTTPRequestDuration tracks HTTP request processing time. Use with
	// attributes:
	//   attribute.String("method", ...), attribute.String("path", ...), attribute.Int("status", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets are in seconds; most corrections finish well below 10ms.
var latencyBuckets = []float64{
	0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1,
}

func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.CorrectionDuration, err = m.Float64Histogram("phrasecorrector.correction.duration",
		metric.WithDescription("Latency of correcting one query."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Corrections, err = m.Int64Counter("phrasecorrector.corrections",
		metric.WithDescription("Total corrected queries by language and outcome."),
	); err != nil {
		return nil, err
	}
	if met.CacheHits, err = m.Int64Counter("phrasecorrector.cache.hits",
		metric.WithDescription("Queries answered from the result cache."),
	); err != nil {
		return nil, err
	}
	if met.DictionaryPhrases, err = m.Int64UpDownCounter("phrasecorrector.dictionary.phrases",
		metric.WithDescription("Number of dictionary phrases by language."),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("phrasecorrector.http.request.duration",
		metric.WithDescription("HTTP request latency by method, path and status."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns a process-wide instance bound to the global meter
// provider. Call it after [InitProvider].
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}
