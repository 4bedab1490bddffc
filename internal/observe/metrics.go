// Package observe provides observability primitives for the transcript
// pipeline: OpenTelemetry metric instruments and an optional Prometheus
// exporter bridge.
//
// Metrics are recorded through the OpenTelemetry Metrics API. When no SDK
// provider is initialised (the normal batch case) the instruments are no-ops
// and recording costs nothing. Long-running deployments call [InitProvider]
// to wire the Prometheus bridge and scrape /metrics. A package-level default
// [Metrics] instance ([Default]) is provided for convenience; tests should
// use [NewMetrics] with a custom [metric.MeterProvider] to avoid cross-test
// pollution.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all hushnote metrics.
const meterName = "github.com/hushnote/hushnote"

// Metrics holds all OpenTelemetry metric instruments for the pipeline.
// All fields are safe for concurrent use; the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// MergeDuration tracks merge-engine latency per document.
	MergeDuration metric.Float64Histogram

	// LLMDuration tracks text-generation call latency. Use with attribute:
	//   attribute.String("provider", ...)
	LLMDuration metric.Float64Histogram

	// SegmentsMerged counts merged segments produced.
	SegmentsMerged metric.Int64Counter

	// SpeakersLabeled counts committed speaker labels. Use with attribute:
	//   attribute.String("source", "manual"|"skipped"|"directory")
	SpeakersLabeled metric.Int64Counter

	// Renders counts rendered artifacts. Use with attribute:
	//   attribute.String("format", ...)
	Renders metric.Int64Counter

	// ProviderErrors counts failed text-generation calls. Use with attribute:
	//   attribute.String("provider", ...)
	ProviderErrors metric.Int64Counter
}

// latencyBuckets defines histogram bucket boundaries (in seconds). Merge is
// sub-second; LLM calls run from seconds to minutes.
var latencyBuckets = []float64{
	0.005, 0.025, 0.1, 0.5, 1, 5, 15, 60, 120, 300,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.MergeDuration, err = m.Float64Histogram("hushnote.merge.duration",
		metric.WithDescription("Latency of merging diarization and transcription timelines."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.LLMDuration, err = m.Float64Histogram("hushnote.llm.duration",
		metric.WithDescription("Latency of text-generation calls."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.SegmentsMerged, err = m.Int64Counter("hushnote.segments.merged",
		metric.WithDescription("Number of merged segments produced."),
	); err != nil {
		return nil, err
	}
	if met.SpeakersLabeled, err = m.Int64Counter("hushnote.speakers.labeled",
		metric.WithDescription("Number of speaker labels committed."),
	); err != nil {
		return nil, err
	}
	if met.Renders, err = m.Int64Counter("hushnote.renders",
		metric.WithDescription("Number of transcripts rendered."),
	); err != nil {
		return nil, err
	}
	if met.ProviderErrors, err = m.Int64Counter("hushnote.provider.errors",
		metric.WithDescription("Number of failed text-generation calls."),
	); err != nil {
		return nil, err
	}
	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// Default returns the package-level [Metrics] instance bound to the global
// meter provider. Instrument creation against the global provider cannot
// fail, so Default never returns nil.
func Default() *Metrics {
	defaultMetricsOnce.Do(func() {
		met, err := NewMetrics(otel.GetMeterProvider())
		if err != nil {
			// The no-op provider never errors; guard anyway.
			met = &Metrics{}
			m := otel.GetMeterProvider().Meter(meterName)
			met.MergeDuration, _ = m.Float64Histogram("hushnote.merge.duration")
			met.LLMDuration, _ = m.Float64Histogram("hushnote.llm.duration")
			met.SegmentsMerged, _ = m.Int64Counter("hushnote.segments.merged")
			met.SpeakersLabeled, _ = m.Int64Counter("hushnote.speakers.labeled")
			met.Renders, _ = m.Int64Counter("hushnote.renders")
			met.ProviderErrors, _ = m.Int64Counter("hushnote.provider.errors")
		}
		defaultMetrics = met
	})
	return defaultMetrics
}

// RecordMerge records one merge operation.
func (m *Metrics) RecordMerge(ctx context.Context, segments int, elapsed time.Duration) {
	m.MergeDuration.Record(ctx, elapsed.Seconds())
	m.SegmentsMerged.Add(ctx, int64(segments))
}

// RecordLabel records one committed speaker label.
func (m *Metrics) RecordLabel(ctx context.Context, source string) {
	m.SpeakersLabeled.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
}

// RecordRender records one rendered artifact.
func (m *Metrics) RecordRender(ctx context.Context, format string) {
	m.Renders.Add(ctx, 1, metric.WithAttributes(attribute.String("format", format)))
}

// RecordLLMCall records one text-generation call and its outcome.
func (m *Metrics) RecordLLMCall(ctx context.Context, provider string, elapsed time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("provider", provider))
	m.LLMDuration.Record(ctx, elapsed.Seconds(), attrs)
	if err != nil {
		m.ProviderErrors.Add(ctx, 1, attrs)
	}
}
