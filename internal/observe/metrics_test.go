package observe_test

import (
	"context"
	"errors"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/hushnote/hushnote/internal/observe"
)

// collect gathers the current metric state from the manual reader.
func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	return rm
}

// findMetric returns the metric with the given name, or nil.
func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestMetrics_RecordMerge(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	met, err := observe.NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	met.RecordMerge(context.Background(), 42, 150*time.Millisecond)

	rm := collect(t, reader)
	counter := findMetric(rm, "hushnote.segments.merged")
	if counter == nil {
		t.Fatal("hushnote.segments.merged not recorded")
	}
	sum, ok := counter.Data.(metricdata.Sum[int64])
	if !ok || len(sum.DataPoints) != 1 || sum.DataPoints[0].Value != 42 {
		t.Errorf("segments.merged = %+v, want a single data point of 42", counter.Data)
	}
	if findMetric(rm, "hushnote.merge.duration") == nil {
		t.Error("hushnote.merge.duration not recorded")
	}
}

func TestMetrics_RecordLLMCallError(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	met, err := observe.NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	met.RecordLLMCall(context.Background(), "ollama", 2*time.Second, errors.New("boom"))
	met.RecordLLMCall(context.Background(), "ollama", time.Second, nil)

	rm := collect(t, reader)
	errCounter := findMetric(rm, "hushnote.provider.errors")
	if errCounter == nil {
		t.Fatal("hushnote.provider.errors not recorded")
	}
	sum, ok := errCounter.Data.(metricdata.Sum[int64])
	if !ok || len(sum.DataPoints) != 1 || sum.DataPoints[0].Value != 1 {
		t.Errorf("provider.errors = %+v, want one data point of 1", errCounter.Data)
	}
}

func TestDefault_NeverNil(t *testing.T) {
	t.Parallel()

	met := observe.Default()
	if met == nil {
		t.Fatal("Default() returned nil")
	}
	// Recording against the no-op global provider must not panic.
	met.RecordRender(context.Background(), "srt")
	met.RecordLabel(context.Background(), "manual")
}
