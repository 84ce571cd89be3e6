package otel_test

import (
	"context"
	"sync"
	"testing"

	"github.com/easyops/agenttools-go/pkg/otel"
)

func TestInMemoryMetrics_Counter(t *testing.T) {
	metrics := otel.NewInMemoryMetrics()

	counter := metrics.Counter(otel.MetricToolCalls)
	counter.Add(context.Background(), 1)
	counter.Add(context.Background(), 2, otel.NewAttr("tool", "web_search"))

	if got := metrics.GetCounterValue(otel.MetricToolCalls); got != 3 {
		t.Fatalf("expected counter value 3, got %d", got)
	}
}

func TestInMemoryMetrics_CounterReuse(t *testing.T) {
	metrics := otel.NewInMemoryMetrics()

	c1 := metrics.Counter("test.counter")
	c2 := metrics.Counter("test.counter")
	c1.Add(context.Background(), 1)
	c2.Add(context.Background(), 1)

	if got := metrics.GetCounterValue("test.counter"); got != 2 {
		t.Fatalf("expected same counter instance, got value %d", got)
	}
}

func TestInMemoryMetrics_Histogram(t *testing.T) {
	metrics := otel.NewInMemoryMetrics()

	histogram := metrics.Histogram(otel.MetricToolCallDuration)
	histogram.Record(context.Background(), 12.5)
	histogram.Record(context.Background(), 7.5)

	inMem, ok := metrics.Histogram(otel.MetricToolCallDuration).(*otel.InMemoryHistogram)
	if !ok {
		t.Fatal("expected InMemoryHistogram")
	}
	values := inMem.Values()
	if len(values) != 2 || values[0] != 12.5 || values[1] != 7.5 {
		t.Fatalf("expected recorded values [12.5 7.5], got %v", values)
	}
}

func TestInMemoryMetrics_ConcurrentAccess(t *testing.T) {
	metrics := otel.NewInMemoryMetrics()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			metrics.Counter("concurrent.counter").Add(context.Background(), 1)
		}()
	}
	wg.Wait()

	if got := metrics.GetCounterValue("concurrent.counter"); got != 100 {
		t.Fatalf("expected counter value 100, got %d", got)
	}
}

func TestNoopMetrics(t *testing.T) {
	metrics := otel.NewNoopMetrics()

	// must not panic
	metrics.Counter("anything").Add(context.Background(), 1)
	metrics.Histogram("anything").Record(context.Background(), 1.0)
}
