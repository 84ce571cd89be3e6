package otel

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics 定义指标接口
type Metrics interface {
	// Counter 返回或创建计数器
	Counter(name string) Counter
	// Histogram 返回或创建直方图
	Histogram(name string) Histogram
}

// Counter 计数器接口
type Counter interface {
	// Add 增加计数
	Add(ctx context.Context, value int64, attrs ...Attr)
}

// Histogram 直方图接口
type Histogram interface {
	// Record 记录值
	Record(ctx context.Context, value float64, attrs ...Attr)
}

// Attr 指标属性
type Attr struct {
	Key   string
	Value interface{}
}

// NewAttr 创建指标属性
func NewAttr(key string, value interface{}) Attr {
	return Attr{Key: key, Value: value}
}

// convertAttrs 转换为 OpenTelemetry 属性
func convertAttrs(attrs []Attr) []attribute.KeyValue {
	kvs := make([]attribute.KeyValue, 0, len(attrs))
	for _, a := range attrs {
		switch v := a.Value.(type) {
		case string:
			kvs = append(kvs, attribute.String(a.Key, v))
		case bool:
			kvs = append(kvs, attribute.Bool(a.Key, v))
		case int:
			kvs = append(kvs, attribute.Int(a.Key, v))
		case int64:
			kvs = append(kvs, attribute.Int64(a.Key, v))
		case float64:
			kvs = append(kvs, attribute.Float64(a.Key, v))
		default:
			kvs = append(kvs, attribute.String(a.Key, fmt.Sprintf("%v", v)))
		}
	}
	return kvs
}

// OTelMetrics 基于 OpenTelemetry Meter 的指标实现
type OTelMetrics struct {
	meter      metric.Meter
	counters   map[string]*otelCounter
	histograms map[string]*otelHistogram
	mu         sync.Mutex
}

// NewOTelMetrics 创建 OpenTelemetry 指标收集器
func NewOTelMetrics(meter metric.Meter) *OTelMetrics {
	return &OTelMetrics{
		meter:      meter,
		counters:   make(map[string]*otelCounter),
		histograms: make(map[string]*otelHistogram),
	}
}

// Counter 返回或创建计数器
func (m *OTelMetrics) Counter(name string) Counter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.counters[name]; ok {
		return c
	}

	inst, err := m.meter.Int64Counter(name, metric.WithDescription(describe(name)))
	if err != nil {
		return &NoopCounter{}
	}
	c := &otelCounter{inst: inst}
	m.counters[name] = c
	return c
}

// Histogram 返回或创建直方图
func (m *OTelMetrics) Histogram(name string) Histogram {
	m.mu.Lock()
	defer m.mu.Unlock()

	if h, ok := m.histograms[name]; ok {
		return h
	}

	inst, err := m.meter.Float64Histogram(name,
		metric.WithDescription(describe(name)),
		metric.WithUnit(string(UnitMilliseconds)),
	)
	if err != nil {
		return &NoopHistogram{}
	}
	h := &otelHistogram{inst: inst}
	m.histograms[name] = h
	return h
}

type otelCounter struct {
	inst metric.Int64Counter
}

func (c *otelCounter) Add(ctx context.Context, value int64, attrs ...Attr) {
	c.inst.Add(ctx, value, metric.WithAttributes(convertAttrs(attrs)...))
}

type otelHistogram struct {
	inst metric.Float64Histogram
}

func (h *otelHistogram) Record(ctx context.Context, value float64, attrs ...Attr) {
	h.inst.Record(ctx, value, metric.WithAttributes(convertAttrs(attrs)...))
}

// InMemoryMetrics 内存指标实现（用于测试和简单场景）
type InMemoryMetrics struct {
	counters   map[string]*InMemoryCounter
	histograms map[string]*InMemoryHistogram
	mu         sync.RWMutex
}

// NewInMemoryMetrics 创建内存指标
func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{
		counters:   make(map[string]*InMemoryCounter),
		histograms: make(map[string]*InMemoryHistogram),
	}
}

// Counter 返回或创建计数器
func (m *InMemoryMetrics) Counter(name string) Counter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.counters[name]; ok {
		return c
	}

	c := &InMemoryCounter{name: name}
	m.counters[name] = c
	return c
}

// Histogram 返回或创建直方图
func (m *InMemoryMetrics) Histogram(name string) Histogram {
	m.mu.Lock()
	defer m.mu.Unlock()

	if h, ok := m.histograms[name]; ok {
		return h
	}

	h := &InMemoryHistogram{name: name}
	m.histograms[name] = h
	return h
}

// GetCounterValue 获取计数器当前值
func (m *InMemoryMetrics) GetCounterValue(name string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if c, ok := m.counters[name]; ok {
		return c.Value()
	}
	return 0
}

// InMemoryCounter 内存计数器
type InMemoryCounter struct {
	name  string
	value int64
	mu    sync.RWMutex
}

// Add 增加计数
func (c *InMemoryCounter) Add(ctx context.Context, value int64, attrs ...Attr) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value += value
}

// Value 获取当前值
func (c *InMemoryCounter) Value() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// InMemoryHistogram 内存直方图
type InMemoryHistogram struct {
	name   string
	values []float64
	mu     sync.RWMutex
}

// Record 记录值
func (h *InMemoryHistogram) Record(ctx context.Context, value float64, attrs ...Attr) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.values = append(h.values, value)
}

// Values 获取所有记录的值
func (h *InMemoryHistogram) Values() []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	result := make([]float64, len(h.values))
	copy(result, h.values)
	return result
}

// NoopMetrics 空实现指标
type NoopMetrics struct{}

// NewNoopMetrics 创建空实现指标
func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (m *NoopMetrics) Counter(name string) Counter     { return &NoopCounter{} }
func (m *NoopMetrics) Histogram(name string) Histogram { return &NoopHistogram{} }

type NoopCounter struct{}

func (c *NoopCounter) Add(ctx context.Context, value int64, attrs ...Attr) {}

type NoopHistogram struct{}

func (h *NoopHistogram) Record(ctx context.Context, value float64, attrs ...Attr) {}

// compile-time interface check
var _ Metrics = (*OTelMetrics)(nil)
var _ Metrics = (*InMemoryMetrics)(nil)
var _ Metrics = (*NoopMetrics)(nil)
var _ Counter = (*InMemoryCounter)(nil)
var _ Histogram = (*InMemoryHistogram)(nil)
