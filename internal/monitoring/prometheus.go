package monitoring

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetricsCollector exports metrics through a Prometheus registerer.
//
// Vectors are created on first use with the label names of that call; later
// calls for the same metric must use the same tag keys. Registration and
// label errors are kept and returned by the next Flush.
type PrometheusMetricsCollector struct {
	namespace  string
	registerer prometheus.Registerer

	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
	errs       []error
}

// NewPrometheusMetricsCollector creates a collector registering into reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheusMetricsCollector(namespace string, reg prometheus.Registerer) *PrometheusMetricsCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &PrometheusMetricsCollector{
		namespace:  namespace,
		registerer: reg,
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

func (p *PrometheusMetricsCollector) IncrementCounter(name string, tags map[string]string) {
	p.IncrementCounterBy(name, 1, tags)
}

func (p *PrometheusMetricsCollector) IncrementCounterBy(name string, value int64, tags map[string]string) {
	p.mu.Lock()
	vec, ok := p.counters[name]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Name:      MetricName(name) + "_total",
			Help:      "Counter " + name,
		}, sortedKeys(tags))
		var err error
		if vec, err = registerOrExisting(p.registerer, vec); err != nil {
			p.errs = append(p.errs, fmt.Errorf("register metric %s: %w", name, err))
		}
		p.counters[name] = vec
	}
	p.mu.Unlock()
	counter, err := vec.GetMetricWith(tags)
	if err != nil {
		p.fail(name, err)
		return
	}
	counter.Add(float64(value))
}

func (p *PrometheusMetricsCollector) SetGauge(name string, value float64, tags map[string]string) {
	p.mu.Lock()
	vec, ok := p.gauges[name]
	if !ok {
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Name:      MetricName(name),
			Help:      "Gauge " + name,
		}, sortedKeys(tags))
		var err error
		if vec, err = registerOrExisting(p.registerer, vec); err != nil {
			p.errs = append(p.errs, fmt.Errorf("register metric %s: %w", name, err))
		}
		p.gauges[name] = vec
	}
	p.mu.Unlock()
	gauge, err := vec.GetMetricWith(tags)
	if err != nil {
		p.fail(name, err)
		return
	}
	gauge.Set(value)
}

func (p *PrometheusMetricsCollector) RecordTiming(name string, duration time.Duration, tags map[string]string) {
	p.observe(name+".seconds", duration.Seconds(), tags)
}

func (p *PrometheusMetricsCollector) RecordValue(name string, value float64, tags map[string]string) {
	p.observe(name, value, tags)
}

// Flush returns the errors collected since the previous call.
func (p *PrometheusMetricsCollector) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	err := errors.Join(p.errs...)
	p.errs = nil
	return err
}

func (p *PrometheusMetricsCollector) observe(name string, value float64, tags map[string]string) {
	observer, err := p.histogram(name, tags).GetMetricWith(tags)
	if err != nil {
		p.fail(name, err)
		return
	}
	observer.Observe(value)
}

func (p *PrometheusMetricsCollector) fail(name string, err error) {
	p.mu.Lock()
	p.errs = append(p.errs, fmt.Errorf("metric %s: %w", name, err))
	p.mu.Unlock()
}

func (p *PrometheusMetricsCollector) histogram(name string, tags map[string]string) *prometheus.HistogramVec {
	p.mu.Lock()
	defer p.mu.Unlock()
	vec, ok := p.histograms[name]
	if !ok {
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Name:      MetricName(name),
			Help:      "Histogram " + name,
			Buckets:   prometheus.DefBuckets,
		}, sortedKeys(tags))
		var err error
		if vec, err = registerOrExisting(p.registerer, vec); err != nil {
			p.errs = append(p.errs, fmt.Errorf("register metric %s: %w", name, err))
		}
		p.histograms[name] = vec
	}
	return vec
}

// MetricName turns a dotted metric name into a Prometheus metric name.
func MetricName(name string) string {
	return strings.NewReplacer(".", "_", "-", "_", " ", "_").Replace(name)
}

// registerOrExisting registers c, or returns the collector already
// registered under the same descriptor. Any other error is returned with c,
// whose series are then not exported.
func registerOrExisting[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, err
}
