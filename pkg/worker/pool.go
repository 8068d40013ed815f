// Package worker provides a generic worker pool for concurrent task processing
package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/enioarz/ontology-server/metric"
)

// Pool lifecycle and submission errors.
var (
	ErrPoolNotStarted     = errors.New("pool: not started")
	ErrPoolStopped        = errors.New("pool: stopped")
	ErrPoolAlreadyStarted = errors.New("pool: already started")
	ErrNilProcessor       = errors.New("pool: nil processor")
	ErrStopTimeout        = errors.New("pool: workers did not stop in time")
)

// Pool runs a fixed number of workers over a bounded queue of work items of type T.
type Pool[T any] struct {
	workers   int
	queueSize int
	processor func(context.Context, T) error
	onError   func(T, error)

	workChan chan T
	metrics  *Metrics
	wg       *sync.WaitGroup
	done     <-chan struct{}

	lifecycleMu sync.RWMutex
	started     bool
	stopped     bool

	counts counters

	registrar     metric.MetricsRegistrar
	metricsPrefix string
}

type counters struct {
	submitted, processed, failed, dropped atomic.Int64
}

// Metrics holds Prometheus metrics for worker pool monitoring
type Metrics struct {
	queueDepth     prometheus.Gauge
	submitted      prometheus.Counter
	processed      prometheus.Counter
	failed         prometheus.Counter
	processingTime *prometheus.HistogramVec
}

// Option represents a configuration option for the worker pool
type Option[T any] func(*Pool[T])

// WithMetricsRegistry registers pool metrics named prefix_* with registrar.
func WithMetricsRegistry[T any](registrar metric.MetricsRegistrar, prefix string) Option[T] {
	return func(p *Pool[T]) {
		p.registrar = registrar
		p.metricsPrefix = prefix
	}
}

// WithErrorHandler calls fn, from the worker goroutine, for every item whose
// processor returned an error.
func WithErrorHandler[T any](fn func(T, error)) Option[T] {
	return func(p *Pool[T]) {
		p.onError = fn
	}
}

// NewPool creates a new generic worker pool with optional configuration
func NewPool[T any](workers, queueSize int, processor func(context.Context, T) error, opts ...Option[T]) *Pool[T] {
	if workers <= 0 {
		workers = 4
	}
	if queueSize <= 0 {
		queueSize = 256
	}
	if processor == nil {
		panic(ErrNilProcessor)
	}

	pool := &Pool[T]{
		workers:   workers,
		queueSize: queueSize,
		processor: processor,
		workChan:  make(chan T, queueSize),
	}
	for _, opt := range opts {
		opt(pool)
	}

	if pool.registrar != nil && pool.metricsPrefix != "" {
		pool.initializeMetrics()
	}
	return pool
}

// initializeMetrics registers the pool's collectors, or adopts the ones an
// earlier pool with the same prefix registered, so successive pools keep
// counting into the same series. A collector that can be neither
// registered nor adopted leaves the pool without metrics.
func (p *Pool[T]) initializeMetrics() {
	const component = "worker_pool"
	r := p.registrar
	name := func(suffix string) string { return p.metricsPrefix + "_" + suffix }
	counter := func(suffix, help string) (prometheus.Counter, bool) {
		return adopt(r, component, name(suffix),
			prometheus.NewCounter(prometheus.CounterOpts{Name: name(suffix), Help: help}),
			r.RegisterCounter)
	}

	m := &Metrics{}
	var ok bool
	if m.queueDepth, ok = adopt(r, component, name("queue_depth"),
		prometheus.NewGauge(prometheus.GaugeOpts{
			Name: name("queue_depth"),
			Help: "Items waiting in the pool queue",
		}), r.RegisterGauge); !ok {
		return
	}
	if m.submitted, ok = counter("submitted_total", "Items accepted into the queue"); !ok {
		return
	}
	if m.processed, ok = counter("processed_total", "Items processed"); !ok {
		return
	}
	if m.failed, ok = counter("failed_total", "Items whose processor returned an error"); !ok {
		return
	}
	if m.processingTime, ok = adopt(r, component, name("processing_duration_seconds"),
		prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    name("processing_duration_seconds"),
			Help:    "Time spent processing one item",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"status"}), r.RegisterHistogramVec); !ok {
		return
	}
	p.metrics = m
}

// adopt returns the collector already registered under name, or registers
// fresh and returns it.
func adopt[C prometheus.Collector](r metric.MetricsRegistrar, component, name string, fresh C,
	register func(string, string, C) error) (C, bool) {
	lookup := func() (C, bool) {
		existing, found := r.Collector(component, name)
		if !found {
			var zero C
			return zero, false
		}
		c, ok := existing.(C)
		return c, ok
	}
	if c, ok := lookup(); ok {
		return c, true
	}
	if err := register(component, name, fresh); err != nil {
		// Lost a race with another pool registering the same name.
		return lookup()
	}
	return fresh, true
}

// Submit queues work, waiting for room while the queue is full. It returns
// ctx.Err() if ctx ends first and ErrPoolStopped if the pool's own context
// has been cancelled.
func (p *Pool[T]) Submit(ctx context.Context, work T) error {
	p.lifecycleMu.RLock()
	defer p.lifecycleMu.RUnlock()

	if !p.started {
		return ErrPoolNotStarted
	}
	if p.stopped {
		return ErrPoolStopped
	}

	select {
	case p.workChan <- work:
		p.counts.submitted.Add(1)
		if p.metrics != nil {
			p.metrics.submitted.Inc()
			p.metrics.queueDepth.Set(float64(len(p.workChan)))
		}
		return nil
	case <-ctx.Done():
		p.counts.dropped.Add(1)
		return ctx.Err()
	case <-p.done:
		p.counts.dropped.Add(1)
		return ErrPoolStopped
	}
}

// Start launches the workers. They exit when ctx is cancelled or when Stop
// has drained the queue.
func (p *Pool[T]) Start(ctx context.Context) error {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	if p.started {
		return ErrPoolAlreadyStarted
	}

	p.wg = &sync.WaitGroup{}
	p.done = ctx.Done()
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}

	p.started = true
	return nil
}

// Stop closes the queue and waits up to timeout for the workers to finish
// everything already submitted.
func (p *Pool[T]) Stop(timeout time.Duration) error {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	if !p.started || p.stopped {
		return nil
	}
	close(p.workChan)
	p.stopped = true

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-timer.C:
		return ErrStopTimeout
	}
}

// Stats returns current pool statistics
func (p *Pool[T]) Stats() PoolStats {
	return PoolStats{
		Workers:    p.workers,
		QueueSize:  p.queueSize,
		QueueDepth: len(p.workChan),
		Submitted:  p.counts.submitted.Load(),
		Processed:  p.counts.processed.Load(),
		Failed:     p.counts.failed.Load(),
		Dropped:    p.counts.dropped.Load(),
	}
}

// PoolStats represents worker pool statistics
type PoolStats struct {
	Workers    int   `json:"workers"`
	QueueSize  int   `json:"queue_size"`
	QueueDepth int   `json:"queue_depth"`
	Submitted  int64 `json:"submitted"`
	Processed  int64 `json:"processed"`
	Failed     int64 `json:"failed"`
	Dropped    int64 `json:"dropped"`
}

func (p *Pool[T]) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case work, ok := <-p.workChan:
			if !ok {
				return
			}
			p.process(ctx, work)
		}
	}
}

func (p *Pool[T]) process(ctx context.Context, work T) {
	start := time.Now()
	err := p.processor(ctx, work)
	elapsed := time.Since(start)

	p.counts.processed.Add(1)
	if err != nil {
		p.counts.failed.Add(1)
		if p.onError != nil {
			p.onError(work, err)
		}
	}
	if p.metrics == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "error"
		p.metrics.failed.Inc()
	}
	p.metrics.processed.Inc()
	p.metrics.queueDepth.Set(float64(len(p.workChan)))
	p.metrics.processingTime.WithLabelValues(status).Observe(elapsed.Seconds())
}
