package metric

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enioarz/ontology-server/errors"
)

func gatheredNames(t *testing.T, r *MetricsRegistry) map[string]bool {
	t.Helper()
	families, err := r.PrometheusRegistry().Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	return names
}

func TestNewMetricsRegistry(t *testing.T) {
	registry := NewMetricsRegistry(false)

	assert.NotNil(t, registry)
	assert.NotNil(t, registry.PrometheusRegistry())
	assert.Same(t, registry.Metrics, registry.CoreMetrics())
	assert.False(t, gatheredNames(t, registry)["go_goroutines"])

	withRuntime := NewMetricsRegistry(true)
	assert.True(t, gatheredNames(t, withRuntime)["go_goroutines"])
}

func TestMetrics_RecordMethods(t *testing.T) {
	registry := NewMetricsRegistry(false)
	m := registry.CoreMetrics()

	m.RecordPage("class")
	m.RecordPage("class")
	m.RecordPage("named-individual")
	m.RecordFailure("invalid")
	m.RecordBuild(250*time.Millisecond, 42)
	m.RecordDocument(100)
	m.RecordDocument(28)

	assert.Equal(t, 2.0, promtest.ToFloat64(m.PagesBuilt.WithLabelValues("class")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.PagesBuilt.WithLabelValues("named-individual")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.Failures.WithLabelValues("invalid")))
	assert.Equal(t, 42.0, promtest.ToFloat64(m.Axioms))
	assert.Equal(t, 2.0, promtest.ToFloat64(m.DocumentsWritten))
	assert.Equal(t, 128.0, promtest.ToFloat64(m.BytesWritten))

	names := gatheredNames(t, registry)
	for _, name := range []string{
		"hyppo_build_pages_total",
		"hyppo_build_failures_total",
		"hyppo_build_duration_seconds",
		"hyppo_build_axioms",
		"hyppo_output_documents_total",
		"hyppo_output_bytes_total",
	} {
		assert.True(t, names[name], "metric %s should be gathered", name)
	}
}

func TestMetricsRegistry_RegisterCounter(t *testing.T) {
	registry := NewMetricsRegistry(false)

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_counter",
		Help: "A test counter",
	})

	require.NoError(t, registry.RegisterCounter("render", "test_counter", counter))
	counter.Inc()
	assert.True(t, gatheredNames(t, registry)["test_counter"])
}

func TestMetricsRegistry_RegisterGauge(t *testing.T) {
	registry := NewMetricsRegistry(false)

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "test_gauge",
		Help: "A test gauge",
	})

	require.NoError(t, registry.RegisterGauge("render", "test_gauge", gauge))
	gauge.Set(42.0)
	assert.True(t, gatheredNames(t, registry)["test_gauge"])
}

func TestMetricsRegistry_RegisterHistogramVec(t *testing.T) {
	registry := NewMetricsRegistry(false)

	hv := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: "test_histogram",
		Help: "A test histogram",
	}, []string{"status"})

	require.NoError(t, registry.RegisterHistogramVec("render", "test_histogram", hv))
	hv.WithLabelValues("success").Observe(0.2)
	assert.True(t, gatheredNames(t, registry)["test_histogram"])
}

func TestMetricsRegistry_DuplicateRegistration(t *testing.T) {
	registry := NewMetricsRegistry(false)

	newCounter := func() prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Name: "duplicate_counter",
			Help: "Duplicate counter",
		})
	}

	require.NoError(t, registry.RegisterCounter("a", "duplicate_counter", newCounter()))

	err := registry.RegisterCounter("a", "duplicate_counter", newCounter())
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
	assert.Contains(t, err.Error(), "duplicate metric registration")

	err = registry.RegisterCounter("b", "duplicate_counter", newCounter())
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
	assert.Contains(t, err.Error(), "prometheus conflict")
}

func TestMetricsRegistry_Unregister(t *testing.T) {
	registry := NewMetricsRegistry(false)

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "unregister_counter",
		Help: "A counter to unregister",
	})
	require.NoError(t, registry.RegisterCounter("render", "unregister_counter", counter))
	assert.True(t, gatheredNames(t, registry)["unregister_counter"])

	assert.True(t, registry.Unregister("render", "unregister_counter"))
	assert.False(t, gatheredNames(t, registry)["unregister_counter"])
	assert.False(t, registry.Unregister("render", "unregister_counter"))
}

func TestMetricsRegistry_ThreadSafety(t *testing.T) {
	registry := NewMetricsRegistry(false)

	var wg sync.WaitGroup
	const n = 10
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			name := fmt.Sprintf("concurrent_counter_%d", id)
			counter := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: "A concurrent counter"})
			assert.NoError(t, registry.RegisterCounter("render", name, counter))
		}(i)
	}
	wg.Wait()

	names := gatheredNames(t, registry)
	for i := 0; i < n; i++ {
		assert.True(t, names[fmt.Sprintf("concurrent_counter_%d", i)])
	}
}

func TestMetricsRegistrar_Interface(t *testing.T) {
	var registrar MetricsRegistrar = NewMetricsRegistry(false)

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "interface_counter",
		Help: "Counter registered through interface",
	})
	require.NoError(t, registrar.RegisterCounter("render", "interface_counter", counter))
}

func TestMetricsRegistry_Collector(t *testing.T) {
	registry := NewMetricsRegistry(false)
	_, ok := registry.Collector("render", "pages_total")
	assert.False(t, ok)

	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "pages_total", Help: "Pages"})
	require.NoError(t, registry.RegisterCounter("render", "pages_total", counter))

	got, ok := registry.Collector("render", "pages_total")
	require.True(t, ok)
	assert.Same(t, counter, got)

	require.True(t, registry.Unregister("render", "pages_total"))
	_, ok = registry.Collector("render", "pages_total")
	assert.False(t, ok)
}

func TestMetricsRegistry_Handler(t *testing.T) {
	registry := NewMetricsRegistry(false)
	registry.Metrics.RecordPage("class")

	rec := httptest.NewRecorder()
	registry.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hyppo_build_pages_total{kind="class"} 1`)
}

func TestMetricsRegistry_WriteTextfile(t *testing.T) {
	registry := NewMetricsRegistry(false)
	registry.Metrics.RecordDocument(10)

	path := filepath.Join(t.TempDir(), "build.prom")
	require.NoError(t, registry.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hyppo_output_bytes_total 10")

	err = registry.WriteTextfile(filepath.Join(t.TempDir(), "missing", "build.prom"))
	assert.Error(t, err)
}
