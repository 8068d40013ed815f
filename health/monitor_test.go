package health

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitor_UpdateAndGet(t *testing.T) {
	monitor := NewMonitor()

	monitor.Update("build", Status{Component: "wrong-name", Status: "healthy"})

	got, ok := monitor.Get("build")
	require.True(t, ok)
	assert.Equal(t, "build", got.Component)
	assert.False(t, got.Timestamp.IsZero())

	monitor.Remove("build")
	_, ok = monitor.Get("build")
	assert.False(t, ok)
}

func TestMonitor_AggregateHealth(t *testing.T) {
	monitor := NewMonitor()
	assert.True(t, monitor.AggregateHealth("hyppo").IsHealthy())

	monitor.Update("templates", NewHealthy("templates", "loaded"))
	monitor.Update("build", NewDegraded("build", "1 page failed"))

	agg := monitor.AggregateHealth("hyppo")
	assert.True(t, agg.IsDegraded())
	require.Len(t, agg.SubStatuses, 2)
	assert.Equal(t, "build", agg.SubStatuses[0].Component)
	assert.Equal(t, "templates", agg.SubStatuses[1].Component)

	monitor.Update("build", NewUnhealthy("build", "no pages"))
	assert.True(t, monitor.AggregateHealth("hyppo").IsUnhealthy())
}

func TestMonitor_ConcurrentAccess(t *testing.T) {
	monitor := NewMonitor()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			monitor.Update(fmt.Sprintf("check-%d", id%5), NewHealthy("x", "ok"))
		}(i)
		go func() {
			defer wg.Done()
			_ = monitor.AggregateHealth("hyppo")
		}()
	}
	wg.Wait()

	assert.Len(t, monitor.AggregateHealth("hyppo").SubStatuses, 5)
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name   string
		subs   []Status
		expect State
	}{
		{"empty", nil, StateHealthy},
		{"all healthy", []Status{NewHealthy("a", ""), NewHealthy("b", "")}, StateHealthy},
		{"one degraded", []Status{NewHealthy("a", ""), NewDegraded("b", "")}, StateDegraded},
		{"unhealthy wins", []Status{NewDegraded("a", ""), NewUnhealthy("b", "")}, StateUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate("hyppo", tt.subs)
			assert.Equal(t, tt.expect, got.Status)
			assert.Len(t, got.SubStatuses, len(tt.subs))
		})
	}
}
