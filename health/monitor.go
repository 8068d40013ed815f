package health

import (
	"sort"
	"sync"
	"time"
)

// Monitor holds the latest status per named check. The preview server
// updates it after every build and reads it on /health.
type Monitor struct {
	mu     sync.RWMutex
	checks map[string]Status
}

func NewMonitor() *Monitor {
	return &Monitor{checks: make(map[string]Status)}
}

// Update stores status under name. The stored status is renamed to name
// and stamped if it has no timestamp.
func (m *Monitor) Update(name string, status Status) {
	status.Component = name
	if status.Timestamp.IsZero() {
		status.Timestamp = time.Now()
	}

	m.mu.Lock()
	m.checks[name] = status
	m.mu.Unlock()
}

func (m *Monitor) Get(name string) (Status, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	status, ok := m.checks[name]
	return status, ok
}

func (m *Monitor) Remove(name string) {
	m.mu.Lock()
	delete(m.checks, name)
	m.mu.Unlock()
}

// AggregateHealth aggregates every check under systemName, ordered by
// check name.
func (m *Monitor) AggregateHealth(systemName string) Status {
	m.mu.RLock()
	subs := make([]Status, 0, len(m.checks))
	for _, status := range m.checks {
		subs = append(subs, status)
	}
	m.mu.RUnlock()

	sort.Slice(subs, func(i, j int) bool { return subs[i].Component < subs[j].Component })
	return Aggregate(systemName, subs)
}
