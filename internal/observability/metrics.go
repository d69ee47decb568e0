package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu            sync.Mutex
	requestCount  map[string]int64
	latencyTotal  map[string]time.Duration
	errorCount    map[string]int64
	decisionCount map[string]int64
	oracleCount   map[string]int64
}

// Snapshot is a point-in-time copy of every counter.
type Snapshot struct {
	Requests  map[string]int64 `json:"requests"`
	LatencyMs map[string]int64 `json:"latency_ms_total"`
	Errors    map[string]int64 `json:"errors"`
	Decisions map[string]int64 `json:"decisions"`
	Oracle    map[string]int64 `json:"oracle"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:  make(map[string]int64),
		latencyTotal:  make(map[string]time.Duration),
		errorCount:    make(map[string]int64),
		decisionCount: make(map[string]int64),
		oracleCount:   make(map[string]int64),
	}
}

// RecordRequest counts a request and adds its duration to the key's latency total.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.latencyTotal[key] += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordDecision counts a routing outcome. reason is empty for creations.
func (m *Metrics) RecordDecision(routedTo, reason string) {
	if m == nil {
		return
	}
	key := routedTo
	if reason != "" {
		key += "|" + reason
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decisionCount[key]++
}

// RecordOracle counts oracle outcomes ("verdict", "unavailable", "skipped").
func (m *Metrics) RecordOracle(outcome string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.oracleCount[outcome]++
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Requests:  copyCounts(m.requestCount),
		LatencyMs: latencyMillis(m.latencyTotal),
		Errors:    copyCounts(m.errorCount),
		Decisions: copyCounts(m.decisionCount),
		Oracle:    copyCounts(m.oracleCount),
	}
}

func copyCounts(src map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func latencyMillis(src map[string]time.Duration) map[string]int64 {
	out := make(map[string]int64, len(src))
	for k, v := range src {
		out[k] = v.Milliseconds()
	}
	return out
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
