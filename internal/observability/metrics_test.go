package observability

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/webhook", "POST", 200, 40*time.Millisecond)
	m.RecordRequest("/webhook", "POST", 200, 15*time.Millisecond)
	m.RecordError("/webhook", "POST", "UNAUTHORIZED")
	m.RecordDecision("ask_clarify", "too_short_or_vague")
	m.RecordDecision("create_fallback", "")
	m.RecordOracle("unavailable")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/webhook|POST|200"])
	assert.Equal(t, int64(55), snap.LatencyMs["/webhook|POST|200"])
	assert.Equal(t, int64(1), snap.Errors["/webhook|POST|UNAUTHORIZED"])
	assert.Equal(t, int64(1), snap.Decisions["ask_clarify|too_short_or_vague"])
	assert.Equal(t, int64(1), snap.Decisions["create_fallback"])
	assert.Equal(t, int64(1), snap.Oracle["unavailable"])
}

func TestMetricsSnapshotIsCopy(t *testing.T) {
	m := NewMetrics()
	m.RecordOracle("verdict")
	snap := m.Snapshot()
	snap.Oracle["verdict"] = 99
	assert.Equal(t, int64(1), m.Snapshot().Oracle["verdict"])
}

func TestMetricsConcurrent(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordDecision("create", "")
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(50), m.Snapshot().Decisions["create"])
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordDecision("create", "")
	m.RecordOracle("verdict")
	assert.Equal(t, Snapshot{}, m.Snapshot())
}
