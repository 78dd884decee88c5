package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
	totalLatency map[string]time.Duration
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Requests     map[string]int64 `json:"requests"`
	Errors       map[string]int64 `json:"errors"`
	AvgLatencyMS map[string]int64 `json:"avg_latency_ms"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		totalLatency: make(map[string]time.Duration),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, strconv.Itoa(status))
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.totalLatency[key] += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := pathKey(path, method, code)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{
		Requests:     map[string]int64{},
		Errors:       map[string]int64{},
		AvgLatencyMS: map[string]int64{},
	}
	if m == nil {
		return snap
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range m.requestCount {
		snap.Requests[k] = v
		if v > 0 {
			snap.AvgLatencyMS[k] = (m.totalLatency[k] / time.Duration(v)).Milliseconds()
		}
	}
	for k, v := range m.errorCount {
		snap.Errors[k] = v
	}
	return snap
}

func pathKey(path, method, suffix string) string {
	return path + "|" + method + "|" + suffix
}
