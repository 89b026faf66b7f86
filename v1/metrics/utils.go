package metrics

import (
	"strconv"
	"time"
)

// QueryCompiled counts a compiled query; ok is false for rejected queries.
func (m *Metrics) QueryCompiled(ok bool) {
	result := "ok"
	if !ok {
		result = "invalid"
	}
	m.queriesCompiled.WithLabelValues(result).Inc()
}

// LeavesSkipped adds n leaves that could not be placed in a state tree.
func (m *Metrics) LeavesSkipped(n int) {
	if n > 0 {
		m.leavesSkipped.Add(float64(n))
	}
}

// Inserted counts an accepted insert for owner.
func (m *Metrics) Inserted(owner string) {
	m.inserts.WithLabelValues(owner).Inc()
}

// CommandSent counts a command relayed to a vehicle by the upstream status code.
// A code of 0 means the request never got a response.
func (m *Metrics) CommandSent(statusCode int) {
	m.commandsSent.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// ObserveHTTPRequest records one handled request.
func (m *Metrics) ObserveHTTPRequest(route string, code int, start time.Time) {
	m.httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
}
