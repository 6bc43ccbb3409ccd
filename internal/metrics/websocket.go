package metrics

// IncrementWSConnections increments the active WebSocket connection gauge
func (m *Metrics) IncrementWSConnections() {
	m.safeExecute("IncrementWSConnections", func() {
		m.WSConnectionsActive.Inc()
	})
}

// DecrementWSConnections decrements the active WebSocket connection gauge
func (m *Metrics) DecrementWSConnections() {
	m.safeExecute("DecrementWSConnections", func() {
		m.WSConnectionsActive.Dec()
	})
}

// RecordWSEvent records a published WebSocket event by name
func (m *Metrics) RecordWSEvent(event string) {
	m.safeExecute("RecordWSEvent", func() {
		m.WSEventsTotal.WithLabelValues(event).Inc()
	})
}
