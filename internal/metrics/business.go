package metrics

// IncrementThreadCreated increments the thread creation counter for a kind
func (m *Metrics) IncrementThreadCreated(kind string) {
	m.safeExecute("IncrementThreadCreated", func() {
		m.ThreadCreatedTotal.WithLabelValues(kind).Inc()
	})
}

// IncrementCommentCreated increments comment creation counter
func (m *Metrics) IncrementCommentCreated() {
	m.safeExecute("IncrementCommentCreated", func() {
		m.CommentCreatedTotal.Inc()
	})
}

// IncrementCommentLiked increments comment like counter
func (m *Metrics) IncrementCommentLiked() {
	m.safeExecute("IncrementCommentLiked", func() {
		m.CommentLikedTotal.Inc()
	})
}

// SetThreadsTotal sets total threads gauge
func (m *Metrics) SetThreadsTotal(count int64) {
	m.safeExecute("SetThreadsTotal", func() {
		m.ThreadsTotal.Set(float64(count))
	})
}

// SetCommentsTotal sets total comments gauge
func (m *Metrics) SetCommentsTotal(count int64) {
	m.safeExecute("SetCommentsTotal", func() {
		m.CommentsTotal.Set(float64(count))
	})
}
