package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncTransition("approve", "ok")
	m.IncTransition("approve", "ok")
	m.IncTransition("remove", "remote_error")
	m.IncDialog("timeout")
	m.ObserveConsole("add", "ok", time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Transitions.WithLabelValues("approve", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("remove", "remote_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DialogsFinished.WithLabelValues("timeout")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ConsoleDuration))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncTransition("deny", "ok")
		m.ObserveConsole("list", "ok", time.Now())
		m.IncDialog("submitted")
		m.IncCommand("!add")
	})
}
