package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observers(t *testing.T) {
	m := NewWithRegisterer("test", prometheus.NewRegistry())

	m.ObserveOperation("create_booking", "success")
	m.ObserveOperation("create_booking", "success")
	m.ObserveCalendarFailure("create_event")
	m.ObserveCascadeFailure("invoices")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SchedulingOperationsTotal.WithLabelValues("create_booking", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CalendarSyncFailuresTotal.WithLabelValues("create_event")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CascadeFailuresTotal.WithLabelValues("invoices")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveOperation("cancel_booking", "error")
		m.ObserveCalendarFailure("delete_event")
		m.ObserveCascadeFailure("project_files")
		m.ObserveSlotsOffered("1", 3)
	})
}
