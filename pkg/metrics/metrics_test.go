package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewWithRegisterer(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer(reg, "forest-reservation")

	m.HTTPRequestsTotal.WithLabelValues("GET", "/api/availability/{yearMonth}", "200").Inc()
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/availability/{yearMonth}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequestsTotal.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheRequestsTotal.WithLabelValues("miss")))
}

func TestObserveCache_NilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveCache(true) })
}

func TestObserveSlotMutation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer(reg, "forest-reservation")

	m.ObserveSlotMutation("book", nil)
	m.ObserveSlotMutation("book", errors.New("closed"))
	m.ObserveSlotMutation("book", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SlotMutationsTotal.WithLabelValues("book", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlotMutationsTotal.WithLabelValues("book", "error")))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.ObserveSlotMutation("release", nil) })
}
