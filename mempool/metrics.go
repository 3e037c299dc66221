// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import "github.com/luxfi/geth/metrics"

// poolMetrics tracks queue occupancy and admission outcomes as gauges and
// counters, registered by name when the pool is constructed. Every update
// is gated by metrics.Enabled, so a host that never enables metrics pays
// only the Enabled check per update.
type poolMetrics struct {
	pendingCountGauge metrics.Gauge
	futureCountGauge  metrics.Gauge
	pendingMemGauge   metrics.Gauge
	futureMemGauge    metrics.Gauge

	admittedCounter metrics.Counter
	rejectedCounter metrics.Counter
	replacedCounter metrics.Counter
	evictedCounter  metrics.Counter
	expiredCounter  metrics.Counter
}

func newPoolMetrics() *poolMetrics {
	return &poolMetrics{
		pendingCountGauge: metrics.GetOrRegisterGauge("mempool/current/count", nil),
		futureCountGauge:  metrics.GetOrRegisterGauge("mempool/future/count", nil),
		pendingMemGauge:   metrics.GetOrRegisterGauge("mempool/current/memory", nil),
		futureMemGauge:    metrics.GetOrRegisterGauge("mempool/future/memory", nil),
		admittedCounter:   metrics.GetOrRegisterCounter("mempool/admitted", nil),
		rejectedCounter:   metrics.GetOrRegisterCounter("mempool/rejected", nil),
		replacedCounter:   metrics.GetOrRegisterCounter("mempool/replaced", nil),
		evictedCounter:    metrics.GetOrRegisterCounter("mempool/evicted", nil),
		expiredCounter:    metrics.GetOrRegisterCounter("mempool/expired", nil),
	}
}

func (m *poolMetrics) syncGauges(p *MemPool) {
	if !metrics.Enabled {
		return
	}
	m.pendingCountGauge.Update(int64(p.current.len()))
	m.futureCountGauge.Update(int64(p.future.len()))
	m.pendingMemGauge.Update(int64(p.current.memUsage))
	m.futureMemGauge.Update(int64(p.future.memUsage))
}

func (m *poolMetrics) admitted(n int) {
	if metrics.Enabled {
		m.admittedCounter.Inc(int64(n))
	}
}

func (m *poolMetrics) rejected(n int) {
	if metrics.Enabled {
		m.rejectedCounter.Inc(int64(n))
	}
}

func (m *poolMetrics) replaced() {
	if metrics.Enabled {
		m.replacedCounter.Inc(1)
	}
}

func (m *poolMetrics) evicted(n int) {
	if metrics.Enabled {
		m.evictedCounter.Inc(int64(n))
	}
}

func (m *poolMetrics) expired(n int) {
	if metrics.Enabled {
		m.expiredCounter.Inc(int64(n))
	}
}
