// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import "github.com/luxfi/database"

// enforceLimit scans each queue from highest priority downward, keeping a
// running count/memory total of everything seen so far (local entries
// included — they count toward the total even though they're exempt from
// eviction). Once that running total first exceeds the configured limit,
// every non-local entry from that point on is excess and gets evicted.
// Local entries are never evicted, even past the limit, which means a
// queue saturated with local entries can sit permanently over its
// configured bound.
func (p *MemPool) enforceLimit(batch database.Batch) {
	dropCurrent := p.ordersToDrop(p.current)
	dropFuture := p.ordersToDrop(p.future)

	for _, k := range dropCurrent {
		p.evictOrder(k, tagCurrent, batch)
	}
	for _, k := range dropFuture {
		p.evictOrder(k, tagFuture, batch)
	}
	if n := len(dropCurrent) + len(dropFuture); n > 0 {
		p.metrics.evicted(n)
	}
}

func (p *MemPool) ordersToDrop(q *priorityQueue) []OrderKey {
	if q.memUsage <= p.cfg.MemoryLimit && q.len() <= p.cfg.CountLimit {
		return nil
	}
	var (
		count int
		mem   uint64
		drop  []OrderKey
	)
	q.ascend(func(k OrderKey) bool {
		count++
		mem += k.MemUsage
		if !k.Local && (mem > p.cfg.MemoryLimit || count > p.cfg.CountLimit) {
			drop = append(drop, k)
		}
		return true
	})
	return drop
}

func (p *MemPool) evictOrder(k OrderKey, t tag, batch database.Batch) {
	e, ok := p.byHash[k.Hash]
	if !ok {
		return
	}
	p.removeEntry(e.Signer, e.Seq, taggedOrder{order: k, tag: t}, batch)
	if p.bySigner.clearIfEmpty(e.Signer) {
		p.isLocal.Remove(e.Signer)
	}
}
