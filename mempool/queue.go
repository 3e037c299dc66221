// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import "github.com/google/btree"

// priorityQueue is an ordered multiset of OrderKeys plus the side counters
// enforce_limit and effective_minimum_fee need: total count, total memory
// usage, and a per-fee histogram whose values always sum to count. Two
// instances exist on MemPool: current and future.
//
// The underlying google/btree.BTreeG iterates in ascending order, which
// orderLess defines to already be "highest priority first" — so an Ascend
// walk is a top-to-bottom priority walk with no extra inversion needed.
type priorityQueue struct {
	tree     *btree.BTreeG[OrderKey]
	count    int
	memUsage uint64
	feeCount map[uint64]int
}

func newPriorityQueue() *priorityQueue {
	return &priorityQueue{
		tree:     btree.NewG(32, orderLess),
		feeCount: make(map[uint64]int),
	}
}

func (q *priorityQueue) insert(k OrderKey) {
	q.tree.ReplaceOrInsert(k)
	q.count++
	q.memUsage += k.MemUsage
	q.feeCount[k.Fee]++
}

func (q *priorityQueue) remove(k OrderKey) {
	if _, ok := q.tree.Delete(k); !ok {
		return
	}
	q.count--
	q.memUsage -= k.MemUsage
	q.feeCount[k.Fee]--
	if q.feeCount[k.Fee] == 0 {
		delete(q.feeCount, k.Fee)
	}
}

func (q *priorityQueue) len() int { return q.count }

// minimumFee returns one plus the lowest fee currently present. Only
// meaningful (and only ever called) when len() >= some limit, i.e. the
// queue is non-empty.
func (q *priorityQueue) minimumFee() uint64 {
	var min uint64
	first := true
	for fee := range q.feeCount {
		if first || fee < min {
			min = fee
			first = false
		}
	}
	return min + 1
}

func (q *priorityQueue) clear() {
	q.tree.Clear(false)
	q.count = 0
	q.memUsage = 0
	q.feeCount = make(map[uint64]int)
}

// ascend walks the queue in priority order (highest priority first),
// invoking fn for each key until fn returns false or the queue is
// exhausted.
func (q *priorityQueue) ascend(fn func(k OrderKey) bool) {
	q.tree.Ascend(func(k OrderKey) bool { return fn(k) })
}

// descend walks entries from the lowest priority upward, invoking fn for
// each key until fn returns false or the queue is exhausted.
func (q *priorityQueue) descend(fn func(k OrderKey) bool) {
	q.tree.Descend(func(k OrderKey) bool { return fn(k) })
}
