// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

// TimestampRange is a half-open [Start, End) window over an entry's
// inserted-at timestamp, used by every query below to filter candidates.
type TimestampRange struct {
	Start uint64
	End   uint64
}

func (r TimestampRange) contains(ts uint64) bool { return ts >= r.Start && ts < r.End }

// PendingTransactions is the result of a priority-ordered query: the
// transactions themselves, and the latest inserted-at timestamp among the
// ones actually included (nil if none were).
type PendingTransactions struct {
	Transactions []VerifiedTransaction
	LastTimestamp *uint64
}

func bump(lastTS *uint64, ts uint64) *uint64 {
	if lastTS == nil || ts > *lastTS {
		v := ts
		return &v
	}
	return lastTS
}

// TopTransactions iterates current in priority order, keeping entries whose
// inserted-at timestamp falls in range, accumulating their encoded size
// against sizeLimit. Inclusion uses strict less-than: the entry whose
// inclusion would bring the running total to or past sizeLimit is excluded
// and iteration stops there — entries after it are never considered, even
// if a later one alone would have fit.
func (p *MemPool) TopTransactions(sizeLimit uint64, r TimestampRange) PendingTransactions {
	p.mu.Lock()
	defer p.mu.Unlock()

	var (
		running uint64
		lastTS  *uint64
		out     []VerifiedTransaction
	)
	p.current.ascend(func(k OrderKey) bool {
		e, ok := p.byHash[k.Hash]
		if !ok || !r.contains(e.InsertedAt) {
			return true
		}
		running += e.Size
		if running >= sizeLimit {
			return false
		}
		out = append(out, e.Tx)
		lastTS = bump(lastTS, e.InsertedAt)
		return true
	})
	return PendingTransactions{Transactions: out, LastTimestamp: lastTS}
}

// GetFuturePendingTransactions behaves like TopTransactions over current,
// then continues into future using the *same* running size budget: the
// two queues share one accumulator rather than each getting sizeLimit
// independently.
func (p *MemPool) GetFuturePendingTransactions(sizeLimit uint64, r TimestampRange) PendingTransactions {
	p.mu.Lock()
	defer p.mu.Unlock()

	var (
		running uint64
		lastTS  *uint64
		out     []VerifiedTransaction
		stopped bool
	)
	walk := func(q *priorityQueue) {
		if stopped {
			return
		}
		q.ascend(func(k OrderKey) bool {
			e, ok := p.byHash[k.Hash]
			if !ok || !r.contains(e.InsertedAt) {
				return true
			}
			running += e.Size
			if running >= sizeLimit {
				stopped = true
				return false
			}
			out = append(out, e.Tx)
			lastTS = bump(lastTS, e.InsertedAt)
			return true
		})
	}
	walk(p.current)
	walk(p.future)
	return PendingTransactions{Transactions: out, LastTimestamp: lastTS}
}

// CountPendingTransactions counts current entries whose inserted-at
// timestamp falls in range.
func (p *MemPool) CountPendingTransactions(r TimestampRange) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.countInRange(p.current, r)
}

// FutureIncludedCountPendingTransactions counts entries in range across
// both future and current.
func (p *MemPool) FutureIncludedCountPendingTransactions(r TimestampRange) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.countInRange(p.future, r) + p.countInRange(p.current, r)
}

func (p *MemPool) countInRange(q *priorityQueue, r TimestampRange) int {
	n := 0
	q.ascend(func(k OrderKey) bool {
		if e, ok := p.byHash[k.Hash]; ok && r.contains(e.InsertedAt) {
			n++
		}
		return true
	})
	return n
}

// FutureTransactions returns every future-queued transaction, in priority
// order, with no timestamp or size filtering.
func (p *MemPool) FutureTransactions() []VerifiedTransaction {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]VerifiedTransaction, 0, p.future.len())
	p.future.ascend(func(k OrderKey) bool {
		if e, ok := p.byHash[k.Hash]; ok {
			out = append(out, e.Tx)
		}
		return true
	})
	return out
}
