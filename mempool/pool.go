// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"fmt"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/luxfi/database"
)

// MemPool is the orchestrator: admission, verification, classification
// into current/future, fee-replacement, gap promotion/demotion, eviction
// under limits, expiration, recovery, and query. It is not safe for
// concurrent use — exactly one public call may be in flight at a time; the
// host is expected to serialize access (typically with a single mutex
// around the node's block-production/tx-ingestion path).
type MemPool struct {
	cfg Config

	current *priorityQueue
	future  *priorityQueue

	byHash       map[TxHash]*Entry
	bySigner     *signerIndex
	firstSeqs    map[PublicKey]uint64
	nextSeqs     map[PublicKey]uint64
	isLocal      mapset.Set[PublicKey]
	lastBlock    uint64
	lastTS       uint64
	nextInsertID uint64

	db      database.Database
	decode  TxDecoder
	metrics *poolMetrics

	mu sync.Mutex // defense in depth; callers must still serialize logically.
}

// New constructs an empty pool bound to db for backup and decode to
// reconstruct transactions out of persisted raw bytes. Call RecoverFromDB
// afterwards to rebuild state from a previously populated db.
func New(cfg Config, db database.Database, decode TxDecoder) *MemPool {
	return &MemPool{
		cfg:       cfg,
		current:   newPriorityQueue(),
		future:    newPriorityQueue(),
		byHash:    make(map[TxHash]*Entry),
		bySigner:  newSignerIndex(),
		firstSeqs: make(map[PublicKey]uint64),
		nextSeqs:  make(map[PublicKey]uint64),
		isLocal:   mapset.NewThreadUnsafeSet[PublicKey](),
		db:        db,
		decode:    decode,
		metrics:   newPoolMetrics(),
	}
}

// SetLimit changes the per-queue count limit enforced against non-local
// entries. Existing entries are not retroactively evicted until the next
// Add call runs enforceLimit; Remove and RemoveOld do not enforce limits.
func (p *MemPool) SetLimit(limit int) { p.cfg.CountLimit = limit }

// Limit returns the current per-queue count limit.
func (p *MemPool) Limit() int { return p.cfg.CountLimit }

// Status reports current queue occupancy.
func (p *MemPool) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Status{Pending: p.current.len(), Future: p.future.len()}
}

// effectiveMinimumFee returns one plus the lowest fee in current when the
// pool is full (count-wise), else 0. The "+1" ensures a replacing external
// transaction must strictly beat the floor rather than merely tie it.
func (p *MemPool) effectiveMinimumFee() uint64 {
	if p.current.len() >= p.cfg.CountLimit {
		return p.current.minimumFee()
	}
	return 0
}

// firstSeqOf returns first_seq[signer], defaulting to 0 when absent.
func (p *MemPool) firstSeqOf(signer PublicKey) uint64 {
	return p.firstSeqs[signer]
}

// nextSeqOf returns next_seq[signer], defaulting to fallback (the oracle's
// current seq) when absent — absence of next_seq is equivalent to
// next_seq == first_seq per the data model, but callers computing a
// re-baselining target want the oracle's seq as the fallback.
func (p *MemPool) nextSeqOf(signer PublicKey, fallback uint64) uint64 {
	if v, ok := p.nextSeqs[signer]; ok {
		return v
	}
	return fallback
}

// nextSeqOfQueued returns the smallest sequence >= start not present in
// signer's row — the first gap, and so the boundary between current and
// future for that signer.
func (p *MemPool) nextSeqOfQueued(signer PublicKey, start uint64) uint64 {
	row, ok := p.bySigner.row(signer)
	if !ok {
		return start
	}
	seq := start
	for {
		if _, present := row[seq]; !present {
			return seq
		}
		seq++
	}
}

// verifyTransaction runs the full admission gauntlet: fee floor against a
// full pool, balance, duplicate hash, staleness against the account's
// current seq, and fee-bump requirements for an external replacement. It
// does not mutate pool state.
func (p *MemPool) verifyTransaction(tx VerifiedTransaction, origin Origin, account AccountDetails) error {
	if !origin.IsLocal() && p.current.len() >= p.cfg.CountLimit {
		if floor := p.effectiveMinimumFee(); tx.Fee() < floor {
			return &ErrInsufficientFee{Minimal: floor, Got: tx.Fee()}
		}
	}
	if account.Balance < tx.Fee() {
		return &ErrInsufficientBalance{Pubkey: tx.Signer(), Cost: tx.Fee(), Balance: account.Balance}
	}
	if _, exists := p.byHash[tx.Hash()]; exists {
		return &ErrTransactionAlreadyImported{Hash: tx.Hash()}
	}
	if tx.Seq() < account.Seq {
		return &ErrOld{Signer: tx.Signer(), Seq: tx.Seq(), AccSeq: account.Seq}
	}
	if !origin.IsLocal() {
		if old, ok := p.bySigner.get(tx.Signer(), tx.Seq()); ok {
			oldFee := old.order.Fee
			minRequired := oldFee + (oldFee >> p.cfg.FeeBumpShift)
			if tx.Fee() < minRequired {
				return &ErrTooCheapToReplace{
					Signer:      tx.Signer(),
					Seq:         tx.Seq(),
					OldFee:      oldFee,
					MinRequired: minRequired,
					Got:         tx.Fee(),
				}
			}
		}
	}
	return nil
}

// removeEntry deletes an entry from every cross-index at once: byHash,
// bySigner's row, the owning priority queue, and (via the caller-supplied
// batch) the backup store. enforceLimit and Remove (and so RemoveOld)
// funnel through this; fee replacement in Add and the stale-entry drop in
// updateOrders do the same deletions inline.
func (p *MemPool) removeEntry(signer PublicKey, seq uint64, order taggedOrder, batch database.Batch) {
	hash := order.order.Hash
	delete(p.byHash, hash)
	p.bySigner.remove(signer, seq)
	switch order.tag {
	case tagCurrent:
		p.current.remove(order.order)
	case tagFuture:
		p.future.remove(order.order)
	case tagNew:
		// New never reaches a priority queue; nothing to remove there.
	}
	if batch != nil {
		if err := removeItem(batch, hash); err != nil {
			panic(fmt.Sprintf("mempool: backup delete failed for %s: %v", hash, err))
		}
	}
}

// moveQueue swaps, in place, every sequence in [start, end) present in
// signer's row between current and future according to direction `to`.
// Used when only the current/future boundary shifted and no height
// recompute is needed.
func (p *MemPool) moveQueue(signer PublicKey, start, end uint64, to tag) {
	row, ok := p.bySigner.rowMut(signer)
	if !ok {
		return
	}
	for seq := start; seq < end; seq++ {
		cur, ok := row[seq]
		if !ok {
			continue
		}
		switch {
		case cur.tag == tagCurrent && to == tagFuture:
			p.current.remove(cur.order)
			p.future.insert(cur.order)
			row[seq] = taggedOrder{order: cur.order, tag: tagFuture}
		case cur.tag == tagFuture && to == tagCurrent:
			p.future.remove(cur.order)
			p.current.insert(cur.order)
			row[seq] = taggedOrder{order: cur.order, tag: tagCurrent}
		}
	}
}

// addNewOrdersToQueue finalizes every still-tagNew sequence in seqList: it
// is current if seq < newNextSeq, else future.
func (p *MemPool) addNewOrdersToQueue(signer PublicKey, seqList []uint64, newNextSeq uint64) {
	row, ok := p.bySigner.rowMut(signer)
	if !ok {
		return
	}
	for _, seq := range seqList {
		cur, ok := row[seq]
		if !ok || cur.tag != tagNew {
			continue
		}
		if seq < newNextSeq {
			row[seq] = taggedOrder{order: cur.order, tag: tagCurrent}
			p.current.insert(cur.order)
		} else {
			row[seq] = taggedOrder{order: cur.order, tag: tagFuture}
			p.future.insert(cur.order)
		}
	}
}

// updateOrders re-bases every current/future entry in signer's row against
// a new current seq: entries strictly below currentSeq are dropped outright
// (the account has moved past them); the rest get a recomputed height and,
// if toLocal, are promoted to Local within their OrderKey, then retagged
// current/future against newNextSeq. Entries still tagged New are left
// untouched for addNewOrdersToQueue to place.
//
// Note this only flips OrderKey.Local, which is what enforceLimit's
// eviction-exemption and verifyTransaction's fee-floor bypass consult.
// Entry.Origin — the value persisted to backup — is left exactly as it was
// when the entry was first admitted; RemoveOld's residency check reads
// Entry.Origin, not OrderKey.Local, so a transaction promoted to Local by
// stickiness after insertion remains eligible for age-based expiry even
// though it is already exempt from count/memory eviction.
func (p *MemPool) updateOrders(signer PublicKey, currentSeq, newNextSeq uint64, toLocal bool, batch database.Batch) {
	row, ok := p.bySigner.rowMut(signer)
	if !ok {
		return
	}
	seqs := make([]uint64, 0, len(row))
	for seq := range row {
		seqs = append(seqs, seq)
	}

	for _, seq := range seqs {
		cur := row[seq]
		oldOrder := cur.order

		switch cur.tag {
		case tagCurrent:
			p.current.remove(oldOrder)
		case tagFuture:
			p.future.remove(oldOrder)
		case tagNew:
			continue
		}
		delete(row, seq)
		p.bySigner.size--

		if seq < currentSeq {
			delete(p.byHash, oldOrder.Hash)
			if batch != nil {
				if err := removeItem(batch, oldOrder.Hash); err != nil {
					panic(fmt.Sprintf("mempool: backup delete failed for %s: %v", oldOrder.Hash, err))
				}
			}
			continue
		}

		newOrder := oldOrder.updateHeight(seq, currentSeq)
		if toLocal {
			newOrder = newOrder.changeOrigin()
		}
		var newTag tag
		if seq < newNextSeq {
			newTag = tagCurrent
			p.current.insert(newOrder)
		} else {
			newTag = tagFuture
			p.future.insert(newOrder)
		}
		row[seq] = taggedOrder{order: newOrder, tag: newTag}
		p.bySigner.size++
	}
}

// checkInvariants asserts the cross-index invariants that every mutating
// call must leave intact. A violation is a non-recoverable logic bug: the
// process must abort rather than limp along with a partial state.
func (p *MemPool) checkInvariants() {
	if p.current.len()+p.future.len() != len(p.byHash) {
		panic(fmt.Sprintf("mempool: invariant violated: |current|(%d)+|future|(%d) != |by_hash|(%d)",
			p.current.len(), p.future.len(), len(p.byHash)))
	}
	sum := 0
	for _, n := range p.current.feeCount {
		sum += n
	}
	if sum != p.current.len() {
		panic(fmt.Sprintf("mempool: invariant violated: current fee histogram sums to %d, want %d", sum, p.current.len()))
	}
	if p.bySigner.len() != len(p.byHash) {
		panic(fmt.Sprintf("mempool: invariant violated: |SignerIndex|(%d) != |by_hash|(%d)", p.bySigner.len(), len(p.byHash)))
	}
}
