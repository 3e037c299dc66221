// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"fmt"

	"github.com/luxfi/log"
)

// Remove drops every hash present in the pool, then re-baselines every
// remaining signer exactly as Add does. A removed sequence opens a gap: any
// later sequence for that signer that depended on it being contiguous
// demotes from current to future.
//
// fetchSeq need only answer the narrower "what is this signer's next
// expected seq" question — Remove never needs balance.
func (p *MemPool) Remove(hashes []TxHash, fetchSeq SeqOracle, currentBlockNumber, currentTimestamp uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	log.Trace("mempool remove() called", "block", currentBlockNumber, "timestamp", currentTimestamp, "hashes", len(hashes))

	removed := make(map[PublicKey]uint64)
	batch := p.db.NewBatch()

	for _, hash := range hashes {
		e, ok := p.byHash[hash]
		if !ok {
			continue
		}
		signer, seq := e.Signer, e.Seq
		currentSeq := fetchSeq.Seq(signer)

		order, ok := p.bySigner.get(signer, seq)
		if !ok {
			panic(fmt.Sprintf("mempool: by_hash and SignerIndex desynced for %s", hash))
		}
		p.removeEntry(signer, seq, order, batch)

		if currentSeq <= seq {
			if old, exists := removed[signer]; !exists || old > seq {
				removed[signer] = seq
			}
		}
	}

	for _, signer := range p.bySigner.keys() {
		currentSeq := fetchSeq.Seq(signer)
		first := p.firstSeqOf(signer)
		next := p.nextSeqOf(signer, currentSeq)

		var newNext uint64
		removedSeq, hasRemoved := removed[signer]
		switch {
		case currentSeq < first || currentBlockNumber < p.lastBlock || currentTimestamp < p.lastTS || next < currentSeq:
			newNext = p.nextSeqOfQueued(signer, currentSeq)
		case hasRemoved:
			newNext = removedSeq
		default:
			newNext = p.nextSeqOfQueued(signer, next)
		}

		switch {
		case currentSeq != first:
			p.updateOrders(signer, currentSeq, newNext, false, batch)
			p.firstSeqs[signer] = currentSeq
			first = currentSeq
		case newNext < next:
			p.moveQueue(signer, newNext, next, tagFuture)
		case newNext > next:
			p.moveQueue(signer, next, newNext, tagCurrent)
		}

		if newNext <= first {
			delete(p.nextSeqs, signer)
		} else {
			p.nextSeqs[signer] = newNext
		}

		if p.bySigner.clearIfEmpty(signer) {
			p.isLocal.Remove(signer)
		}
	}

	p.lastBlock = currentBlockNumber
	p.lastTS = currentTimestamp
	p.checkInvariants()
	p.metrics.syncGauges(p)

	if err := batch.Write(); err != nil {
		panic(fmt.Sprintf("mempool: fatal backup commit failure: %v", err))
	}
}

// RemoveAll clears both queues without touching by_hash, SignerIndex, or
// the backup store. It exists for host-driven full resets beyond what
// Remove/RemoveOld cover (e.g. a reorg the surrounding chain logic detects
// on its own) and intentionally leaves the cross-index invariants broken.
// RecoverFromDB restores them from the backup store. An Add of the same
// inputs does not: their hashes are still in by_hash, so they are rejected
// as already imported, and Add and Remove panic in checkInvariants while
// the queues and by_hash disagree.
func (p *MemPool) RemoveAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current.clear()
	p.future.clear()
}

// RemoveOld checks every non-local entry's residency against the pool's
// configured age limits and removes anything that has either overstayed
// max_block_number_period_in_pool, or has sat past the shorter
// balance-recheck threshold while its signer's balance has fallen below
// its cost.
func (p *MemPool) RemoveOld(oracle AccountOracle, currentBlockNumber, currentTimestamp uint64) {
	log.Trace("mempool remove_old() called", "block", currentBlockNumber, "timestamp", currentTimestamp)

	p.mu.Lock()
	signers := make(map[PublicKey]AccountDetails, p.bySigner.len())
	for _, signer := range p.bySigner.keys() {
		signers[signer] = oracle.Account(signer)
	}
	maxPeriod := p.cfg.MaxBlockNumberPeriodInPool
	balanceCheck := p.cfg.balanceRecheckPeriod()

	var invalid []TxHash
	for hash, e := range p.byHash {
		if e.Origin.IsLocal() {
			continue
		}
		diff := saturatingSub(currentBlockNumber, e.InsertedBlock)
		if diff > maxPeriod {
			invalid = append(invalid, hash)
			continue
		}
		if diff > balanceCheck {
			if details, ok := signers[e.Signer]; ok && e.Cost > details.Balance {
				invalid = append(invalid, hash)
			}
		}
	}
	p.mu.Unlock()

	fetchSeq := SeqOracleFunc(func(signer PublicKey) uint64 { return signers[signer].Seq })
	p.Remove(invalid, fetchSeq, currentBlockNumber, currentTimestamp)
	if len(invalid) > 0 {
		p.metrics.expired(len(invalid))
	}
}

func saturatingSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}
