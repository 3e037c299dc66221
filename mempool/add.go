// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/luxfi/log"
)

// AddResult is the per-input outcome of Add, in input order: either the
// queue the transaction settled into, or the error that kept it out (or,
// for LimitReached, took it back out after a successful insert).
type AddResult struct {
	Value ImportResult
	Err   error
}

type admittedInput struct {
	signer PublicKey
	seq    uint64
	hash   TxHash
}

type pendingResult struct {
	admitted admittedInput
	err      error
}

// Add admits a batch of already-verified transactions. Every input gets
// exactly one AddResult, in order: the queue it settled into, or the error
// that kept it out.
func (p *MemPool) Add(inputs []Input, insertedBlockNumber, insertedTimestamp uint64, oracle AccountOracle) []AddResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	log.Trace("mempool add() called", "block", insertedBlockNumber, "timestamp", insertedTimestamp, "inputs", len(inputs))

	pending := make([]pendingResult, 0, len(inputs))
	toInsert := make(map[PublicKey][]uint64)
	newLocalAccounts := mapset.NewThreadUnsafeSet[PublicKey]()
	batch := p.db.NewBatch()

	for _, input := range inputs {
		tx := input.Tx
		signer := tx.Signer()
		seq := tx.Seq()
		hash := tx.Hash()

		origin := input.Origin
		switch {
		case origin == Local && !p.isLocal.Contains(signer):
			p.isLocal.Add(signer)
			newLocalAccounts.Add(signer)
		case origin == External && p.isLocal.Contains(signer):
			origin = Local
		}

		account := oracle.Account(signer)
		if err := p.verifyTransaction(tx, origin, account); err != nil {
			log.Trace("mempool rejected transaction", "hash", hash, "err", err)
			p.metrics.rejected(1)
			pending = append(pending, pendingResult{err: err})
			continue
		}

		id := p.nextInsertID
		p.nextInsertID++
		entry, err := newEntry(tx, origin, insertedBlockNumber, insertedTimestamp, id)
		if err != nil {
			pending = append(pending, pendingResult{err: err})
			continue
		}

		// Height is seeded from the same account fetch used to verify this
		// input, not a placeholder: neither the moveQueue branch below nor
		// updateOrders (which skips entries still tagged New) recomputes
		// it, so the height computed here must already be correct.
		order := orderForEntry(entry, account.Seq)
		p.byHash[hash] = entry
		if err := backupItem(batch, hash, entry); err != nil {
			panic(fmt.Sprintf("mempool: backup write failed for %s: %v", hash, err))
		}

		old, existed := p.bySigner.insert(signer, seq, taggedOrder{order: order, tag: tagNew})
		if existed {
			switch old.tag {
			case tagCurrent:
				p.current.remove(old.order)
			case tagFuture:
				p.future.remove(old.order)
			case tagNew:
				panic("mempool: duplicate (signer, seq) within a single Add call")
			}
			delete(p.byHash, old.order.Hash)
			if err := removeItem(batch, old.order.Hash); err != nil {
				panic(fmt.Sprintf("mempool: backup delete failed for %s: %v", old.order.Hash, err))
			}
			p.metrics.replaced()
		}

		toInsert[signer] = append(toInsert[signer], seq)
		pending = append(pending, pendingResult{admitted: admittedInput{signer: signer, seq: seq, hash: hash}})
	}

	for _, signer := range p.bySigner.keys() {
		cur := oracle.Account(signer).Seq
		first := p.firstSeqOf(signer)
		next := p.nextSeqOf(signer, cur)

		target := next
		if cur < first || insertedBlockNumber < p.lastBlock || insertedTimestamp < p.lastTS || next < cur {
			target = cur
		}
		newNext := p.nextSeqOfQueued(signer, target)
		isThisAccountLocal := newLocalAccounts.Contains(signer)

		switch {
		case cur != first || isThisAccountLocal:
			p.updateOrders(signer, cur, newNext, isThisAccountLocal, batch)
			p.firstSeqs[signer] = cur
			first = cur
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

		if seqList, ok := toInsert[signer]; ok {
			p.addNewOrdersToQueue(signer, seqList, newNext)
		}

		if p.bySigner.clearIfEmpty(signer) {
			p.isLocal.Remove(signer)
		}
	}

	p.enforceLimit(batch)

	p.lastBlock = insertedBlockNumber
	p.lastTS = insertedTimestamp
	p.checkInvariants()
	p.metrics.syncGauges(p)

	if err := batch.Write(); err != nil {
		panic(fmt.Sprintf("mempool: fatal backup commit failure: %v", err))
	}

	results := make([]AddResult, 0, len(pending))
	admittedCount := 0
	for _, r := range pending {
		if r.err != nil {
			results = append(results, AddResult{Err: r.err})
			continue
		}
		order, ok := p.bySigner.get(r.admitted.signer, r.admitted.seq)
		if !ok {
			results = append(results, AddResult{Err: &ErrLimitReached{Hash: r.admitted.hash}})
			continue
		}
		switch order.tag {
		case tagCurrent:
			results = append(results, AddResult{Value: ResultCurrent})
		case tagFuture:
			results = append(results, AddResult{Value: ResultFuture})
		default:
			panic("mempool: entry left tagged New past the end of Add")
		}
		admittedCount++
	}
	p.metrics.admitted(admittedCount)
	return results
}
