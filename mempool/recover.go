// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import "github.com/luxfi/log"

// RecoverFromDB rebuilds every in-memory index from the backing store. It
// is meant to be called once, right after New, against a store that may
// already hold entries from a previous process's lifetime.
//
// chainBlockNumber and chainTimestamp seed last_block_number/last_timestamp
// advisorily — they only affect whether the *next* Add/Remove call is
// treated as a forward step in time, not anything recovered here.
//
// Recovered entries are not dropped even if their seq now sits below the
// signer's current oracle seq — they are retagged Current/Future purely by
// the recomputed current/future boundary (unlike Add/Remove's
// updateOrders, which does drop stale sub-current entries). A node is
// expected to have already called Remove for anything chain-finalized
// before a clean shutdown; recovery after a crash between block commit and
// that Remove call can surface a once-executed entry as Current until the
// next ordinary Add/Remove re-bases it.
func (p *MemPool) RecoverFromDB(oracle AccountOracle, chainBlockNumber, chainTimestamp uint64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := recoverToData(p.db, p.decode)
	if err != nil {
		return err
	}
	log.Debug("mempool recovering from backing store", "entries", len(data))

	var maxInsertionID uint64
	toInsert := make(map[PublicKey][]uint64)

	for hash, e := range data {
		account := oracle.Account(e.Signer)
		if e.InsertionID > maxInsertionID {
			maxInsertionID = e.InsertionID
		}
		order := orderForEntry(e, account.Seq)
		p.byHash[hash] = e
		p.bySigner.insert(e.Signer, e.Seq, taggedOrder{order: order, tag: tagNew})
		if e.Origin.IsLocal() {
			p.isLocal.Add(e.Signer)
		}
		toInsert[e.Signer] = append(toInsert[e.Signer], e.Seq)
	}

	for _, signer := range p.bySigner.keys() {
		currentSeq := oracle.Account(signer).Seq
		nextSeq := p.nextSeqOfQueued(signer, currentSeq)

		p.firstSeqs[signer] = currentSeq
		if nextSeq > currentSeq {
			p.nextSeqs[signer] = nextSeq
		}
		if seqList, ok := toInsert[signer]; ok {
			p.addNewOrdersToQueue(signer, seqList, nextSeq)
		}
		if p.bySigner.clearIfEmpty(signer) {
			p.isLocal.Remove(signer)
		}
	}

	p.lastBlock = chainBlockNumber
	p.lastTS = chainTimestamp
	p.nextInsertID = maxInsertionID + 1

	p.checkInvariants()
	log.Debug("mempool recovery complete", "current", p.current.len(), "future", p.future.len())
	return nil
}
