// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import "bytes"

// OrderKey is the total order on pending entries used as the key inside
// both priority queues. Lexicographic tie-breaks, in priority order
// (earliest in the order = highest priority = served first):
//
//  1. Local before External (stickiness pays off at the front of the
//     queue).
//  2. Lower height first (height = seq - first_seq at insertion time; a
//     height-0 transaction is immediately executable).
//  3. Higher fee first.
//  4. Smaller memory usage first.
//  5. Smaller insertion id first (earlier arrival wins ties).
//  6. Hash last, purely for determinism when everything else ties.
type OrderKey struct {
	Local    bool
	Height   uint64
	Fee      uint64
	MemUsage uint64
	InsertID uint64
	Hash     TxHash
}

// orderLess reports whether a has strictly higher priority than b, i.e. a sorts
// before b in the ascending iteration order a priority-queue walk uses to
// serve "highest priority first".
func orderLess(a, b OrderKey) bool {
	if a.Local != b.Local {
		return a.Local
	}
	if a.Height != b.Height {
		return a.Height < b.Height
	}
	if a.Fee != b.Fee {
		return a.Fee > b.Fee
	}
	if a.MemUsage != b.MemUsage {
		return a.MemUsage < b.MemUsage
	}
	if a.InsertID != b.InsertID {
		return a.InsertID < b.InsertID
	}
	return bytes.Compare(a.Hash[:], b.Hash[:]) < 0
}

// orderForEntry builds the OrderKey for entry given the account's current
// seq (used to compute height). The caller is responsible for deciding
// which queue (current/future) this key belongs in.
func orderForEntry(e *Entry, currentSeq uint64) OrderKey {
	return OrderKey{
		Local:    e.Origin.IsLocal(),
		Height:   e.Seq - currentSeq,
		Fee:      e.Fee,
		MemUsage: e.Size,
		InsertID: e.InsertionID,
		Hash:     e.Tx.Hash(),
	}
}

// updateHeight returns a copy of k re-based against a new current seq.
func (k OrderKey) updateHeight(seq, currentSeq uint64) OrderKey {
	k.Height = seq - currentSeq
	return k
}

// changeOrigin returns a copy of k promoted to Local. Demotion from Local
// never happens: origin stickiness is monotone for the lifetime of a row.
func (k OrderKey) changeOrigin() OrderKey {
	k.Local = true
	return k
}
