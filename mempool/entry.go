// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Entry is a single pending transaction held by the pool. Fee, cost, and
// size are captured at insertion time so priority ordering and limit
// accounting never have to re-derive them from the transaction payload.
type Entry struct {
	Signer        PublicKey
	Seq           uint64
	Fee           uint64
	Cost          uint64 // Fee + transferred value, overflow-checked at construction.
	Size          uint64 // length of Tx.Bytes().
	Origin        Origin
	InsertedBlock uint64
	InsertedAt    uint64 // timestamp
	InsertionID   uint64
	Tx            VerifiedTransaction
}

// newEntry builds an Entry from a verified transaction, computing Cost with
// 256-bit headroom so a Fee+Value overflow can never silently wrap a u64
// cost down to something an attacker could exploit to pass RemoveOld's
// cost-against-balance recheck.
func newEntry(tx VerifiedTransaction, origin Origin, blockNumber, timestamp, insertionID uint64) (*Entry, error) {
	fee := new(uint256.Int).SetUint64(tx.Fee())
	value := new(uint256.Int).SetUint64(tx.Value())
	cost := new(uint256.Int).Add(fee, value)
	if !cost.IsUint64() {
		return nil, fmt.Errorf("transaction %s cost overflows u64: fee=%d value=%d", tx.Hash(), tx.Fee(), tx.Value())
	}
	return &Entry{
		Signer:        tx.Signer(),
		Seq:           tx.Seq(),
		Fee:           tx.Fee(),
		Cost:          cost.Uint64(),
		Size:          uint64(len(tx.Bytes())),
		Origin:        origin,
		InsertedBlock: blockNumber,
		InsertedAt:    timestamp,
		InsertionID:   insertionID,
		Tx:            tx,
	}, nil
}

func (e *Entry) Hash() TxHash { return e.Tx.Hash() }
