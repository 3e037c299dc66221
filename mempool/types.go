// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package mempool implements the in-memory, disk-backed holding area for
// pending signed transactions described by a node's mining pipeline: it
// admits verified transactions, orders them by fee and arrival, enforces
// strict per-account sequencing, bounds its size, and backs itself up to a
// key-value store so a restart can recover in-flight state.
package mempool

import "fmt"

// PublicKey identifies the signer (fee payer) of a transaction. Signature
// verification itself happens upstream of the pool.
type PublicKey [32]byte

func (p PublicKey) String() string {
	return fmt.Sprintf("%x", p[:4])
}

// TxHash is the hash of a verified transaction, used as the backup store's
// key and as the final OrderKey tie-break.
type TxHash [32]byte

func (h TxHash) String() string {
	return fmt.Sprintf("%x", h[:4])
}

// Origin records whether a transaction arrived from the node operator
// (Local) or from the network (External). Local transactions are exempt
// from the fee floor and from eviction, and are "sticky": once a signer has
// any local transaction in the pool, every subsequent transaction from that
// signer is treated as local until the signer's row empties.
type Origin uint8

const (
	External Origin = iota
	Local
)

func (o Origin) IsLocal() bool { return o == Local }

func (o Origin) String() string {
	if o == Local {
		return "local"
	}
	return "external"
}

// tag is the transient classification of a (signer, seq) slot. New never
// escapes a single Add/RecoverFromDB call.
type tag uint8

const (
	tagNew tag = iota
	tagCurrent
	tagFuture
)

func (t tag) String() string {
	switch t {
	case tagCurrent:
		return "current"
	case tagFuture:
		return "future"
	default:
		return "new"
	}
}

// AccountDetails is the state an external account-state oracle reports for
// a signer: its spendable balance and its next expected sequence number.
type AccountDetails struct {
	Balance uint64
	Seq     uint64
}

// AccountOracle answers "what does account state look like right now" for
// a given signer. Implementations must be deterministic within a single
// public MemPool call and should be cheap — within one call the pool may
// ask about the same signer several times (Add, for instance, asks once
// per input and again for every signer present while re-baselining).
type AccountOracle interface {
	Account(signer PublicKey) AccountDetails
}

// OracleFunc adapts a plain function to AccountOracle.
type OracleFunc func(signer PublicKey) AccountDetails

func (f OracleFunc) Account(signer PublicKey) AccountDetails { return f(signer) }

// SeqOracle is the narrower oracle Remove uses: only the next expected
// sequence number is needed once a hash is already known to be in the pool.
type SeqOracle interface {
	Seq(signer PublicKey) uint64
}

// SeqOracleFunc adapts a plain function to SeqOracle.
type SeqOracleFunc func(signer PublicKey) uint64

func (f SeqOracleFunc) Seq(signer PublicKey) uint64 { return f(signer) }

// VerifiedTransaction is the payload the pool carries but does not
// interpret. Signature verification, decoding, and fee-payer derivation all
// happen upstream; the pool only needs these accessors.
type VerifiedTransaction interface {
	Hash() TxHash
	Signer() PublicKey
	Seq() uint64
	Fee() uint64
	// Value is the non-fee value transferred by the transaction, used to
	// compute Entry.Cost = Fee + Value.
	Value() uint64
	// Bytes is the stable encoded form of the transaction, persisted
	// verbatim in the backup record and handed back to TxDecoder on
	// recovery.
	Bytes() []byte
}

// TxDecoder reconstructs a VerifiedTransaction from the raw bytes that were
// persisted for it. It is supplied by the host, which owns the wire format;
// the pool never decodes transaction internals itself.
type TxDecoder func(raw []byte) (VerifiedTransaction, error)

// Input pairs an already-verified transaction with its declared origin for
// a single Add call.
type Input struct {
	Tx     VerifiedTransaction
	Origin Origin
}

// ImportResult is the outcome recorded for one accepted Input: the queue it
// ended up classified into once the whole batch (and any resulting
// eviction) has settled.
type ImportResult uint8

const (
	ResultCurrent ImportResult = iota
	ResultFuture
)

func (r ImportResult) String() string {
	if r == ResultFuture {
		return "future"
	}
	return "current"
}

// Status summarizes queue occupancy for external callers.
type Status struct {
	Pending int
	Future  int
}
