// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import "fmt"

// Errors fall into three families:
// History (the transaction's relationship to pool history is the problem),
// Runtime (the account can't afford it right now), and Syntax (the
// transaction itself is malformed relative to pool policy, e.g. too cheap).
// Each concrete error type below implements error and carries its payload
// so callers can recover structured fields via errors.As.

// ErrTransactionAlreadyImported: the pool already holds a transaction with
// this exact hash.
type ErrTransactionAlreadyImported struct{ Hash TxHash }

func (e *ErrTransactionAlreadyImported) Error() string {
	return fmt.Sprintf("transaction %s already imported", e.Hash)
}

// ErrOld: the transaction's seq is behind the account's current seq.
type ErrOld struct {
	Signer PublicKey
	Seq    uint64
	AccSeq uint64
}

func (e *ErrOld) Error() string {
	return fmt.Sprintf("transaction seq %d older than account seq %d for %s", e.Seq, e.AccSeq, e.Signer)
}

// ErrTooCheapToReplace: an external replacement at the same (signer, seq)
// didn't clear the fee-bump floor.
type ErrTooCheapToReplace struct {
	Signer      PublicKey
	Seq         uint64
	OldFee      uint64
	MinRequired uint64
	Got         uint64
}

func (e *ErrTooCheapToReplace) Error() string {
	return fmt.Sprintf("fee %d too low to replace pending tx at seq %d (need >= %d)", e.Got, e.Seq, e.MinRequired)
}

// ErrLimitReached: the transaction was admitted but lost the priority cut
// during limit enforcement and was evicted before the caller could observe
// it.
type ErrLimitReached struct{ Hash TxHash }

func (e *ErrLimitReached) Error() string {
	return fmt.Sprintf("transaction %s evicted: pool limit reached", e.Hash)
}

// ErrInsufficientBalance: the account can't cover the fee right now.
type ErrInsufficientBalance struct {
	Pubkey  PublicKey
	Cost    uint64
	Balance uint64
}

func (e *ErrInsufficientBalance) Error() string {
	return fmt.Sprintf("account %s balance %d insufficient for cost %d", e.Pubkey, e.Balance, e.Cost)
}

// ErrInsufficientFee: the pool is full and this external transaction's fee
// doesn't clear the current effective floor.
type ErrInsufficientFee struct {
	Minimal uint64
	Got     uint64
}

func (e *ErrInsufficientFee) Error() string {
	return fmt.Sprintf("fee %d below minimal accepted fee %d in a full pool", e.Got, e.Minimal)
}
