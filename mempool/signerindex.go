// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

// taggedOrder pairs an OrderKey with the queue it currently lives in (or
// tagNew during the transient admission window).
type taggedOrder struct {
	order OrderKey
	tag   tag
}

// signerIndex is the two-level public-key -> sequence -> tagged-order
// mapping (by_signer_public / SignerIndex in the design). It is the one
// place that knows, for any (signer, seq), which queue currently owns it.
type signerIndex struct {
	rows map[PublicKey]map[uint64]taggedOrder
	size int
}

func newSignerIndex() *signerIndex {
	return &signerIndex{rows: make(map[PublicKey]map[uint64]taggedOrder)}
}

// insert records (signer, seq) -> order, returning the prior tagged order
// if one existed (a fee replacement).
func (s *signerIndex) insert(signer PublicKey, seq uint64, order taggedOrder) (taggedOrder, bool) {
	row, ok := s.rows[signer]
	if !ok {
		row = make(map[uint64]taggedOrder)
		s.rows[signer] = row
	}
	old, existed := row[seq]
	row[seq] = order
	if !existed {
		s.size++
	}
	return old, existed
}

func (s *signerIndex) get(signer PublicKey, seq uint64) (taggedOrder, bool) {
	row, ok := s.rows[signer]
	if !ok {
		return taggedOrder{}, false
	}
	o, ok := row[seq]
	return o, ok
}

func (s *signerIndex) remove(signer PublicKey, seq uint64) (taggedOrder, bool) {
	row, ok := s.rows[signer]
	if !ok {
		return taggedOrder{}, false
	}
	old, ok := row[seq]
	if !ok {
		return taggedOrder{}, false
	}
	delete(row, seq)
	s.size--
	return old, true
}

// row returns the read-only view of a signer's sequence -> order mapping.
// The returned map must not be mutated by callers; use rowMut instead.
func (s *signerIndex) row(signer PublicKey) (map[uint64]taggedOrder, bool) {
	row, ok := s.rows[signer]
	return row, ok
}

// rowMut returns the mutable backing row for signer, for callers (update
// loops inside Add/Remove) that need to retag entries in place.
func (s *signerIndex) rowMut(signer PublicKey) (map[uint64]taggedOrder, bool) {
	row, ok := s.rows[signer]
	return row, ok
}

// keys returns every signer currently present, snapshotted so callers may
// mutate rows while iterating over the result.
func (s *signerIndex) keys() []PublicKey {
	out := make([]PublicKey, 0, len(s.rows))
	for k := range s.rows {
		out = append(out, k)
	}
	return out
}

func (s *signerIndex) len() int { return s.size }

// clearIfEmpty drops signer's row entirely if it has no entries left,
// reporting whether it did so the caller can also clear is_local_account.
func (s *signerIndex) clearIfEmpty(signer PublicKey) bool {
	row, ok := s.rows[signer]
	if !ok {
		return false
	}
	if len(row) == 0 {
		delete(s.rows, signer)
		return true
	}
	return false
}
