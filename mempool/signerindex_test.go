// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignerIndexInsertReportsReplacement(t *testing.T) {
	s := newSignerIndex()
	var signer PublicKey
	signer[0] = 1

	_, existed := s.insert(signer, 0, taggedOrder{tag: tagCurrent, order: OrderKey{Fee: 1}})
	require.False(t, existed)

	old, existed := s.insert(signer, 0, taggedOrder{tag: tagCurrent, order: OrderKey{Fee: 2}})
	require.True(t, existed)
	require.EqualValues(t, 1, old.order.Fee)
	require.Equal(t, 1, s.len())
}

func TestSignerIndexRemove(t *testing.T) {
	s := newSignerIndex()
	var signer PublicKey
	s.insert(signer, 5, taggedOrder{tag: tagCurrent})
	_, ok := s.remove(signer, 5)
	require.True(t, ok)
	require.Equal(t, 0, s.len())

	_, ok = s.remove(signer, 5)
	require.False(t, ok)
}

func TestSignerIndexClearIfEmpty(t *testing.T) {
	s := newSignerIndex()
	var signer PublicKey
	s.insert(signer, 0, taggedOrder{})
	require.False(t, s.clearIfEmpty(signer))

	s.remove(signer, 0)
	require.True(t, s.clearIfEmpty(signer))
	_, ok := s.row(signer)
	require.False(t, ok)
}

func TestSignerIndexKeysSnapshot(t *testing.T) {
	s := newSignerIndex()
	var a, b PublicKey
	a[0], b[0] = 1, 2
	s.insert(a, 0, taggedOrder{})
	s.insert(b, 0, taggedOrder{})
	require.ElementsMatch(t, []PublicKey{a, b}, s.keys())
}
