// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func hashOf(b byte) TxHash {
	var h TxHash
	h[0] = b
	return h
}

func TestOrderLessLocalBeatsExternal(t *testing.T) {
	local := OrderKey{Local: true, Height: 100, Fee: 1, Hash: hashOf(1)}
	external := OrderKey{Local: false, Height: 0, Fee: 1000, Hash: hashOf(2)}
	require.True(t, orderLess(local, external))
	require.False(t, orderLess(external, local))
}

func TestOrderLessHeightBeatsFee(t *testing.T) {
	lowHeight := OrderKey{Height: 0, Fee: 1, Hash: hashOf(1)}
	highHeightHighFee := OrderKey{Height: 1, Fee: 1000, Hash: hashOf(2)}
	require.True(t, orderLess(lowHeight, highHeightHighFee))
}

func TestOrderLessFeeBeatsMemUsage(t *testing.T) {
	highFee := OrderKey{Height: 0, Fee: 100, MemUsage: 1000, Hash: hashOf(1)}
	lowFee := OrderKey{Height: 0, Fee: 10, MemUsage: 1, Hash: hashOf(2)}
	require.True(t, orderLess(highFee, lowFee))
}

func TestOrderLessTieBreaksDownToHash(t *testing.T) {
	a := OrderKey{Hash: hashOf(1)}
	b := OrderKey{Hash: hashOf(2)}
	require.True(t, orderLess(a, b))
	require.False(t, orderLess(b, a))
}

func TestOrderForEntryHeightIsGapFromCurrentSeq(t *testing.T) {
	e := &Entry{Seq: 5, Fee: 7, Size: 20, InsertionID: 3, Origin: Local, Tx: fakeTx{hash: hashOf(9)}}
	k := orderForEntry(e, 2)
	require.Equal(t, uint64(3), k.Height)
	require.True(t, k.Local)
	require.Equal(t, uint64(7), k.Fee)
}

func TestOrderKeyChangeOriginIsMonotone(t *testing.T) {
	k := OrderKey{Local: false}
	k = k.changeOrigin()
	require.True(t, k.Local)
}

// fakeTx is a minimal VerifiedTransaction used wherever a test needs one
// without exercising the full pool.
type fakeTx struct {
	hash   TxHash
	signer PublicKey
	seq    uint64
	fee    uint64
	value  uint64
	bytes  []byte
}

func (f fakeTx) Hash() TxHash       { return f.hash }
func (f fakeTx) Signer() PublicKey  { return f.signer }
func (f fakeTx) Seq() uint64        { return f.seq }
func (f fakeTx) Fee() uint64        { return f.fee }
func (f fakeTx) Value() uint64      { return f.value }
func (f fakeTx) Bytes() []byte {
	if f.bytes != nil {
		return f.bytes
	}
	return []byte{byte(f.seq)}
}
