// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"testing"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/geth/rlp"
	"github.com/stretchr/testify/require"
)

func decodeFakeTx(raw []byte) (VerifiedTransaction, error) {
	var h TxHash
	copy(h[:], raw[len(raw)-32:])
	return fakeTx{hash: h, bytes: raw}, nil
}

func newEntryForTest(t *testing.T, seq uint64) *Entry {
	t.Helper()
	var h TxHash
	h[0] = byte(seq)
	raw := append([]byte("payload"), h[:]...)
	tx := fakeTx{hash: h, seq: seq, fee: 10, value: 5, bytes: raw}
	e, err := newEntry(tx, External, 1, 1000, seq)
	require.NoError(t, err)
	return e
}

func TestEncodeDecodeEntryRoundTrip(t *testing.T) {
	e := newEntryForTest(t, 3)
	data, err := encodeEntry(e)
	require.NoError(t, err)

	got, err := decodeEntry(data, decodeFakeTx)
	require.NoError(t, err)
	require.Equal(t, e.Signer, got.Signer)
	require.Equal(t, e.Seq, got.Seq)
	require.Equal(t, e.Fee, got.Fee)
	require.Equal(t, e.Cost, got.Cost)
	require.Equal(t, e.Size, got.Size)
	require.Equal(t, e.Origin, got.Origin)
	require.Equal(t, e.Hash(), got.Hash())
}

func TestDecodeEntryRejectsUnknownVersion(t *testing.T) {
	e := newEntryForTest(t, 1)
	rec := toRecord(e)
	rec.Version = entryRecordVersion + 1
	data, err := rlp.EncodeToBytes(rec)
	require.NoError(t, err)

	_, err = decodeEntry(data, decodeFakeTx)
	require.Error(t, err)
}

func TestBackupAndRecoverToData(t *testing.T) {
	db := memdb.New()
	defer db.Close()

	batch := db.NewBatch()
	e1 := newEntryForTest(t, 1)
	e2 := newEntryForTest(t, 2)
	require.NoError(t, backupItem(batch, e1.Hash(), e1))
	require.NoError(t, backupItem(batch, e2.Hash(), e2))
	require.NoError(t, batch.Write())

	data, err := recoverToData(db, decodeFakeTx)
	require.NoError(t, err)
	require.Len(t, data, 2)
	require.Contains(t, data, e1.Hash())
	require.Contains(t, data, e2.Hash())
}

func TestRemoveItemDeletesFromStore(t *testing.T) {
	db := memdb.New()
	defer db.Close()

	e := newEntryForTest(t, 1)
	batch := db.NewBatch()
	require.NoError(t, backupItem(batch, e.Hash(), e))
	require.NoError(t, batch.Write())

	batch = db.NewBatch()
	require.NoError(t, removeItem(batch, e.Hash()))
	require.NoError(t, batch.Write())

	data, err := recoverToData(db, decodeFakeTx)
	require.NoError(t, err)
	require.Empty(t, data)
}
