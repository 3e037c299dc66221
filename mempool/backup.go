// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"fmt"

	"github.com/luxfi/database"
	"github.com/luxfi/geth/rlp"
)

// entryRecordVersion is bumped whenever the on-disk layout changes in a
// non-backward-compatible way. Old records are rejected rather than
// guessed at — a corrupt or unknown version is a fatal recovery error, not
// something to best-effort patch over.
const entryRecordVersion = 1

// entryRecord is the stable, versioned projection of Entry that actually
// gets RLP-encoded. It exists separately from Entry so Entry can carry the
// decoded VerifiedTransaction interface value, which rlp's reflection
// cannot encode; the record stores the transaction's raw bytes instead,
// and keeping the wire type distinct makes the round-trip contract
// explicit.
type entryRecord struct {
	Version       uint8
	Signer        PublicKey
	Seq           uint64
	Fee           uint64
	Cost          uint64
	Size          uint64
	Origin        uint8
	InsertedBlock uint64
	InsertedAt    uint64
	InsertionID   uint64
	TxBytes       []byte
}

func toRecord(e *Entry) entryRecord {
	return entryRecord{
		Version:       entryRecordVersion,
		Signer:        e.Signer,
		Seq:           e.Seq,
		Fee:           e.Fee,
		Cost:          e.Cost,
		Size:          e.Size,
		Origin:        uint8(e.Origin),
		InsertedBlock: e.InsertedBlock,
		InsertedAt:    e.InsertedAt,
		InsertionID:   e.InsertionID,
		TxBytes:       e.Tx.Bytes(),
	}
}

// encodeEntry serializes e into its stable on-disk form.
func encodeEntry(e *Entry) ([]byte, error) {
	return rlp.EncodeToBytes(toRecord(e))
}

// decodeEntry reverses encodeEntry, using decode to reconstitute the
// VerifiedTransaction payload from its persisted raw bytes.
func decodeEntry(data []byte, decode TxDecoder) (*Entry, error) {
	var rec entryRecord
	if err := rlp.DecodeBytes(data, &rec); err != nil {
		return nil, fmt.Errorf("decode mempool entry: %w", err)
	}
	if rec.Version != entryRecordVersion {
		return nil, fmt.Errorf("decode mempool entry: unsupported record version %d", rec.Version)
	}
	tx, err := decode(rec.TxBytes)
	if err != nil {
		return nil, fmt.Errorf("decode mempool entry: reconstruct transaction: %w", err)
	}
	return &Entry{
		Signer:        rec.Signer,
		Seq:           rec.Seq,
		Fee:           rec.Fee,
		Cost:          rec.Cost,
		Size:          rec.Size,
		Origin:        Origin(rec.Origin),
		InsertedBlock: rec.InsertedBlock,
		InsertedAt:    rec.InsertedAt,
		InsertionID:   rec.InsertionID,
		Tx:            tx,
	}, nil
}

// backupItem stages a put for hash -> entry's encoded form inside batch.
// The caller commits batch once, after every in-memory mutation for the
// enclosing public call has already happened.
func backupItem(batch database.Batch, hash TxHash, e *Entry) error {
	data, err := encodeEntry(e)
	if err != nil {
		return err
	}
	return batch.Put(hash[:], data)
}

// removeItem stages a delete for hash inside batch.
func removeItem(batch database.Batch, hash TxHash) error {
	return batch.Delete(hash[:])
}

// recoverToData reads every entry out of store's namespace, keyed by
// transaction hash. Called once at construction time against a populated
// backing store.
func recoverToData(store database.Database, decode TxDecoder) (map[TxHash]*Entry, error) {
	out := make(map[TxHash]*Entry)
	it := store.NewIterator()
	defer it.Release()

	for it.Next() {
		var hash TxHash
		key := it.Key()
		if len(key) != len(hash) {
			return nil, fmt.Errorf("recover mempool: malformed key length %d", len(key))
		}
		copy(hash[:], key)

		value := make([]byte, len(it.Value()))
		copy(value, it.Value())

		e, err := decodeEntry(value, decode)
		if err != nil {
			return nil, fmt.Errorf("recover mempool: entry %s: %w", hash, err)
		}
		out[hash] = e
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("recover mempool: iterate backing store: %w", err)
	}
	return out, nil
}
