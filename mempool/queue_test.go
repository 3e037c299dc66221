// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPriorityQueueAscendIsHighestFeeFirst(t *testing.T) {
	q := newPriorityQueue()
	q.insert(OrderKey{Height: 0, Fee: 5, Hash: hashOf(1)})
	q.insert(OrderKey{Height: 0, Fee: 50, Hash: hashOf(2)})
	q.insert(OrderKey{Height: 0, Fee: 25, Hash: hashOf(3)})

	var fees []uint64
	q.ascend(func(k OrderKey) bool {
		fees = append(fees, k.Fee)
		return true
	})
	require.Equal(t, []uint64{50, 25, 5}, fees)
}

func TestPriorityQueueDescendIsLowestFirst(t *testing.T) {
	q := newPriorityQueue()
	q.insert(OrderKey{Height: 0, Fee: 5, Hash: hashOf(1)})
	q.insert(OrderKey{Height: 0, Fee: 50, Hash: hashOf(2)})

	var fees []uint64
	q.descend(func(k OrderKey) bool {
		fees = append(fees, k.Fee)
		return true
	})
	require.Equal(t, []uint64{5, 50}, fees)
}

func TestPriorityQueueCountAndMemUsage(t *testing.T) {
	q := newPriorityQueue()
	k1 := OrderKey{Fee: 1, MemUsage: 10, Hash: hashOf(1)}
	k2 := OrderKey{Fee: 2, MemUsage: 20, Hash: hashOf(2)}
	q.insert(k1)
	q.insert(k2)
	require.Equal(t, 2, q.len())
	require.EqualValues(t, 30, q.memUsage)

	q.remove(k1)
	require.Equal(t, 1, q.len())
	require.EqualValues(t, 20, q.memUsage)
}

func TestPriorityQueueMinimumFeeIsOnePastTheLowest(t *testing.T) {
	q := newPriorityQueue()
	q.insert(OrderKey{Fee: 3, Hash: hashOf(1)})
	q.insert(OrderKey{Fee: 9, Hash: hashOf(2)})
	require.EqualValues(t, 4, q.minimumFee())
}

func TestPriorityQueueFeeHistogramDropsEmptyBuckets(t *testing.T) {
	q := newPriorityQueue()
	k := OrderKey{Fee: 7, Hash: hashOf(1)}
	q.insert(k)
	require.Equal(t, 1, q.feeCount[7])
	q.remove(k)
	_, present := q.feeCount[7]
	require.False(t, present)
}

func TestPriorityQueueClear(t *testing.T) {
	q := newPriorityQueue()
	q.insert(OrderKey{Fee: 1, Hash: hashOf(1)})
	q.insert(OrderKey{Fee: 2, Hash: hashOf(2)})
	q.clear()
	require.Equal(t, 0, q.len())
	require.EqualValues(t, 0, q.memUsage)
	require.Empty(t, q.feeCount)
}
