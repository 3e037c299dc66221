// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigOverridesOnlyGivenKeys(t *testing.T) {
	cfg, err := LoadConfig(map[string]interface{}{
		"count_limit": 512,
	})
	require.NoError(t, err)
	require.Equal(t, 512, cfg.CountLimit)
	require.Equal(t, DefaultConfig().MemoryLimit, cfg.MemoryLimit)
	require.Equal(t, DefaultConfig().FeeBumpShift, cfg.FeeBumpShift)
}

func TestLoadConfigEmptyMapIsDefaults(t *testing.T) {
	cfg, err := LoadConfig(map[string]interface{}{})
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestBalanceRecheckPeriodIsOneEighth(t *testing.T) {
	cfg := Config{MaxBlockNumberPeriodInPool: 128}
	require.EqualValues(t, 16, cfg.balanceRecheckPeriod())
}
