// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import "github.com/go-viper/mapstructure/v2"

// Config carries the pool's tunables. It has no notion of where these
// values come from — a host typically decodes it out of a larger node
// config tree (itself unmarshaled from TOML/YAML/flags upstream) via
// LoadConfig and passes the result to New.
type Config struct {
	// CountLimit bounds the number of non-local entries per queue
	// (current, future each enforce this independently).
	CountLimit int `mapstructure:"count_limit"`
	// MemoryLimit bounds the summed Entry.Size of non-local entries per
	// queue, in bytes.
	MemoryLimit uint64 `mapstructure:"memory_limit"`
	// FeeBumpShift is the right-shift applied to an existing entry's fee
	// to compute the minimum bump a replacement must clear. Higher values
	// make replacement easier (laxer).
	FeeBumpShift uint `mapstructure:"fee_bump_shift"`
	// MaxBlockNumberPeriodInPool bounds how many blocks an entry may sit
	// in the pool before RemoveOld considers it stale outright; the
	// balance-recheck threshold is derived as this value >> 3.
	MaxBlockNumberPeriodInPool uint64 `mapstructure:"max_block_number_period_in_pool"`
}

// defaultMaxBlockNumberPeriodInPool is the residency cap, in blocks.
const defaultMaxBlockNumberPeriodInPool = 128

// DefaultConfig returns defaults for every field. The count and memory
// limits (8192 entries, 1 GiB per queue) are starting values that a
// deployment typically sizes for itself.
func DefaultConfig() Config {
	return Config{
		CountLimit:                 8192,
		MemoryLimit:                1 << 30, // 1 GiB
		FeeBumpShift:               3,
		MaxBlockNumberPeriodInPool: defaultMaxBlockNumberPeriodInPool,
	}
}

func (c Config) balanceRecheckPeriod() uint64 {
	return c.MaxBlockNumberPeriodInPool >> 3
}

// LoadConfig decodes raw (typically a map decoded from the host's TOML/YAML
// config file) into a Config layered over DefaultConfig, so a partial map
// only overrides the keys it sets.
func LoadConfig(raw map[string]interface{}) (Config, error) {
	cfg := DefaultConfig()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
