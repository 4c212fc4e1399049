// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config

import "time"

type MempoolConfig struct {
	Version   MempoolVersion
	Recheck   bool
	Broadcast bool

	// Number of transactions.
	Size uint64

	// Limit on the total size of all raw transactions in the mempool.
	MaxTxsBytes uint64

	// Size of the cache of seen transactions.
	CacheSize uint64

	// Keep invalid transactions in the cache. Only set this if an invalid
	// transaction can never become valid.
	KeepInvalidTxsInCache bool

	MaxTxBytes uint64

	// If non-zero, the maximum time a transaction can stay in the mempool.
	TTLDuration time.Duration

	// If non-zero, the maximum number of blocks a transaction can stay in
	// the mempool.
	TTLNumBlocks uint64
}

func DefaultMempoolConfig() MempoolConfig {
	return MempoolConfig{
		Version:     MempoolFIFO,
		Recheck:     true,
		Broadcast:   true,
		Size:        5000,
		MaxTxsBytes: 1 << 30,
		CacheSize:   10000,
		MaxTxBytes:  1 << 20,
	}
}

func (c MempoolConfig) WithVersion(v MempoolVersion) MempoolConfig { c.Version = v; return c }
func (c MempoolConfig) WithRecheck(v bool) MempoolConfig           { c.Recheck = v; return c }
func (c MempoolConfig) WithBroadcast(v bool) MempoolConfig         { c.Broadcast = v; return c }
func (c MempoolConfig) WithSize(v uint64) MempoolConfig            { c.Size = v; return c }
func (c MempoolConfig) WithMaxTxBytes(v uint64) MempoolConfig      { c.MaxTxBytes = v; return c }
func (c MempoolConfig) WithCacheSize(v uint64) MempoolConfig       { c.CacheSize = v; return c }
func (c MempoolConfig) WithTTLDuration(v time.Duration) MempoolConfig {
	c.TTLDuration = v
	return c
}
func (c MempoolConfig) WithTTLNumBlocks(v uint64) MempoolConfig { c.TTLNumBlocks = v; return c }
