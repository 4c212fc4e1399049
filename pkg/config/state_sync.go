// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config

import "time"

type StateSyncConfig struct {
	// RPC servers for light client verification of the synced state and
	// retrieval of state data. Requires a trusted height and header hash
	// and a period during which validators can be trusted.
	RPCServers  []string
	TrustHeight uint64
	TrustHash   string
	TrustPeriod time.Duration

	// Time to spend discovering snapshots before initiating a restore.
	DiscoveryTime time.Duration

	// Timeout before re-requesting a chunk, possibly from a different peer.
	ChunkRequestTimeout time.Duration

	// Number of concurrent chunk fetchers.
	ChunkFetchers uint64
}

func DefaultStateSyncConfig() StateSyncConfig {
	return StateSyncConfig{
		TrustPeriod:         168 * time.Hour,
		DiscoveryTime:       15 * time.Second,
		ChunkRequestTimeout: 10 * time.Second,
		ChunkFetchers:       4,
	}
}

func (c StateSyncConfig) WithRPCServers(v ...string) StateSyncConfig { c.RPCServers = v; return c }
func (c StateSyncConfig) WithTrustHeight(v uint64) StateSyncConfig   { c.TrustHeight = v; return c }
func (c StateSyncConfig) WithTrustHash(v string) StateSyncConfig     { c.TrustHash = v; return c }
func (c StateSyncConfig) WithTrustPeriod(v time.Duration) StateSyncConfig {
	c.TrustPeriod = v
	return c
}

type FastSyncConfig struct {
	Version FastSyncVersion
}

type PrometheusConfig struct {
	// Address to listen for Prometheus collector(s) connections.
	ListenAddress string

	// Maximum number of simultaneous connections. 0 means unlimited.
	MaxOpenConnections uint64

	// Instrumentation namespace.
	Namespace string
}

func DefaultPrometheusConfig() PrometheusConfig {
	return PrometheusConfig{
		ListenAddress:      ":26660",
		MaxOpenConnections: 3,
		Namespace:          "tendermint",
	}
}
