// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config

import "time"

type RPCConfig struct {
	// Address the RPC server listens on. Empty means the Unix socket in the
	// working directory.
	ListenAddress string

	CorsAllowedOrigins []string
	CorsAllowedMethods []string
	CorsAllowedHeaders []string

	GRPCListenAddress      string
	GRPCMaxOpenConnections uint64

	// Unsafe enables the unsafe RPC commands (dial_seeds, etc).
	Unsafe bool

	MaxOpenConnections        uint64
	MaxSubscriptionClients    uint64
	MaxSubscriptionsPerClient uint64

	TimeoutBroadcastTxCommit time.Duration

	MaxBodyBytes   uint64
	MaxHeaderBytes uint64

	TLSCertFile string
	TLSKeyFile  string

	// pprof listen address. Useful to debug Tendermint.
	PprofListenAddress string
}

func DefaultRPCConfig() RPCConfig {
	return RPCConfig{
		CorsAllowedOrigins:        []string{},
		CorsAllowedMethods:        []string{"HEAD", "GET", "POST"},
		CorsAllowedHeaders:        []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "X-Server-Time"},
		GRPCMaxOpenConnections:    900,
		MaxOpenConnections:        900,
		MaxSubscriptionClients:    100,
		MaxSubscriptionsPerClient: 5,
		TimeoutBroadcastTxCommit:  10 * time.Second,
		MaxBodyBytes:              1000000,
		MaxHeaderBytes:            1 << 20,
	}
}
