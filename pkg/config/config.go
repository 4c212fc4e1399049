// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package config is the typed node configuration. ToModel projects it onto
// the config.toml record consumed by the Tendermint binary.
package config

import (
	"path/filepath"
	"strings"

	"gitlab.com/accumulatenetwork/embedded-tendermint/internal/layout"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/model"
)

type Config struct {
	LogLevel  LogLevel
	LogFormat LogFormat
	Moniker   string
	DbBackend DbBackend

	// ProxyApp is the ABCI application address. Empty means the application
	// socket inside the working directory.
	ProxyApp string
	ABCI     string

	// PrivValidatorListenAddress is the address of an external signer. Empty
	// means the validator key file is used.
	PrivValidatorListenAddress string

	// Query the application for connecting peers.
	FilterPeers bool

	RPC       RPCConfig
	P2P       P2PConfig
	Mempool   MempoolConfig
	Consensus ConsensusConfig
	TxIndex   TxIndexConfig

	// Optional sections. Nil disables the feature.
	StateSync  *StateSyncConfig
	FastSync   *FastSyncConfig
	Prometheus *PrometheusConfig
}

const DefaultMoniker = "embedded-tendermint"

func DefaultConfig() *Config {
	return &Config{
		Moniker:   DefaultMoniker,
		ABCI:      "socket",
		RPC:       DefaultRPCConfig(),
		P2P:       DefaultP2PConfig(),
		Mempool:   DefaultMempoolConfig(),
		Consensus: DefaultConsensusConfig(),
		TxIndex:   TxIndexKv(),
		FastSync:  &FastSyncConfig{Version: FastSyncV0},
	}
}

func (c *Config) WithLogLevel(v LogLevel) *Config   { c.LogLevel = v; return c }
func (c *Config) WithLogFormat(v LogFormat) *Config { c.LogFormat = v; return c }
func (c *Config) WithMoniker(v string) *Config      { c.Moniker = v; return c }
func (c *Config) WithDbBackend(v DbBackend) *Config { c.DbBackend = v; return c }
func (c *Config) WithProxyApp(v string) *Config     { c.ProxyApp = v; return c }
func (c *Config) WithFilterPeers(v bool) *Config    { c.FilterPeers = v; return c }
func (c *Config) WithP2P(v P2PConfig) *Config       { c.P2P = v; return c }
func (c *Config) WithRPC(v RPCConfig) *Config       { c.RPC = v; return c }
func (c *Config) WithMempool(v MempoolConfig) *Config {
	c.Mempool = v
	return c
}
func (c *Config) WithConsensus(v ConsensusConfig) *Config {
	c.Consensus = v
	return c
}
func (c *Config) WithTxIndex(v TxIndexConfig) *Config { c.TxIndex = v; return c }

func (c *Config) WithPrivValidatorListenAddress(v string) *Config {
	c.PrivValidatorListenAddress = v
	return c
}

func (c *Config) WithStateSync(v StateSyncConfig) *Config   { c.StateSync = &v; return c }
func (c *Config) WithFastSync(v FastSyncVersion) *Config    { c.FastSync = &FastSyncConfig{v}; return c }
func (c *Config) WithPrometheus(v PrometheusConfig) *Config { c.Prometheus = &v; return c }
func (c *Config) WithoutStateSync() *Config                 { c.StateSync = nil; return c }
func (c *Config) WithoutFastSync() *Config                  { c.FastSync = nil; return c }
func (c *Config) WithoutPrometheus() *Config                { c.Prometheus = nil; return c }

// ToModel resolves every setting against the working directory baseDir. The
// result depends only on c and baseDir.
func (c *Config) ToModel(baseDir string) *model.Config {
	path := func(rel string) string { return filepath.Join(baseDir, rel) }
	unix := func(rel string) string { return "unix://" + path(rel) }

	m := new(model.Config)
	m.ProxyApp = c.ProxyApp
	if m.ProxyApp == "" {
		m.ProxyApp = unix(layout.AppUnixSocketFile)
	}
	m.Moniker = c.Moniker
	m.FastSync = c.FastSync != nil
	m.DBBackend = c.DbBackend.String()
	m.DBDir = path(layout.DataDir)
	m.LogLevel = c.LogLevel.String()
	m.LogFormat = c.LogFormat.String()
	m.GenesisFile = path(layout.GenesisFile)
	m.PrivValidatorKeyFile = path(layout.ValidatorKeyFile)
	m.PrivValidatorStateFile = path(layout.ValidatorStateFile)
	m.PrivValidatorLaddr = c.PrivValidatorListenAddress
	m.NodeKeyFile = path(layout.NodeKeyFile)
	m.ABCI = c.ABCI
	m.FilterPeers = c.FilterPeers

	m.RPC = c.RPC.toModel(unix(layout.RPCUnixSocketFile))
	m.P2P = c.P2P.toModel(path(layout.AddrBookFile))
	m.Mempool = c.Mempool.toModel()
	m.Consensus = c.Consensus.toModel(path(layout.WALFile))
	m.Storage.DiscardABCIResponses = c.Consensus.DiscardABCIResponses

	stateSync := DefaultStateSyncConfig()
	if c.StateSync != nil {
		stateSync = *c.StateSync
	}
	m.StateSync = stateSync.toModel(c.StateSync != nil)

	fastSync := FastSyncConfig{Version: FastSyncV0}
	if c.FastSync != nil {
		fastSync = *c.FastSync
	}
	m.FastSyncConfig.Version = fastSync.Version.String()

	prometheus := DefaultPrometheusConfig()
	if c.Prometheus != nil {
		prometheus = *c.Prometheus
	}
	m.Instrumentation = prometheus.toModel(c.Prometheus != nil)

	m.TxIndex.Indexer = c.TxIndex.String()
	if conn, ok := c.TxIndex.PsqlConn(); ok {
		m.TxIndex.PsqlConn = conn
	}
	return m
}

func (c *RPCConfig) toModel(defaultAddr string) model.RPC {
	laddr := c.ListenAddress
	if laddr == "" {
		laddr = defaultAddr
	}
	return model.RPC{
		Laddr:                                laddr,
		CorsAllowedOrigins:                   nonNil(c.CorsAllowedOrigins),
		CorsAllowedMethods:                   nonNil(c.CorsAllowedMethods),
		CorsAllowedHeaders:                   nonNil(c.CorsAllowedHeaders),
		GRPCLaddr:                            c.GRPCListenAddress,
		GRPCMaxOpenConnections:               int64(c.GRPCMaxOpenConnections),
		Unsafe:                               c.Unsafe,
		MaxOpenConnections:                   int64(c.MaxOpenConnections),
		MaxSubscriptionClients:               int64(c.MaxSubscriptionClients),
		MaxSubscriptionsPerClient:            int64(c.MaxSubscriptionsPerClient),
		ExperimentalSubscriptionBufferSize:   200,
		ExperimentalWebsocketWriteBufferSize: 200,
		TimeoutBroadcastTxCommit:             seconds(c.TimeoutBroadcastTxCommit),
		MaxBodyBytes:                         int64(c.MaxBodyBytes),
		MaxHeaderBytes:                       int64(c.MaxHeaderBytes),
		TLSCertFile:                          c.TLSCertFile,
		TLSKeyFile:                           c.TLSKeyFile,
		PprofLaddr:                           c.PprofListenAddress,
	}
}

func (c *P2PConfig) toModel(addrBook string) model.P2P {
	return model.P2P{
		Laddr:                        c.ListenAddress,
		ExternalAddress:              c.ExternalAddress,
		Seeds:                        strings.Join(c.Seeds, ","),
		PersistentPeers:              strings.Join(c.PersistentPeers, ","),
		UPNP:                         c.UPNP,
		AddrBookFile:                 addrBook,
		AddrBookStrict:               !c.LocalNet,
		MaxNumInboundPeers:           int64(c.MaxNumInboundPeers),
		MaxNumOutboundPeers:          int64(c.MaxNumOutboundPeers),
		UnconditionalPeerIDs:         strings.Join(c.UnconditionalPeerIDs, ","),
		PersistentPeersMaxDialPeriod: seconds(c.PersistentPeersMaxDialPeriod),
		FlushThrottleTimeout:         millis(c.FlushThrottleTimeout),
		MaxPacketMsgPayloadSize:      int64(c.MaxPacketMsgPayloadSize),
		SendRate:                     int64(c.SendRate),
		RecvRate:                     int64(c.RecvRate),
		PEX:                          c.PEX,
		SeedMode:                     c.SeedMode,
		PrivatePeerIDs:               strings.Join(c.PrivatePeerIDs, ","),
		AllowDuplicateIP:             c.AllowDuplicateIP,
		HandshakeTimeout:             seconds(c.HandshakeTimeout),
		DialTimeout:                  seconds(c.DialTimeout),
	}
}

func (c *MempoolConfig) toModel() model.Mempool {
	return model.Mempool{
		Version:               c.Version.String(),
		Recheck:               c.Recheck,
		Broadcast:             c.Broadcast,
		Size:                  int64(c.Size),
		MaxTxsBytes:           int64(c.MaxTxsBytes),
		CacheSize:             int64(c.CacheSize),
		KeepInvalidTxsInCache: c.KeepInvalidTxsInCache,
		MaxTxBytes:            int64(c.MaxTxBytes),
		TTLDuration:           seconds(c.TTLDuration),
		TTLNumBlocks:          int64(c.TTLNumBlocks),
	}
}

func (c *ConsensusConfig) toModel(wal string) model.Consensus {
	return model.Consensus{
		WalFile:                     wal,
		TimeoutPropose:              seconds(c.TimeoutPropose),
		TimeoutProposeDelta:         millis(c.TimeoutProposeDelta),
		TimeoutPrevote:              seconds(c.TimeoutPrevote),
		TimeoutPrevoteDelta:         millis(c.TimeoutPrevoteDelta),
		TimeoutPrecommit:            seconds(c.TimeoutPrecommit),
		TimeoutPrecommitDelta:       millis(c.TimeoutPrecommitDelta),
		TimeoutCommit:               seconds(c.TimeoutCommit),
		DoubleSignCheckHeight:       int64(c.DoubleSignCheckHeight),
		SkipTimeoutCommit:           c.SkipTimeoutCommit,
		CreateEmptyBlocks:           c.CreateEmptyBlocks,
		CreateEmptyBlocksInterval:   seconds(c.CreateEmptyBlocksInterval),
		PeerGossipSleepDuration:     millis(c.PeerGossipSleepDuration),
		PeerQueryMaj23SleepDuration: seconds(c.PeerQueryMaj23SleepDuration),
	}
}

func (c *StateSyncConfig) toModel(enable bool) model.StateSync {
	return model.StateSync{
		Enable:              enable,
		RPCServers:          strings.Join(c.RPCServers, ","),
		TrustHeight:         int64(c.TrustHeight),
		TrustHash:           c.TrustHash,
		TrustPeriod:         seconds(c.TrustPeriod),
		DiscoveryTime:       seconds(c.DiscoveryTime),
		ChunkRequestTimeout: seconds(c.ChunkRequestTimeout),
		ChunkFetchers:       model.FormatUint(c.ChunkFetchers),
	}
}

func (c *PrometheusConfig) toModel(enable bool) model.Instrumentation {
	return model.Instrumentation{
		Prometheus:           enable,
		PrometheusListenAddr: c.ListenAddress,
		MaxOpenConnections:   int64(c.MaxOpenConnections),
		Namespace:            c.Namespace,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
