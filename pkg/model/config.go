// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package model

import (
	"bytes"

	"github.com/pelletier/go-toml"
)

// Config is the config.toml record read by Tendermint v0.34. Every value is
// fully resolved; nothing is left for the binary to default.
type Config struct {
	ProxyApp               string `toml:"proxy_app"`
	Moniker                string `toml:"moniker"`
	FastSync               bool   `toml:"fast_sync"`
	DBBackend              string `toml:"db_backend"`
	DBDir                  string `toml:"db_dir"`
	LogLevel               string `toml:"log_level"`
	LogFormat              string `toml:"log_format"`
	GenesisFile            string `toml:"genesis_file"`
	PrivValidatorKeyFile   string `toml:"priv_validator_key_file"`
	PrivValidatorStateFile string `toml:"priv_validator_state_file"`
	PrivValidatorLaddr     string `toml:"priv_validator_laddr"`
	NodeKeyFile            string `toml:"node_key_file"`
	ABCI                   string `toml:"abci"`
	FilterPeers            bool   `toml:"filter_peers"`

	RPC             RPC             `toml:"rpc"`
	P2P             P2P             `toml:"p2p"`
	Mempool         Mempool         `toml:"mempool"`
	StateSync       StateSync       `toml:"statesync"`
	FastSyncConfig  FastSync        `toml:"fastsync"`
	Consensus       Consensus       `toml:"consensus"`
	Storage         Storage         `toml:"storage"`
	TxIndex         TxIndex         `toml:"tx_index"`
	Instrumentation Instrumentation `toml:"instrumentation"`
}

type RPC struct {
	Laddr                                string   `toml:"laddr"`
	CorsAllowedOrigins                   []string `toml:"cors_allowed_origins"`
	CorsAllowedMethods                   []string `toml:"cors_allowed_methods"`
	CorsAllowedHeaders                   []string `toml:"cors_allowed_headers"`
	GRPCLaddr                            string   `toml:"grpc_laddr"`
	GRPCMaxOpenConnections               int64    `toml:"grpc_max_open_connections"`
	Unsafe                               bool     `toml:"unsafe"`
	MaxOpenConnections                   int64    `toml:"max_open_connections"`
	MaxSubscriptionClients               int64    `toml:"max_subscription_clients"`
	MaxSubscriptionsPerClient            int64    `toml:"max_subscriptions_per_client"`
	ExperimentalSubscriptionBufferSize   int64    `toml:"experimental_subscription_buffer_size"`
	ExperimentalWebsocketWriteBufferSize int64    `toml:"experimental_websocket_write_buffer_size"`
	ExperimentalCloseOnSlowClient        bool     `toml:"experimental_close_on_slow_client"`
	TimeoutBroadcastTxCommit             string   `toml:"timeout_broadcast_tx_commit"`
	MaxBodyBytes                         int64    `toml:"max_body_bytes"`
	MaxHeaderBytes                       int64    `toml:"max_header_bytes"`
	TLSCertFile                          string   `toml:"tls_cert_file"`
	TLSKeyFile                           string   `toml:"tls_key_file"`
	PprofLaddr                           string   `toml:"pprof_laddr"`
}

type P2P struct {
	Laddr                        string `toml:"laddr"`
	ExternalAddress              string `toml:"external_address"`
	Seeds                        string `toml:"seeds"`
	PersistentPeers              string `toml:"persistent_peers"`
	UPNP                         bool   `toml:"upnp"`
	AddrBookFile                 string `toml:"addr_book_file"`
	AddrBookStrict               bool   `toml:"addr_book_strict"`
	MaxNumInboundPeers           int64  `toml:"max_num_inbound_peers"`
	MaxNumOutboundPeers          int64  `toml:"max_num_outbound_peers"`
	UnconditionalPeerIDs         string `toml:"unconditional_peer_ids"`
	PersistentPeersMaxDialPeriod string `toml:"persistent_peers_max_dial_period"`
	FlushThrottleTimeout         string `toml:"flush_throttle_timeout"`
	MaxPacketMsgPayloadSize      int64  `toml:"max_packet_msg_payload_size"`
	SendRate                     int64  `toml:"send_rate"`
	RecvRate                     int64  `toml:"recv_rate"`
	PEX                          bool   `toml:"pex"`
	SeedMode                     bool   `toml:"seed_mode"`
	PrivatePeerIDs               string `toml:"private_peer_ids"`
	AllowDuplicateIP             bool   `toml:"allow_duplicate_ip"`
	HandshakeTimeout             string `toml:"handshake_timeout"`
	DialTimeout                  string `toml:"dial_timeout"`
}

type Mempool struct {
	Version               string `toml:"version"`
	Recheck               bool   `toml:"recheck"`
	Broadcast             bool   `toml:"broadcast"`
	WalDir                string `toml:"wal_dir"`
	Size                  int64  `toml:"size"`
	MaxTxsBytes           int64  `toml:"max_txs_bytes"`
	CacheSize             int64  `toml:"cache_size"`
	KeepInvalidTxsInCache bool   `toml:"keep-invalid-txs-in-cache"`
	MaxTxBytes            int64  `toml:"max_tx_bytes"`
	MaxBatchBytes         int64  `toml:"max_batch_bytes"`
	TTLDuration           string `toml:"ttl-duration"`
	TTLNumBlocks          int64  `toml:"ttl-num-blocks"`
}

type StateSync struct {
	Enable              bool   `toml:"enable"`
	RPCServers          string `toml:"rpc_servers"`
	TrustHeight         int64  `toml:"trust_height"`
	TrustHash           string `toml:"trust_hash"`
	TrustPeriod         string `toml:"trust_period"`
	DiscoveryTime       string `toml:"discovery_time"`
	TempDir             string `toml:"temp_dir"`
	ChunkRequestTimeout string `toml:"chunk_request_timeout"`
	ChunkFetchers       string `toml:"chunk_fetchers"`
}

type FastSync struct {
	Version string `toml:"version"`
}

type Consensus struct {
	WalFile                     string `toml:"wal_file"`
	TimeoutPropose              string `toml:"timeout_propose"`
	TimeoutProposeDelta         string `toml:"timeout_propose_delta"`
	TimeoutPrevote              string `toml:"timeout_prevote"`
	TimeoutPrevoteDelta         string `toml:"timeout_prevote_delta"`
	TimeoutPrecommit            string `toml:"timeout_precommit"`
	TimeoutPrecommitDelta       string `toml:"timeout_precommit_delta"`
	TimeoutCommit               string `toml:"timeout_commit"`
	DoubleSignCheckHeight       int64  `toml:"double_sign_check_height"`
	SkipTimeoutCommit           bool   `toml:"skip_timeout_commit"`
	CreateEmptyBlocks           bool   `toml:"create_empty_blocks"`
	CreateEmptyBlocksInterval   string `toml:"create_empty_blocks_interval"`
	PeerGossipSleepDuration     string `toml:"peer_gossip_sleep_duration"`
	PeerQueryMaj23SleepDuration string `toml:"peer_query_maj23_sleep_duration"`
}

type Storage struct {
	DiscardABCIResponses bool `toml:"discard_abci_responses"`
}

type TxIndex struct {
	Indexer  string `toml:"indexer"`
	PsqlConn string `toml:"psql-conn,omitempty"`
}

type Instrumentation struct {
	Prometheus           bool   `toml:"prometheus"`
	PrometheusListenAddr string `toml:"prometheus_listen_addr"`
	MaxOpenConnections   int64  `toml:"max_open_connections"`
	Namespace            string `toml:"namespace"`
}

// EncodeTOML renders the record as config.toml text.
func (c *Config) EncodeTOML() ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := toml.NewEncoder(buf).
		Order(toml.OrderPreserve).
		Indentation("")
	err := enc.Encode(c)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
