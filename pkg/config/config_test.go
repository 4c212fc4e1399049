// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	cmtcfg "github.com/cometbft/cometbft/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/model"
)

func TestToModelPaths(t *testing.T) {
	dir := t.TempDir()
	m := DefaultConfig().ToModel(dir)

	require.Equal(t, "unix://"+filepath.Join(dir, "sockets/app"), m.ProxyApp)
	require.Equal(t, "unix://"+filepath.Join(dir, "sockets/rpc"), m.RPC.Laddr)
	require.Equal(t, filepath.Join(dir, "genesis.json"), m.GenesisFile)
	require.Equal(t, filepath.Join(dir, "config/node_key.json"), m.NodeKeyFile)
	require.Equal(t, filepath.Join(dir, "config/priv_validator_key.json"), m.PrivValidatorKeyFile)
	require.Equal(t, filepath.Join(dir, "priv_validator_state.json"), m.PrivValidatorStateFile)
	require.Equal(t, filepath.Join(dir, "cs.wal"), m.Consensus.WalFile)
	require.Equal(t, filepath.Join(dir, "p2p/addrbook.json"), m.P2P.AddrBookFile)
	require.Equal(t, filepath.Join(dir, "data"), m.DBDir)
}

func TestToModelIdempotent(t *testing.T) {
	c := DefaultConfig().
		WithMoniker("foo").
		WithP2P(DefaultP2PConfig().WithSeeds("a@1.2.3.4:26656", "b@5.6.7.8:26656")).
		WithStateSync(DefaultStateSyncConfig().WithRPCServers("x:1", "y:2"))

	a, b := c.ToModel("/base"), c.ToModel("/base")
	require.Equal(t, a, b)

	ta, err := a.EncodeTOML()
	require.NoError(t, err)
	tb, err := b.EncodeTOML()
	require.NoError(t, err)
	require.Equal(t, ta, tb)
}

func TestToModelLists(t *testing.T) {
	p2p := DefaultP2PConfig().WithSeeds("a", "b", "c")
	p2p.PrivatePeerIDs = []string{"x", "y"}
	p2p.UnconditionalPeerIDs = []string{"z"}

	m := DefaultConfig().WithP2P(p2p).ToModel("/base")
	require.Equal(t, "a,b,c", m.P2P.Seeds)
	require.Equal(t, "", m.P2P.PersistentPeers)
	require.Equal(t, "x,y", m.P2P.PrivatePeerIDs)
	require.Equal(t, "z", m.P2P.UnconditionalPeerIDs)
}

func TestToModelOptionalSections(t *testing.T) {
	t.Run("Absent", func(t *testing.T) {
		m := DefaultConfig().WithoutFastSync().ToModel("/base")
		require.False(t, m.StateSync.Enable)
		require.Equal(t, "604800s", m.StateSync.TrustPeriod)
		require.Equal(t, "4", m.StateSync.ChunkFetchers)
		require.False(t, m.FastSync)
		require.Equal(t, "v0", m.FastSyncConfig.Version)
		require.False(t, m.Instrumentation.Prometheus)
		require.Equal(t, "tendermint", m.Instrumentation.Namespace)
		require.Equal(t, ":26660", m.Instrumentation.PrometheusListenAddr)
	})

	t.Run("Present", func(t *testing.T) {
		prom := DefaultPrometheusConfig()
		prom.Namespace = "node"
		m := DefaultConfig().
			WithStateSync(DefaultStateSyncConfig().WithTrustHeight(10)).
			WithFastSync(FastSyncV2).
			WithPrometheus(prom).
			ToModel("/base")
		require.True(t, m.StateSync.Enable)
		require.Equal(t, int64(10), m.StateSync.TrustHeight)
		require.True(t, m.FastSync)
		require.Equal(t, "v2", m.FastSyncConfig.Version)
		require.True(t, m.Instrumentation.Prometheus)
		require.Equal(t, "node", m.Instrumentation.Namespace)
	})
}

func TestToModelDurations(t *testing.T) {
	m := DefaultConfig().ToModel("/base")

	cases := []struct {
		Name  string
		Value string
		Want  string
	}{
		{"timeout_propose", m.Consensus.TimeoutPropose, "3s"},
		{"timeout_propose_delta", m.Consensus.TimeoutProposeDelta, "500s"},
		{"timeout_prevote", m.Consensus.TimeoutPrevote, "1s"},
		{"timeout_prevote_delta", m.Consensus.TimeoutPrevoteDelta, "500s"},
		{"timeout_precommit_delta", m.Consensus.TimeoutPrecommitDelta, "500s"},
		{"timeout_commit", m.Consensus.TimeoutCommit, "1s"},
		{"create_empty_blocks_interval", m.Consensus.CreateEmptyBlocksInterval, "0s"},
		{"peer_gossip_sleep_duration", m.Consensus.PeerGossipSleepDuration, "100s"},
		{"peer_query_maj23_sleep_duration", m.Consensus.PeerQueryMaj23SleepDuration, "2s"},
		{"flush_throttle_timeout", m.P2P.FlushThrottleTimeout, "100s"},
		{"handshake_timeout", m.P2P.HandshakeTimeout, "20s"},
		{"dial_timeout", m.P2P.DialTimeout, "3s"},
		{"timeout_broadcast_tx_commit", m.RPC.TimeoutBroadcastTxCommit, "10s"},
		{"ttl-duration", m.Mempool.TTLDuration, "0s"},
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			require.Equal(t, c.Want, c.Value)
		})
	}
}

func TestTxIndex(t *testing.T) {
	m := DefaultConfig().ToModel("/base")
	require.Equal(t, "kv", m.TxIndex.Indexer)
	b, err := m.EncodeTOML()
	require.NoError(t, err)
	require.NotContains(t, string(b), "psql-conn")
	require.Empty(t, m.TxIndex.PsqlConn)

	m = DefaultConfig().WithTxIndex(TxIndexNull()).ToModel("/base")
	require.Equal(t, "null", m.TxIndex.Indexer)
	require.Empty(t, m.TxIndex.PsqlConn)

	m = DefaultConfig().WithTxIndex(TxIndexPsql("postgres://db")).ToModel("/base")
	require.Equal(t, "psql", m.TxIndex.Indexer)
	require.Equal(t, "postgres://db", m.TxIndex.PsqlConn)
	b, err = m.EncodeTOML()
	require.NoError(t, err)
	require.Contains(t, string(b), `psql-conn = "postgres://db"`)
}

func TestEnumParse(t *testing.T) {
	var lvl LogLevel
	require.NoError(t, lvl.UnmarshalText([]byte("DEBUG")))
	require.Equal(t, LogLevelDebug, lvl)
	require.Error(t, lvl.UnmarshalText([]byte("trace")))

	var db DbBackend
	require.NoError(t, db.UnmarshalText([]byte("badgerdb")))
	require.Equal(t, "badgerdb", db.String())
}

// TestReadByNode loads the rendered file the way the node does and verifies
// the settings survive.
func TestReadByNode(t *testing.T) {
	dir := t.TempDir()
	b, err := DefaultConfig().WithMoniker("test-node").ToModel(dir).EncodeTOML()
	require.NoError(t, err)

	v := viper.New()
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(bytes.NewReader(b)))

	conf := cmtcfg.DefaultConfig()
	require.NoError(t, v.Unmarshal(conf))
	require.Equal(t, "test-node", conf.Moniker)
	require.Equal(t, 3*time.Second, conf.Consensus.TimeoutPropose)
	require.Equal(t, 20*time.Second, conf.P2P.HandshakeTimeout)
	require.Equal(t, filepath.Join(dir, "p2p/addrbook.json"), conf.P2P.AddrBook)
	require.Equal(t, "unix://"+filepath.Join(dir, "sockets/rpc"), conf.RPC.ListenAddress)
	require.Equal(t, []string{"HEAD", "GET", "POST"}, conf.RPC.CORSAllowedMethods)
	require.Equal(t, "kv", conf.TxIndex.Indexer)
}

func TestDecodeTOML(t *testing.T) {
	want := DefaultConfig().
		WithMoniker("decoded").
		WithPrometheus(DefaultPrometheusConfig()).
		ToModel("/base")
	b, err := want.EncodeTOML()
	require.NoError(t, err)

	var got model.Config
	_, err = toml.Decode(string(b), &got)
	require.NoError(t, err)
	require.Equal(t, want.Moniker, got.Moniker)
	require.Equal(t, want.FastSync, got.FastSync)
	require.Equal(t, want.P2P.FlushThrottleTimeout, got.P2P.FlushThrottleTimeout)
	require.Equal(t, want.Consensus, got.Consensus)
	require.Equal(t, want.Instrumentation, got.Instrumentation)
	require.Equal(t, want.TxIndex, got.TxIndex)
}
