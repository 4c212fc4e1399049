// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/config"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/crypto"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/errors"
)

func mkfs(files map[string]string) fstest.MapFS {
	fs := fstest.MapFS{}
	for name, data := range files {
		fs[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return fs
}

func TestSettingsFormats(t *testing.T) {
	cases := map[string]string{
		"node.toml": `
			moniker = "alice"
			chain-id = "devnet"
			p2p-listen = "tcp://0.0.0.0:1234"
			seeds = ["a@1.2.3.4:26656", "b@5.6.7.8:26656"]
			create-empty-blocks = false`,
		"node.yaml": `
moniker: alice
chain-id: devnet
p2p-listen: tcp://0.0.0.0:1234
seeds:
  - a@1.2.3.4:26656
  - b@5.6.7.8:26656
create-empty-blocks: false`,
		"node.json": `{
			"moniker": "alice",
			"chain-id": "devnet",
			"p2p-listen": "tcp://0.0.0.0:1234",
			"seeds": ["a@1.2.3.4:26656", "b@5.6.7.8:26656"],
			"create-empty-blocks": false
		}`,
	}

	for file, data := range cases {
		t.Run(file, func(t *testing.T) {
			s := new(Settings)
			require.NoError(t, s.LoadFromFS(mkfs(map[string]string{file: data}), file))
			require.Equal(t, "alice", s.Moniker)
			require.Equal(t, "devnet", s.ChainID)

			cfg, err := s.Config()
			require.NoError(t, err)
			require.Equal(t, "alice", cfg.Moniker)
			require.Equal(t, "tcp://0.0.0.0:1234", cfg.P2P.ListenAddress)
			require.Equal(t, []string{"a@1.2.3.4:26656", "b@5.6.7.8:26656"}, cfg.P2P.Seeds)
			require.False(t, cfg.Consensus.CreateEmptyBlocks)
		})
	}
}

func TestSettingsUnknownType(t *testing.T) {
	s := new(Settings)
	err := s.LoadFromFS(mkfs(map[string]string{"node.xml": ""}), "node.xml")
	require.Equal(t, errors.BadRequest, errors.Code(err))
}

func TestDotenv(t *testing.T) {
	// When dot-env is set, ${FOO} is resolved
	t.Run("Set", func(t *testing.T) {
		fs := mkfs(map[string]string{
			".env": `
				FOO=bar`,
			"node.toml": `
				dot-env = true
				moniker = "${FOO}"`,
		})

		s := new(Settings)
		require.NoError(t, s.LoadFromFS(fs, "node.toml"))
		require.Equal(t, "bar", s.Moniker)
	})

	// When dot-env is unset, ${FOO} is left as is
	t.Run("Unset", func(t *testing.T) {
		fs := mkfs(map[string]string{
			".env": `
				FOO=bar`,
			"node.toml": `
				moniker = "${FOO}"`,
		})

		s := new(Settings)
		require.NoError(t, s.LoadFromFS(fs, "node.toml"))
		require.Equal(t, "${FOO}", s.Moniker)
	})

	// Referencing an undefined variable is an error
	t.Run("Wrong var", func(t *testing.T) {
		fs := mkfs(map[string]string{
			".env": `
				FOO=bar`,
			"node.toml": `
				dot-env = true
				moniker = "${BAR}"`,
		})

		s := new(Settings)
		err := s.LoadFromFS(fs, "node.toml")
		require.EqualError(t, err, `"BAR" is not defined`)
	})

	// A missing .env is only an error if a variable is referenced
	t.Run("Missing", func(t *testing.T) {
		fs := mkfs(map[string]string{
			"node.toml": `
				dot-env = true
				moniker = "alice"`,
		})

		s := new(Settings)
		require.NoError(t, s.LoadFromFS(fs, "node.toml"))

		fs["node.toml"].Data = []byte(`
			dot-env = true
			moniker = "${FOO}"`)
		s = new(Settings)
		require.Error(t, s.LoadFromFS(fs, "node.toml"))
	})
}

func TestSettingsConfig(t *testing.T) {
	s := &Settings{
		LogLevel:   "debug",
		DbBackend:  "badgerdb",
		Prometheus: ":9000",
		TxIndex:    "psql",
		PsqlConn:   "postgres://db",
		Algorithm:  "secp256k1",
	}
	cfg, err := s.Config()
	require.NoError(t, err)
	require.Equal(t, config.LogLevelDebug, cfg.LogLevel)
	require.Equal(t, config.DbBackendBadgerDB, cfg.DbBackend)
	require.NotNil(t, cfg.Prometheus)
	require.Equal(t, ":9000", cfg.Prometheus.ListenAddress)
	conn, ok := cfg.TxIndex.PsqlConn()
	require.True(t, ok)
	require.Equal(t, "postgres://db", conn)
	require.Equal(t, crypto.Secp256k1, s.KeyAlgorithm())

	require.Equal(t, crypto.Ed25519, new(Settings).KeyAlgorithm())
}

func TestSettingsValidate(t *testing.T) {
	for name, s := range map[string]*Settings{
		"Algorithm": {Algorithm: "sr25519"},
		"LogLevel":  {LogLevel: "trace"},
		"Psql":      {TxIndex: "psql"},
		"ChainID":   {ChainID: "this-chain-id-is-far-too-long-to-be-accepted-by-the-node"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.Config()
			require.Error(t, err)
			require.Equal(t, errors.BadRequest, errors.Code(err))
		})
	}
}
