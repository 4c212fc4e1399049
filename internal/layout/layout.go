// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package layout defines the files and directories of a Tendermint home
// directory, relative to its root.
package layout

const (
	ConfigDir        = "config"
	ConfigFile       = "config/config.toml"
	NodeKeyFile      = "config/node_key.json"
	ValidatorKeyFile = "config/priv_validator_key.json"

	DataDir            = "data"
	GenesisFile        = "genesis.json"
	ValidatorStateFile = "priv_validator_state.json"
	WALFile            = "cs.wal"

	SocketDir         = "sockets"
	RPCUnixSocketFile = "sockets/rpc"
	AppUnixSocketFile = "sockets/app"

	P2PDir       = "p2p"
	AddrBookFile = "p2p/addrbook.json"
)

// Dirs lists the directories created before anything is written.
var Dirs = []string{ConfigDir, P2PDir, SocketDir, DataDir}
