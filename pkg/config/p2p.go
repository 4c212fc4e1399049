// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config

import "time"

type P2PConfig struct {
	// Address to listen for incoming connections.
	ListenAddress string

	// Address to advertise to peers for them to dial. If empty, the listen
	// port is used and the address is introspected or discovered via UPnP.
	ExternalAddress string

	Seeds           []string
	PersistentPeers []string
	UPNP            bool

	// Private or local net; disables the strict address book.
	LocalNet bool

	MaxNumInboundPeers  uint64
	MaxNumOutboundPeers uint64

	// Node IDs that are (re)connected to regardless of limits.
	UnconditionalPeerIDs []string

	// Maximum pause when redialing a persistent peer (if zero, exponential
	// backoff is used).
	PersistentPeersMaxDialPeriod time.Duration

	// Time to wait before flushing messages out on the connection.
	FlushThrottleTimeout time.Duration

	MaxPacketMsgPayloadSize uint64

	// Bytes per second.
	SendRate uint64
	RecvRate uint64

	PEX bool

	// Seed mode crawls the network for peers and disconnects from anyone
	// asking for addresses. Does not work without PEX.
	SeedMode bool

	// Peer IDs to keep private (will not be gossiped to other peers).
	PrivatePeerIDs []string

	AllowDuplicateIP bool

	HandshakeTimeout time.Duration
	DialTimeout      time.Duration
}

func DefaultP2PConfig() P2PConfig {
	return P2PConfig{
		ListenAddress:                "tcp://0.0.0.0:26656",
		MaxNumInboundPeers:           40,
		MaxNumOutboundPeers:          10,
		PersistentPeersMaxDialPeriod: 0,
		FlushThrottleTimeout:         100 * time.Millisecond,
		MaxPacketMsgPayloadSize:      1024,
		SendRate:                     5120000,
		RecvRate:                     5120000,
		PEX:                          true,
		HandshakeTimeout:             20 * time.Second,
		DialTimeout:                  3 * time.Second,
	}
}

func (c P2PConfig) WithListenAddress(v string) P2PConfig    { c.ListenAddress = v; return c }
func (c P2PConfig) WithExternalAddress(v string) P2PConfig  { c.ExternalAddress = v; return c }
func (c P2PConfig) WithSeeds(v ...string) P2PConfig         { c.Seeds = v; return c }
func (c P2PConfig) WithPersistentPeers(v ...string) P2PConfig {
	c.PersistentPeers = v
	return c
}
func (c P2PConfig) WithLocalNet(v bool) P2PConfig { c.LocalNet = v; return c }
func (c P2PConfig) WithPEX(v bool) P2PConfig      { c.PEX = v; return c }
func (c P2PConfig) WithSeedMode(v bool) P2PConfig { c.SeedMode = v; return c }
func (c P2PConfig) WithAllowDuplicateIP(v bool) P2PConfig {
	c.AllowDuplicateIP = v
	return c
}
