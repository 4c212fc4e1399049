// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config

import "time"

type ConsensusConfig struct {
	// How long to wait for a proposal block before prevoting nil.
	TimeoutPropose time.Duration
	// How much TimeoutPropose increases with each round.
	TimeoutProposeDelta time.Duration
	// How long to wait after receiving +2/3 prevotes for anything.
	TimeoutPrevote      time.Duration
	TimeoutPrevoteDelta time.Duration
	// How long to wait after receiving +2/3 precommits for anything.
	TimeoutPrecommit      time.Duration
	TimeoutPrecommitDelta time.Duration
	// How long to wait after committing a block before starting the next
	// height.
	TimeoutCommit time.Duration

	// How many blocks to look back for the node's own votes before joining
	// consensus. When non-zero the node panics on restart if the key signed
	// any of those blocks.
	DoubleSignCheckHeight uint64

	// Make progress as soon as all precommits are in.
	SkipTimeoutCommit bool

	CreateEmptyBlocks         bool
	CreateEmptyBlocksInterval time.Duration

	PeerGossipSleepDuration     time.Duration
	PeerQueryMaj23SleepDuration time.Duration

	// Discard ABCI responses from the state store. Responses are needed for
	// /block_results queries and event reindexing.
	DiscardABCIResponses bool
}

func DefaultConsensusConfig() ConsensusConfig {
	return ConsensusConfig{
		TimeoutPropose:              3 * time.Second,
		TimeoutProposeDelta:         500 * time.Millisecond,
		TimeoutPrevote:              1 * time.Second,
		TimeoutPrevoteDelta:         500 * time.Millisecond,
		TimeoutPrecommit:            1 * time.Second,
		TimeoutPrecommitDelta:       500 * time.Millisecond,
		TimeoutCommit:               1 * time.Second,
		CreateEmptyBlocks:           true,
		PeerGossipSleepDuration:     100 * time.Millisecond,
		PeerQueryMaj23SleepDuration: 2 * time.Second,
	}
}
