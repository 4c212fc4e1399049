// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package model

// Genesis is the genesis.json record. Numbers are decimal strings.
type Genesis[AppState any] struct {
	GenesisTime     string          `json:"genesis_time"`
	ChainID         string          `json:"chain_id"`
	InitialHeight   string          `json:"initial_height"`
	ConsensusParams ConsensusParams `json:"consensus_params"`
	Validators      []ValidatorInfo `json:"validators"`
	AppHash         string          `json:"app_hash"`
	AppState        AppState        `json:"app_state"`
}

type ConsensusParams struct {
	Block     BlockSize       `json:"block"`
	Evidence  EvidenceParams  `json:"evidence"`
	Validator ValidatorParams `json:"validator"`
	Version   VersionParams   `json:"version"`
}

type BlockSize struct {
	MaxBytes   string `json:"max_bytes"`
	MaxGas     string `json:"max_gas"`
	TimeIotaMs string `json:"time_iota_ms"`
}

type EvidenceParams struct {
	MaxAgeNumBlocks string `json:"max_age_num_blocks"`
	MaxAgeDuration  string `json:"max_age_duration"`
	MaxBytes        string `json:"max_bytes"`
}

type ValidatorParams struct {
	PubKeyTypes []PublicKeyAlgorithm `json:"pub_key_types"`
}

// PublicKeyAlgorithm is a validator key type Tendermint accepts.
type PublicKeyAlgorithm string

const (
	PublicKeyAlgorithmEd25519   PublicKeyAlgorithm = "ed25519"
	PublicKeyAlgorithmSecp256k1 PublicKeyAlgorithm = "secp256k1"
)

type VersionParams struct {
	AppVersion string `json:"app_version,omitempty"`
}

type ValidatorInfo struct {
	Address          string `json:"address"`
	PubKey           Key    `json:"pub_key"`
	Power            string `json:"power"`
	Name             string `json:"name"`
	ProposerPriority string `json:"proposer_priority"`
}
