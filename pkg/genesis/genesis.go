// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package genesis is the typed genesis document of a chain. ToModel projects
// it onto the genesis.json record consumed by the Tendermint binary.
package genesis

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/crypto"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/errors"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/model"
)

type Genesis[AppState any] struct {
	GenesisTime     time.Time
	ChainID         string `validate:"required,max=50"`
	InitialHeight   int64  `validate:"gte=0"`
	ConsensusParams ConsensusParams
	Validators      []ValidatorInfo `validate:"min=1,dive"`
	AppHash         []byte
	AppState        AppState
}

type ConsensusParams struct {
	Block     BlockSize
	Evidence  EvidenceParams
	Validator ValidatorParams

	// Version is omitted from the document when nil.
	Version *VersionParams
}

type BlockSize struct {
	// Maximum block size in bytes.
	MaxBytes uint64 `validate:"gt=0"`

	// Maximum gas spent on a block. -1 means unlimited.
	MaxGas int64 `validate:"gte=-1"`

	// Unused by current Tendermint versions but still required.
	TimeIotaMs int64
}

// DefaultTimeIotaMs is the value Tendermint writes for time_iota_ms.
const DefaultTimeIotaMs = 1000

type EvidenceParams struct {
	MaxAgeNumBlocks uint64
	MaxAgeDuration  time.Duration
	MaxBytes        int64 `validate:"gte=0"`
}

type ValidatorParams struct {
	PubKeyTypes []PublicKeyAlgorithm `validate:"min=1"`
}

// PublicKeyAlgorithm is a key algorithm accepted for validators.
type PublicKeyAlgorithm int

const (
	PublicKeyEd25519 PublicKeyAlgorithm = iota + 1
	PublicKeySecp256k1
)

// PublicKeyAlgorithmFor returns the validator key type of the algorithm.
// Only Ed25519 and Secp256k1 keys can validate; anything else panics.
func PublicKeyAlgorithmFor(t crypto.AlgorithmType) PublicKeyAlgorithm {
	switch t {
	case crypto.Ed25519:
		return PublicKeyEd25519
	case crypto.Secp256k1:
		return PublicKeySecp256k1
	}
	panic(fmt.Errorf("%v keys cannot be used by validators", t))
}

func (a PublicKeyAlgorithm) ToModel() model.PublicKeyAlgorithm {
	switch a {
	case PublicKeyEd25519:
		return model.PublicKeyAlgorithmEd25519
	case PublicKeySecp256k1:
		return model.PublicKeyAlgorithmSecp256k1
	}
	panic(fmt.Errorf("unknown public key algorithm %d", int(a)))
}

type VersionParams struct {
	AppVersion uint64
}

type ValidatorInfo struct {
	PublicKey        crypto.PublicKey
	Power            uint64 `validate:"gt=0"`
	Name             string
	ProposerPriority int64
}

// Address is derived from the public key.
func (v *ValidatorInfo) Address() crypto.Address {
	return v.PublicKey.Address()
}

const (
	DefaultPower           = 10
	DefaultMaxBytes        = 22020096
	DefaultMaxGas          = -1
	DefaultMaxAgeNumBlocks = 100000
	DefaultMaxAgeDuration  = 48 * time.Hour
	DefaultEvidenceBytes   = 1048576
)

// DefaultConsensusParams returns the consensus parameters of a new chain
// whose validators use the given key algorithm.
func DefaultConsensusParams(algorithm crypto.AlgorithmType) ConsensusParams {
	return ConsensusParams{
		Block: BlockSize{
			MaxBytes:   DefaultMaxBytes,
			MaxGas:     DefaultMaxGas,
			TimeIotaMs: DefaultTimeIotaMs,
		},
		Evidence: EvidenceParams{
			MaxAgeNumBlocks: DefaultMaxAgeNumBlocks,
			MaxAgeDuration:  DefaultMaxAgeDuration,
			MaxBytes:        DefaultEvidenceBytes,
		},
		Validator: ValidatorParams{
			PubKeyTypes: []PublicKeyAlgorithm{PublicKeyAlgorithmFor(algorithm)},
		},
	}
}

// Generate returns a single-validator genesis for a development chain with a
// random chain ID. It panics if the key cannot validate.
func Generate[AppState any](validator crypto.PublicKey) *Genesis[AppState] {
	return &Genesis[AppState]{
		GenesisTime:     time.Now().UTC(),
		ChainID:         "test-chain-" + randomSuffix(),
		ConsensusParams: DefaultConsensusParams(validator.Algorithm()),
		Validators: []ValidatorInfo{{
			PublicKey: validator,
			Power:     DefaultPower,
		}},
		AppHash: []byte{},
	}
}

func randomSuffix() string {
	id, err := uuid.NewRandomFromReader(rand.Reader)
	if err != nil {
		panic(err)
	}
	return id.String()[:6]
}

var validate = validator.New()

// Validate checks the document for values the binary rejects.
func (g *Genesis[AppState]) Validate() error {
	err := validate.Struct(g)
	if err != nil {
		return errors.BadRequest.WithFormat("invalid genesis: %w", err)
	}
	return nil
}

// ToModel renders the document. Numbers become decimal strings, the time
// becomes RFC 3339 in UTC, and the app hash becomes lower-case hex.
func (g *Genesis[AppState]) ToModel() *model.Genesis[AppState] {
	m := &model.Genesis[AppState]{
		GenesisTime:     model.FormatTime(g.GenesisTime),
		ChainID:         g.ChainID,
		InitialHeight:   model.FormatInt(g.InitialHeight),
		ConsensusParams: g.ConsensusParams.ToModel(),
		Validators:      make([]model.ValidatorInfo, len(g.Validators)),
		AppHash:         model.FormatHexLower(g.AppHash),
		AppState:        g.AppState,
	}
	for i, v := range g.Validators {
		m.Validators[i] = v.ToModel()
	}
	return m
}

func (c *ConsensusParams) ToModel() model.ConsensusParams {
	m := model.ConsensusParams{
		Block: model.BlockSize{
			MaxBytes:   model.FormatUint(c.Block.MaxBytes),
			MaxGas:     model.FormatInt(c.Block.MaxGas),
			TimeIotaMs: model.FormatInt(c.Block.TimeIotaMs),
		},
		Evidence: model.EvidenceParams{
			MaxAgeNumBlocks: model.FormatUint(c.Evidence.MaxAgeNumBlocks),
			MaxAgeDuration:  model.FormatInt(c.Evidence.MaxAgeDuration.Nanoseconds()),
			MaxBytes:        model.FormatInt(c.Evidence.MaxBytes),
		},
		Validator: model.ValidatorParams{
			PubKeyTypes: make([]model.PublicKeyAlgorithm, len(c.Validator.PubKeyTypes)),
		},
	}
	for i, a := range c.Validator.PubKeyTypes {
		m.Validator.PubKeyTypes[i] = a.ToModel()
	}
	if c.Version != nil {
		m.Version.AppVersion = model.FormatUint(c.Version.AppVersion)
	}
	return m
}

func (v *ValidatorInfo) ToModel() model.ValidatorInfo {
	return model.ValidatorInfo{
		Address:          v.Address().String(),
		PubKey:           v.PublicKey.ToModel(),
		Power:            model.FormatUint(v.Power),
		Name:             v.Name,
		ProposerPriority: model.FormatInt(v.ProposerPriority),
	}
}

// EncodeJSON renders the genesis.json document.
func (g *Genesis[AppState]) EncodeJSON() ([]byte, error) {
	b, err := model.EncodeJSON(g.ToModel())
	if err != nil {
		return nil, errors.Serialization.WithFormat("encode genesis: %w", err)
	}
	return b, nil
}
