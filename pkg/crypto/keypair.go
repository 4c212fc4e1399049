// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package crypto unifies the Ed25519, Secp256k1, and Sr25519 key primitives
// behind a single set of tagged key types and derives Tendermint addresses
// and key-file records from them.
package crypto

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/crypto/ed25519"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/crypto/hash160"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/crypto/secp256k1"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/crypto/sr25519"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/errors"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/model"
)

// AlgorithmType identifies the signature scheme of a key.
type AlgorithmType int

const (
	Ed25519 AlgorithmType = iota + 1
	Secp256k1
	Sr25519
)

// AddressSize is the length of a Tendermint address.
const AddressSize = 20

// Address is the one-way digest of a public key.
type Address [AddressSize]byte

func (a Address) Bytes() []byte  { return a[:] }
func (a Address) String() string { return model.FormatHexUpper(a[:]) }

func (t AlgorithmType) String() string {
	switch t {
	case Ed25519:
		return "ed25519"
	case Secp256k1:
		return "secp256k1"
	case Sr25519:
		return "sr25519"
	}
	return fmt.Sprintf("AlgorithmType:%d", int(t))
}

// ParseAlgorithmType parses the lower-case algorithm name.
func ParseAlgorithmType(s string) (AlgorithmType, error) {
	switch strings.ToLower(s) {
	case "ed25519":
		return Ed25519, nil
	case "secp256k1":
		return Secp256k1, nil
	case "sr25519":
		return Sr25519, nil
	}
	return 0, errors.Unsupported.WithFormat("unknown algorithm %q", s)
}

func (t AlgorithmType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *AlgorithmType) UnmarshalText(b []byte) error {
	v, err := ParseAlgorithmType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Amino type names of the key records.
const (
	privKeyEd25519   = "tendermint/PrivKeyEd25519"
	privKeySecp256k1 = "tendermint/PrivKeySecp256k1"
	privKeySr25519   = "tendermint/PrivKeySr25519"
	pubKeyEd25519    = "tendermint/PubKeyEd25519"
	pubKeySecp256k1  = "tendermint/PubKeySecp256k1"
	pubKeySr25519    = "tendermint/PubKeySr25519"
)

// SecretKey is a secret key of one of the supported algorithms. The zero
// value is not usable.
type SecretKey struct {
	algorithm AlgorithmType
	ed25519   [ed25519.SecretKeySize]byte
	sr25519   [sr25519.SecretKeySize]byte
	secp256k1 *secp256k1.SecretKey
}

// PublicKey is a public key of one of the supported algorithms. A PublicKey
// is only obtained from its SecretKey or by parsing a serialized record.
type PublicKey struct {
	algorithm AlgorithmType
	ed25519   [ed25519.PublicKeySize]byte
	sr25519   [sr25519.PublicKeySize]byte
	secp256k1 *secp256k1.PublicKey
}

// Keypair is a secret key and its public key. Both halves always share an
// algorithm.
type Keypair struct {
	secretKey SecretKey
	publicKey PublicKey
}

// Generate creates a keypair for the algorithm, drawing randomness from
// rand. Generate panics on an unknown algorithm or a failing rand.
func Generate(algorithm AlgorithmType, rand io.Reader) *Keypair {
	sk := GenerateSecretKey(algorithm, rand)
	return &Keypair{secretKey: sk, publicKey: sk.PublicKey()}
}

// GenerateSecretKey creates a secret key for the algorithm.
func GenerateSecretKey(algorithm AlgorithmType, rand io.Reader) SecretKey {
	sk := SecretKey{algorithm: algorithm}
	switch algorithm {
	case Ed25519:
		sk.ed25519 = ed25519.Generate(rand)
	case Secp256k1:
		sk.secp256k1 = secp256k1.Generate(rand)
	case Sr25519:
		sk.sr25519 = sr25519.Generate(rand)
	default:
		panic(fmt.Errorf("unknown algorithm %v", algorithm))
	}
	return sk
}

func (k *Keypair) Algorithm() AlgorithmType { return k.secretKey.algorithm }
func (k *Keypair) SecretKey() SecretKey     { return k.secretKey }
func (k *Keypair) PublicKey() PublicKey     { return k.publicKey }
func (k *Keypair) Address() Address         { return k.publicKey.Address() }

// ToModel returns the key-file record of the keypair.
func (k *Keypair) ToModel() *model.Keypair {
	return &model.Keypair{
		Address: k.publicKey.Address().String(),
		PrivKey: k.secretKey.ToModel(),
		PubKey:  k.publicKey.ToModel(),
	}
}

func (k SecretKey) Algorithm() AlgorithmType { return k.algorithm }

// Bytes returns the raw secret: seed‖public for Ed25519, the mini secret for
// Sr25519, and the big-endian scalar for Secp256k1.
func (k SecretKey) Bytes() []byte {
	switch k.algorithm {
	case Ed25519:
		return k.ed25519[:]
	case Secp256k1:
		b := k.secp256k1.Bytes()
		return b[:]
	case Sr25519:
		return k.sr25519[:]
	}
	panic(fmt.Errorf("unknown algorithm %v", k.algorithm))
}

// PublicKey derives the public key. The result depends only on the secret.
func (k SecretKey) PublicKey() PublicKey {
	pk := PublicKey{algorithm: k.algorithm}
	switch k.algorithm {
	case Ed25519:
		pk.ed25519 = ed25519.PublicKey(&k.ed25519)
	case Secp256k1:
		pk.secp256k1 = k.secp256k1.PublicKey()
	case Sr25519:
		pk.sr25519 = sr25519.PublicKey(&k.sr25519)
	default:
		panic(fmt.Errorf("unknown algorithm %v", k.algorithm))
	}
	return pk
}

func (k SecretKey) ToModel() model.Key {
	var typ string
	switch k.algorithm {
	case Ed25519:
		typ = privKeyEd25519
	case Secp256k1:
		typ = privKeySecp256k1
	case Sr25519:
		typ = privKeySr25519
	default:
		panic(fmt.Errorf("unknown algorithm %v", k.algorithm))
	}
	return model.Key{Type: typ, Value: base64.StdEncoding.EncodeToString(k.Bytes())}
}

func (k PublicKey) Algorithm() AlgorithmType { return k.algorithm }

// Bytes returns the raw public key: 32 bytes for Ed25519 and Sr25519, the
// 33-byte compressed point for Secp256k1.
func (k PublicKey) Bytes() []byte {
	switch k.algorithm {
	case Ed25519:
		return k.ed25519[:]
	case Secp256k1:
		b := k.secp256k1.Bytes()
		return b[:]
	case Sr25519:
		return k.sr25519[:]
	}
	panic(fmt.Errorf("unknown algorithm %v", k.algorithm))
}

// Address derives the Tendermint address. Secp256k1 uses
// RIPEMD-160(SHA-256(key)); Ed25519 and Sr25519 use the first 20 bytes of
// SHA-256(key).
func (k PublicKey) Address() Address {
	var addr Address
	switch k.algorithm {
	case Secp256k1:
		b := k.secp256k1.Bytes()
		addr = hash160.Sum(b[:])
	case Ed25519, Sr25519:
		h := sha256.Sum256(k.Bytes())
		copy(addr[:], h[:AddressSize])
	default:
		panic(fmt.Errorf("unknown algorithm %v", k.algorithm))
	}
	return addr
}

func (k PublicKey) ToModel() model.Key {
	var typ string
	switch k.algorithm {
	case Ed25519:
		typ = pubKeyEd25519
	case Secp256k1:
		typ = pubKeySecp256k1
	case Sr25519:
		typ = pubKeySr25519
	default:
		panic(fmt.Errorf("unknown algorithm %v", k.algorithm))
	}
	return model.Key{Type: typ, Value: base64.StdEncoding.EncodeToString(k.Bytes())}
}

// PublicKeyFromModel parses a serialized public key record. There is no
// secret counterpart; the result is only good for addressing and
// verification.
func PublicKeyFromModel(m model.Key) (PublicKey, error) {
	b, err := base64.StdEncoding.DecodeString(m.Value)
	if err != nil {
		return PublicKey{}, errors.Serialization.WithFormat("decode %s: %w", m.Type, err)
	}

	pk := PublicKey{}
	switch m.Type {
	case pubKeyEd25519:
		pk.algorithm = Ed25519
		if len(b) != ed25519.PublicKeySize {
			return PublicKey{}, errors.Serialization.WithFormat("invalid ed25519 public key length: want %d, got %d", ed25519.PublicKeySize, len(b))
		}
		pk.ed25519 = [ed25519.PublicKeySize]byte(b)

	case pubKeySr25519:
		pk.algorithm = Sr25519
		if len(b) != sr25519.PublicKeySize {
			return PublicKey{}, errors.Serialization.WithFormat("invalid sr25519 public key length: want %d, got %d", sr25519.PublicKeySize, len(b))
		}
		pk.sr25519 = [sr25519.PublicKeySize]byte(b)

	case pubKeySecp256k1:
		pk.algorithm = Secp256k1
		pk.secp256k1, err = secp256k1.ParsePublicKey(b)
		if err != nil {
			return PublicKey{}, errors.Serialization.WithFormat("parse secp256k1 public key: %w", err)
		}

	default:
		return PublicKey{}, errors.Unsupported.WithFormat("unknown public key type %q", m.Type)
	}
	return pk, nil
}
