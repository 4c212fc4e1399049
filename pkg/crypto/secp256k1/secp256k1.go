// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package secp256k1 generates secp256k1 ECDSA keys and keeps both the raw
// encodings and the structured key objects needed for signing.
package secp256k1

import (
	"fmt"
	"io"

	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	SecretKeySize = secp.PrivKeyBytesLen
	PublicKeySize = secp.PubKeyBytesLenCompressed
)

type SecretKey struct {
	bytes [SecretKeySize]byte
	key   *secp.PrivateKey
}

type PublicKey struct {
	bytes [PublicKeySize]byte
	key   *secp.PublicKey
}

// Generate draws a scalar from rand. Generate panics if rand fails.
func Generate(rand io.Reader) *SecretKey {
	key, err := secp.GeneratePrivateKeyFromRand(rand)
	if err != nil {
		panic(fmt.Errorf("generate secp256k1 key: %w", err))
	}

	sk := &SecretKey{key: key}
	key.Key.PutBytes(&sk.bytes)
	return sk
}

// SecretKeyFromBytes reconstructs a secret key. It panics if the buffer has
// the wrong length.
func SecretKeyFromBytes(b []byte) *SecretKey {
	if len(b) != SecretKeySize {
		panic(fmt.Errorf("invalid secp256k1 secret key length: want %d, got %d", SecretKeySize, len(b)))
	}
	sk := &SecretKey{key: secp.PrivKeyFromBytes(b)}
	copy(sk.bytes[:], b)
	return sk
}

// Bytes returns the 32-byte big-endian scalar.
func (k *SecretKey) Bytes() [SecretKeySize]byte { return k.bytes }

// Key returns the structured key.
func (k *SecretKey) Key() *secp.PrivateKey { return k.key }

// PublicKey derives the public key.
func (k *SecretKey) PublicKey() *PublicKey {
	pub := k.key.PubKey()
	pk := &PublicKey{key: pub}
	copy(pk.bytes[:], pub.SerializeCompressed())
	return pk
}

// ParsePublicKey parses a compressed public key. This is the parse-only path
// for previously serialized keys.
func ParsePublicKey(b []byte) (*PublicKey, error) {
	if len(b) != PublicKeySize {
		return nil, fmt.Errorf("invalid secp256k1 public key length: want %d, got %d", PublicKeySize, len(b))
	}
	pub, err := secp.ParsePubKey(b)
	if err != nil {
		return nil, err
	}
	pk := &PublicKey{key: pub}
	copy(pk.bytes[:], b)
	return pk, nil
}

// Bytes returns the 33-byte compressed point.
func (k *PublicKey) Bytes() [PublicKeySize]byte { return k.bytes }

// Key returns the structured key.
func (k *PublicKey) Key() *secp.PublicKey { return k.key }
