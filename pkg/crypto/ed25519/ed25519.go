// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package ed25519 generates Ed25519 keys in the layout Tendermint stores them:
// a 64-byte secret (seed followed by the compressed public point) and a
// 32-byte public key.
package ed25519

import (
	"crypto/sha512"
	"fmt"
	"io"

	"github.com/oasisprotocol/curve25519-voi/curve"
	"github.com/oasisprotocol/curve25519-voi/curve/scalar"
)

const (
	SeedSize      = 32
	PublicKeySize = 32
	SecretKeySize = SeedSize + PublicKeySize
)

// Generate reads a seed from rand and returns seed‖public. Generate panics
// if rand fails.
func Generate(rand io.Reader) [SecretKeySize]byte {
	var sk [SecretKeySize]byte
	if _, err := io.ReadFull(rand, sk[:SeedSize]); err != nil {
		panic(fmt.Errorf("read ed25519 seed: %w", err))
	}

	pk := derive(ExpandSeed(sk[:SeedSize]))
	copy(sk[SeedSize:], pk[:])
	return sk
}

// PublicKey returns the public half of a secret. It does not recompute the
// point.
func PublicKey(sk *[SecretKeySize]byte) [PublicKeySize]byte {
	var pk [PublicKeySize]byte
	copy(pk[:], sk[SeedSize:])
	return pk
}

// ExpandSeed hashes the seed with SHA-512 and returns the clamped low half
// of the digest.
func ExpandSeed(seed []byte) [32]byte {
	if len(seed) != SeedSize {
		panic(fmt.Errorf("invalid ed25519 seed length: want %d, got %d", SeedSize, len(seed)))
	}

	digest := sha512.Sum512(seed)
	var bits [32]byte
	copy(bits[:], digest[:32])
	clamp(&bits)
	return bits
}

func clamp(bits *[32]byte) {
	bits[0] &= 248
	bits[31] &= 127
	bits[31] |= 64
}

func derive(bits [32]byte) [PublicKeySize]byte {
	s, err := scalar.NewFromBits(bits[:])
	if err != nil {
		panic(err)
	}

	var point curve.EdwardsPoint
	point.MulBasepoint(curve.ED25519_BASEPOINT_TABLE, s)

	var compressed curve.CompressedEdwardsY
	compressed.SetEdwardsPoint(&point)
	return [PublicKeySize]byte(compressed)
}
