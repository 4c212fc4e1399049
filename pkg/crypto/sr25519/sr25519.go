// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package sr25519 generates Schnorrkel (Ristretto255) keys. The secret is the
// 32-byte mini secret; the public key is derived from its Ed25519-style
// expansion, divided by the cofactor, times the Ristretto base point.
package sr25519

import (
	"crypto/sha512"
	"fmt"
	"io"

	"github.com/oasisprotocol/curve25519-voi/curve"
	"github.com/oasisprotocol/curve25519-voi/curve/scalar"
)

const (
	SecretKeySize = 32
	PublicKeySize = 32
)

// Generate reads a secret from rand. Generate panics if rand fails.
func Generate(rand io.Reader) [SecretKeySize]byte {
	var sk [SecretKeySize]byte
	if _, err := io.ReadFull(rand, sk[:]); err != nil {
		panic(fmt.Errorf("read sr25519 secret: %w", err))
	}
	return sk
}

// PublicKey derives the compressed Ristretto public key of the secret.
func PublicKey(sk *[SecretKeySize]byte) [PublicKeySize]byte {
	key := ExpandSecret(sk)
	DivideScalarByCofactor(&key)

	s, err := scalar.NewFromBits(key[:])
	if err != nil {
		panic(err)
	}

	var point curve.RistrettoPoint
	point.MulBasepoint(curve.RISTRETTO_BASEPOINT_TABLE, s)

	var compressed curve.CompressedRistretto
	compressed.SetRistrettoPoint(&point)
	return [PublicKeySize]byte(compressed)
}

// ExpandSecret hashes the secret with SHA-512 and returns the clamped low
// half of the digest, before cofactor division.
func ExpandSecret(sk *[SecretKeySize]byte) [32]byte {
	digest := sha512.Sum512(sk[:])

	var key [32]byte
	copy(key[:], digest[:32])
	key[0] &= 248
	key[31] &= 127
	key[31] |= 64
	return key
}

// DivideScalarByCofactor divides a little-endian scalar by 8 in place,
// carrying the low three bits of each byte into the byte below it.
func DivideScalarByCofactor(s *[32]byte) {
	var low byte
	for i := len(s) - 1; i >= 0; i-- {
		r := s[i] & 0b111
		s[i] >>= 3
		s[i] += low
		low = r << 5
	}
}
