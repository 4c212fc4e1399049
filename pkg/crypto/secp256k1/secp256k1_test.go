// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package secp256k1

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	sk := Generate(rand.Reader)
	b := sk.Bytes()

	sk2 := SecretKeyFromBytes(b[:])
	require.Equal(t, sk.PublicKey().Bytes(), sk2.PublicKey().Bytes())

	pb := sk.PublicKey().Bytes()
	require.Contains(t, []byte{0x02, 0x03}, pb[0])

	pk, err := ParsePublicKey(pb[:])
	require.NoError(t, err)
	require.True(t, pk.Key().IsEqual(sk.PublicKey().Key()))
}

func TestParsePublicKeyErrors(t *testing.T) {
	_, err := ParsePublicKey(make([]byte, 32))
	require.Error(t, err)

	uncompressed := Generate(rand.Reader).Key().PubKey().SerializeUncompressed()
	_, err = ParsePublicKey(uncompressed)
	require.Error(t, err)
}

func TestSecretKeyFromBytesLength(t *testing.T) {
	require.Panics(t, func() { SecretKeyFromBytes(make([]byte, 31)) })
}
