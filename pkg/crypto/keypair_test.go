// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	mrand "math/rand"
	"testing"

	cmted25519 "github.com/cometbft/cometbft/crypto/ed25519"
	cmtsecp256k1 "github.com/cometbft/cometbft/crypto/secp256k1"
	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/crypto/hash160"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/errors"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/model"
)

var algorithms = []AlgorithmType{Ed25519, Secp256k1, Sr25519}

func TestDeterministic(t *testing.T) {
	for _, alg := range algorithms {
		t.Run(alg.String(), func(t *testing.T) {
			a := Generate(alg, mrand.New(mrand.NewSource(42)))
			b := Generate(alg, mrand.New(mrand.NewSource(42)))
			c := Generate(alg, mrand.New(mrand.NewSource(43)))
			require.Equal(t, a.SecretKey().Bytes(), b.SecretKey().Bytes())
			require.Equal(t, a.PublicKey().Bytes(), b.PublicKey().Bytes())
			require.Equal(t, a.Address(), b.Address())
			require.NotEqual(t, a.Address(), c.Address())
		})
	}
}

func TestKeySizes(t *testing.T) {
	cases := map[AlgorithmType][2]int{
		Ed25519:   {64, 32},
		Secp256k1: {32, 33},
		Sr25519:   {32, 32},
	}
	for alg, sizes := range cases {
		k := Generate(alg, rand.Reader)
		require.Equal(t, alg, k.Algorithm())
		require.Len(t, k.SecretKey().Bytes(), sizes[0], alg.String())
		require.Len(t, k.PublicKey().Bytes(), sizes[1], alg.String())
	}
}

func TestPublicKeyIsPure(t *testing.T) {
	for _, alg := range algorithms {
		k := Generate(alg, rand.Reader)
		require.Equal(t, k.PublicKey().Bytes(), k.SecretKey().PublicKey().Bytes())
	}
}

func TestEd25519MatchesCometBFT(t *testing.T) {
	k := Generate(Ed25519, rand.Reader)

	priv := cmted25519.PrivKey(k.SecretKey().Bytes())
	require.Equal(t, []byte(priv.PubKey().Bytes()), k.PublicKey().Bytes())

	addr := cmted25519.PubKey(k.PublicKey().Bytes()).Address()
	require.Equal(t, []byte(addr), k.Address().Bytes())
}

func TestSecp256k1MatchesCometBFT(t *testing.T) {
	k := Generate(Secp256k1, rand.Reader)

	priv := cmtsecp256k1.PrivKey(k.SecretKey().Bytes())
	require.Equal(t, []byte(priv.PubKey().Bytes()), k.PublicKey().Bytes())

	addr := cmtsecp256k1.PubKey(k.PublicKey().Bytes()).Address()
	require.Equal(t, []byte(addr), k.Address().Bytes())
}

func TestAddressAlgorithms(t *testing.T) {
	// Ed25519 and Sr25519 truncate SHA-256; Secp256k1 uses hash160
	ed := Generate(Ed25519, rand.Reader)
	pk := PublicKey{algorithm: Sr25519, sr25519: [32]byte(ed.PublicKey().Bytes())}
	require.Equal(t, ed.Address(), pk.Address())

	sum := sha256.Sum256(ed.PublicKey().Bytes())
	require.Equal(t, sum[:AddressSize], ed.Address().Bytes())
	require.NotEqual(t, Address(hash160.Sum(ed.PublicKey().Bytes())), ed.Address())

	secp := Generate(Secp256k1, rand.Reader)
	require.Equal(t, Address(hash160.Sum(secp.PublicKey().Bytes())), secp.Address())

	for _, alg := range algorithms {
		s := Generate(alg, rand.Reader).Address().String()
		require.Len(t, s, 2*AddressSize)
		require.Regexp(t, `^[0-9A-F]+$`, s)
	}
}

func TestToModel(t *testing.T) {
	cases := map[AlgorithmType][2]string{
		Ed25519:   {"tendermint/PrivKeyEd25519", "tendermint/PubKeyEd25519"},
		Secp256k1: {"tendermint/PrivKeySecp256k1", "tendermint/PubKeySecp256k1"},
		Sr25519:   {"tendermint/PrivKeySr25519", "tendermint/PubKeySr25519"},
	}
	for alg, types := range cases {
		k := Generate(alg, rand.Reader)
		m := k.ToModel()
		require.Equal(t, k.Address().String(), m.Address)
		require.Equal(t, types[0], m.PrivKey.Type)
		require.Equal(t, types[1], m.PubKey.Type)
		require.Equal(t, base64.StdEncoding.EncodeToString(k.SecretKey().Bytes()), m.PrivKey.Value)
		require.Equal(t, base64.StdEncoding.EncodeToString(k.PublicKey().Bytes()), m.PubKey.Value)

		b, err := json.Marshal(m)
		require.NoError(t, err)
		require.Contains(t, string(b), `"priv_key":{"type":"`+types[0]+`"`)
	}
}

func TestPublicKeyFromModel(t *testing.T) {
	for _, alg := range algorithms {
		k := Generate(alg, rand.Reader)
		pk, err := PublicKeyFromModel(k.PublicKey().ToModel())
		require.NoError(t, err)
		require.Equal(t, alg, pk.Algorithm())
		require.Equal(t, k.PublicKey().Bytes(), pk.Bytes())
		require.Equal(t, k.Address(), pk.Address())
	}

	_, err := PublicKeyFromModel(model.Key{Type: "tendermint/PubKeyEd25519", Value: "!!"})
	require.ErrorIs(t, err, errors.Serialization)

	_, err = PublicKeyFromModel(model.Key{Type: "tendermint/PubKeyEd25519", Value: base64.StdEncoding.EncodeToString(make([]byte, 31))})
	require.ErrorIs(t, err, errors.Serialization)

	_, err = PublicKeyFromModel(model.Key{Type: "tendermint/PubKeySecp256k1", Value: base64.StdEncoding.EncodeToString(make([]byte, 33))})
	require.ErrorIs(t, err, errors.Serialization)

	_, err = PublicKeyFromModel(model.Key{Type: "tendermint/PubKeyBls12381", Value: ""})
	require.ErrorIs(t, err, errors.Unsupported)
}

func TestParseAlgorithmType(t *testing.T) {
	for _, alg := range algorithms {
		v, err := ParseAlgorithmType(alg.String())
		require.NoError(t, err)
		require.Equal(t, alg, v)
	}

	var v AlgorithmType
	require.NoError(t, v.UnmarshalText([]byte("SECP256K1")))
	require.Equal(t, Secp256k1, v)

	_, err := ParseAlgorithmType("rsa")
	require.ErrorIs(t, err, errors.Unsupported)
}

func TestUnknownAlgorithmPanics(t *testing.T) {
	require.Panics(t, func() { Generate(AlgorithmType(99), rand.Reader) })
}
