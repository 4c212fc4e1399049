// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"github.com/spf13/pflag"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/crypto"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/errors"
)

// algorithmFlag is a key algorithm Tendermint accepts for node and
// validator keys.
type algorithmFlag crypto.AlgorithmType

var _ pflag.Value = (*algorithmFlag)(nil)

func (f *algorithmFlag) Type() string { return "algorithm" }

func (f *algorithmFlag) String() string {
	if *f == 0 {
		return ""
	}
	return crypto.AlgorithmType(*f).String()
}

func (f *algorithmFlag) Set(s string) error {
	alg, err := crypto.ParseAlgorithmType(s)
	if err != nil {
		return err
	}
	if alg == crypto.Sr25519 {
		return errors.Unsupported.With("tendermint does not accept sr25519 validator keys")
	}
	*f = algorithmFlag(alg)
	return nil
}
