// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/crypto"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/model"
)

var cmdKeygen = &cobra.Command{
	Use:   "keygen [ed25519|secp256k1|sr25519]",
	Short: "Generate a key file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  keygen,
}

func init() {
	cmdMain.AddCommand(cmdKeygen)
}

func keygen(_ *cobra.Command, args []string) error {
	alg := crypto.Ed25519
	if len(args) > 0 {
		var err error
		alg, err = crypto.ParseAlgorithmType(args[0])
		if err != nil {
			return err
		}
	}

	key := crypto.Generate(alg, rand.Reader)
	b, err := model.EncodeJSON(key.ToModel())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%s %s\n", color.CyanString("Address:"), color.GreenString(key.Address().String()))
	fmt.Println(string(b))
	return nil
}
