// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"gitlab.com/accumulatenetwork/embedded-tendermint/internal/embedded"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/errors"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/tendermint"
)

const unknownVersion = "version unknown"

// Version is set with -ldflags "-X main.Version=...".
var Version = unknownVersion

var cmdVersion = &cobra.Command{
	Use:   "version",
	Short: "Print the supervisor version and the Tendermint version",
	Args:  cobra.NoArgs,
	RunE:  showVersion,
}

var flagVersion struct {
	Check bool
}

func init() {
	cmdMain.AddCommand(cmdVersion)
	cmdVersion.Flags().BoolVar(&flagVersion.Check, "check", false, "Run the binary to verify it reports the expected version")
}

func showVersion(cmd *cobra.Command, _ []string) error {
	fmt.Printf("%s %s\n", cmdMain.Use, Version)
	fmt.Printf("tendermint %s\n", embedded.Version)
	if !flagVersion.Check {
		return nil
	}

	td, err := tendermint.New()
	if err != nil {
		return err
	}
	defer func() {
		if err := td.Cleanup(); err != nil {
			slog.Error("Cleanup failed", "error", err)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	version, err := td.Version(ctx)
	if err != nil {
		return err
	}
	if version != embedded.Version {
		return errors.Unsupported.WithFormat("binary reports version %s, expected %s", version, embedded.Version)
	}
	fmt.Println("binary ok")
	return nil
}
