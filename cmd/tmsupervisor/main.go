// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gitlab.com/accumulatenetwork/embedded-tendermint/internal/logging"
)

var cmdMain = &cobra.Command{
	Use:               "tmsupervisor",
	Short:             "Run an embedded Tendermint node",
	PersistentPreRunE: setupLogging,
	SilenceUsage:      true,
}

var flagMain struct {
	Log     string
	LogJSON bool
}

// v holds the settings from flags and TMSUPERVISOR_* variables.
var v = viper.New()

func init() {
	cmdMain.PersistentFlags().StringVar(&flagMain.Log, "log", "info", "Log levels, e.g. error;tendermint=debug")
	cmdMain.PersistentFlags().BoolVar(&flagMain.LogJSON, "log-json", false, "Log as JSON")

	v.SetEnvPrefix("TMSUPERVISOR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

func main() {
	if err := cmdMain.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	format := "plain"
	if flagMain.LogJSON {
		format = "json"
	}
	logger, err := logging.New(os.Stderr, format, flagMain.Log)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return v.BindPFlags(cmd.Flags())
}
