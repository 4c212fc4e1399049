// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"context"
	"crypto/rand"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gitlab.com/accumulatenetwork/embedded-tendermint/internal/logging"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/crypto"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/genesis"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/tendermint"
	"golang.org/x/sync/errgroup"
)

var cmdStart = &cobra.Command{
	Use:   "start",
	Short: "Generate keys and a genesis document and run a single-validator node",
	Args:  cobra.NoArgs,
	RunE:  start,
}

var flagStart struct {
	Settings      string
	Keep          bool
	Algorithm     algorithmFlag
	MetricsListen string
}

func init() {
	cmdMain.AddCommand(cmdStart)

	cmdStart.Flags().StringVarP(&flagStart.Settings, "settings", "s", "", "Settings file (.toml, .yaml, or .json)")
	cmdStart.Flags().BoolVar(&flagStart.Keep, "keep", false, "Keep the working directory when the node exits")
	cmdStart.Flags().Var(&flagStart.Algorithm, "algorithm", "Key algorithm (ed25519 or secp256k1)")
	cmdStart.Flags().StringVar(&flagStart.MetricsListen, "metrics-listen", "", "Serve supervisor metrics on this address (disabled if unset)")
	cmdStart.Flags().String("moniker", "", "Node name")
	cmdStart.Flags().String("chain-id", "", "Chain ID (random if unset)")
	cmdStart.Flags().String("proxy-app", "", "ABCI application address")
	cmdStart.Flags().String("rpc-listen", "", "RPC listen address")
	cmdStart.Flags().String("p2p-listen", "", "P2P listen address")
	cmdStart.Flags().String("prometheus", "", "Prometheus listen address (disabled if unset)")
}

// loadSettings reads the settings file, then applies flags and environment
// variables over it.
func loadSettings() (*Settings, error) {
	s := new(Settings)
	if flagStart.Settings != "" {
		err := s.LoadFrom(flagStart.Settings)
		if err != nil {
			return nil, err
		}
	}

	for key, ptr := range map[string]*string{
		"algorithm":  &s.Algorithm,
		"moniker":    &s.Moniker,
		"chain-id":   &s.ChainID,
		"proxy-app":  &s.ProxyApp,
		"rpc-listen": &s.RPCListen,
		"p2p-listen": &s.P2PListen,
		"prometheus": &s.Prometheus,
	} {
		if value := v.GetString(key); value != "" {
			*ptr = value
		}
	}
	return s, nil
}

func start(cmd *cobra.Command, _ []string) error {
	logger := slog.Default()

	s, err := loadSettings()
	if err != nil {
		return err
	}
	cfg, err := s.Config()
	if err != nil {
		return err
	}

	alg := s.KeyAlgorithm()
	nodeKey := crypto.Generate(alg, rand.Reader)
	validatorKey := crypto.Generate(alg, rand.Reader)

	gen := genesis.Generate[struct{}](validatorKey.PublicKey())
	if s.ChainID != "" {
		gen.ChainID = s.ChainID
	}
	err = gen.Validate()
	if err != nil {
		return err
	}

	if flagStart.MetricsListen != "" {
		_, shutdown, err := serveMetrics(flagStart.MetricsListen, defaultRegistry)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error("Metrics shutdown failed", "error", err)
			}
		}()
	}

	td, err := tendermint.New(tendermint.WithLogger(logger))
	if err != nil {
		return err
	}
	if flagStart.Keep {
		logger.Info("Keeping working directory", "dir", td.Dir())
	} else {
		defer func() {
			if err := td.Cleanup(); err != nil {
				logger.Error("Cleanup failed", "error", err)
			}
		}()
	}

	err = td.Start(cfg, nodeKey, validatorKey, gen)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.With(ctx, "chain-id", gen.ChainID)
	logger.InfoContext(ctx, "Node started",
		"validator", validatorKey.Address().String(),
		"rpc", cfg.ToModel(td.Dir()).RPC.Laddr)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Interrupt the node on a signal; stop watching once it exits
	exited := make(chan struct{})
	errg := new(errgroup.Group)
	errg.Go(func() error {
		defer close(exited)
		return td.Wait()
	})
	errg.Go(func() error {
		select {
		case <-exited:
			return nil
		case <-ctx.Done():
			logger.InfoContext(ctx, "Shutting down")
			return td.Stop()
		}
	})
	err = errg.Wait()
	if err != nil {
		return err
	}

	if state := td.ProcessState(); state != nil && !state.Success() {
		logger.WarnContext(ctx, "Node exited abnormally", "status", state.String())
	}
	return nil
}
