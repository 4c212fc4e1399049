// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestServeMetrics(t *testing.T) {
	addr, shutdown, err := serveMetrics("127.0.0.1:0", prometheus.NewRegistry())
	require.NoError(t, err)
	defer func() { require.NoError(t, shutdown(context.Background())) }()

	counter, err := otel.Meter("test").Int64UpDownCounter("tendermint_child_up")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)

	resp, err := http.Get("http://" + addr.String() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(b), "tendermint_child_up")
}

func TestAlgorithmFlag(t *testing.T) {
	var f algorithmFlag
	require.Equal(t, "", f.String())
	require.NoError(t, f.Set("secp256k1"))
	require.Equal(t, "secp256k1", f.String())
	require.Error(t, f.Set("sr25519"))
	require.Error(t, f.Set("rsa"))
	require.Equal(t, "secp256k1", f.String())
}
