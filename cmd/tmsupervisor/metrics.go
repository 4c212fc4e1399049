// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/errors"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

type registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

var defaultRegistry = struct {
	prometheus.Registerer
	prometheus.Gatherer
}{prometheus.DefaultRegisterer, prometheus.DefaultGatherer}

// serveMetrics installs a meter provider that exports to the Prometheus
// registry and serves the registry at /metrics. The returned function shuts
// both down.
func serveMetrics(addr string, reg registry) (net.Addr, func(context.Context) error, error) {
	exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, nil, errors.UnknownError.WithFormat("create exporter: %w", err)
	}
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	l, err := net.Listen("tcp", addr)
	if err != nil {
		_ = provider.Shutdown(context.Background())
		return nil, nil, errors.Process.WithFormat("listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.InstrumentMetricHandler(
		reg, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	))

	// Slow-loris prevention
	s := &http.Server{Handler: mux, ReadHeaderTimeout: time.Minute}
	go func() {
		err := s.Serve(l)
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server stopped", "error", err)
		}
	}()

	slog.Info("Serving metrics", "address", l.Addr().String())
	shutdown := func(ctx context.Context) error {
		return errors.Join(s.Shutdown(ctx), provider.Shutdown(ctx))
	}
	return l.Addr(), shutdown, nil
}
