// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/errors"
)

func TestLoggingCtxAttrs(t *testing.T) {
	var records records
	logger := slog.New(&logHandler{
		handler: &records,
		level:   slog.LevelDebug,
	})

	ctx := With(context.Background(), "foo", "bar")
	logger.InfoContext(ctx, "Hello world")
	require.Len(t, records, 1)
	require.Equal(t, "Hello world", records[0].Message)

	attrs := map[string]any{}
	records[0].Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})
	require.Equal(t, "bar", attrs["foo"])
}

func TestContextModule(t *testing.T) {
	buf := new(bytes.Buffer)
	c, err := ParseRules("error;tendermint=info")
	require.NoError(t, err)
	logger := slog.New(NewSlogHandler(c, buf))

	ctx := context.Background()
	require.Equal(t, ctx, With(ctx))

	ctx = With(ctx, "module", "tendermint", "chain-id", "test-chain-abc")
	logger.InfoContext(ctx, "kept")
	require.Contains(t, buf.String(), `"chain-id":"test-chain-abc"`)
	buf.Reset()

	logger.DebugContext(ctx, "dropped")
	require.Empty(t, buf.String())
}

func TestModuleLevels(t *testing.T) {
	buf := new(bytes.Buffer)
	c, err := ParseRules("error;tendermint=info")
	require.NoError(t, err)
	logger := slog.New(NewSlogHandler(c, buf))

	logger.Info("dropped")
	require.Empty(t, buf.String())

	logger.Info("kept", "module", "tendermint")
	require.Contains(t, buf.String(), `"message":"kept"`)
	buf.Reset()

	logger.With("module", "tendermint").Debug("dropped")
	require.Empty(t, buf.String())

	logger.With("module", "tendermint").Info("kept")
	require.Contains(t, buf.String(), `"message":"kept"`)
	buf.Reset()

	logger.Error("kept")
	require.Contains(t, buf.String(), `"message":"kept"`)
}

func TestParseRules(t *testing.T) {
	c, err := ParseRules("debug")
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, c.DefaultLevel)
	require.Empty(t, c.ModuleLevels)

	c, err = ParseRules("*=warn;Tendermint=debug")
	require.NoError(t, err)
	require.Equal(t, slog.LevelWarn, c.DefaultLevel)
	require.Equal(t, map[string]slog.Level{"tendermint": slog.LevelDebug}, c.ModuleLevels)

	_, err = ParseRules("tendermint=loud")
	require.Error(t, err)
	require.Equal(t, errors.BadRequest, errors.Code(err))
}

func TestNewFormat(t *testing.T) {
	_, err := New(new(bytes.Buffer), "xml", "info")
	require.Error(t, err)

	buf := new(bytes.Buffer)
	logger, err := New(buf, "json", "info")
	require.NoError(t, err)
	logger.Info("Hello world")
	require.Contains(t, buf.String(), `"message":"Hello world"`)
}

func TestPlainLogging(t *testing.T) {
	buf := new(bytes.Buffer)
	handler := NewSlogHandler(SlogConfig{
		DefaultLevel: slog.LevelDebug,
	}, ConsoleSlogWriter(buf, false))
	logger := slog.New(stripTime{handler})

	logger.Info("Hello world")
	require.Equal(t, testTime.Format(time.RFC3339)+" INFO Hello world\n", buf.String())
}

func TestJSONLogging(t *testing.T) {
	buf := new(bytes.Buffer)
	handler := NewSlogHandler(SlogConfig{
		DefaultLevel: slog.LevelDebug,
	}, buf)
	logger := slog.New(stripTime{handler})

	logger.Info("Hello world")
	require.Equal(t, `{`+
		`"time":"`+testTime.Truncate(time.Millisecond).Format(time.RFC3339Nano)+`",`+
		`"level":"INFO",`+
		`"message":"Hello world"`+
		`}`+"\n", buf.String())
}

type records []slog.Record

func (*records) Enabled(context.Context, slog.Level) bool { return true }
func (r *records) WithAttrs([]slog.Attr) slog.Handler      { return r }
func (r *records) WithGroup(string) slog.Handler           { return r }

func (r *records) Handle(_ context.Context, record slog.Record) error {
	*r = append(*r, record)
	return nil
}

type stripTime struct {
	slog.Handler
}

var testTime = time.Date(2000, 1, 1, 0, 0, 0, 0, time.Local)

func (s stripTime) Handle(ctx context.Context, r slog.Record) error {
	r.Time = testTime
	return s.Handler.Handle(ctx, r)
}

func (s stripTime) WithAttrs(attrs []slog.Attr) slog.Handler {
	return stripTime{s.Handler.WithAttrs(attrs)}
}

func (s stripTime) WithGroup(name string) slog.Handler {
	return stripTime{s.Handler.WithGroup(name)}
}
