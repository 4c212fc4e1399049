// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import (
	"bytes"
	"log/slog"
	"testing"
)

// TestWriter writes each line it receives to the test log, so output is
// attributed to the test that produced it.
type TestWriter struct{ TB testing.TB }

func (w TestWriter) Write(b []byte) (int, error) {
	w.TB.Helper()
	w.TB.Log(string(bytes.TrimSuffix(b, []byte{'\n'})))
	return len(b), nil
}

// NewTestLogger returns a debug-level plain-text logger that writes to the
// test log.
func NewTestLogger(tb testing.TB) *slog.Logger {
	c := SlogConfig{DefaultLevel: slog.LevelDebug}
	return slog.New(NewSlogHandler(c, ConsoleSlogWriter(TestWriter{tb}, false)))
}
