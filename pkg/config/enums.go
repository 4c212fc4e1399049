// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config

import (
	"strings"

	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/errors"
)

type LogLevel int

const (
	LogLevelInfo LogLevel = iota
	LogLevelDebug
	LogLevelWarn
	LogLevelError
)

type LogFormat int

const (
	LogFormatPlain LogFormat = iota
	LogFormatJSON
)

type DbBackend int

const (
	DbBackendGoLevelDB DbBackend = iota
	DbBackendCLevelDB
	DbBackendBoltDB
	DbBackendRocksDB
	DbBackendBadgerDB
)

type MempoolVersion int

const (
	// MempoolFIFO is the v0 first-in first-out mempool.
	MempoolFIFO MempoolVersion = iota

	// MempoolPriority is the v1 prioritized mempool.
	MempoolPriority
)

type FastSyncVersion int

const (
	FastSyncClose FastSyncVersion = iota
	FastSyncV0
	FastSyncV1
	FastSyncV2
)

var logLevelNames = []string{"info", "debug", "warn", "error"}
var logFormatNames = []string{"plain", "json"}
var dbBackendNames = []string{"goleveldb", "cleveldb", "boltdb", "rocksdb", "badgerdb"}
var mempoolVersionNames = []string{"v0", "v1"}

// Close renders as v0 because the binary has no "off" version; whether fast
// sync runs at all is the separate fast_sync flag.
var fastSyncVersionNames = []string{"v0", "v0", "v1", "v2"}

func enumName[V ~int](names []string, v V) string {
	if v < 0 || int(v) >= len(names) {
		return names[0]
	}
	return names[v]
}

func parseEnum[V ~int](names []string, kind, s string) (V, error) {
	for i, name := range names {
		if strings.EqualFold(name, s) {
			return V(i), nil
		}
	}
	return 0, errors.BadRequest.WithFormat("invalid %s %q", kind, s)
}

func (v LogLevel) String() string        { return enumName(logLevelNames, v) }
func (v LogFormat) String() string       { return enumName(logFormatNames, v) }
func (v DbBackend) String() string       { return enumName(dbBackendNames, v) }
func (v MempoolVersion) String() string  { return enumName(mempoolVersionNames, v) }
func (v FastSyncVersion) String() string { return enumName(fastSyncVersionNames, v) }

func (v *LogLevel) UnmarshalText(b []byte) (err error) {
	*v, err = parseEnum[LogLevel](logLevelNames, "log level", string(b))
	return err
}

func (v *LogFormat) UnmarshalText(b []byte) (err error) {
	*v, err = parseEnum[LogFormat](logFormatNames, "log format", string(b))
	return err
}

func (v *DbBackend) UnmarshalText(b []byte) (err error) {
	*v, err = parseEnum[DbBackend](dbBackendNames, "db backend", string(b))
	return err
}
