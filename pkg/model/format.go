// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package model

import (
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// FormatTime renders t in UTC as RFC 3339 with the minimal number of
// fractional digits, omitting the fraction when the nanoseconds are zero.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// FormatInt renders a signed integer as a decimal string.
func FormatInt[V ~int | ~int8 | ~int16 | ~int32 | ~int64](v V) string {
	return strconv.FormatInt(int64(v), 10)
}

// FormatUint renders an unsigned integer as a decimal string.
func FormatUint[V ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](v V) string {
	return strconv.FormatUint(uint64(v), 10)
}

// FormatHexUpper renders bytes as upper-case hex.
func FormatHexUpper(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// FormatHexLower renders bytes as lower-case hex.
func FormatHexLower(b []byte) string {
	return hex.EncodeToString(b)
}

// EncodeJSON renders v as indented JSON, the way Tendermint writes its own
// files.
func EncodeJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
