// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config

import (
	"strconv"
	"time"
)

// seconds renders d as whole seconds with an s suffix.
func seconds(d time.Duration) string {
	return strconv.FormatInt(int64(d/time.Second), 10) + "s"
}

// millis renders the millisecond magnitude of d with an s suffix. The
// binary reads the result as seconds.
//
// TODO: confirm the intended unit for the delta, gossip, and flush fields
// and switch them to seconds or an ms suffix.
func millis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10) + "s"
}
