// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

//go:build !windows
// +build !windows

package tendermint

import (
	"os"

	"golang.org/x/sys/unix"
)

// interrupt sends SIGINT through the process handle, which fails with
// [os.ErrProcessDone] once the child has been reaped.
func interrupt(p *os.Process) error {
	return p.Signal(unix.SIGINT)
}
