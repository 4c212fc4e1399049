// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package tendermint

import "os"

// Windows cannot deliver SIGINT to another process.
func interrupt(p *os.Process) error {
	return p.Kill()
}
