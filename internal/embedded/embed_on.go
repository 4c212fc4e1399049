// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

//go:build tendermint_embed
// +build tendermint_embed

package embedded

import _ "embed"

// Place the binary or its release archive at tendermint.pkg before building
// with -tags tendermint_embed.
//
//go:embed tendermint.pkg
var payload []byte

func init() {
	packaged = payload
}
