// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package model

// Key is an amino-style typed key: a namespaced type tag and the base64
// encoded key bytes.
type Key struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Keypair is the shape of node_key.json and priv_validator_key.json.
type Keypair struct {
	Address string `json:"address"`
	PrivKey Key    `json:"priv_key"`
	PubKey  Key    `json:"pub_key"`
}
