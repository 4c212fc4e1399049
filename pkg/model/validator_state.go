// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package model

// ValidatorState is priv_validator_state.json, the last-sign record
// Tendermint uses to refuse double signing.
type ValidatorState struct {
	Height    string  `json:"height"`
	Round     int64   `json:"round"`
	Step      int64   `json:"step"`
	Signature *string `json:"signature,omitempty"`
	SignBytes *string `json:"signbytes,omitempty"`
}

// InitialValidatorState returns the all-zero state with no signature.
func InitialValidatorState() *ValidatorState {
	return &ValidatorState{Height: "0"}
}
