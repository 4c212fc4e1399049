// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config

type txIndexKind int

const (
	txIndexKv txIndexKind = iota
	txIndexNull
	txIndexPsql
)

// TxIndexConfig selects the transaction indexer: null, kv, or psql with a
// connection string. The zero value is kv.
type TxIndexConfig struct {
	kind     txIndexKind
	psqlConn string
}

func TxIndexNull() TxIndexConfig { return TxIndexConfig{kind: txIndexNull} }
func TxIndexKv() TxIndexConfig   { return TxIndexConfig{kind: txIndexKv} }

func TxIndexPsql(conn string) TxIndexConfig {
	return TxIndexConfig{kind: txIndexPsql, psqlConn: conn}
}

func (c TxIndexConfig) String() string {
	switch c.kind {
	case txIndexNull:
		return "null"
	case txIndexPsql:
		return "psql"
	default:
		return "kv"
	}
}

// PsqlConn returns the connection string and true for the psql indexer.
func (c TxIndexConfig) PsqlConn() (string, bool) {
	return c.psqlConn, c.kind == txIndexPsql
}
