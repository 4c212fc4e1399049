// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/config"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/crypto"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Settings are the node settings read from a file. Keys are kebab-case in
// the file.
type Settings struct {
	// DotEnv enables ${VAR} expansion from the .env file next to the
	// settings file.
	DotEnv *bool `json:"dotEnv,omitempty"`

	Moniker   string `json:"moniker,omitempty"`
	ChainID   string `json:"chainId,omitempty" validate:"omitempty,max=50"`
	Algorithm string `json:"algorithm,omitempty" validate:"omitempty,oneof=ed25519 secp256k1"`

	LogLevel  string `json:"logLevel,omitempty" validate:"omitempty,oneof=info debug warn error"`
	LogFormat string `json:"logFormat,omitempty" validate:"omitempty,oneof=plain json"`
	DbBackend string `json:"dbBackend,omitempty" validate:"omitempty,oneof=goleveldb cleveldb boltdb rocksdb badgerdb"`

	ProxyApp        string   `json:"proxyApp,omitempty"`
	RPCListen       string   `json:"rpcListen,omitempty"`
	P2PListen       string   `json:"p2pListen,omitempty"`
	Seeds           []string `json:"seeds,omitempty"`
	PersistentPeers []string `json:"persistentPeers,omitempty"`

	// Prometheus is the metrics listen address. Empty disables metrics.
	Prometheus string `json:"prometheus,omitempty"`

	TxIndex  string `json:"txIndex,omitempty" validate:"omitempty,oneof=null kv psql"`
	PsqlConn string `json:"psqlConn,omitempty" validate:"required_if=TxIndex psql"`

	CreateEmptyBlocks *bool `json:"createEmptyBlocks,omitempty"`

	file string
	fs   fs.FS
}

func (s *Settings) LoadFrom(file string) error {
	dir, name := filepath.Split(file)
	if dir == "" {
		dir = "."
	}
	return s.LoadFromFS(os.DirFS(dir), name)
}

func (s *Settings) LoadFromFS(fs fs.FS, file string) error {
	var format func([]byte, any) error
	switch ext := filepath.Ext(file); ext {
	case ".toml", ".tml", ".ini":
		format = toml.Unmarshal
	case ".yaml", ".yml":
		format = yaml.Unmarshal
	case ".json":
		format = json.Unmarshal
	default:
		return errors.BadRequest.WithFormat("unknown file type %s", ext)
	}

	f, err := fs.Open(file)
	if err != nil {
		return errors.FileSystem.Wrap(err)
	}
	defer func() { _ = f.Close() }()

	b, err := io.ReadAll(f)
	if err != nil {
		return errors.FileSystem.Wrap(err)
	}

	s.file = file
	s.fs = fs
	return s.Load(b, format)
}

func (s *Settings) Load(b []byte, format func([]byte, any) error) error {
	var v any
	err := format(b, &v)
	if err != nil {
		return errors.BadRequest.Wrap(err)
	}

	v = remap(v, kebab2camel)
	b, err = json.Marshal(v)
	if err != nil {
		return errors.Serialization.Wrap(err)
	}

	err = json.Unmarshal(b, s)
	if err != nil {
		return errors.BadRequest.Wrap(err)
	}

	return s.applyDotEnv()
}

func (s *Settings) applyDotEnv() error {
	if s.DotEnv == nil || !*s.DotEnv {
		return nil
	}

	file := path.Join(path.Dir(s.file), ".env")

	var expand func(name string) string
	var errs []error

	f, err := s.fs.Open(file)
	switch {
	case err == nil:
		defer func() { _ = f.Close() }()

		env, err := godotenv.Parse(f)
		if err != nil {
			return errors.BadRequest.WithFormat("parse %s: %w", file, err)
		}

		expand = func(name string) string {
			value, ok := env[name]
			if ok {
				return value
			}
			errs = append(errs, fmt.Errorf("%q is not defined", name))
			return fmt.Sprintf("#!MISSING(%q)", name)
		}

	case errors.Is(err, fs.ErrNotExist):
		// Only an error if something references a variable
		expand = func(name string) string {
			if len(errs) == 0 {
				errs = append(errs, err)
			}
			return fmt.Sprintf("#!MISSING(%q)", name)
		}

	default:
		return errors.FileSystem.Wrap(err)
	}

	expandEnv(reflect.ValueOf(s), expand)
	return errors.Join(errs...)
}

var validate = validator.New()

func (s *Settings) Validate() error {
	err := validate.Struct(s)
	if err != nil {
		return errors.BadRequest.WithFormat("invalid settings: %w", err)
	}
	return nil
}

func (s *Settings) KeyAlgorithm() crypto.AlgorithmType {
	if s.Algorithm == "" {
		return crypto.Ed25519
	}
	alg, err := crypto.ParseAlgorithmType(s.Algorithm)
	if err != nil {
		// Already validated
		panic(err)
	}
	return alg
}

// Config builds the node configuration from the defaults and the settings.
func (s *Settings) Config() (*config.Config, error) {
	err := s.Validate()
	if err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	if s.Moniker != "" {
		cfg.WithMoniker(s.Moniker)
	}
	if s.LogLevel != "" {
		err = cfg.LogLevel.UnmarshalText([]byte(s.LogLevel))
		if err != nil {
			return nil, err
		}
	}
	if s.LogFormat != "" {
		err = cfg.LogFormat.UnmarshalText([]byte(s.LogFormat))
		if err != nil {
			return nil, err
		}
	}
	if s.DbBackend != "" {
		err = cfg.DbBackend.UnmarshalText([]byte(s.DbBackend))
		if err != nil {
			return nil, err
		}
	}

	cfg.ProxyApp = s.ProxyApp
	cfg.RPC.ListenAddress = s.RPCListen
	if s.P2PListen != "" {
		cfg.P2P.ListenAddress = s.P2PListen
	}
	cfg.P2P.Seeds = s.Seeds
	cfg.P2P.PersistentPeers = s.PersistentPeers

	if s.Prometheus != "" {
		prom := config.DefaultPrometheusConfig()
		prom.ListenAddress = s.Prometheus
		cfg.WithPrometheus(prom)
	}

	switch s.TxIndex {
	case "null":
		cfg.WithTxIndex(config.TxIndexNull())
	case "psql":
		cfg.WithTxIndex(config.TxIndexPsql(s.PsqlConn))
	}

	if s.CreateEmptyBlocks != nil {
		cfg.Consensus.CreateEmptyBlocks = *s.CreateEmptyBlocks
	}
	return cfg, nil
}

func remap(v any, mapKey func(string) string) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		u := make([]any, rv.Len())
		for i := range u {
			u[i] = remap(rv.Index(i).Interface(), mapKey)
		}
		return u

	case reflect.Map:
		u := make(map[string]any, rv.Len())
		for it := rv.MapRange(); it.Next(); {
			u[mapKey(it.Key().String())] = remap(it.Value().Interface(), mapKey)
		}
		return u

	default:
		return v
	}
}

var reKebab = regexp.MustCompile(`-[a-z0-9]`)

func kebab2camel(s string) string {
	return reKebab.ReplaceAllStringFunc(s, func(s string) string {
		return strings.ToUpper(s[1:])
	})
}

func expandEnv(v reflect.Value, expand func(string) string) {
	switch v.Kind() {
	case reflect.String:
		if v.CanSet() {
			v.SetString(os.Expand(v.String(), expand))
		}

	case reflect.Pointer, reflect.Interface:
		expandEnv(v.Elem(), expand)

	case reflect.Slice, reflect.Array:
		for i, n := 0, v.Len(); i < n; i++ {
			expandEnv(v.Index(i), expand)
		}

	case reflect.Struct:
		typ := v.Type()
		for i, n := 0, typ.NumField(); i < n; i++ {
			if typ.Field(i).IsExported() {
				expandEnv(v.Field(i), expand)
			}
		}
	}
}
