// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package embedded provides the Tendermint binary bundled with the program.
// The payload is read once and never modified.
package embedded

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/errors"
)

// Version is the release of the bundled binary.
const Version = "0.34.21"

// EnvBinary names a binary or release archive to use when none is compiled
// in.
const EnvBinary = "TENDERMINT_BINARY"

// packaged is set by the tendermint_embed build.
var packaged []byte

var loaded struct {
	once sync.Once
	data []byte
	err  error
}

// Binary returns the executable. The first call decodes the payload; later
// calls return the same result.
func Binary() ([]byte, error) {
	loaded.once.Do(func() {
		loaded.data, loaded.err = load(packaged, os.Getenv(EnvBinary))
	})
	return loaded.data, loaded.err
}

// Available reports whether a binary can be loaded.
func Available() bool {
	_, err := Binary()
	return err == nil
}

func load(compiled []byte, file string) ([]byte, error) {
	if len(compiled) > 0 {
		return Decode(compiled)
	}
	if file == "" {
		return nil, errors.MissingBinary.WithFormat("no binary was compiled in and %s is not set", EnvBinary)
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.MissingBinary.WithFormat("read %s: %w", file, err)
	}
	return Decode(b)
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// Decode unpacks a release archive (.tar.gz or .tar.xz) and returns the
// binary inside it. Anything else is returned as is.
func Decode(b []byte) ([]byte, error) {
	var rd io.Reader
	switch {
	case bytes.HasPrefix(b, gzipMagic):
		gz, err := gzip.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, errors.MissingBinary.WithFormat("open gzip: %w", err)
		}
		defer gz.Close()
		rd = gz

	case bytes.HasPrefix(b, xzMagic):
		x, err := xz.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, errors.MissingBinary.WithFormat("open xz: %w", err)
		}
		rd = x

	default:
		if len(b) == 0 {
			return nil, errors.MissingBinary.With("binary is empty")
		}
		return b, nil
	}

	return extract(tar.NewReader(rd))
}

func extract(r *tar.Reader) ([]byte, error) {
	for {
		h, err := r.Next()
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return nil, errors.MissingBinary.With("archive does not contain tendermint")
		default:
			return nil, errors.MissingBinary.WithFormat("read archive: %w", err)
		}

		if h.Typeflag != tar.TypeReg {
			continue
		}
		switch path.Base(h.Name) {
		case "tendermint", "tendermint.exe":
		default:
			continue
		}

		b, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.MissingBinary.WithFormat("read %s: %w", h.Name, err)
		}
		return b, nil
	}
}
