// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package tendermint runs a Tendermint node as a child process. A
// [Tendermint] owns a private working directory holding the binary, the
// configuration, the keys, and the chain data, and removes it on cleanup.
package tendermint

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"gitlab.com/accumulatenetwork/embedded-tendermint/internal/embedded"
	"gitlab.com/accumulatenetwork/embedded-tendermint/internal/layout"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/config"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/crypto"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/errors"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/model"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("gitlab.com/accumulatenetwork/embedded-tendermint/pkg/tendermint")
var childUp = must(meter.Int64UpDownCounter("tendermint_child_up",
	metric.WithDescription("Number of running node processes")))

func must[V any](v V, err error) V {
	if err != nil {
		panic(err)
	}
	return v
}

// NodeCommand is the subcommand that starts the node.
const NodeCommand = "node"

// Genesis is a genesis document that can render itself.
type Genesis interface {
	EncodeJSON() ([]byte, error)
}

// Tendermint supervises one node process. It is not safe for concurrent use.
type Tendermint struct {
	dir    string
	binary string
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
	grace  time.Duration

	cmd     *exec.Cmd
	state   *os.ProcessState
	removed bool
}

type Option func(*options)

type options struct {
	binary []byte
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
	grace  time.Duration
}

// WithBinary uses the given executable instead of the embedded one.
func WithBinary(b []byte) Option {
	return func(o *options) { o.binary = b }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithOutput sends the node's standard output and error to the writers. By
// default they are inherited.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(o *options) { o.stdout, o.stderr = stdout, stderr }
}

// WithShutdownTimeout sets how long Cleanup waits for an interrupted node
// to exit before killing it.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) { o.grace = d }
}

// New creates the working directory and places the binary in it. Nothing is
// left behind if New fails.
func New(opts ...Option) (*Tendermint, error) {
	o := options{
		logger: slog.Default(),
		stdout: os.Stdout,
		stderr: os.Stderr,
		grace:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	bin := o.binary
	if bin == nil {
		var err error
		bin, err = embedded.Binary()
		if err != nil {
			return nil, errors.MissingBinary.Wrap(err)
		}
	}

	dir, err := os.MkdirTemp("", "tendermint-")
	if err != nil {
		return nil, errors.FileSystem.WithFormat("create working directory: %w", err)
	}

	t := &Tendermint{
		dir:    dir,
		binary: filepath.Join(dir, layout.BinaryFile),
		logger: o.logger.With("module", "tendermint"),
		stdout: o.stdout,
		stderr: o.stderr,
		grace:  o.grace,
	}

	err = t.prepare(bin)
	if err != nil {
		if err2 := os.RemoveAll(dir); err2 != nil {
			t.logger.Error("Failed to remove working directory", "dir", dir, "error", err2)
		}
		return nil, err
	}

	runtime.SetFinalizer(t, (*Tendermint).finalize)
	return t, nil
}

func (t *Tendermint) prepare(bin []byte) error {
	// The mode is ignored on Windows
	err := os.WriteFile(t.binary, bin, 0755)
	if err != nil {
		return errors.FileSystem.WithFormat("write %s: %w", t.binary, err)
	}

	for _, d := range layout.Dirs {
		err = os.MkdirAll(t.path(d), 0700)
		if err != nil {
			return errors.FileSystem.WithFormat("create %s: %w", d, err)
		}
	}

	t.logger.Debug("Prepared working directory", "dir", t.dir, "binary-size", humanize.Bytes(uint64(len(bin))))
	return nil
}

func (t *Tendermint) path(rel string) string { return filepath.Join(t.dir, rel) }

func (t *Tendermint) Dir() string                { return t.dir }
func (t *Tendermint) BinaryPath() string         { return t.binary }
func (t *Tendermint) ConfigDir() string          { return t.path(layout.ConfigDir) }
func (t *Tendermint) ConfigFile() string         { return t.path(layout.ConfigFile) }
func (t *Tendermint) NodeKeyFile() string        { return t.path(layout.NodeKeyFile) }
func (t *Tendermint) ValidatorKeyFile() string   { return t.path(layout.ValidatorKeyFile) }
func (t *Tendermint) ValidatorStateFile() string { return t.path(layout.ValidatorStateFile) }
func (t *Tendermint) GenesisFile() string        { return t.path(layout.GenesisFile) }
func (t *Tendermint) DataDir() string            { return t.path(layout.DataDir) }
func (t *Tendermint) SocketDir() string          { return t.path(layout.SocketDir) }
func (t *Tendermint) P2PDir() string             { return t.path(layout.P2PDir) }

// AppSocket is the default proxy_app address; an ABCI application listening
// here is reached by the node.
func (t *Tendermint) AppSocket() string { return "unix://" + t.path(layout.AppUnixSocketFile) }

// RPCSocket is the default RPC listen address.
func (t *Tendermint) RPCSocket() string { return "unix://" + t.path(layout.RPCUnixSocketFile) }

// ProcessState returns the exit state of the node once Wait has returned.
func (t *Tendermint) ProcessState() *os.ProcessState { return t.state }

// Start writes the configuration, node key, validator key, genesis, and
// initial validator state, then launches the node. The node is not launched
// if any file cannot be written.
func (t *Tendermint) Start(cfg *config.Config, nodeKey, validatorKey *crypto.Keypair, genesis Genesis) error {
	switch {
	case t.removed:
		return errors.BadRequest.With("working directory has been removed")
	case t.cmd != nil:
		return errors.BadRequest.With("already started")
	}

	b, err := cfg.ToModel(t.dir).EncodeTOML()
	if err != nil {
		return errors.Serialization.WithFormat("encode config: %w", err)
	}
	err = t.writeFile(layout.ConfigFile, b)
	if err != nil {
		return err
	}

	err = t.writeJSON(layout.NodeKeyFile, nodeKey.ToModel())
	if err != nil {
		return err
	}

	err = t.writeJSON(layout.ValidatorKeyFile, validatorKey.ToModel())
	if err != nil {
		return err
	}

	b, err = genesis.EncodeJSON()
	if err != nil {
		return errors.Serialization.Wrap(err)
	}
	err = t.writeFile(layout.GenesisFile, b)
	if err != nil {
		return err
	}

	err = t.writeJSON(layout.ValidatorStateFile, model.InitialValidatorState())
	if err != nil {
		return err
	}

	cmd := exec.Command(t.binary, "--home", t.dir, NodeCommand)
	cmd.Stdout = t.stdout
	cmd.Stderr = t.stderr
	err = cmd.Start()
	if err != nil {
		return errors.Process.WithFormat("start %s: %w", t.binary, err)
	}

	t.cmd = cmd
	childUp.Add(context.Background(), 1)
	t.logger.Info("Started", "pid", cmd.Process.Pid, "dir", t.dir)
	return nil
}

func (t *Tendermint) writeJSON(rel string, v any) error {
	b, err := model.EncodeJSON(v)
	if err != nil {
		return errors.Serialization.WithFormat("encode %s: %w", rel, err)
	}
	return t.writeFile(rel, b)
}

// writeFile writes to a temporary file and renames it so the node never
// reads a partial file.
func (t *Tendermint) writeFile(rel string, b []byte) error {
	path := t.path(rel)
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return errors.FileSystem.WithFormat("create %s: %w", rel, err)
	}
	defer func() { _ = os.Remove(f.Name()) }()

	_, err = f.Write(b)
	if err == nil {
		err = f.Chmod(0600)
	}
	if err2 := f.Close(); err == nil {
		err = err2
	}
	if err != nil {
		return errors.FileSystem.WithFormat("write %s: %w", rel, err)
	}

	err = os.Rename(f.Name(), path)
	if err != nil {
		return errors.FileSystem.WithFormat("write %s: %w", rel, err)
	}
	return nil
}

func (t *Tendermint) process() (*os.Process, error) {
	if t.cmd == nil {
		return nil, errors.NotStarted.With("node has not been started")
	}
	return t.cmd.Process, nil
}

// Stop asks the node to shut down and returns without waiting for it.
func (t *Tendermint) Stop() error {
	p, err := t.process()
	if err != nil {
		return err
	}
	err = interrupt(p)
	if err != nil {
		return errors.Process.WithFormat("interrupt %d: %w", p.Pid, err)
	}
	t.logger.Debug("Interrupted", "pid", p.Pid)
	return nil
}

// Kill terminates the node immediately.
func (t *Tendermint) Kill() error {
	p, err := t.process()
	if err != nil {
		return err
	}
	err = p.Kill()
	if err != nil {
		return errors.Process.WithFormat("kill %d: %w", p.Pid, err)
	}
	t.logger.Debug("Killed", "pid", p.Pid)
	return nil
}

// Wait blocks until the node exits. Exiting with a non-zero status or by a
// signal is not an error; see [Tendermint.ProcessState].
func (t *Tendermint) Wait() error {
	if _, err := t.process(); err != nil {
		return err
	}
	if t.state != nil {
		return nil
	}

	err := t.cmd.Wait()
	t.state = t.cmd.ProcessState
	if t.state != nil {
		childUp.Add(context.Background(), -1)
	}

	var exit *exec.ExitError
	switch {
	case err == nil:
		t.logger.Info("Exited", "pid", t.state.Pid())
		return nil
	case errors.As(err, &exit):
		t.logger.Info("Exited", "pid", exit.Pid(), "status", exit.String())
		return nil
	default:
		return errors.Process.WithFormat("wait: %w", err)
	}
}

// Cleanup interrupts the node if it is still running, waits for it, and
// removes the working directory. A node that has not exited within the
// shutdown timeout is killed. Calling Cleanup again does nothing.
func (t *Tendermint) Cleanup() error {
	runtime.SetFinalizer(t, nil)
	return t.cleanup()
}

// Close calls Cleanup.
func (t *Tendermint) Close() error { return t.Cleanup() }

func (t *Tendermint) cleanup() error {
	var errs []error
	if t.cmd != nil {
		if t.state == nil {
			errs = append(errs, t.terminate()...)
		}
		t.cmd = nil
	}

	if !t.removed {
		err := os.RemoveAll(t.dir)
		if err != nil {
			errs = append(errs, errors.FileSystem.WithFormat("remove %s: %w", t.dir, err))
		} else {
			t.removed = true
			t.logger.Debug("Removed working directory", "dir", t.dir)
		}
	}

	return errors.Join(errs...)
}

// terminate interrupts the node and waits for it, killing it if it outlives
// the shutdown timeout.
func (t *Tendermint) terminate() []error {
	var errs []error
	p := t.cmd.Process
	kill := func() {
		err := p.Kill()
		if err != nil && !errors.Is(err, os.ErrProcessDone) {
			errs = append(errs, errors.Process.WithFormat("kill %d: %w", p.Pid, err))
		}
	}

	err := interrupt(p)
	if err != nil && !errors.Is(err, os.ErrProcessDone) {
		t.logger.Debug("Interrupt failed, killing", "pid", p.Pid, "error", err)
		kill()
	}

	done := make(chan error, 1)
	go func() { done <- t.Wait() }()

	timer := time.NewTimer(t.grace)
	defer timer.Stop()
	select {
	case err = <-done:
	case <-timer.C:
		t.logger.Info("Node did not exit in time, killing", "pid", p.Pid, "timeout", t.grace)
		kill()
		err = <-done
	}
	if err != nil {
		errs = append(errs, err)
	}
	return errs
}

func (t *Tendermint) finalize() {
	err := t.cleanup()
	if err != nil {
		t.logger.Error("Cleanup failed", "dir", t.dir, "error", err)
	}
}

// Version runs the binary's version command and returns its output.
func (t *Tendermint) Version(ctx context.Context) (string, error) {
	if t.removed {
		return "", errors.BadRequest.With("working directory has been removed")
	}

	b, err := exec.CommandContext(ctx, t.binary, "version").Output()
	if err != nil {
		return "", errors.Process.WithFormat("%s version: %w", t.binary, err)
	}
	if !utf8.Valid(b) {
		return "", errors.TextEncoding.WithFormat("%s version: output is not valid UTF-8", t.binary)
	}
	return strings.TrimSpace(string(b)), nil
}
