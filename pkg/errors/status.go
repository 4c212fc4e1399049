// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import "fmt"

// Status is an error code.
type Status uint64

const (
	// UnknownError means the cause of the error is not known.
	UnknownError Status = 1

	// BadRequest means the caller supplied an invalid value.
	BadRequest Status = 400

	// NotStarted means a lifecycle operation was invoked before the process
	// was started or after it was released.
	NotStarted Status = 412

	// Unsupported means an algorithm or format combination cannot be
	// consumed by the supervised binary.
	Unsupported Status = 415

	// MissingBinary means no consensus binary is available to place.
	MissingBinary Status = 500

	// FileSystem means creating, writing or removing a file failed.
	FileSystem Status = 501

	// TextEncoding means subprocess output could not be decoded as text.
	TextEncoding Status = 502

	// Serialization means a model could not be encoded or decoded.
	Serialization Status = 503

	// Process means spawning or signaling the child process failed.
	Process Status = 504
)

var statusNames = map[Status]string{
	UnknownError:  "unknownError",
	BadRequest:    "badRequest",
	NotStarted:    "notStarted",
	Unsupported:   "unsupported",
	MissingBinary: "missingBinary",
	FileSystem:    "fileSystem",
	TextEncoding:  "textEncoding",
	Serialization: "serialization",
	Process:       "process",
}

// String returns the name of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status:%d", uint64(s))
}

// CallSite is a location in the source where an error was created or
// wrapped.
type CallSite struct {
	FuncName string
	File     string
	Line     int64
}

// Error is an error with a status code, an optional cause, and the call
// stack of the sites that created or wrapped it.
type Error struct {
	Message   string
	Code      Status
	Cause     *Error
	CallStack []*CallSite

	inner error
}

var trackLocation bool

// EnableLocationTracking causes errors to record the call sites that create
// or wrap them.
func EnableLocationTracking() { trackLocation = true }

// DisableLocationTracking stops recording call sites.
func DisableLocationTracking() { trackLocation = false }
