// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package errors provides errors that carry a [Status] code, an optional
// cause, and optionally the call sites that produced them.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// IsKnownError returns true if the status is non-zero and not UnknownError.
func (s Status) IsKnownError() bool { return s != 0 && s != UnknownError }

// Error implements error.
func (s Status) Error() string { return s.String() }

// Wrap returns an error with status s caused by err, or nil if err is nil.
// Wrapping an [Error] with UnknownError returns it as is.
func (s Status) Wrap(err error) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok && !trackLocation && !s.IsKnownError() {
		return e
	}

	e := s.make(1)
	e.adopt(convert(err))
	return e
}

// With returns an error with status s and the message formatted by
// [fmt.Sprint].
func (s Status) With(v ...any) *Error {
	e := s.make(1)
	e.Message = fmt.Sprint(v...)
	return e
}

// WithFormat returns an error with status s and the message formatted by
// [fmt.Errorf]. A %w operand becomes the cause.
func (s Status) WithFormat(format string, args ...any) *Error {
	e := s.make(1)
	err := fmt.Errorf(format, args...)
	e.Message = err.Error()
	switch u := err.(type) {
	case interface{ Unwrap() error }:
		if cause := u.Unwrap(); cause != nil {
			e.adopt(convert(cause))
		}
	case interface{ Unwrap() []error }:
		e.inner = err
	}
	return e
}

// make creates an error with status s, recording the call site skip frames
// above the caller of make.
func (s Status) make(skip int) *Error {
	e := &Error{Code: s}
	if trackLocation {
		e.record(skip)
	}
	return e
}

func convert(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	e = &Error{Code: UnknownError, Message: err.Error(), inner: err}
	var s Status
	if errors.As(err, &s) {
		e.Code = s
	}
	if cause := errors.Unwrap(err); cause != nil {
		e.Cause = convert(cause)
	}
	return e
}

// adopt sets the cause. An error without a known status takes the cause's
// status; one with no message takes everything from the cause.
func (e *Error) adopt(cause *Error) {
	e.Cause = cause
	switch {
	case cause == nil, e.Code.IsKnownError():
	case e.Message != "":
		e.Code = cause.Code
	default:
		sites := e.CallStack
		*e = *cause
		e.CallStack = append(sites, cause.CallStack...)
	}
}

// record appends the call site skip frames above the caller of make.
func (e *Error) record(skip int) {
	pc, file, line, ok := runtime.Caller(skip + 2)
	if !ok {
		return
	}
	site := &CallSite{File: file, Line: int64(line)}
	if fn := runtime.FuncForPC(pc); fn != nil {
		site.FuncName = fn.Name()
	}
	e.CallStack = append(e.CallStack, site)
}

func (e *Error) Error() string {
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the cause (or the status when there is none) and the
// foreign error the Error was converted from, if any.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	} else {
		errs = append(errs, e.Code)
	}
	if e.inner != nil {
		errs = append(errs, e.inner)
	}
	return errs
}

// Is matches an Error or Status with the same code anywhere in the causal
// chain.
func (e *Error) Is(target error) bool {
	var code Status
	switch t := target.(type) {
	case *Error:
		code = t.Code
	case Status:
		code = t
	default:
		return false
	}
	for ; e != nil; e = e.Cause {
		if e.Code == code {
			return true
		}
	}
	return false
}

// Format prints the message, or with %+v the message, call sites, and
// causes.
func (e *Error) Format(f fmt.State, verb rune) {
	if f.Flag('+') {
		_, _ = f.Write([]byte(e.Print()))
	} else {
		_, _ = f.Write([]byte(e.Error()))
	}
}

// Print renders each error in the causal chain followed by its call sites.
// The cause's message is trimmed from compound messages such as
// "decode: EOF".
func (e *Error) Print() string {
	if e.CallStack == nil {
		return e.Error()
	}

	var b strings.Builder
	for ; e != nil; e = e.Cause {
		msg := e.Message
		switch {
		case msg == "":
			msg = e.Code.String()
		case e.Cause != nil:
			msg = strings.TrimSuffix(msg, e.Cause.Message)
		}
		b.WriteString(msg)
		b.WriteByte('\n')
		for _, site := range e.CallStack {
			fmt.Fprintf(&b, "%s\n    %s:%d\n", site.FuncName, site.File, site.Line)
		}
		if e.Cause != nil {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
