// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import "errors"

func As(err error, target any) bool { return errors.As(err, target) }
func Is(err, target error) bool     { return errors.Is(err, target) }
func Join(errs ...error) error      { return errors.Join(errs...) }

// Code returns the first status in the causal chain other than
// UnknownError, the status of a wrapped bare [Status], or 0 for a foreign
// error.
func Code(err error) Status {
	var e *Error
	if As(err, &e) {
		for e.Code == UnknownError && e.Cause != nil {
			e = e.Cause
		}
		return e.Code
	}

	var s Status
	As(err, &s)
	return s
}
