// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import (
	"context"
	"log/slog"
)

type attrsKey struct{}

// With returns a context carrying the attributes in addition to any the
// parent carries. Arguments are parsed the way [slog.Logger.Info] parses
// them. Records logged with the context include the attributes and are
// filtered by any module among them.
func With(ctx context.Context, args ...any) context.Context {
	return WithAttrs(ctx, slog.Group("", args...).Value.Group())
}

func WithAttrs(ctx context.Context, attrs []slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}
	parent := Attrs(ctx)
	merged := make([]slog.Attr, 0, len(parent)+len(attrs))
	merged = append(merged, parent...)
	merged = append(merged, attrs...)
	return context.WithValue(ctx, attrsKey{}, merged)
}

// Attrs returns the attributes carried by the context.
func Attrs(ctx context.Context) []slog.Attr {
	attrs, _ := ctx.Value(attrsKey{}).([]slog.Attr)
	return attrs
}
