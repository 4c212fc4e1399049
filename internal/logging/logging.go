// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gitlab.com/accumulatenetwork/embedded-tendermint/pkg/errors"
)

const messageKey = "message"

type SlogConfig struct {
	DefaultLevel slog.Level
	ModuleLevels map[string]slog.Level
}

// ParseRules parses level rules such as "error;tendermint=info".
// An entry without a module, or with module *, sets the default level.
func ParseRules(s string) (SlogConfig, error) {
	c := SlogConfig{DefaultLevel: slog.LevelError, ModuleLevels: map[string]slog.Level{}}
	for _, rule := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ',' }) {
		parts := strings.SplitN(strings.TrimSpace(rule), "=", 2)

		var level slog.Level
		err := level.UnmarshalText([]byte(parts[len(parts)-1]))
		if err != nil {
			return SlogConfig{}, errors.BadRequest.WithFormat("invalid log rule %q: %w", rule, err)
		}

		if len(parts) == 1 || parts[0] == "*" {
			c.DefaultLevel = level
		} else {
			c.ModuleLevels[strings.ToLower(parts[0])] = level
		}
	}
	return c, nil
}

// New returns a logger that writes to w in the given format ("plain",
// "text", or "json") and filters by the rules. Plain output is colored when
// w is a terminal.
func New(w io.Writer, format, rules string) (*slog.Logger, error) {
	c, err := ParseRules(rules)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(format) {
	case "", "plain", "text":
		w = ConsoleSlogWriter(w, isTerminal(w))
	case "json":
	default:
		return nil, errors.BadRequest.WithFormat("log format %q is not supported", format)
	}

	return slog.New(NewSlogHandler(c, w)), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ConsoleSlogWriter uses zerolog's console writer to render the JSON records
// as pretty text.
func ConsoleSlogWriter(w io.Writer, color bool) io.Writer {
	return &zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !color,
		TimeFormat: time.RFC3339,
		FormatLevel: func(i interface{}) string {
			if ll, ok := i.(string); ok {
				return strings.ToUpper(ll)
			}
			return "????"
		},
		FormatMessage: func(i interface{}) string {
			s, ok := i.(string)
			if ok {
				return s
			}
			return fmt.Sprint(i)
		},
	}
}

// NewSlogHandler returns a JSON handler writing to w, filtered by module
// level.
func NewSlogHandler(c SlogConfig, w io.Writer) slog.Handler {
	lowest := c.DefaultLevel
	modules := make(map[string]slog.Level, len(c.ModuleLevels))
	for m, l := range c.ModuleLevels {
		modules[strings.ToLower(m)] = l
		if l < lowest {
			lowest = l
		}
	}

	opts := &slog.HandlerOptions{
		Level: lowest,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 || a.Key != slog.MessageKey {
				return a
			}
			if a.Value.Kind() == slog.KindString {
				return slog.Any(messageKey, a.Value)
			}
			return slog.String(messageKey, fmt.Sprint(a.Value.Any()))
		},
	}

	return &logHandler{
		handler: slog.NewJSONHandler(w, opts),
		level:   c.DefaultLevel,
		modules: modules,
	}
}

type logHandler struct {
	handler slog.Handler
	level   slog.Level
	modules map[string]slog.Level
}

func (h *logHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	i := *h
	i.handler = h.handler.WithAttrs(attrs)
	i.level = h.levelFor(h.level, attrs)
	return &i
}

func (h *logHandler) WithGroup(name string) slog.Handler {
	i := *h
	i.handler = h.handler.WithGroup(name)
	return &i
}

func (h *logHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level < h.levelFor(h.level, Attrs(ctx)) && !h.anyModuleAllows(level) {
		return false
	}
	return h.handler.Enabled(ctx, level)
}

// anyModuleAllows is needed because the module of a record may only be
// known once its attributes are available.
func (h *logHandler) anyModuleAllows(level slog.Level) bool {
	for _, l := range h.modules {
		if level >= l {
			return true
		}
	}
	return false
}

func (h *logHandler) Handle(ctx context.Context, record slog.Record) error {
	level := h.levelFor(h.level, Attrs(ctx))
	record.Attrs(func(a slog.Attr) bool {
		level = h.levelFor(level, []slog.Attr{a})
		return true
	})
	if record.Level < level {
		return nil
	}

	record.AddAttrs(Attrs(ctx)...)
	return h.handler.Handle(ctx, record)
}

func (h *logHandler) levelFor(level slog.Level, attrs []slog.Attr) slog.Level {
	for _, a := range attrs {
		if a.Key != "module" {
			continue
		}
		if l, ok := h.modules[strings.ToLower(a.Value.String())]; ok {
			level = l
		}
	}
	return level
}
