// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log hands out go-ethereum loggers bound to a swappable root handler.
// Package level loggers are created at init, before the command line configures
// output, so they resolve the root on every record.
package log

import (
	"context"
	"log/slog"
	"slices"
	"sync/atomic"

	ethlog "github.com/ethereum/go-ethereum/log"
)

type Logger = ethlog.Logger

const (
	LevelTrace = ethlog.LevelTrace
	LevelDebug = ethlog.LevelDebug
	LevelInfo  = ethlog.LevelInfo
	LevelWarn  = ethlog.LevelWarn
	LevelError = ethlog.LevelError
	LevelCrit  = ethlog.LevelCrit
)

type holder struct {
	handler slog.Handler
}

var (
	root  atomic.Pointer[holder]
	level slog.LevelVar
)

func init() {
	root.Store(&holder{ethlog.DiscardHandler()})
}

// SetHandler routes every logger, including ones created earlier, to h.
func SetHandler(h slog.Handler) {
	root.Store(&holder{h})
	ethlog.SetDefault(ethlog.NewLogger(h))
}

// Level is the minimum level records must reach, on top of the handler's own filter.
// It can be changed at any time.
func Level() *slog.LevelVar {
	return &level
}

// New returns a logger carrying ctx as attributes.
func New(ctx ...any) Logger {
	return ethlog.NewLogger(&rootHandler{}).With(ctx...)
}

type rootHandler struct {
	attrs []slog.Attr
}

func (r *rootHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return lvl >= level.Level() && root.Load().handler.Enabled(ctx, lvl)
}

func (r *rootHandler) Handle(ctx context.Context, record slog.Record) error {
	h := root.Load().handler
	if len(r.attrs) > 0 {
		h = h.WithAttrs(r.attrs)
	}
	return h.Handle(ctx, record)
}

func (r *rootHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &rootHandler{attrs: append(slices.Clip(r.attrs), attrs...)}
}

// WithGroup is a no-op, the terminal handler has no groups either.
func (r *rootHandler) WithGroup(_ string) slog.Handler {
	return r
}
