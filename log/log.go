// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is the structured logger of the module, built on the go-ethereum slog handlers.
package log

import (
	"context"
	"log/slog"

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

// Root returns the default logger.
func Root() Logger {
	return ethlog.Root()
}

// SetDefault replaces the default logger. Loggers created by WithContext follow it.
func SetDefault(l Logger) {
	ethlog.SetDefault(l)
}

func NewLogger(h slog.Handler) Logger {
	return ethlog.NewLogger(h)
}

// WithContext returns a logger carrying ctx that writes through whatever logger is the
// default at the time of each call, so package level loggers pick up SetDefault.
func WithContext(ctx ...any) Logger {
	return &contextLogger{ctx: ctx}
}

type contextLogger struct {
	ctx []any
}

func (l *contextLogger) logger() Logger { return ethlog.Root().With(l.ctx...) }

func (l *contextLogger) With(ctx ...any) Logger {
	return &contextLogger{ctx: append(append([]any{}, l.ctx...), ctx...)}
}

func (l *contextLogger) New(ctx ...any) Logger { return l.With(ctx...) }

func (l *contextLogger) Log(level slog.Level, msg string, ctx ...any) {
	l.logger().Log(level, msg, ctx...)
}

func (l *contextLogger) Trace(msg string, ctx ...any) { l.logger().Trace(msg, ctx...) }
func (l *contextLogger) Debug(msg string, ctx ...any) { l.logger().Debug(msg, ctx...) }
func (l *contextLogger) Info(msg string, ctx ...any)  { l.logger().Info(msg, ctx...) }
func (l *contextLogger) Warn(msg string, ctx ...any)  { l.logger().Warn(msg, ctx...) }
func (l *contextLogger) Error(msg string, ctx ...any) { l.logger().Error(msg, ctx...) }
func (l *contextLogger) Crit(msg string, ctx ...any)  { l.logger().Crit(msg, ctx...) }

func (l *contextLogger) Write(level slog.Level, msg string, attrs ...any) {
	l.logger().Write(level, msg, attrs...)
}

func (l *contextLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return l.logger().Enabled(ctx, level)
}

func (l *contextLogger) Handler() slog.Handler { return l.logger().Handler() }

func Trace(msg string, ctx ...any) { Root().Trace(msg, ctx...) }
func Debug(msg string, ctx ...any) { Root().Debug(msg, ctx...) }
func Info(msg string, ctx ...any)  { Root().Info(msg, ctx...) }
func Warn(msg string, ctx ...any)  { Root().Warn(msg, ctx...) }
func Error(msg string, ctx ...any) { Root().Error(msg, ctx...) }
func Crit(msg string, ctx ...any)  { Root().Crit(msg, ctx...) }
