// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Output formats.
const (
	FormatTerminal = "terminal"
	FormatJSON     = "json"
	FormatLogfmt   = "logfmt"
)

// HandlerConfig describes the root log handler.
type HandlerConfig struct {
	Format    string // one of the Format* constants, terminal when empty
	Verbosity int    // legacy 0-9 verbosity
	Vmodule   string // per file verbosity pattern, e.g. "state/*=5"
	Color     bool   // terminal only

	// Level, when set, is bound to the handler and starts at Verbosity.
	Level *LevelVar
}

// NewHandler builds a verbosity filtered handler writing to w.
func NewHandler(w io.Writer, cfg HandlerConfig) (slog.Handler, error) {
	var h slog.Handler
	switch cfg.Format {
	case "", FormatTerminal:
		h = ethlog.NewTerminalHandler(w, cfg.Color)
	case FormatJSON:
		h = ethlog.JSONHandler(w)
	case FormatLogfmt:
		h = ethlog.LogfmtHandler(w)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	glogger := ethlog.NewGlogHandler(h)
	glogger.Verbosity(FromLegacyLevel(cfg.Verbosity))
	if cfg.Level != nil {
		cfg.Level.bind(glogger, FromLegacyLevel(cfg.Verbosity))
	}
	if cfg.Vmodule != "" {
		if err := glogger.Vmodule(cfg.Vmodule); err != nil {
			return nil, fmt.Errorf("invalid vmodule pattern: %w", err)
		}
	}
	return glogger, nil
}

// LevelVar changes the root level of a handler at runtime. The zero value is Info
// until bound by NewHandler.
type LevelVar struct {
	mu    sync.Mutex
	level slog.Level
	glog  *ethlog.GlogHandler
}

func (v *LevelVar) bind(glog *ethlog.GlogHandler, level slog.Level) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.glog = glog
	v.level = level
}

func (v *LevelVar) Level() slog.Level {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.level
}

func (v *LevelVar) Set(level slog.Level) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.level = level
	if v.glog != nil {
		v.glog.Verbosity(level)
	}
}

// DiscardHandler drops every record.
func DiscardHandler() slog.Handler {
	return ethlog.DiscardHandler()
}

// FromLegacyLevel maps the 0 (silent) to 9 verbosity scale to slog levels, 3 being info.
func FromLegacyLevel(lvl int) slog.Level {
	switch {
	case lvl <= 0:
		return LevelCrit + 1
	case lvl == 1:
		return LevelError
	case lvl == 2:
		return LevelWarn
	case lvl == 3:
		return LevelInfo
	case lvl == 4:
		return LevelDebug
	default:
		return LevelTrace
	}
}
