// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/liquid-staking/lsd/log"
)

// RequestLoggerHandler returns a http handler logging requests with their status and
// duration while enabled is set.
func RequestLoggerHandler(handler http.Handler, logger log.Logger, enabled *atomic.Bool) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if !enabled.Load() {
			handler.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		mrw := newMetricsResponseWriter(w)

		handler.ServeHTTP(mrw, r)

		logger.Info("API Request",
			"URI", r.URL.String(),
			"Method", r.Method,
			"Status", mrw.statusCode,
			"Remote", r.RemoteAddr,
			"Elapsed", time.Since(start),
		)
	}

	return http.HandlerFunc(fn)
}
