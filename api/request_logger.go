// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/vechain/rewardpool/log"
)

// LogStatus reports whether request logging is on.
type LogStatus struct {
	Enabled bool `json:"enabled"`
}

// RequestLoggerHandler logs requests while enabled is set. The API is read-only,
// so bodies are not captured.
func RequestLoggerHandler(handler http.Handler, logger log.Logger, enabled *atomic.Bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if enabled.Load() {
			logger.Info("API Request",
				"timestamp", time.Now().Unix(),
				"URI", r.URL.String(),
				"Method", r.Method,
			)
		}
		handler.ServeHTTP(w, r)
	})
}
