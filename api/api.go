// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/rewardpool/api/pools"
	"github.com/vechain/rewardpool/builtin/rewardpool"
	"github.com/vechain/rewardpool/log"
)

var logger = log.New("pkg", "api")

type Options struct {
	AllowedOrigins string
	// EnableReqLogger toggles request logging at runtime, nil leaves it out.
	EnableReqLogger *atomic.Bool
	EnableMetrics   bool
}

// New return api router
func New(rp *rewardpool.RewardPool, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()
	pools.New(rp).
		Mount(router, "/rewardpool")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger != nil {
		handler = RequestLoggerHandler(handler, logger, opts.EnableReqLogger)
	}
	return handler.ServeHTTP
}
