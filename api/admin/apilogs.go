// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"net/http"
	"sync/atomic"

	"github.com/gorilla/mux"

	"github.com/vechain/rewardpool/api"
	"github.com/vechain/rewardpool/api/utils"
)

type apiLogs struct {
	enabled *atomic.Bool
}

func newAPILogs(enabled *atomic.Bool) *apiLogs {
	return &apiLogs{enabled: enabled}
}

func (a *apiLogs) handleGet(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, api.LogStatus{Enabled: a.enabled.Load()})
}

func (a *apiLogs) handlePost(w http.ResponseWriter, r *http.Request) error {
	var req api.LogStatus
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(err)
	}
	a.enabled.Store(req.Enabled)
	logger.Info("api logs updated", "enabled", req.Enabled)

	return utils.WriteJSON(w, api.LogStatus{Enabled: a.enabled.Load()})
}

func (a *apiLogs) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").
		Methods(http.MethodGet).
		Name("get-api-logs-enabled").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGet))
	sub.Path("").
		Methods(http.MethodPost).
		Name("post-api-logs-enabled").
		HandlerFunc(utils.WrapHandlerFunc(a.handlePost))
}
