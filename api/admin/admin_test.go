// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/api"
)

func request(t *testing.T, ts *httptest.Server, method, path, body string) (int, string) {
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(data)
}

func TestLogLevel(t *testing.T) {
	var level slog.LevelVar
	ts := httptest.NewServer(New(&level, new(atomic.Bool)))
	defer ts.Close()

	tests := []struct {
		name   string
		method string
		body   string
		status int
		level  string
		errMsg string
	}{
		{"get default", http.MethodGet, "", http.StatusOK, "INFO", ""},
		{"set debug", http.MethodPost, `{"level":"debug"}`, http.StatusOK, "DEBUG", ""},
		{"set crit", http.MethodPost, `{"level":"crit"}`, http.StatusOK, "ERROR+4", ""},
		{"unknown level", http.MethodPost, `{"level":"loud"}`, http.StatusBadRequest, "", "Invalid verbosity level"},
		{"bad body", http.MethodPost, `{"verbosity":1}`, http.StatusBadRequest, "", "Invalid request body"},
		{"unsupported method", http.MethodPut, "", http.StatusMethodNotAllowed, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := request(t, ts, tt.method, "/admin/loglevel", tt.body)
			assert.Equal(t, tt.status, status)
			if tt.level != "" {
				var res LogLevelResponse
				require.NoError(t, json.Unmarshal([]byte(body), &res))
				assert.Equal(t, tt.level, res.CurrentLevel)
			}
			if tt.errMsg != "" {
				assert.Contains(t, body, tt.errMsg)
			}
		})
	}
	assert.Equal(t, slog.Level(12), level.Level())
}

func TestAPILogs(t *testing.T) {
	var enabled atomic.Bool
	ts := httptest.NewServer(New(new(slog.LevelVar), &enabled))
	defer ts.Close()

	status, body := request(t, ts, http.MethodGet, "/admin/apilogs", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"enabled":false}`, body)

	status, body = request(t, ts, http.MethodPost, "/admin/apilogs", `{"enabled":true}`)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"enabled":true}`, body)
	assert.True(t, enabled.Load())

	status, _ = request(t, ts, http.MethodPost, "/admin/apilogs", `not json`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.True(t, enabled.Load())

	var res api.LogStatus
	_, body = request(t, ts, http.MethodGet, "/admin/apilogs", "")
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	assert.True(t, res.Enabled)
}
