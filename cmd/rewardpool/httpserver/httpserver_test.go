// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/metrics"
)

func get(t *testing.T, url string) (int, string) {
	res, err := http.Get(url) // #nosec
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(body)
}

func TestAPIServer(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "path="+r.URL.Path)
	})
	url, stop, err := StartAPIServer("localhost:0", handler)
	require.NoError(t, err)

	code, body := get(t, url+"rewardpool/pools")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "path=/rewardpool/pools", body)

	stop()
	_, err = http.Get(url) // #nosec
	assert.Error(t, err)
}

func TestBadAddr(t *testing.T) {
	_, _, err := StartAPIServer("localhost:-1", http.NotFoundHandler())
	assert.ErrorContains(t, err, "listen API addr")

	_, _, err = StartMetricsServer("localhost:-1")
	assert.ErrorContains(t, err, "listen metrics API addr")
}

func TestAdminServer(t *testing.T) {
	var level slog.LevelVar
	var apiLogs atomic.Bool
	url, stop, err := StartAdminServer("localhost:0", &level, &apiLogs)
	require.NoError(t, err)
	defer stop()

	res, err := http.Post(url+"/apilogs", "application/json", strings.NewReader(`{"enabled":true}`)) // #nosec
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, apiLogs.Load())

	code, body := get(t, url+"/loglevel")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"currentLevel":"INFO"}`, body)
}

func TestMetricsServer(t *testing.T) {
	metrics.InitializePrometheusMetrics()
	metrics.Counter("httpserver_test_count").Add(3)

	url, stop, err := StartMetricsServer("localhost:0")
	require.NoError(t, err)
	defer stop()
	assert.True(t, strings.HasSuffix(url, "/metrics"))

	code, body := get(t, url)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "rewardpool_httpserver_test_count 3")
}
