// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"ok", nil, http.StatusOK, ""},
		{"bad request", BadRequest(errors.New("bad block")), http.StatusBadRequest, "bad block\n"},
		{"not found", NotFound(errors.New("no pool")), http.StatusNotFound, "no pool\n"},
		{"wrapped", pkgerrors.WithMessage(NotFound(errors.New("no pool")), "lookup"), http.StatusNotFound, "no pool\n"},
		{"no cause", HTTPError(nil, http.StatusForbidden), http.StatusForbidden, ""},
		{"internal", errors.New("disk"), http.StatusInternalServerError, "disk\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
				return tt.err
			})(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, map[string]int{"a": 1}))
	assert.Equal(t, JSONContentType, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"a":1}`, rec.Body.String())
}

func TestParseBlock(t *testing.T) {
	_, ok, err := ParseBlock("")
	require.NoError(t, err)
	assert.False(t, ok)

	b, ok, err := ParseBlock("47")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(47), b)

	_, _, err = ParseBlock("-1")
	assert.Error(t, err)
}

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	require.NoError(t, err)
	assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", addr.String())

	_, err = ParseAddress("0x12")
	assert.Error(t, err)
}

func TestParseJSON(t *testing.T) {
	var v struct {
		Level string `json:"level"`
	}
	require.NoError(t, ParseJSON(strings.NewReader(`{"level":"debug"}`), &v))
	assert.Equal(t, "debug", v.Level)

	assert.Error(t, ParseJSON(strings.NewReader(`{"lvl":"debug"}`), &v))
	assert.Error(t, ParseJSON(strings.NewReader(`{`), &v))
}
