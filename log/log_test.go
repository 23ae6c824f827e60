// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"log/slog"
	"testing"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
)

func TestLateBinding(t *testing.T) {
	logger := New("pkg", "test")
	logger.Info("dropped before any handler is set")

	var buf bytes.Buffer
	SetHandler(ethlog.NewTerminalHandlerWithLevel(&buf, slog.LevelInfo, false))
	defer SetHandler(ethlog.DiscardHandler())

	logger.Debug("below level")
	logger.Info("pool added", "pid", 1)
	logger.With("sub", "x").Warn("rejected")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.NotContains(t, out, "below level")
	assert.Contains(t, out, "pool added")
	assert.Contains(t, out, "pkg=test")
	assert.Contains(t, out, "pid=1")
	assert.Contains(t, out, "sub=x")
}

func TestLevel(t *testing.T) {
	logger := New("pkg", "test")

	var buf bytes.Buffer
	SetHandler(ethlog.NewTerminalHandlerWithLevel(&buf, LevelTrace, false))
	defer SetHandler(ethlog.DiscardHandler())
	defer Level().Set(LevelInfo)

	Level().Set(LevelWarn)
	logger.Info("quiet")
	assert.Empty(t, buf.String())

	Level().Set(LevelDebug)
	logger.Debug("loud")
	assert.Contains(t, buf.String(), "loud")
}
