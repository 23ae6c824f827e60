// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to the deployment yaml, the built-in networks when omitted",
	}
	networkFlag = cli.StringFlag{
		Name:  "network",
		Value: "dev",
		Usage: "network entry of the deployment config",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for reward pool databases",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8669",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	enableAdminFlag = cli.BoolFlag{
		Name:  "enable-admin",
		Usage: "enables the admin server to change log verbosity and API logging at runtime",
	}
	adminAddrFlag = cli.StringFlag{
		Name:  "admin-addr",
		Value: "localhost:2113",
		Usage: "admin service listening address",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-9)",
	}
	currentBlockFlag = cli.Uint64Flag{
		Name:  "current-block",
		Usage: "block number the deployment happens at",
	}
	startBlockFlag = cli.Uint64Flag{
		Name:  "start-block",
		Usage: "first rewarded block, overrides the delay from the config",
	}
	blockFlag = cli.Uint64Flag{
		Name:  "block",
		Usage: "block to report window status at",
	}
	fromFlag = cli.Uint64Flag{
		Name:  "from",
		Usage: "first block of the generated reward range",
	}
	toFlag = cli.Uint64Flag{
		Name:  "to",
		Usage: "end block (exclusive) of the generated reward range, the window end when omitted",
	}
)
