// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/rewardpool/api"
	"github.com/vechain/rewardpool/builtin"
	"github.com/vechain/rewardpool/cmd/rewardpool/httpserver"
	"github.com/vechain/rewardpool/deployment"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/metrics"
	"github.com/vechain/rewardpool/state"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.New()
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	return &cli.App{
		Version:   fullVersion(),
		Name:      "rewardpool",
		Usage:     "Block-interval reward distribution across staking pools",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			configFlag,
			networkFlag,
			dataDirFlag,
			verbosityFlag,
		},
		Commands: []cli.Command{
			{
				Name:  "deploy",
				Usage: "Deploy the network's reward pool into the local database",
				Flags: []cli.Flag{
					configFlag,
					networkFlag,
					dataDirFlag,
					currentBlockFlag,
					startBlockFlag,
					verbosityFlag,
				},
				Action: deployAction,
			},
			{
				Name:  "serve",
				Usage: "Serve the read API over a deployed reward pool",
				Flags: []cli.Flag{
					configFlag,
					networkFlag,
					dataDirFlag,
					apiAddrFlag,
					apiCorsFlag,
					enableAPILogsFlag,
					enableMetricsFlag,
					metricsAddrFlag,
					enableAdminFlag,
					adminAddrFlag,
					verbosityFlag,
				},
				Action: serveAction,
			},
			{
				Name:  "window",
				Usage: "Print the reward window and the reward generated over a block range",
				Flags: []cli.Flag{
					configFlag,
					networkFlag,
					dataDirFlag,
					blockFlag,
					fromFlag,
					toFlag,
					verbosityFlag,
				},
				Action: windowAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func deployAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	initLogger(ctx)
	cfg, err := deployment.Load(ctx.String(configFlag.Name))
	if err != nil {
		return err
	}
	network, err := cfg.Resolve(ctx.String(networkFlag.Name), ctx.Uint64(currentBlockFlag.Name), ctx.Uint64(startBlockFlag.Name))
	if err != nil {
		return err
	}

	dataDir := makeDataDir(ctx)
	db := openStateDB(dataDir)
	defer func() { logger.Info("closing state database..."); db.Close() }()

	st := state.New(networkStore(db, network))
	if _, err := deployment.Deploy(builtin.NewRegistry(st), network, ctx.Uint64(currentBlockFlag.Name)); err != nil {
		return err
	}
	n, err := st.Commit()
	if err != nil {
		return err
	}
	logger.Debug("state committed", "keys", n)

	printDeployMessage(network, dataDir)
	return nil
}

func serveAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	logLevel := initLogger(ctx)
	exitSignal := handleExitSignal()

	network := resolveNetwork(ctx)
	dataDir := makeDataDir(ctx)
	db := openStateDB(dataDir)
	defer func() { logger.Info("closing state database..."); db.Close() }()

	rp := deployment.Attach(builtin.NewRegistry(state.New(networkStore(db, network))), network)
	if _, err := rp.Window(); err != nil {
		return errors.WithMessagef(err, "network %s is not deployed in %v, run deploy first", network.Name, dataDir)
	}

	enableMetrics := ctx.Bool(enableMetricsFlag.Name)
	metricsURL := ""
	if enableMetrics {
		metrics.InitializePrometheusMetrics()
		url, stop, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping metrics server..."); stop() }()
		metricsURL = url
	}

	apiLogs := &atomic.Bool{}
	apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))

	adminURL := ""
	if ctx.Bool(enableAdminFlag.Name) {
		url, stop, err := httpserver.StartAdminServer(ctx.String(adminAddrFlag.Name), logLevel, apiLogs)
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping admin server..."); stop() }()
		adminURL = url
	}

	handler := api.New(rp, api.Options{
		AllowedOrigins:  strings.TrimSpace(ctx.String(apiCorsFlag.Name)),
		EnableReqLogger: apiLogs,
		EnableMetrics:   enableMetrics,
	})
	apiURL, stopAPI, err := httpserver.StartAPIServer(ctx.String(apiAddrFlag.Name), handler)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); stopAPI() }()

	printServeMessage(network, dataDir, apiURL, metricsURL, adminURL)

	<-exitSignal.Done()
	return nil
}

func windowAction(ctx *cli.Context) error {
	initLogger(ctx)

	network := resolveNetwork(ctx)
	dataDir := makeDataDir(ctx)
	db := openStateDB(dataDir)
	defer db.Close()

	rp := deployment.Attach(builtin.NewRegistry(state.New(networkStore(db, network))), network)
	w, err := rp.Window()
	if err != nil {
		return errors.WithMessagef(err, "network %s is not deployed in %v", network.Name, dataDir)
	}

	from := ctx.Uint64(fromFlag.Name)
	to := w.EndBlock()
	if ctx.IsSet(toFlag.Name) {
		to = ctx.Uint64(toFlag.Name)
	}
	generated, err := rp.GeneratedReward(from, to)
	if err != nil {
		return err
	}

	fmt.Printf(`Window      [ %v, %v )
Total       %v
Per block   %v
Status      %v (block %v)
Generated   %v in [ %v, %v )
`,
		w.StartBlock(), w.EndBlock(),
		w.TotalRewards(),
		w.RewardPerBlock(),
		w.Status(ctx.Uint64(blockFlag.Name)), ctx.Uint64(blockFlag.Name),
		generated, from, to,
	)
	return nil
}
