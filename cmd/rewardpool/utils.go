// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/rewardpool/deployment"
	"github.com/vechain/rewardpool/kv"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/lvldb"
)

func fatal(args ...any) {
	var w io.Writer
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		} else {
			w = io.MultiWriter(os.Stdout, os.Stderr)
		}
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

// initLogger routes all loggers to stderr. The handler passes everything and the
// verbosity lives in log.Level, so the admin API can change it later.
func initLogger(ctx *cli.Context) *slog.LevelVar {
	log.Level().Set(ethlog.FromLegacyLevel(ctx.Int(verbosityFlag.Name)))
	fd := os.Stderr.Fd()
	useColor := (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) && os.Getenv("TERM") != "dumb"
	log.SetHandler(ethlog.NewTerminalHandlerWithLevel(os.Stderr, log.LevelTrace, useColor))
	return log.Level()
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func resolveNetwork(ctx *cli.Context) *deployment.Network {
	cfg, err := deployment.Load(ctx.String(configFlag.Name))
	if err != nil {
		fatal(err)
	}
	// only the addresses matter here, the persisted window is authoritative
	network, err := cfg.Resolve(ctx.String(networkFlag.Name), 0, 0)
	if err != nil {
		fatal(err)
	}
	return network
}

func makeDataDir(ctx *cli.Context) string {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatal(fmt.Sprintf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name))
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		fatal(fmt.Sprintf("create data dir [%v]: %v", dataDir, err))
	}
	return dataDir
}

func openStateDB(dataDir string) *lvldb.LevelDB {
	dir := filepath.Join(dataDir, "state.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              64,
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		fatal(fmt.Sprintf("open state database [%v]: %v", dir, err))
	}
	return db
}

// networkStore gives each network its own key space in the shared database.
func networkStore(db kv.Store, n *deployment.Network) kv.Store {
	return kv.Bucket(n.Name + "/").NewStore(db)
}

func printDeployMessage(n *deployment.Network, dataDir string) {
	fmt.Printf(`Deployed    [ %v ]
Reward pool [ %v ]
Reward token[ %v ]
Operator    [ %v ]
Window      [ %v, %v ) %v per block
Pools       [ %v ]
Data dir    [ %v ]
`,
		n.Name,
		n.RewardPool,
		n.RewardToken,
		operatorOf(n),
		n.Window.StartBlock(), n.Window.EndBlock(), n.Window.RewardPerBlock(),
		len(n.Pools),
		dataDir,
	)
}

func printServeMessage(n *deployment.Network, dataDir, apiURL, metricsURL, adminURL string) {
	if metricsURL == "" {
		metricsURL = "Disabled"
	}
	if adminURL == "" {
		adminURL = "Disabled"
	}
	fmt.Printf(`Starting rewardpool %v
    Network     [ %v ]
    Reward pool [ %v ]
    Data dir    [ %v ]
    API portal  [ %v ]
    Metrics     [ %v ]
    Admin       [ %v ]
`,
		fullVersion(),
		n.Name,
		n.RewardPool,
		dataDir,
		apiURL,
		metricsURL,
		adminURL,
	)
}

func operatorOf(n *deployment.Network) string {
	if n.DAO.IsZero() || n.DAO == n.Operator {
		return n.Operator.String()
	}
	return n.DAO.String() + " (handed over from " + n.Operator.String() + ")"
}

// copy from go-ethereum
func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "org.vechain.rewardpool")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.rewardpool")
		default:
			return filepath.Join(home, ".org.vechain.rewardpool")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
