// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package deployment resolves a network's reward pool setup from a yaml config
// and replays it into state.
package deployment

import (
	_ "embed"
	"io"
	"math/big"
	"os"
	"sort"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/rewardpool/builtin/rewardpool/window"
	"github.com/vechain/rewardpool/thor"
)

//go:embed networks.yaml
var defaultConfig []byte

const secondsPerDay = 24 * 60 * 60

type PoolConfig struct {
	Name   string       `yaml:"name"`
	Token  thor.Address `yaml:"token"`
	Weight uint32       `yaml:"weight"`
}

// NetworkConfig is one network entry of the config file.
type NetworkConfig struct {
	Operator          thor.Address          `yaml:"operator"`
	DAO               thor.Address          `yaml:"dao"`
	RewardToken       thor.Address          `yaml:"rewardToken"`
	RewardPool        thor.Address          `yaml:"rewardPool"`
	AverageBlockTime  uint64                `yaml:"averageBlockTime"`
	BeginRewardsAfter uint64                `yaml:"beginRewardsAfter"`
	WindowDays        uint64                `yaml:"windowDays"`
	TotalRewards      *math.HexOrDecimal256 `yaml:"totalRewards"`
	Pools             []PoolConfig          `yaml:"pools"`
}

type Config struct {
	Networks map[string]*NetworkConfig `yaml:"networks"`
}

// Default returns the built-in config.
func Default() (*Config, error) {
	return decode(defaultConfig)
}

// Load reads the config at path, the built-in config when path is empty.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open deployment config")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrap(err, "read deployment config")
	}
	return decode(data)
}

func decode(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode deployment config")
	}
	return &cfg, nil
}

// Names lists the configured networks in order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Networks))
	for name := range c.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Network is a resolved deployment, ready to be replayed.
type Network struct {
	Name        string
	Operator    thor.Address
	DAO         thor.Address
	RewardToken thor.Address
	RewardPool  thor.Address
	Window      *window.Window
	Pools       []PoolConfig
}

// Resolve picks network name and anchors its window on currentBlock.
// A non-zero startBlock overrides the computed start.
func (c *Config) Resolve(name string, currentBlock, startBlock uint64) (*Network, error) {
	nc, ok := c.Networks[name]
	if !ok {
		return nil, errors.Errorf("unknown network %q, expected one of %v", name, c.Names())
	}
	if err := nc.validate(); err != nil {
		return nil, errors.WithMessagef(err, "network %s", name)
	}

	if startBlock == 0 {
		startBlock = currentBlock + nc.BeginRewardsAfter/nc.AverageBlockTime
	}
	endBlock := startBlock + nc.WindowDays*secondsPerDay/nc.AverageBlockTime

	w, err := window.New(startBlock, endBlock, (*big.Int)(nc.TotalRewards))
	if err != nil {
		return nil, errors.WithMessagef(err, "network %s", name)
	}

	poolAddr := nc.RewardPool
	if poolAddr.IsZero() {
		poolAddr = DeriveRewardPool(nc.Operator, nc.RewardToken)
	}
	return &Network{
		Name:        name,
		Operator:    nc.Operator,
		DAO:         nc.DAO,
		RewardToken: nc.RewardToken,
		RewardPool:  poolAddr,
		Window:      w,
		Pools:       append([]PoolConfig(nil), nc.Pools...),
	}, nil
}

func (nc *NetworkConfig) validate() error {
	switch {
	case nc.Operator.IsZero():
		return errors.New("operator: zero address")
	case nc.RewardToken.IsZero():
		return errors.New("rewardToken: zero address")
	case nc.AverageBlockTime == 0:
		return errors.New("averageBlockTime: must be positive")
	case nc.WindowDays == 0:
		return errors.New("windowDays: must be positive")
	case nc.TotalRewards == nil:
		return errors.New("totalRewards: missing")
	}
	seen := make(map[thor.Address]bool, len(nc.Pools))
	for i, p := range nc.Pools {
		if p.Token.IsZero() {
			return errors.Errorf("pools[%d]: zero token address", i)
		}
		if seen[p.Token] {
			return errors.Errorf("pools[%d]: token %v listed twice", i, p.Token)
		}
		seen[p.Token] = true
	}
	return nil
}

// DeriveRewardPool returns the engine address used when a network does not pin one.
func DeriveRewardPool(operator, rewardToken thor.Address) thor.Address {
	return thor.BytesToAddress(thor.Blake2b(operator.Bytes(), rewardToken.Bytes(), []byte("reward-pool")).Bytes())
}
