// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/api/utils"
	"github.com/vechain/rewardpool/builtin/reverts"
	"github.com/vechain/rewardpool/builtin/rewardpool"
)

// Pools serves read-only views of one reward pool.
type Pools struct {
	mu sync.Mutex
	rp *rewardpool.RewardPool
}

func New(rp *rewardpool.RewardPool) *Pools {
	return &Pools{rp: rp}
}

// statusOf maps engine rejections to http errors.
func statusOf(err error) error {
	switch {
	case errors.Is(err, reverts.ErrInvalidPool), errors.Is(err, reverts.ErrNotInitialized):
		return utils.NotFound(err)
	default:
		return err
	}
}

func (p *Pools) handleGetWindow(w http.ResponseWriter, req *http.Request) error {
	block, hasBlock, err := utils.ParseBlock(req.URL.Query().Get("block"))
	if err != nil {
		return utils.BadRequest(err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	win, err := p.rp.Window()
	if err != nil {
		return statusOf(err)
	}
	token, err := p.rp.RewardToken()
	if err != nil {
		return err
	}
	op, err := p.rp.Operator()
	if err != nil {
		return err
	}
	res := &Window{
		RewardToken:    token,
		Operator:       op,
		StartBlock:     win.StartBlock(),
		EndBlock:       win.EndBlock(),
		TotalRewards:   hexOrDecimal(win.TotalRewards()),
		RewardPerBlock: hexOrDecimal(win.RewardPerBlock()),
	}
	if hasBlock {
		res.Status = win.Status(block).String()
	}
	return utils.WriteJSON(w, res)
}

func (p *Pools) handleGetGenerated(w http.ResponseWriter, req *http.Request) error {
	query := req.URL.Query()
	from, ok, err := utils.ParseBlock(query.Get("from"))
	if err != nil || !ok {
		return utils.BadRequest(errors.New("from: expected a block number"))
	}
	to, ok, err := utils.ParseBlock(query.Get("to"))
	if err != nil || !ok {
		return utils.BadRequest(errors.New("to: expected a block number"))
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	amount, err := p.rp.GeneratedReward(from, to)
	if err != nil {
		return statusOf(err)
	}
	return utils.WriteJSON(w, &Generated{From: from, To: to, Amount: hexOrDecimal(amount)})
}

func (p *Pools) handleGetPools(w http.ResponseWriter, _ *http.Request) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	n, err := p.rp.PoolLength()
	if err != nil {
		return err
	}
	total, err := p.rp.TotalAllocWeight()
	if err != nil {
		return err
	}
	res := &PoolList{TotalAllocWeight: total, Pools: make([]*Pool, 0, n)}
	for pid := range n {
		info, err := p.rp.PoolInfo(pid)
		if err != nil {
			return err
		}
		res.Pools = append(res.Pools, convertPool(pid, info))
	}
	return utils.WriteJSON(w, res)
}

func parsePoolID(req *http.Request) (uint32, error) {
	pid, err := strconv.ParseUint(mux.Vars(req)["pid"], 10, 32)
	if err != nil {
		return 0, utils.BadRequest(errors.WithMessage(err, "pid"))
	}
	return uint32(pid), nil
}

func (p *Pools) handleGetPool(w http.ResponseWriter, req *http.Request) error {
	pid, err := parsePoolID(req)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	info, err := p.rp.PoolInfo(pid)
	if err != nil {
		return statusOf(err)
	}
	return utils.WriteJSON(w, convertPool(pid, info))
}

func (p *Pools) handleGetUser(w http.ResponseWriter, req *http.Request) error {
	pid, err := parsePoolID(req)
	if err != nil {
		return err
	}
	addr, err := utils.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(err)
	}
	block, hasBlock, err := utils.ParseBlock(req.URL.Query().Get("block"))
	if err != nil {
		return utils.BadRequest(err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	pos, err := p.rp.UserInfo(pid, addr)
	if err != nil {
		return statusOf(err)
	}
	res := convertUser(pid, addr, pos)
	if hasBlock {
		pending, err := p.rp.PendingReward(block, pid, addr)
		if err != nil {
			return statusOf(err)
		}
		res.Pending = hexOrDecimal(pending)
		res.Block = &block
	}
	return utils.WriteJSON(w, res)
}

func (p *Pools) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/window").
		Methods(http.MethodGet).
		Name("GET /rewardpool/window").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetWindow))
	sub.Path("/window/generated").
		Methods(http.MethodGet).
		Name("GET /rewardpool/window/generated").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetGenerated))
	sub.Path("/pools").
		Methods(http.MethodGet).
		Name("GET /rewardpool/pools").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPools))
	sub.Path("/pools/{pid:[0-9]+}").
		Methods(http.MethodGet).
		Name("GET /rewardpool/pools/{pid}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPool))
	sub.Path("/pools/{pid:[0-9]+}/users/{address}").
		Methods(http.MethodGet).
		Name("GET /rewardpool/pools/{pid}/users/{address}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetUser))
}
