// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mockchain/mockchain/business/web/errs"
	"github.com/mockchain/mockchain/foundation/blockchain/accounts"
	"github.com/mockchain/mockchain/foundation/blockchain/database"
	"github.com/mockchain/mockchain/foundation/blockchain/state"
	"github.com/mockchain/mockchain/foundation/events"
	"github.com/mockchain/mockchain/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of public node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// SubmitWalletTransaction adds a new signed transaction to the mempool.
func (h Handlers) SubmitWalletTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var signedTx database.SignedTx
	if err := web.Decode(r, &signedTx); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	h.Log.Infow("add tran", "traceid", v.TraceID, "from", signedTx.FromID, "to", signedTx.ToID, "value", signedTx.Value)

	if err := h.State.SubmitWalletTransaction(signedTx); err != nil {
		switch {
		case errors.Is(err, database.ErrInvalidSignature),
			errors.Is(err, database.ErrInvalidAmount),
			errors.Is(err, accounts.ErrInsufficientFunds):
			return errs.NewTrusted(err, http.StatusBadRequest)
		default:
			return err
		}
	}

	resp := submitResponse{
		Status: "transaction accepted",
		Tx:     signedTx.UniqueKey(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// RequestFaucet mints test funds to the specified account.
func (h Handlers) RequestFaucet(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var req faucetRequest
	if err := web.Decode(r, &req); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	accountID, err := database.ToAccountID(req.Account)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("faucet request", "traceid", v.TraceID, "account", accountID)

	tx, err := h.State.RequestFaucet(accountID)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrInvalidAmount):
			return errs.NewTrusted(err, http.StatusBadRequest)
		default:
			return err
		}
	}

	resp := faucetResponse{
		Account: accountID,
		Amount:  tx.Value,
		Status:  "faucet funds queued for next block",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Balances returns the current balances for all accounts or one account.
func (h Handlers) Balances(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	account := web.Param(r, "account")

	var records []accounts.Record
	switch account {
	case "":
		records = h.State.QueryAccounts()
	default:
		accountID, err := database.ToAccountID(account)
		if err != nil {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		records = []accounts.Record{{AccountID: accountID, Balance: h.State.QueryBalance(accountID)}}
	}

	resp := balances{
		LatestBlock: h.State.RetrieveLatestBlock().Hash,
		Uncommitted: h.State.QueryMempoolLength(),
	}
	for _, record := range records {
		resp.Balances = append(resp.Balances, balance{Account: record.AccountID, Balance: record.Balance})
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mempool returns the set of uncommitted transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	txs := h.State.RetrieveMempool()
	return web.Respond(ctx, w, txs, http.StatusOK)
}

// BlocksByNumber returns the committed blocks in the specified range. The
// string "latest" is accepted for either bound.
func (h Handlers) BlocksByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	fromStr := web.Param(r, "from")
	if fromStr == "latest" || fromStr == "" {
		fromStr = fmt.Sprintf("%d", state.QueryLatest)
	}

	toStr := web.Param(r, "to")
	if toStr == "latest" || toStr == "" {
		toStr = fmt.Sprintf("%d", state.QueryLatest)
	}

	from, err := strconv.ParseUint(fromStr, 10, 64)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}
	to, err := strconv.ParseUint(toStr, 10, 64)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if from > to {
		return errs.NewTrusted(errors.New("from greater than to"), http.StatusBadRequest)
	}

	blocks := h.State.QueryBlocksByNumber(from, to)
	if len(blocks) == 0 {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	return web.Respond(ctx, w, blocks, http.StatusOK)
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Status returns the current state of the node.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	latest := h.State.RetrieveLatestBlock()

	resp := statusResponse{
		Consensus:   h.State.RetrieveConsensus(),
		ChainLength: h.State.RetrieveChainLength(),
		LatestBlock: latest.Hash,
		Uncommitted: h.State.QueryMempoolLength(),
		Beneficiary: h.State.RetrieveBeneficiary(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	h.Log.Infow("events", "traceid", v.TraceID, "status", "websocket open")

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}
