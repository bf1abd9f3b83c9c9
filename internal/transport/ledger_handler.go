// Package transport exposes the ledger over HTTP.
package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/rewardledger-backend/internal/blocktemplate"
	"github.com/goodnatureofminers/rewardledger-backend/internal/ledger"
	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
	"github.com/goodnatureofminers/rewardledger-backend/internal/service"
	"github.com/goodnatureofminers/rewardledger-backend/internal/validator"
)

const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

// LedgerHandler serves the ledger REST API.
type LedgerHandler struct {
	ledger    Ledger
	builder   TemplateBuilder
	submitter Submitter
	stats     MinerStats
	logger    *zap.Logger
}

// NewLedgerHandler returns a LedgerHandler. stats may be nil when this node
// does not mine.
func NewLedgerHandler(l Ledger, builder TemplateBuilder, submitter Submitter, stats MinerStats, logger *zap.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledger:    l,
		builder:   builder,
		submitter: submitter,
		stats:     stats,
		logger:    logger,
	}
}

// Register adds the ledger routes to mux.
func (h *LedgerHandler) Register(mux *gwruntime.ServeMux) error {
	routes := []struct {
		method  string
		pattern string
		handler gwruntime.HandlerFunc
	}{
		{http.MethodGet, "/v1/template", h.template},
		{http.MethodGet, "/v1/blocks", h.blocks},
		{http.MethodPost, "/v1/blocks", h.submitBlock},
		{http.MethodGet, "/v1/pending", h.pending},
		{http.MethodDelete, "/v1/pending", h.clearPending},
		{http.MethodPost, "/v1/transactions", h.addTransaction},
		{http.MethodPost, "/v1/rewards", h.issueReward},
		{http.MethodGet, "/v1/accounts/{account}/history", h.accountHistory},
		{http.MethodGet, "/v1/accounts/{account}/balance", h.balance},
		{http.MethodGet, "/v1/miner/stats", h.minerStats},
	}
	for _, r := range routes {
		if err := mux.HandlePath(r.method, r.pattern, r.handler); err != nil {
			return fmt.Errorf("register %s %s: %w", r.method, r.pattern, err)
		}
	}
	return nil
}

func (h *LedgerHandler) template(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	state, err := h.ledger.State(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	block, err := h.builder.Build(state)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, block)
}

type blocksResponse struct {
	Height uint64        `json:"height"`
	Blocks []model.Block `json:"blocks"`
}

func (h *LedgerHandler) blocks(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	state, err := h.ledger.State(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var height uint64
	if last, ok := state.LastBlock(); ok {
		height = last.Index
	}
	h.respond(w, http.StatusOK, blocksResponse{Height: height, Blocks: state.Blocks})
}

func (h *LedgerHandler) submitBlock(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	// accounts inside a mined block are hashed as sent and cannot be masked here
	var sub service.BlockSubmission
	if err := decode(r, &sub); err != nil {
		h.fail(w, r, err)
		return
	}
	result, err := h.submitter.Submit(r.Context(), sub)
	if err != nil {
		h.respond(w, statusFor(err), result)
		return
	}
	h.respond(w, http.StatusCreated, result)
}

type pendingResponse struct {
	Transactions []model.Transaction `json:"transactions"`
}

func (h *LedgerHandler) pending(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	txs, err := h.ledger.PendingTransactions(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if txs == nil {
		txs = []model.Transaction{}
	}
	h.respond(w, http.StatusOK, pendingResponse{Transactions: txs})
}

type clearedResponse struct {
	Cleared int `json:"cleared"`
}

func (h *LedgerHandler) clearPending(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	n, err := h.ledger.ClearPendingTransactions(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, clearedResponse{Cleared: n})
}

func (h *LedgerHandler) addTransaction(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var tx model.Transaction
	if err := decode(r, &tx); err != nil {
		h.fail(w, r, err)
		return
	}
	tx, err := tx.ParseAccounts()
	if err != nil {
		h.fail(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	added, err := h.ledger.AddPendingTransaction(r.Context(), tx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusCreated, added)
}

type rewardRequest struct {
	Account string `json:"account"`
	// Amount is in coins.
	Amount float64 `json:"amount"`
}

func (h *LedgerHandler) issueReward(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req rewardRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	amount, err := model.ParseAmount(req.Amount)
	if err != nil {
		h.fail(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	account, err := model.ParseAccount(req.Account)
	if err != nil {
		h.fail(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	receipt, err := h.ledger.IssueReward(r.Context(), account, amount)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusCreated, receipt)
}

type historyResponse struct {
	Account model.AccountRef     `json:"account"`
	Entries []model.HistoryEntry `json:"entries"`
}

func (h *LedgerHandler) accountHistory(w http.ResponseWriter, r *http.Request, params map[string]string) {
	account, err := model.ParseAccount(params["account"])
	if err != nil {
		h.fail(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	entries, err := h.ledger.AccountHistory(r.Context(), account)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	h.respond(w, http.StatusOK, historyResponse{Account: account, Entries: entries})
}

type balanceResponse struct {
	Account model.AccountRef `json:"account"`
	Balance model.Amount     `json:"balance"`
	Coins   float64          `json:"coins"`
}

func (h *LedgerHandler) balance(w http.ResponseWriter, r *http.Request, params map[string]string) {
	account, err := model.ParseAccount(params["account"])
	if err != nil {
		h.fail(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	amount, err := h.ledger.Balance(r.Context(), account)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, balanceResponse{Account: account, Balance: amount, Coins: amount.Coins()})
}

func (h *LedgerHandler) minerStats(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	if h.stats == nil {
		h.respond(w, http.StatusNotFound, errorResponse{Error: "mining is disabled on this node"})
		return
	}
	h.respond(w, http.StatusOK, h.stats.Stats())
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *LedgerHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		h.logger.Debug("request rejected", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
	}
	h.respond(w, status, errorResponse{Error: err.Error()})
}

func (h *LedgerHandler) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("write response failed", zap.Error(err))
	}
}

func decode(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", errBadRequest, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, ledger.ErrInvalidTransaction),
		errors.Is(err, ledger.ErrInvalidBlock):
		return http.StatusBadRequest
	case errors.Is(err, validator.ErrValidationFailure):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrDuplicateIndex),
		errors.Is(err, ledger.ErrChainMismatch),
		errors.Is(err, ledger.ErrDuplicateTransaction),
		errors.Is(err, ledger.ErrInvalidChainState),
		errors.Is(err, blocktemplate.ErrInvalidChainState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
