package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homeledger/homeledger-backend/internal/domain"
	"github.com/homeledger/homeledger-backend/internal/usecase/report"
)

type accountBalance struct {
	Account domain.Account  `json:"account"`
	Balance decimal.Decimal `json:"balance"`
}

// ListAccounts returns the household's accounts with transfer-aware
// balances. Accounts are shared across the group, so there is no per-user
// narrowing here; balances are computed over the whole group ledger.
func (s *Server) ListAccounts(w http.ResponseWriter, r *http.Request) {
	actor, err := s.actor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	accounts, err := s.accounts.ListByGroup(r.Context(), actor.GroupID)
	if err != nil {
		s.log.Error("failed to list accounts", "error", err)
		http.Error(w, "failed to list accounts", http.StatusInternalServerError)
		return
	}

	txs, err := s.transactions.ListByGroup(r.Context(), actor.GroupID)
	if err != nil {
		s.log.Error("failed to load transactions", "error", err)
		http.Error(w, "failed to load transactions", http.StatusInternalServerError)
		return
	}

	balances := make([]accountBalance, 0, len(accounts))
	for _, account := range accounts {
		balances = append(balances, accountBalance{
			Account: account,
			Balance: report.AccountBalance(account.ID, txs),
		})
	}

	writeJSON(w, http.StatusOK, balances)
}

// CreateAccount creates a new shared account in the actor's group.
func (s *Server) CreateAccount(w http.ResponseWriter, r *http.Request) {
	actor, err := s.actor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Name    string   `json:"name"`
		UserIDs []string `json:"user_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	account := domain.Account{
		ID:      s.ids.NewID(),
		Name:    req.Name,
		GroupID: actor.GroupID,
	}
	for _, raw := range req.UserIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}
		account.UserIDs = append(account.UserIDs, id)
	}
	if len(account.UserIDs) == 0 {
		account.UserIDs = append(account.UserIDs, actor.ID)
	}
	if err := account.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.accounts.Create(r.Context(), &account); err != nil {
		s.log.Error("failed to create account", "error", err)
		http.Error(w, "failed to create account", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, account)
}
