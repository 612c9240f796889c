package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homeledger/homeledger-backend/internal/adapter/cache"
	"github.com/homeledger/homeledger-backend/internal/domain"
	"github.com/homeledger/homeledger-backend/internal/timeutil"
	"github.com/homeledger/homeledger-backend/internal/usecase/ledger"
	"github.com/homeledger/homeledger-backend/internal/usecase/scope"
)

type transactionRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	AccountID   uuid.UUID       `json:"account_id"`
	ToAccountID *uuid.UUID      `json:"to_account_id"`
	UserID      *uuid.UUID      `json:"user_id"`
}

// ListTransactions returns the actor's visible transactions in canonical
// date-descending order.
func (s *Server) ListTransactions(w http.ResponseWriter, r *http.Request) {
	actor, err := s.actor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	txs, err := s.transactions.ListByGroup(r.Context(), actor.GroupID)
	if err != nil {
		s.log.Error("failed to list transactions", "error", err)
		http.Error(w, "failed to list transactions", http.StatusInternalServerError)
		return
	}

	visible := scope.Narrow(txs, *actor, selectedUser(r))
	writeJSON(w, http.StatusOK, ledger.Rebuild(visible))
}

// CreateTransaction records a new transaction. The ordered view is updated
// optimistically and compensated if the durable write fails, so the caller
// always receives a view consistent with the store.
func (s *Server) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	actor, err := s.actor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	owner := actor.ID
	if req.UserID != nil && actor.Role.CanManageOthers() {
		owner = *req.UserID
	}

	tx := domain.Transaction{
		ID:          s.ids.NewID(),
		Description: req.Description,
		Amount:      req.Amount,
		Type:        domain.TransactionType(req.Type),
		Category:    req.Category,
		Date:        req.Date,
		UserID:      owner,
		AccountID:   req.AccountID,
		ToAccountID: req.ToAccountID,
		GroupID:     actor.GroupID,
	}
	if err := tx.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := timeutil.ParseDate(tx.Date); err != nil {
		// Data quality warning only: the record is still ingested.
		s.log.Warn("transaction date failed to parse, appending out of order",
			"transaction_id", tx.ID, "date", tx.Date)
	}

	collection, err := s.transactions.ListByUser(r.Context(), owner)
	if err != nil {
		s.log.Error("failed to load transactions", "error", err)
		http.Error(w, "failed to load transactions", http.StatusInternalServerError)
		return
	}

	cmd := ledger.NewInsert(tx)
	view := cmd.Apply(ledger.Rebuild(collection))

	if err := s.transactions.Create(r.Context(), &tx); err != nil {
		view = cmd.Compensate(view)
		s.log.Error("failed to create transaction", "error", err)
		http.Error(w, "failed to create transaction", http.StatusInternalServerError)
		return
	}

	s.invalidateTransaction(tx)
	writeJSON(w, http.StatusCreated, view)
}

// UpdateTransaction replaces an existing transaction, re-homing it in the
// ordered view when its date changed.
func (s *Server) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	actor, err := s.actor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "transaction_id"))
	if err != nil {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return
	}

	prev, err := s.transactions.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}
	if prev.UserID != actor.ID && !actor.Role.CanManageOthers() {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	next := domain.Transaction{
		ID:          id,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        domain.TransactionType(req.Type),
		Category:    req.Category,
		Date:        req.Date,
		UserID:      prev.UserID,
		AccountID:   req.AccountID,
		ToAccountID: req.ToAccountID,
		GroupID:     prev.GroupID,
	}
	if err := next.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	collection, err := s.transactions.ListByUser(r.Context(), prev.UserID)
	if err != nil {
		s.log.Error("failed to load transactions", "error", err)
		http.Error(w, "failed to load transactions", http.StatusInternalServerError)
		return
	}

	cmd := ledger.NewUpdate(next, prev)
	view := cmd.Apply(ledger.Rebuild(collection))

	if err := s.transactions.Update(r.Context(), &next); err != nil {
		view = cmd.Compensate(view)
		s.log.Error("failed to update transaction", "error", err)
		http.Error(w, "failed to update transaction", http.StatusInternalServerError)
		return
	}

	s.invalidateTransaction(*prev)
	s.invalidateTransaction(next)
	writeJSON(w, http.StatusOK, view)
}

// DeleteTransaction removes a transaction by id.
func (s *Server) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	actor, err := s.actor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "transaction_id"))
	if err != nil {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return
	}

	prev, err := s.transactions.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}
	if prev.UserID != actor.ID && !actor.Role.CanManageOthers() {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}

	if err := s.transactions.Delete(r.Context(), id); err != nil {
		s.log.Error("failed to delete transaction", "error", err)
		http.Error(w, "failed to delete transaction", http.StatusInternalServerError)
		return
	}

	s.invalidateTransaction(*prev)
	writeJSON(w, http.StatusOK, map[string]string{"message": "transaction deleted"})
}

// invalidateTransaction drops every cached aggregate a transaction mutation
// can stale.
func (s *Server) invalidateTransaction(tx domain.Transaction) {
	tags := []string{
		cache.UserTag(tx.UserID),
		cache.CategoryTag(tx.Category),
		cache.AccountTag(tx.AccountID),
	}
	if tx.ToAccountID != nil {
		tags = append(tags, cache.AccountTag(*tx.ToAccountID))
	}
	s.reports.Invalidate(tags...)
}
