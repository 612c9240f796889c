package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homeledger/homeledger-backend/internal/adapter/cache"
	"github.com/homeledger/homeledger-backend/internal/domain"
	"github.com/homeledger/homeledger-backend/internal/usecase/period"
	"github.com/homeledger/homeledger-backend/internal/usecase/report"
	"github.com/homeledger/homeledger-backend/internal/usecase/scope"
)

type budgetRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Categories  []string        `json:"categories"`
	UserID      *uuid.UUID      `json:"user_id"`
}

// ListBudgets returns the budgets visible to the actor.
func (s *Server) ListBudgets(w http.ResponseWriter, r *http.Request) {
	actor, err := s.actor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	budgets, err := s.budgets.ListByGroup(r.Context(), actor.GroupID)
	if err != nil {
		s.log.Error("failed to list budgets", "error", err)
		http.Error(w, "failed to list budgets", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, scope.Narrow(budgets, *actor, selectedUser(r)))
}

// CreateBudget creates a new budget for the actor, or for another user when
// the actor's role allows managing others.
func (s *Server) CreateBudget(w http.ResponseWriter, r *http.Request) {
	actor, err := s.actor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	owner := actor.ID
	if req.UserID != nil && actor.Role.CanManageOthers() {
		owner = *req.UserID
	}

	budget := domain.Budget{
		ID:          s.ids.NewID(),
		Description: req.Description,
		Amount:      req.Amount,
		Categories:  req.Categories,
		UserID:      owner,
		Type:        domain.BudgetTypeMonthly,
	}
	if err := budget.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.budgets.Create(r.Context(), &budget); err != nil {
		s.log.Error("failed to create budget", "error", err)
		http.Error(w, "failed to create budget", http.StatusInternalServerError)
		return
	}

	s.invalidateBudget(budget)
	writeJSON(w, http.StatusCreated, budget)
}

// GetBudget returns one budget by id.
func (s *Server) GetBudget(w http.ResponseWriter, r *http.Request) {
	_, budget, ok := s.visibleBudget(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, budget)
}

// UpdateBudget replaces an existing budget.
func (s *Server) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	actor, prev, ok := s.visibleBudget(w, r)
	if !ok {
		return
	}
	if prev.UserID != actor.ID && !actor.Role.CanManageOthers() {
		http.Error(w, "budget not found", http.StatusNotFound)
		return
	}

	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	next := domain.Budget{
		ID:          prev.ID,
		Description: req.Description,
		Amount:      req.Amount,
		Categories:  req.Categories,
		UserID:      prev.UserID,
		Type:        prev.Type,
	}
	if err := next.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.budgets.Update(r.Context(), &next); err != nil {
		s.log.Error("failed to update budget", "error", err)
		http.Error(w, "failed to update budget", http.StatusInternalServerError)
		return
	}

	s.invalidateBudget(*prev)
	s.invalidateBudget(next)
	writeJSON(w, http.StatusOK, next)
}

// DeleteBudget removes a budget by id.
func (s *Server) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	actor, budget, ok := s.visibleBudget(w, r)
	if !ok {
		return
	}
	if budget.UserID != actor.ID && !actor.Role.CanManageOthers() {
		http.Error(w, "budget not found", http.StatusNotFound)
		return
	}

	if err := s.budgets.Delete(r.Context(), budget.ID); err != nil {
		s.log.Error("failed to delete budget", "error", err)
		http.Error(w, "failed to delete budget", http.StatusInternalServerError)
		return
	}

	s.invalidateBudget(*budget)
	writeJSON(w, http.StatusOK, map[string]string{"message": "budget deleted"})
}

// GetBudgetProgress returns the spent/remaining/saved figures for one
// budget over its owner's current window. An orphaned budget (owner no
// longer known) yields a null body rather than an error.
func (s *Server) GetBudgetProgress(w http.ResponseWriter, r *http.Request) {
	_, budget, ok := s.visibleBudget(w, r)
	if !ok {
		return
	}

	key := "progress:" + budget.ID.String()
	if cached, ok := s.reports.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	owner, err := s.users.GetByID(r.Context(), budget.UserID)
	if err != nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	window, err := s.resolveWindow(r, *owner)
	if err != nil {
		http.Error(w, "failed to resolve period", http.StatusInternalServerError)
		return
	}

	txs, err := s.transactions.ListByUser(r.Context(), owner.ID)
	if err != nil {
		s.log.Error("failed to load transactions", "error", err)
		http.Error(w, "failed to load transactions", http.StatusInternalServerError)
		return
	}

	progress := report.BudgetProgress(*budget, txs, &window)

	tags := []string{cache.UserTag(owner.ID), cache.BudgetTag(budget.ID)}
	for _, category := range budget.Categories {
		tags = append(tags, cache.CategoryTag(category))
	}
	s.reports.Set(key, progress, tags...)

	writeJSON(w, http.StatusOK, progress)
}

// ListBudgetProgress returns progress for every budget visible to the
// actor. Budgets with unknown owners are skipped, not errors.
func (s *Server) ListBudgetProgress(w http.ResponseWriter, r *http.Request) {
	actor, err := s.actor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	budgets, err := s.budgets.ListByGroup(r.Context(), actor.GroupID)
	if err != nil {
		s.log.Error("failed to list budgets", "error", err)
		http.Error(w, "failed to list budgets", http.StatusInternalServerError)
		return
	}
	visible := scope.Narrow(budgets, *actor, selectedUser(r))

	users, err := s.users.ListByGroup(r.Context(), actor.GroupID)
	if err != nil {
		s.log.Error("failed to list users", "error", err)
		http.Error(w, "failed to list users", http.StatusInternalServerError)
		return
	}

	txs, err := s.transactions.ListByGroup(r.Context(), actor.GroupID)
	if err != nil {
		s.log.Error("failed to load transactions", "error", err)
		http.Error(w, "failed to load transactions", http.StatusInternalServerError)
		return
	}

	now := s.now()
	resolve := func(owner domain.User) period.Window {
		periods, err := s.periods.ListByUser(r.Context(), owner.ID)
		if err != nil {
			periods = nil // fall back to the derived monthly cycle
		}
		return period.Resolve(owner, periods, now)
	}

	writeJSON(w, http.StatusOK, report.BatchProgress(visible, users, txs, resolve))
}

type seriesResponse struct {
	Points []report.SeriesPoint `json:"points"`
	Max    decimal.Decimal      `json:"max"`
}

// GetBudgetSeries returns the 30-day cumulative spend series for one budget.
func (s *Server) GetBudgetSeries(w http.ResponseWriter, r *http.Request) {
	_, budget, ok := s.visibleBudget(w, r)
	if !ok {
		return
	}

	owner, err := s.users.GetByID(r.Context(), budget.UserID)
	if err != nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	window, err := s.resolveWindow(r, *owner)
	if err != nil {
		http.Error(w, "failed to resolve period", http.StatusInternalServerError)
		return
	}

	txs, err := s.transactions.ListByUser(r.Context(), owner.ID)
	if err != nil {
		s.log.Error("failed to load transactions", "error", err)
		http.Error(w, "failed to load transactions", http.StatusInternalServerError)
		return
	}

	selected := report.BudgetTransactions(txs, *budget, &window)
	points := report.CumulativeSeries(window, selected, s.now())

	writeJSON(w, http.StatusOK, seriesResponse{
		Points: points,
		Max:    report.SeriesMax(points, budget.Amount),
	})
}

// visibleBudget loads the budget from the URL and checks the actor may see
// it. On failure the response has already been written.
func (s *Server) visibleBudget(w http.ResponseWriter, r *http.Request) (*domain.User, *domain.Budget, bool) {
	actor, err := s.actor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "budget_id"))
	if err != nil {
		http.Error(w, "invalid budget id", http.StatusBadRequest)
		return nil, nil, false
	}

	budget, err := s.budgets.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, "budget not found", http.StatusNotFound)
		return nil, nil, false
	}

	if budget.UserID != actor.ID && !actor.Role.CanViewAll() {
		http.Error(w, "budget not found", http.StatusNotFound)
		return nil, nil, false
	}

	return actor, budget, true
}

// resolveWindow determines the accounting window for a user from their
// recorded periods, falling back to the derived monthly cycle.
func (s *Server) resolveWindow(r *http.Request, owner domain.User) (period.Window, error) {
	periods, err := s.periods.ListByUser(r.Context(), owner.ID)
	if err != nil {
		return period.Window{}, err
	}
	return period.Resolve(owner, periods, s.now()), nil
}

// invalidateBudget drops every cached aggregate a budget mutation can stale.
func (s *Server) invalidateBudget(budget domain.Budget) {
	tags := []string{cache.UserTag(budget.UserID), cache.BudgetTag(budget.ID)}
	for _, category := range budget.Categories {
		tags = append(tags, cache.CategoryTag(category))
	}
	s.reports.Invalidate(tags...)
}
