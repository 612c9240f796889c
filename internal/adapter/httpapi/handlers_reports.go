package httpapi

import (
	"net/http"

	"github.com/homeledger/homeledger-backend/internal/timeutil"
	"github.com/homeledger/homeledger-backend/internal/usecase/ledger"
	"github.com/homeledger/homeledger-backend/internal/usecase/report"
	"github.com/homeledger/homeledger-backend/internal/usecase/scope"
)

// GetCategoryBreakdown returns per-category totals over the actor's visible
// transactions. With ?period=current the set is limited to the actor's (or
// the selected user's) active window.
func (s *Server) GetCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	actor, err := s.actor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	txs, err := s.transactions.ListByGroup(r.Context(), actor.GroupID)
	if err != nil {
		s.log.Error("failed to load transactions", "error", err)
		http.Error(w, "failed to load transactions", http.StatusInternalServerError)
		return
	}

	visible := scope.Narrow(txs, *actor, selectedUser(r))

	if r.URL.Query().Get("period") == "current" {
		owner := *actor
		if selected := selectedUser(r); selected != nil && actor.Role.CanViewAll() {
			if u, err := s.users.GetByID(r.Context(), *selected); err == nil {
				owner = *u
			}
		}

		window, err := s.resolveWindow(r, owner)
		if err != nil {
			http.Error(w, "failed to resolve period", http.StatusInternalServerError)
			return
		}

		windowed := visible[:0:0]
		for _, tx := range visible {
			date, err := timeutil.ParseDate(tx.Date)
			if err != nil || !window.Contains(date) {
				continue
			}
			windowed = append(windowed, tx)
		}
		visible = windowed
	}

	writeJSON(w, http.StatusOK, report.CategoryBreakdown(visible))
}

// GetDailyActivity returns the actor's visible transactions bucketed by
// calendar day, newest first, with per-day and running totals.
func (s *Server) GetDailyActivity(w http.ResponseWriter, r *http.Request) {
	actor, err := s.actor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	txs, err := s.transactions.ListByGroup(r.Context(), actor.GroupID)
	if err != nil {
		s.log.Error("failed to load transactions", "error", err)
		http.Error(w, "failed to load transactions", http.StatusInternalServerError)
		return
	}

	visible := scope.Narrow(txs, *actor, selectedUser(r))
	writeJSON(w, http.StatusOK, report.GroupByDay(ledger.Rebuild(visible)))
}
