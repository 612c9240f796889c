package httpapi

import (
	"net/http"

	"github.com/homeledger/homeledger-backend/internal/adapter/cache"
	"github.com/homeledger/homeledger-backend/internal/domain"
	"github.com/homeledger/homeledger-backend/internal/timeutil"
)

// GetCurrentPeriod returns the window the actor's budgets are currently
// accumulating against. There is always one: an explicitly recorded open
// period, or the derived monthly cycle.
func (s *Server) GetCurrentPeriod(w http.ResponseWriter, r *http.Request) {
	actor, err := s.actor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	window, err := s.resolveWindow(r, *actor)
	if err != nil {
		s.log.Error("failed to resolve period", "error", err)
		http.Error(w, "failed to resolve period", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, window)
}

// ClosePeriod ends the actor's current recorded period today and opens the
// next one starting tomorrow. When no period was recorded, only the new one
// is created.
func (s *Server) ClosePeriod(w http.ResponseWriter, r *http.Request) {
	actor, err := s.actor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	periods, err := s.periods.ListByUser(r.Context(), actor.ID)
	if err != nil {
		s.log.Error("failed to list periods", "error", err)
		http.Error(w, "failed to list periods", http.StatusInternalServerError)
		return
	}

	today := timeutil.StartOfDay(s.now())
	todayStr := today.Format("2006-01-02")

	for _, p := range periods {
		if !p.IsActive || p.EndDate != nil {
			continue
		}
		closed := p
		closed.EndDate = &todayStr
		closed.IsActive = false
		if err := s.periods.Update(r.Context(), &closed); err != nil {
			s.log.Error("failed to close period", "error", err)
			http.Error(w, "failed to close period", http.StatusInternalServerError)
			return
		}
		s.reports.Invalidate(cache.PeriodTag(p.ID))
		break
	}

	next := domain.BudgetPeriod{
		ID:        s.ids.NewID(),
		UserID:    actor.ID,
		StartDate: timeutil.AddDays(today, 1).Format("2006-01-02"),
		IsActive:  true,
	}
	if err := s.periods.Create(r.Context(), &next); err != nil {
		s.log.Error("failed to open period", "error", err)
		http.Error(w, "failed to open period", http.StatusInternalServerError)
		return
	}

	s.reports.Invalidate(cache.UserTag(actor.ID), cache.PeriodTag(next.ID))
	writeJSON(w, http.StatusCreated, next)
}
