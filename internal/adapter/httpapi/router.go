package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter wires the handlers onto a chi router. Everything under /api
// requires a valid bearer token.
func NewRouter(s *Server, jwtSecret string) *chi.Mux {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.With(Authenticator(jwtSecret)).Group(func(r chi.Router) {
			// Transactions
			r.Get("/transactions", s.ListTransactions)
			r.Post("/transactions", s.CreateTransaction)
			r.Put("/transactions/{transaction_id}", s.UpdateTransaction)
			r.Delete("/transactions/{transaction_id}", s.DeleteTransaction)

			// Budgets
			r.Get("/budgets", s.ListBudgets)
			r.Post("/budgets", s.CreateBudget)
			r.Get("/budgets/progress", s.ListBudgetProgress)
			r.Get("/budgets/{budget_id}", s.GetBudget)
			r.Put("/budgets/{budget_id}", s.UpdateBudget)
			r.Delete("/budgets/{budget_id}", s.DeleteBudget)
			r.Get("/budgets/{budget_id}/progress", s.GetBudgetProgress)
			r.Get("/budgets/{budget_id}/series", s.GetBudgetSeries)

			// Periods
			r.Get("/periods/current", s.GetCurrentPeriod)
			r.Post("/periods/close", s.ClosePeriod)

			// Accounts
			r.Get("/accounts", s.ListAccounts)
			r.Post("/accounts", s.CreateAccount)

			// Reports
			r.Get("/reports/categories", s.GetCategoryBreakdown)
			r.Get("/reports/days", s.GetDailyActivity)
		})
	})

	return r
}
