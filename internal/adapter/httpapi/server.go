// Package httpapi exposes the engine over a thin HTTP CRUD surface. The
// handlers fetch collections from the store, run them through the scope
// filter and the pure engine packages, and hand plain data structures back;
// no formatting or presentation logic lives here.
package httpapi

import (
	"net/http"
	"time"

	"github.com/homeledger/homeledger-backend/internal/adapter/cache"
	"github.com/homeledger/homeledger-backend/internal/domain"
	"github.com/homeledger/homeledger-backend/internal/log"
	"github.com/homeledger/homeledger-backend/internal/usecase/ledger"
)

// Server holds the repositories and collaborators the handlers need.
type Server struct {
	users        domain.UserRepository
	transactions domain.TransactionRepository
	budgets      domain.BudgetRepository
	periods      domain.PeriodRepository
	accounts     domain.AccountRepository
	reports      *cache.ReportCache
	ids          ledger.IDGenerator
	log          *log.Logger
	now          func() time.Time
}

// NewServer creates a new Server instance.
func NewServer(
	users domain.UserRepository,
	transactions domain.TransactionRepository,
	budgets domain.BudgetRepository,
	periods domain.PeriodRepository,
	accounts domain.AccountRepository,
	reports *cache.ReportCache,
	ids ledger.IDGenerator,
	logger *log.Logger,
) *Server {
	return &Server{
		users:        users,
		transactions: transactions,
		budgets:      budgets,
		periods:      periods,
		accounts:     accounts,
		reports:      reports,
		ids:          ids,
		log:          logger,
		now:          time.Now,
	}
}

// actor loads the authenticated user for a request.
func (s *Server) actor(r *http.Request) (*domain.User, error) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		return nil, errMissingActor
	}
	return s.users.GetByID(r.Context(), userID)
}
