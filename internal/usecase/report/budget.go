// Package report computes budget progress, account balances, category
// breakdowns and chart series. Every function here is a pure transform over
// already-scoped inputs: authorization happened earlier (see usecase/scope)
// and no input collection is ever mutated.
package report

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homeledger/homeledger-backend/internal/domain"
	"github.com/homeledger/homeledger-backend/internal/timeutil"
	"github.com/homeledger/homeledger-backend/internal/usecase/period"
)

// Progress summarizes a budget's state within its period.
// Remaining may be negative when the budget is exceeded; Saved never is.
type Progress struct {
	BudgetID   uuid.UUID
	Amount     decimal.Decimal
	Spent      decimal.Decimal
	Remaining  decimal.Decimal
	Saved      decimal.Decimal
	Percentage decimal.Decimal
}

// BudgetTransactions selects the transactions that count toward a budget:
// owned by the budget owner, in one of the budget's tracked categories and,
// when a window is supplied, dated within it (inclusive; a nil window end
// means unbounded above). Records whose date fails to parse are excluded
// from a windowed selection and included in an unwindowed one.
func BudgetTransactions(txs []domain.Transaction, budget domain.Budget, w *period.Window) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.UserID != budget.UserID {
			continue
		}
		if !budget.TracksCategory(tx.Category) {
			continue
		}
		if w != nil {
			date, err := timeutil.ParseDate(tx.Date)
			if err != nil || !w.Contains(date) {
				continue
			}
		}
		out = append(out, tx)
	}
	return out
}

// Spent sums the net outflow of a transaction set: expenses and transfers
// add their amount, income subtracts its amount (income in a tracked
// category is treated as a refund that reduces spend). Rounding to two
// decimal places happens once at the end of the sum, not per transaction.
func Spent(txs []domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case domain.TransactionTypeExpense, domain.TransactionTypeTransfer:
			total = total.Add(tx.Amount)
		case domain.TransactionTypeIncome:
			total = total.Sub(tx.Amount)
		}
	}
	return total.Round(2)
}

// BudgetProgress computes the spent/remaining/saved/percentage figures for
// one budget over the given window.
// Saved is floored at zero: an over-budget situation is observable through
// Spent exceeding Amount and through a negative Remaining, never through a
// negative Saved. A zero budget amount yields a zero percentage, never a
// division error.
func BudgetProgress(budget domain.Budget, txs []domain.Transaction, w *period.Window) Progress {
	spent := Spent(BudgetTransactions(txs, budget, w))
	remaining := budget.Amount.Sub(spent).Round(2)

	saved := remaining
	if saved.IsNegative() {
		saved = decimal.Zero
	}

	percentage := decimal.Zero
	if !budget.Amount.IsZero() {
		percentage = spent.Div(budget.Amount).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return Progress{
		BudgetID:   budget.ID,
		Amount:     budget.Amount,
		Spent:      spent,
		Remaining:  remaining,
		Saved:      saved,
		Percentage: percentage,
	}
}

// BatchProgress computes progress for a set of budgets, resolving each
// owner's window through resolve. A budget whose owner is not in users is
// an orphan and is skipped rather than aborting the batch.
func BatchProgress(
	budgets []domain.Budget,
	users []domain.User,
	txs []domain.Transaction,
	resolve func(domain.User) period.Window,
) []Progress {
	owners := make(map[uuid.UUID]domain.User, len(users))
	for _, u := range users {
		owners[u.ID] = u
	}

	out := make([]Progress, 0, len(budgets))
	for _, budget := range budgets {
		owner, ok := owners[budget.UserID]
		if !ok {
			continue
		}
		w := resolve(owner)
		out = append(out, BudgetProgress(budget, txs, &w))
	}
	return out
}
