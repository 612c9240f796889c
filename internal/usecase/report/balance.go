package report

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homeledger/homeledger-backend/internal/domain"
)

// AccountBalance computes the transfer-aware balance of one account over a
// transaction set.
// Logic:
//   - transfer: outflow when the account is the source, inflow when it is
//     the destination.
//   - plain income/expense on the account: +amount for income, -amount for
//     expense.
//   - a non-transfer row that references the account only through a stray
//     destination field is malformed data and is ignored, so it cannot be
//     double counted.
func AccountBalance(accountID uuid.UUID, txs []domain.Transaction) decimal.Decimal {
	balance := decimal.Zero

	for _, tx := range txs {
		if tx.Type == domain.TransactionTypeTransfer {
			if tx.AccountID == accountID {
				balance = balance.Sub(tx.Amount)
			}
			if tx.ToAccountID != nil && *tx.ToAccountID == accountID {
				balance = balance.Add(tx.Amount)
			}
			continue
		}

		if tx.AccountID != accountID || tx.ToAccountID != nil {
			continue
		}

		switch tx.Type {
		case domain.TransactionTypeIncome:
			balance = balance.Add(tx.Amount)
		case domain.TransactionTypeExpense:
			balance = balance.Sub(tx.Amount)
		}
	}

	return balance.Round(2)
}
