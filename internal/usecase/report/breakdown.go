package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/homeledger/homeledger-backend/internal/domain"
)

// CategorySummary aggregates one category's activity within a transaction set.
type CategorySummary struct {
	Category   string
	Spent      decimal.Decimal // sum of expense amounts
	Received   decimal.Decimal // sum of income amounts
	Net        decimal.Decimal // Received - Spent
	Percentage decimal.Decimal // share of total expense across all categories
	Count      int
}

// CategoryBreakdown computes per-category totals for every distinct category
// present in txs. Percentage is each category's expense share of the total
// expense across all categories, zero when that total is zero. Transfers
// contribute to Count only. The result is ordered by Spent descending, ties
// broken by category name, so output is deterministic.
func CategoryBreakdown(txs []domain.Transaction) []CategorySummary {
	byCategory := make(map[string]*CategorySummary)
	order := make([]string, 0)

	for _, tx := range txs {
		summary, ok := byCategory[tx.Category]
		if !ok {
			summary = &CategorySummary{
				Category: tx.Category,
				Spent:    decimal.Zero,
				Received: decimal.Zero,
			}
			byCategory[tx.Category] = summary
			order = append(order, tx.Category)
		}

		switch tx.Type {
		case domain.TransactionTypeExpense:
			summary.Spent = summary.Spent.Add(tx.Amount)
		case domain.TransactionTypeIncome:
			summary.Received = summary.Received.Add(tx.Amount)
		}
		summary.Count++
	}

	totalExpense := decimal.Zero
	for _, summary := range byCategory {
		totalExpense = totalExpense.Add(summary.Spent)
	}

	out := make([]CategorySummary, 0, len(byCategory))
	for _, category := range order {
		summary := byCategory[category]
		summary.Percentage = decimal.Zero
		if !totalExpense.IsZero() {
			summary.Percentage = summary.Spent.Div(totalExpense).Mul(decimal.NewFromInt(100)).Round(2)
		}
		summary.Net = summary.Received.Sub(summary.Spent).Round(2)
		summary.Spent = summary.Spent.Round(2)
		summary.Received = summary.Received.Round(2)
		out = append(out, *summary)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Spent.Equal(out[j].Spent) {
			return out[i].Spent.GreaterThan(out[j].Spent)
		}
		return out[i].Category < out[j].Category
	})

	return out
}
