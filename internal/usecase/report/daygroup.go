package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/homeledger/homeledger-backend/internal/domain"
	"github.com/homeledger/homeledger-backend/internal/timeutil"
)

// DayGroup is one calendar day of a date-descending transaction listing.
// Total is the day's net outflow; Running accumulates totals from the
// oldest day in the listing through this one.
type DayGroup struct {
	Date         time.Time
	Transactions []domain.Transaction
	Total        decimal.Decimal
	Running      decimal.Decimal
}

// GroupByDay buckets a date-descending collection into per-day groups for
// presentation. Input order is preserved within and across groups; records
// with unparseable dates gather in a trailing group with a zero date.
func GroupByDay(txs []domain.Transaction) []DayGroup {
	groups := make([]DayGroup, 0)

	for _, tx := range txs {
		var day time.Time
		if parsed, err := timeutil.ParseDate(tx.Date); err == nil {
			day = timeutil.StartOfDay(parsed)
		}

		if n := len(groups); n > 0 && groups[n-1].Date.Equal(day) {
			groups[n-1].Transactions = append(groups[n-1].Transactions, tx)
		} else {
			groups = append(groups, DayGroup{Date: day, Transactions: []domain.Transaction{tx}})
		}
	}

	for i := range groups {
		groups[i].Total = Spent(groups[i].Transactions)
	}

	// Running totals accumulate oldest-first while the listing stays
	// newest-first.
	running := decimal.Zero
	for i := len(groups) - 1; i >= 0; i-- {
		running = running.Add(groups[i].Total)
		groups[i].Running = running.Round(2)
	}

	return groups
}
