package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/homeledger/homeledger-backend/internal/domain"
	"github.com/homeledger/homeledger-backend/internal/timeutil"
	"github.com/homeledger/homeledger-backend/internal/usecase/period"
)

// SeriesLength is the fixed number of day points in a cumulative series.
// Every chart covers the same 30-day horizon regardless of the actual
// period length, so different budgets and periods compare visually.
const SeriesLength = 30

// SeriesPoint is one day of a cumulative spend series.
type SeriesPoint struct {
	Day        int
	Date       time.Time
	Cumulative decimal.Decimal
	IsFuture   bool
}

// CumulativeSeries generates one point per calendar day from the window
// start through start+29. Each day's net delta is the sum of expense and
// transfer amounts minus income amounts dated that day, accumulated across
// days in order. Points past today carry IsFuture=true; they are still
// computed so the consumer decides the drawing cutoff, but they never feed
// derived extrema (see SeriesMax). Records with unparseable dates carry no
// usable day and are left out.
func CumulativeSeries(w period.Window, txs []domain.Transaction, today time.Time) []SeriesPoint {
	deltas := make(map[time.Time]decimal.Decimal)
	for _, tx := range txs {
		date, err := timeutil.ParseDate(tx.Date)
		if err != nil {
			continue
		}
		day := timeutil.StartOfDay(date)

		switch tx.Type {
		case domain.TransactionTypeExpense, domain.TransactionTypeTransfer:
			deltas[day] = deltas[day].Add(tx.Amount)
		case domain.TransactionTypeIncome:
			deltas[day] = deltas[day].Sub(tx.Amount)
		}
	}

	start := timeutil.StartOfDay(w.Start)
	todayStart := timeutil.StartOfDay(today)

	points := make([]SeriesPoint, 0, SeriesLength)
	cumulative := decimal.Zero
	for i := 0; i < SeriesLength; i++ {
		date := timeutil.AddDays(start, i)
		cumulative = cumulative.Add(deltas[date])
		points = append(points, SeriesPoint{
			Day:        i,
			Date:       date,
			Cumulative: cumulative.Round(2),
			IsFuture:   date.After(todayStart),
		})
	}
	return points
}

// SeriesMax returns the scaling maximum for a series chart: the greatest
// cumulative value among non-future points, floored at the budget ceiling
// so a barely-used budget still renders against its full height. Future
// points never participate.
func SeriesMax(points []SeriesPoint, ceiling decimal.Decimal) decimal.Decimal {
	max := ceiling
	for _, p := range points {
		if p.IsFuture {
			continue
		}
		if p.Cumulative.GreaterThan(max) {
			max = p.Cumulative
		}
	}
	return max
}
