// Package period resolves the accounting window a user's budgets are
// currently accumulating against: either an explicitly recorded period, or
// a monthly cycle derived from the user's configured anchor day.
package period

import (
	"time"

	"github.com/homeledger/homeledger-backend/internal/domain"
	"github.com/homeledger/homeledger-backend/internal/timeutil"
)

// Window is a bounded or open-ended accounting window. A nil End means the
// window is open, i.e. runs through the present.
type Window struct {
	Start time.Time
	End   *time.Time
}

// Contains reports whether t falls within the window, inclusive on both
// ends. A nil End is unbounded above.
func (w Window) Contains(t time.Time) bool {
	if t.Before(w.Start) {
		return false
	}
	if w.End != nil && t.After(*w.End) {
		return false
	}
	return true
}

// Resolve determines the active window for a user.
// Logic:
//  1. An active recorded period wins: its start date, and its end date when
//     set, else open-ended.
//  2. Otherwise a monthly cycle is derived from the user's anchor day
//     relative to now (see derive).
//
// There is no "no period" state: the resolver always produces a window.
// An active period with a corrupt start date is skipped and the derived
// fallback applies.
func Resolve(user domain.User, periods []domain.BudgetPeriod, now time.Time) Window {
	for _, p := range periods {
		if !p.IsActive {
			continue
		}

		start, err := timeutil.ParseDate(p.StartDate)
		if err != nil {
			continue
		}

		w := Window{Start: timeutil.StartOfDay(start)}
		if p.EndDate != nil {
			if end, err := timeutil.ParseDate(*p.EndDate); err == nil {
				e := timeutil.EndOfDay(end)
				w.End = &e
			}
		}
		return w
	}

	return derive(user, now)
}

// derive computes the fallback monthly cycle anchored to the user's budget
// start day.
// Logic:
//   - today.day >= anchor: the period runs from the anchor of this month to
//     the day before the anchor of next month.
//   - otherwise: from the anchor of last month to the day before the anchor
//     of this month.
//
// The anchor day is clamped to each month's actual length independently for
// the start and end months, so an anchor of 31 lands on the last day of a
// shorter month rather than rolling over.
func derive(user domain.User, now time.Time) Window {
	anchor := user.AnchorDay()
	today := timeutil.StartOfDay(now)

	startMonth := timeutil.StartOfMonth(today)
	if today.Day() < anchor {
		startMonth = timeutil.AddMonths(startMonth, -1)
	}
	endMonth := timeutil.AddMonths(startMonth, 1)

	start := anchoredDay(startMonth, anchor)
	// The day before the next anchor. anchor-1 goes through the same clamp,
	// so in February an anchor of 31 ends the window on the 28th/29th; an
	// anchor of 1 ends it on the last day of the previous month.
	var end time.Time
	if anchor == 1 {
		end = timeutil.AddDays(endMonth, -1)
	} else {
		end = anchoredDay(endMonth, anchor-1)
	}

	endOfDay := timeutil.EndOfDay(end)
	return Window{Start: start, End: &endOfDay}
}

// anchoredDay returns the anchor day within the month containing monthStart,
// clamped to that month's length.
func anchoredDay(monthStart time.Time, day int) time.Time {
	year, month, _ := monthStart.Date()
	return time.Date(year, month, timeutil.ClampDay(year, month, day), 0, 0, 0, 0, time.UTC)
}
