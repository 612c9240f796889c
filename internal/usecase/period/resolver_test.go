package period

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeledger/homeledger-backend/internal/domain"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve_ActiveRecordedPeriodWins(t *testing.T) {
	user := domain.User{ID: uuid.New(), BudgetStartDay: 1}
	endDate := "2024-06-30"
	periods := []domain.BudgetPeriod{
		{ID: uuid.New(), UserID: user.ID, StartDate: "2024-05-01", EndDate: &endDate, IsActive: false},
		{ID: uuid.New(), UserID: user.ID, StartDate: "2024-06-03", IsActive: true},
	}

	w := Resolve(user, periods, day(2024, time.June, 20))

	assert.Equal(t, day(2024, time.June, 3), w.Start)
	assert.Nil(t, w.End, "open period has no end")
}

func TestResolve_ActivePeriodWithEndDate(t *testing.T) {
	user := domain.User{ID: uuid.New()}
	endDate := "2024-06-25"
	periods := []domain.BudgetPeriod{
		{ID: uuid.New(), UserID: user.ID, StartDate: "2024-06-03", EndDate: &endDate, IsActive: true},
	}

	w := Resolve(user, periods, day(2024, time.June, 20))

	assert.Equal(t, day(2024, time.June, 3), w.Start)
	require.NotNil(t, w.End)
	assert.Equal(t, 25, w.End.Day())
	assert.Equal(t, 23, w.End.Hour(), "end is normalized to end of day")
}

func TestResolve_ActivePeriodWithCorruptStartFallsBack(t *testing.T) {
	user := domain.User{ID: uuid.New(), BudgetStartDay: 1}
	periods := []domain.BudgetPeriod{
		{ID: uuid.New(), UserID: user.ID, StartDate: "corrupt", IsActive: true},
	}

	w := Resolve(user, periods, day(2024, time.June, 10))

	// Derived monthly cycle for anchor day 1.
	assert.Equal(t, day(2024, time.June, 1), w.Start)
	require.NotNil(t, w.End)
	assert.Equal(t, 30, w.End.Day())
}

func TestResolve_DerivedCycleAroundAnchor(t *testing.T) {
	// budget_start_date = 15: before the anchor the window reaches back to
	// last month's 15th; on or after it, forward to next month's 14th.
	user := domain.User{ID: uuid.New(), BudgetStartDay: 15}

	tests := []struct {
		name      string
		today     time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "Before the anchor",
			today:     day(2024, time.June, 10),
			wantStart: day(2024, time.May, 15),
			wantEnd:   day(2024, time.June, 14),
		},
		{
			name:      "After the anchor",
			today:     day(2024, time.June, 20),
			wantStart: day(2024, time.June, 15),
			wantEnd:   day(2024, time.July, 14),
		},
		{
			name:      "On the anchor day",
			today:     day(2024, time.June, 15),
			wantStart: day(2024, time.June, 15),
			wantEnd:   day(2024, time.July, 14),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Resolve(user, nil, tt.today)

			assert.Equal(t, tt.wantStart, w.Start)
			require.NotNil(t, w.End)
			assert.Equal(t, tt.wantEnd.Year(), w.End.Year())
			assert.Equal(t, tt.wantEnd.Month(), w.End.Month())
			assert.Equal(t, tt.wantEnd.Day(), w.End.Day())
		})
	}
}

func TestResolve_AnchorClampsToShortMonths(t *testing.T) {
	user := domain.User{ID: uuid.New(), BudgetStartDay: 31}

	// February 2024 has 29 days: the window ends on the month's last day,
	// not on a rolled-over day 31.
	w := Resolve(user, nil, day(2024, time.February, 15))

	assert.Equal(t, day(2024, time.January, 31), w.Start)
	require.NotNil(t, w.End)
	assert.Equal(t, time.February, w.End.Month())
	assert.Equal(t, 29, w.End.Day())

	// Non-leap February clamps to the 28th.
	w = Resolve(user, nil, day(2023, time.February, 15))
	require.NotNil(t, w.End)
	assert.Equal(t, 28, w.End.Day())

	// The start month clamps independently: a 30-day start month anchors
	// on its own last day.
	w = Resolve(user, nil, day(2024, time.May, 10))
	assert.Equal(t, day(2024, time.April, 30), w.Start)
	require.NotNil(t, w.End)
	assert.Equal(t, time.May, w.End.Month())
	assert.Equal(t, 30, w.End.Day())
}

func TestResolve_AnchorOne(t *testing.T) {
	user := domain.User{ID: uuid.New(), BudgetStartDay: 1}

	w := Resolve(user, nil, day(2024, time.June, 10))

	assert.Equal(t, day(2024, time.June, 1), w.Start)
	require.NotNil(t, w.End)
	assert.Equal(t, time.June, w.End.Month())
	assert.Equal(t, 30, w.End.Day())
}

func TestResolve_UnsetAnchorDefaultsToOne(t *testing.T) {
	user := domain.User{ID: uuid.New()}

	w := Resolve(user, nil, day(2024, time.June, 10))

	assert.Equal(t, day(2024, time.June, 1), w.Start)
}

func TestWindow_Contains(t *testing.T) {
	end := day(2024, time.June, 30)
	bounded := Window{Start: day(2024, time.June, 1), End: &end}

	assert.True(t, bounded.Contains(day(2024, time.June, 1)))
	assert.True(t, bounded.Contains(day(2024, time.June, 30)))
	assert.True(t, bounded.Contains(day(2024, time.June, 15)))
	assert.False(t, bounded.Contains(day(2024, time.May, 31)))
	assert.False(t, bounded.Contains(day(2024, time.July, 1)))

	open := Window{Start: day(2024, time.June, 1)}
	assert.True(t, open.Contains(day(2030, time.January, 1)), "nil end is unbounded above")
	assert.False(t, open.Contains(day(2024, time.May, 31)))
}
