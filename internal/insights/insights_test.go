package insights

import (
	"math"
	"testing"
	"time"

	"spendlog/internal/core"
)

func expense(category core.Category, cents int64, date time.Time) core.Expense {
	return core.Expense{
		ID:          "x",
		Amount:      core.Money{Cents: cents},
		Category:    category,
		Date:        date,
		Description: "test",
		OwnerID:     "u1",
	}
}

func TestBreakdownScenario(t *testing.T) {
	date := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)
	expenses := []core.Expense{
		expense(core.Food, 45000, date),
		expense(core.Bills, 120000, date),
		expense(core.Shopping, 80000, date),
	}

	got := Breakdown(expenses)
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}

	// First-appearance order, not sorted by amount.
	wantOrder := []core.Category{core.Food, core.Bills, core.Shopping}
	wantCents := []int64{45000, 120000, 80000}
	var pctSum float64
	for i, b := range got {
		if b.Name != wantOrder[i] {
			t.Fatalf("entry %d = %s, want %s", i, b.Name, wantOrder[i])
		}
		if b.Amount.Cents != wantCents[i] {
			t.Fatalf("%s amount = %d, want %d", b.Name, b.Amount.Cents, wantCents[i])
		}
		if b.Color == "" {
			t.Fatalf("%s has no color hint", b.Name)
		}
		pctSum += b.Percentage
	}
	if math.Abs(pctSum-100) > 1e-9 {
		t.Fatalf("percentages sum to %f, want 100", pctSum)
	}
	// Bills is 1200 of 2450.
	if math.Abs(got[1].Percentage-100*120000.0/245000.0) > 1e-9 {
		t.Fatalf("Bills percentage = %f", got[1].Percentage)
	}
	if got[1].DisplayPercentage() != 49.0 {
		t.Fatalf("Bills display percentage = %v, want 49.0", got[1].DisplayPercentage())
	}
}

func TestBreakdownZeroTotal(t *testing.T) {
	date := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)
	// Amounts of zero cannot pass validation, but the aggregator must stay
	// total anyway: every percentage is zero, never NaN.
	expenses := []core.Expense{
		expense(core.Food, 0, date),
		expense(core.Misc, 0, date),
	}
	for _, b := range Breakdown(expenses) {
		if b.Percentage != 0 {
			t.Fatalf("%s percentage = %f, want 0", b.Name, b.Percentage)
		}
	}
	if got := Breakdown(nil); len(got) != 0 {
		t.Fatalf("empty input should yield empty breakdown, got %v", got)
	}
}

func TestMonthlyTrendFixedWidth(t *testing.T) {
	anchor := time.Date(2025, 8, 31, 23, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		expenses []core.Expense
	}{
		{"empty", nil},
		{"single", []core.Expense{expense(core.Food, 100, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))}},
		{"out of window", []core.Expense{expense(core.Food, 100, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MonthlyTrend(tc.expenses, 6, anchor)
			if len(got) != 6 {
				t.Fatalf("got %d points, want 6", len(got))
			}
			wantMonths := []string{"Mar", "Apr", "May", "Jun", "Jul", "Aug"}
			for i, p := range got {
				if p.Month != wantMonths[i] {
					t.Fatalf("point %d month = %s, want %s", i, p.Month, wantMonths[i])
				}
			}
		})
	}
}

func TestMonthlyTrendBucketsAndZeroFill(t *testing.T) {
	anchor := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	expenses := []core.Expense{
		expense(core.Food, 1000, time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)),
		expense(core.Bills, 2000, time.Date(2025, 8, 28, 0, 0, 0, 0, time.UTC)),
		expense(core.Misc, 500, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)),
		expense(core.Misc, 999, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)), // before window
	}

	got := MonthlyTrend(expenses, 6, anchor)
	wantCents := []int64{0, 0, 500, 0, 0, 3000} // Mar..Aug
	for i, p := range got {
		if p.Amount.Cents != wantCents[i] {
			t.Fatalf("point %d (%s) = %d cents, want %d", i, p.Month, p.Amount.Cents, wantCents[i])
		}
	}

	// Window crossing a year boundary.
	got = MonthlyTrend(nil, 6, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	wantMonths := []string{"Aug", "Sep", "Oct", "Nov", "Dec", "Jan"}
	for i, p := range got {
		if p.Month != wantMonths[i] {
			t.Fatalf("cross-year point %d = %s, want %s", i, p.Month, wantMonths[i])
		}
	}
}

func TestMonthOverMonthChange(t *testing.T) {
	anchor := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		expenses []core.Expense
		want     float64
	}{
		{"no data", nil, 0},
		{"zero base with spend this month",
			[]core.Expense{expense(core.Food, 5000, thisMonth)}, 0},
		{"zero this month with spend last month",
			[]core.Expense{expense(core.Food, 5000, lastMonth)}, -100},
		{"increase",
			[]core.Expense{
				expense(core.Food, 15000, thisMonth),
				expense(core.Food, 10000, lastMonth),
			}, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MonthOverMonthChange(tc.expenses, anchor)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("change = %f, want %f", got, tc.want)
			}
		})
	}
}

func TestAverageAndTotal(t *testing.T) {
	if got := Average(nil); got.Cents != 0 {
		t.Fatalf("average of empty = %d, want 0", got.Cents)
	}
	date := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	expenses := []core.Expense{
		expense(core.Food, 100, date),
		expense(core.Bills, 201, date),
	}
	if got := Average(expenses); got.Cents != 151 { // 150.5 rounds half-up
		t.Fatalf("average = %d, want 151", got.Cents)
	}
	if got := Total(expenses); got.Cents != 301 {
		t.Fatalf("total = %d, want 301", got.Cents)
	}
}
