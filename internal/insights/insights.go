// Package insights derives the dashboard and chart views from a ledger
// snapshot. Every function here is pure: no network, no state, and no
// error path. Views are recomputed on each call; the dataset is a personal
// expense history, never large enough to justify incremental maintenance.
package insights

import (
	"math"
	"time"

	"spendlog/internal/core"
)

type (
	// CategoryBreakdown is one slice of the by-category view. Percentage is
	// kept at full precision; DisplayPercentage rounds for rendering.
	CategoryBreakdown struct {
		Name       core.Category
		Amount     core.Money
		Percentage float64
		Color      string
	}

	// TrendPoint is one month of the spending-trend series.
	TrendPoint struct {
		Month  string
		Amount core.Money
	}
)

// DisplayPercentage returns the percentage rounded to one decimal, the
// fixed policy for rendering.
func (b CategoryBreakdown) DisplayPercentage() float64 {
	return math.Round(b.Percentage*10) / 10
}

// Breakdown groups expenses by category, in order of first appearance in
// the input, and computes each group's share of the grand total. When the
// grand total is zero every percentage is zero; the result never carries
// NaN or infinity.
func Breakdown(expenses []core.Expense) []CategoryBreakdown {
	var (
		order  []core.Category
		totals = make(map[core.Category]int64)
		grand  int64
	)
	for _, e := range expenses {
		if _, seen := totals[e.Category]; !seen {
			order = append(order, e.Category)
		}
		totals[e.Category] += e.Amount.Cents
		grand += e.Amount.Cents
	}

	out := make([]CategoryBreakdown, 0, len(order))
	for _, name := range order {
		cents := totals[name]
		var pct float64
		if grand > 0 {
			pct = float64(cents) / float64(grand) * 100
		}
		out = append(out, CategoryBreakdown{
			Name:       name,
			Amount:     core.Money{Cents: cents},
			Percentage: pct,
			Color:      name.Color(),
		})
	}
	return out
}

// MonthlyTrend returns exactly window points for the window consecutive
// calendar months ending at anchor's month, oldest first. Months without
// expenses contribute a zero amount; the series length never depends on
// the data.
func MonthlyTrend(expenses []core.Expense, window int, anchor time.Time) []TrendPoint {
	if window <= 0 {
		return nil
	}

	totals := make(map[int]int64)
	for _, e := range expenses {
		totals[monthKey(e.Date)] += e.Amount.Cents
	}

	first := startOfMonth(anchor).AddDate(0, -(window - 1), 0)
	out := make([]TrendPoint, 0, window)
	for i := 0; i < window; i++ {
		m := first.AddDate(0, i, 0)
		out = append(out, TrendPoint{
			Month:  m.Format("Jan"),
			Amount: core.Money{Cents: totals[monthKey(m)]},
		})
	}
	return out
}

// MonthOverMonthChange returns the percentage change between anchor's month
// and the month before it. A zero base is defined as zero change, whatever
// this month's total.
func MonthOverMonthChange(expenses []core.Expense, anchor time.Time) float64 {
	thisMonth := startOfMonth(anchor)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	var thisTotal, lastTotal int64
	for _, e := range expenses {
		switch monthKey(e.Date) {
		case monthKey(thisMonth):
			thisTotal += e.Amount.Cents
		case monthKey(lastMonth):
			lastTotal += e.Amount.Cents
		}
	}
	if lastTotal == 0 {
		return 0
	}
	return float64(thisTotal-lastTotal) / float64(lastTotal) * 100
}

// Average returns the arithmetic mean amount, zero for an empty input.
func Average(expenses []core.Expense) core.Money {
	if len(expenses) == 0 {
		return core.Money{}
	}
	var total int64
	for _, e := range expenses {
		total += e.Amount.Cents
	}
	return core.Money{Cents: int64(math.Round(float64(total) / float64(len(expenses))))}
}

// Total returns the sum of all amounts.
func Total(expenses []core.Expense) core.Money {
	var total int64
	for _, e := range expenses {
		total += e.Amount.Cents
	}
	return core.Money{Cents: total}
}

func monthKey(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
