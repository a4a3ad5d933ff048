package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"spendlog/internal/core"
	"spendlog/internal/draft"
	"spendlog/internal/insights"
)

const trendBarWidth = 40

var (
	brightGreen = color.New(color.FgGreen, color.Bold).SprintfFunc()
	brightRed   = color.New(color.FgRed, color.Bold).SprintfFunc()
	boldYellow  = color.New(color.FgYellow, color.Bold).SprintfFunc()
)

func printSuccess(format string, a ...any) {
	pterm.Success.Println(brightGreen(format, a...))
}

func printWarning(format string, a ...any) {
	pterm.Warning.Println(boldYellow(format, a...))
}

func renderExpenseTable(expenses []core.Expense) {
	data := pterm.TableData{{"ID", "Date", "Category", "Description", "Amount"}}
	for _, e := range expenses {
		data = append(data, []string{
			e.ID,
			e.Date.Format(draft.DateLayout),
			string(e.Category),
			e.Description,
			e.Amount.String(),
		})
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(data)
	rendered, _ := table.Srender()
	fmt.Println(rendered)
}

func renderSummary(summary core.DashboardSummary, average core.Money) {
	data := pterm.TableData{
		{"Total", summary.TotalExpenses.String()},
		{"This month", summary.MonthExpenses.String()},
		{"Transactions", fmt.Sprint(summary.TransactionCount)},
		{"Average", average.String()},
	}
	table := pterm.DefaultTable.WithBoxed().WithData(data)
	rendered, _ := table.Srender()
	fmt.Println(rendered)
}

func renderBreakdown(breakdown []insights.CategoryBreakdown) {
	if len(breakdown) == 0 {
		return
	}
	data := pterm.TableData{{"Category", "Amount", "Share"}}
	for _, b := range breakdown {
		data = append(data, []string{
			string(b.Name),
			b.Amount.String(),
			fmt.Sprintf("%.1f%%", b.DisplayPercentage()),
		})
	}
	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(data)
	rendered, _ := table.Srender()
	fmt.Println(rendered)
}

// renderTrend draws one scaled bar per month, oldest first, with the
// month-over-month change on the last row.
func renderTrend(trend []insights.TrendPoint, change float64) {
	var maxCents int64
	for _, p := range trend {
		if p.Amount.Cents > maxCents {
			maxCents = p.Amount.Cents
		}
	}
	if maxCents == 0 {
		pterm.Info.Println("No spending in this period")
		return
	}

	data := pterm.TableData{{"Month", "Amount", ""}}
	for i, p := range trend {
		barLength := int(p.Amount.Cents * trendBarWidth / maxCents)
		bar := pterm.FgBlue.Sprint(strings.Repeat("█", barLength))

		note := ""
		if i == len(trend)-1 {
			note = formatChange(change)
		}
		data = append(data, []string{p.Month, p.Amount.String(), bar + " " + note})
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithData(data)
	rendered, _ := table.Srender()
	fmt.Println(rendered)
}

func formatChange(change float64) string {
	switch {
	case change > 0:
		return brightRed("▲ %.1f%%", change)
	case change < 0:
		return brightGreen("▼ %.1f%%", -change)
	default:
		return ""
	}
}

func renderDraft(d core.Draft) {
	value := func(s string, ok bool) string {
		if !ok {
			return boldYellow("(not recognized)")
		}
		return s
	}

	data := pterm.TableData{
		{"Amount", value(moneyString(d.Amount), d.Amount != nil)},
		{"Category", value(categoryString(d.Category), d.Category != nil)},
		{"Date", value(dateString(d.Date), d.Date != nil)},
		{"Description", value(stringOrEmpty(d.Description), d.Description != nil)},
	}
	table := pterm.DefaultTable.WithBoxed().WithData(data)
	rendered, _ := table.Srender()
	fmt.Println(rendered)

	if d.ExtractedText != "" {
		pterm.DefaultSection.Println("Recognized text")
		fmt.Println(d.ExtractedText)
	}
}

func moneyString(m *core.Money) string {
	if m == nil {
		return ""
	}
	return m.String()
}

func categoryString(c *core.Category) string {
	if c == nil {
		return ""
	}
	return string(*c)
}

func dateString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(draft.DateLayout)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
