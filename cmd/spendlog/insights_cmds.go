package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"spendlog/internal/core"
	"spendlog/internal/draft"
	"spendlog/internal/insights"
)

const defaultTrendWindow = 6

func (app *App) insightsCmd() *cobra.Command {
	var window int

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Spending summary, category breakdown and monthly trend",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, expenses, err := app.store.Dashboard(cmd.Context())
			if err != nil {
				return err
			}

			renderSummary(summary, insights.Average(expenses))
			renderBreakdown(insights.Breakdown(expenses))

			anchor := time.Now()
			renderTrend(
				insights.MonthlyTrend(expenses, window, anchor),
				insights.MonthOverMonthChange(expenses, anchor),
			)
			return nil
		},
	}

	cmd.Flags().IntVarP(&window, "months", "t", defaultTrendWindow, "Trend window in months")
	return cmd
}

func (app *App) scanCmd() *cobra.Command {
	var edits draft.Edits
	var save bool

	cmd := &cobra.Command{
		Use:   "scan <image>",
		Short: "Extract an expense draft from a receipt image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open receipt: %w", err)
			}
			defer f.Close()

			d, err := app.scanner.Scan(cmd.Context(), filepath.Base(path), f)
			if err != nil {
				return err
			}
			renderDraft(d)

			if !save {
				pterm.Info.Println("Review the draft, then re-run with --save and any corrections")
				return nil
			}

			payload, err := draft.ToPayload(d, edits)
			if err != nil {
				var verr *core.ValidationError
				if errors.As(err, &verr) {
					printWarning("Draft incomplete, fix with flags: %v", verr.Fields)
				}
				return err
			}
			created, err := app.store.Create(cmd.Context(), payload)
			if err != nil {
				return err
			}
			printSuccess("Recorded %s %s (%s)", created.Amount, created.Category, created.ID)
			return nil
		},
	}

	expenseFlags(cmd, &edits)
	cmd.Flags().BoolVar(&save, "save", false, "Record the draft after applying corrections")
	return cmd
}
