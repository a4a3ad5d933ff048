package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"spendlog/internal/core"
	"spendlog/internal/draft"
)

func expenseFlags(cmd *cobra.Command, e *draft.Edits) {
	cmd.Flags().StringVarP(&e.Amount, "amount", "a", "", "Amount, e.g. 12.50")
	cmd.Flags().StringVarP(&e.Category, "category", "c", "", "Category: "+categoryNames())
	cmd.Flags().StringVarP(&e.Date, "date", "d", "", "Date as YYYY-MM-DD")
	cmd.Flags().StringVarP(&e.Description, "description", "m", "", "Description")
}

func categoryNames() string {
	var names []string
	for _, c := range core.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func (app *App) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		RunE: func(cmd *cobra.Command, args []string) error {
			expenses, err := app.store.List(cmd.Context())
			if errors.Is(err, core.ErrUnreachable) && len(expenses) > 0 {
				printWarning("Server unreachable, showing cached expenses")
				err = nil
			}
			if err != nil {
				return err
			}
			if len(expenses) == 0 {
				pterm.Info.Println("No expenses recorded")
				return nil
			}
			renderExpenseTable(expenses)
			return nil
		},
	}
}

func (app *App) addCmd() *cobra.Command {
	var edits draft.Edits

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := draft.ToPayload(core.Draft{}, edits)
			if err != nil {
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
	return cmd
}

func (app *App) editCmd() *cobra.Command {
	var edits draft.Edits

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace fields of an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			current, err := app.currentExpense(cmd.Context(), id)
			if err != nil {
				return err
			}

			// Blank flags keep the record's current values.
			payload, err := draft.ToPayload(draftFromExpense(current), edits)
			if err != nil {
				return err
			}
			if err := app.store.Update(cmd.Context(), id, payload); err != nil {
				return err
			}
			printSuccess("Updated %s", id)
			return nil
		},
	}

	expenseFlags(cmd, &edits)
	return cmd
}

func (app *App) rmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if _, err := app.currentExpense(cmd.Context(), id); err != nil {
				return err
			}
			if !yes {
				confirmed, _ := pterm.DefaultInteractiveConfirm.
					WithDefaultText(fmt.Sprintf("Delete expense %s?", id)).
					Show()
				if !confirmed {
					pterm.Info.Println("Aborted")
					return nil
				}
			}
			if err := app.store.Delete(cmd.Context(), id); err != nil {
				return err
			}
			printSuccess("Deleted %s", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// currentExpense returns the record for id. Every invocation starts with
// an empty working set, so a miss triggers one refresh from the server
// before the id is declared unknown.
func (app *App) currentExpense(ctx context.Context, id string) (core.Expense, error) {
	if e, ok := findExpense(app.store.Snapshot(), id); ok {
		return e, nil
	}
	if _, err := app.store.List(ctx); err != nil {
		return core.Expense{}, err
	}
	if e, ok := findExpense(app.store.Snapshot(), id); ok {
		return e, nil
	}
	return core.Expense{}, fmt.Errorf("expense %s: %w", id, core.ErrNotFound)
}

func findExpense(expenses []core.Expense, id string) (core.Expense, bool) {
	for _, e := range expenses {
		if e.ID == id {
			return e, true
		}
	}
	return core.Expense{}, false
}

func draftFromExpense(e core.Expense) core.Draft {
	amount, category, date, desc := e.Amount, e.Category, e.Date, e.Description
	return core.Draft{
		Amount:      &amount,
		Category:    &category,
		Date:        &date,
		Description: &desc,
	}
}
