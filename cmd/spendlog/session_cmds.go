package main

import (
	"errors"

	"github.com/spf13/cobra"

	"spendlog/internal/core"
)

func (app *App) loginCmd() *cobra.Command {
	var token, userID, email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API credential and user profile for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				return errors.New("--token is required")
			}
			profile := core.Profile{ID: userID, Email: email}
			if err := app.session.Init(cmd.Context(), token, profile); err != nil {
				return err
			}
			printSuccess("Logged in as %s", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Bearer token issued by the API")
	cmd.Flags().StringVar(&userID, "id", "", "User id")
	cmd.Flags().StringVar(&email, "email", "", "User email")
	return cmd
}

func (app *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.session.Teardown(cmd.Context()); err != nil {
				return err
			}
			printSuccess("Logged out; cached expenses are kept for offline viewing")
			return nil
		},
	}
}
