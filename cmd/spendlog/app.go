package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"spendlog/internal/amqp"
	"spendlog/internal/api"
	"spendlog/internal/cache"
	"spendlog/internal/config"
	"spendlog/internal/draft"
	"spendlog/internal/ledger"
	"spendlog/internal/log"
	"spendlog/internal/session"
)

// App wires the command tree to the expense layer. The heavy pieces
// (cache db, broker connection) are opened once per invocation in the
// persistent pre-run and torn down after the command finishes.
type App struct {
	rootCmd *cobra.Command
	cfg     *config.Config
	logger  *log.Logger

	session *session.Session
	store   *ledger.Store
	scanner *draft.Scanner
	closers []func() error
}

func NewApp(cfg *config.Config, logger *log.Logger) *App {
	app := &App{cfg: cfg, logger: logger}

	rootCmd := &cobra.Command{
		Use:           "spendlog",
		Short:         "Expense ledger and spending insights",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.teardown()
		},
	}

	rootCmd.AddCommand(
		app.loginCmd(),
		app.logoutCmd(),
		app.listCmd(),
		app.addCmd(),
		app.editCmd(),
		app.rmCmd(),
		app.insightsCmd(),
		app.scanCmd(),
	)

	app.rootCmd = rootCmd
	return app
}

func (app *App) Execute() error {
	return app.rootCmd.Execute()
}

func (app *App) setup() error {
	store, err := cache.OpenSQLite(app.cfg.CacheDBPath)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	app.closers = append(app.closers, store.Close)

	c := cache.New(store)
	app.session = session.New(c, app.logger)

	client := api.NewClient(
		app.cfg.APIBaseURL,
		app.session,
		&http.Client{Timeout: app.cfg.HTTPTimeout},
		app.logger,
	)

	app.store = ledger.New(client, client, c, app.logger)
	app.scanner = draft.NewScanner(client)

	if app.cfg.AMQPURL != "" {
		broker, err := amqp.NewClient(app.cfg.AMQPURL, app.cfg.AMQPExchange, app.cfg.AMQPQueue, app.logger)
		if err != nil {
			// The ledger works without the broker; mutations just go unannounced.
			app.logger.Warn("Broker unavailable, change events disabled", log.FieldError, err)
		} else {
			app.closers = append(app.closers, broker.Close)
			app.store.Subscribe(broker.Listener())
		}
	}

	return nil
}

func (app *App) teardown() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			app.logger.Warn("Cleanup failed", log.FieldError, err)
		}
	}
	app.closers = nil
}
