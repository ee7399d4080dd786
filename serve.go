package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mbolis/quick-forms/app"
	"github.com/mbolis/quick-forms/config"
	"github.com/mbolis/quick-forms/database"
	"github.com/mbolis/quick-forms/forms"
	"github.com/mbolis/quick-forms/httpx"
	"github.com/mbolis/quick-forms/log"
	"github.com/mbolis/quick-forms/routes"
	"github.com/mbolis/quick-forms/store"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, db, err := setup(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := cfg.RequireSecret(); err != nil {
		return err
	}

	app := app.App{
		DB:           db,
		BearerServer: httpx.NewBearerServer(db, cfg),
		Config:       cfg,
		Forms:        forms.NewService(store.New(db)),
	}

	return runServer(ctx, cfg, routes.Wire(app))
}

// setup loads the configuration, applies the logging options and opens the
// migrated database.
func setup(c *cli.Context) (cfg config.Config, db *sql.DB, err error) {
	cfg, err = config.FromContext(c)
	if err != nil {
		return
	}

	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	err = log.SetFormat(cfg.LogFormat)
	if err != nil {
		return
	}

	db, err = database.Open(cfg.DBUrl)
	return
}

func runServer(ctx context.Context, cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info("Listening on " + cfg.Url())
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
