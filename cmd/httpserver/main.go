package main

import (
	"bechdel/dataset"
	"bechdel/film"
	"bechdel/httpserver"
	"bechdel/pkg/config"
	"bechdel/pkg/sentry"
	"bechdel/postgres"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server stopped with error", "error", err)
		sentrygo.Flush(sentry.FlushTime)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		return fmt.Errorf("cannot init sentry: %w", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := newSource(cfg)
	if err != nil {
		return err
	}

	server := httpserver.Default(cfg)
	store := dataset.NewStore(src, dataset.WithObserver(server.Metrics))
	if err := store.Load(ctx); err != nil {
		return err
	}

	if cfg.Dataset.Watch {
		go func() {
			if err := store.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("dataset watcher stopped", "error", err)
			}
		}()
	}

	server.FilmService = film.NewUsecase(store)
	server.Dataset = store

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server started!", "addr", server.Addr, "source", src.String())
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newSource(cfg *config.Config) (dataset.Source, error) {
	switch cfg.Dataset.Source {
	case config.DatasetSourcePostgres:
		db, err := postgres.NewConnection(postgres.Options{
			DBName:   cfg.DB.Name,
			DBUser:   cfg.DB.User,
			Password: cfg.DB.Pass,
			Host:     cfg.DB.Host,
			Port:     fmt.Sprintf("%d", cfg.DB.Port),
			SSLMode:  cfg.DB.EnableSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("cannot open postgres connection: %w", err)
		}
		return postgres.NewFilmRepository(db), nil
	default:
		return dataset.NewFileSource(cfg.Dataset.Path), nil
	}
}
