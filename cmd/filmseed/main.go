package main

import (
	"bechdel/dataset"
	"bechdel/pkg/config"
	"bechdel/postgres"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/lib/pq"
)

func main() {
	var path string
	flag.StringVar(&path, "file", "", "Path to the dataset file (.csv, .json, .yaml), defaults to DATASET_PATH")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}
	if path == "" {
		path = cfg.Dataset.Path
	}

	ctx := context.Background()
	films, err := dataset.NewFileSource(path).Films(ctx)
	if err != nil {
		slog.Error("cannot read dataset", "path", path, "error", err)
		os.Exit(1)
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	count, err := postgres.NewFilmRepository(db).ImportFilms(ctx, films)
	if err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}

	slog.Info("import completed", "rows", count, "path", path)
}
