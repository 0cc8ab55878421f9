// Package main provides an offline dataset loader: it ingests an XLSX
// spreadsheet into the dataset database without starting the API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/heritageatlas/heritage-server/internal/logger"
	"github.com/heritageatlas/heritage-server/internal/service"
	"github.com/heritageatlas/heritage-server/internal/store"
)

func main() {
	dbPath := flag.String("db", "", "Path to the dataset SQLite file")
	file := flag.String("file", "", "Path to the .xlsx spreadsheet to ingest")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	if *dbPath == "" || *file == "" {
		fmt.Fprintln(os.Stderr, "usage: ingest -db <dataset.db> -file <sites.xlsx>")
		os.Exit(2)
	}

	log := logger.New(logger.Config{Level: logger.ParseLevel(*logLevel)})

	if err := run(context.Background(), *dbPath, *file, log); err != nil {
		log.Error("ingest failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dbPath, file string, log *slog.Logger) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return err
	}

	st, err := store.Open(dbPath, log)
	if err != nil {
		return err
	}
	defer st.Close()

	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	ingestService := service.NewIngestService(st, log)
	rev, err := ingestService.ReplaceFromXLSX(ctx, "cli:"+filepath.Base(file), f)
	if err != nil {
		return err
	}

	log.Info("dataset loaded",
		"revision", rev.ID,
		"site_count", rev.SiteCount,
	)
	return nil
}
