package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/config"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/database"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/repository"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random complaints, 2: insert random users)")
	flag.IntVar(&n, "n", 20, "number of records to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	if err := database.RunMigrations(cfg.Database.DSN); err != nil {
		logger.Error("failed to run migrations", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 1:
		if n <= 0 {
			slog.Error("number of complaints must be positive")
			return
		}
		inserted := seed.InsertRandomComplaints(cfg, dbpool, n)
		slog.Info("inserted complaints", slog.Int("count", inserted))
	case 2:
		if n <= 0 {
			slog.Error("number of users must be positive")
			return
		}
		inserted := seed.InsertRandomUsers(repo, n, cfg.Seed.UserPassword)
		slog.Info("inserted users", slog.Int("count", inserted))
	default:
		slog.Error("no operation specified")
	}
}
