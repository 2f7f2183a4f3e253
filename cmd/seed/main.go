package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/fieldshift-dev/workforce-manager/backend/internal/config"
	"github.com/fieldshift-dev/workforce-manager/backend/internal/repository"
	"github.com/fieldshift-dev/workforce-manager/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random users, 2: insert demo jobs, 3: insert random shifts)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	/*************************
	 * Load the configuration
	 *************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	/**********************************
	 * Create the database connection
	 **********************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to create database connection pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not actually connect, so ping explicitly
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("unable to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	/**********************
	 * Run the operation
	 **********************/
	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		if n <= 0 {
			slog.Error("please provide a valid user count")
		} else {
			seed.SeedRandomUsers(repo, n, cfg.Seed.User.Password, cfg.Email.UserDomain)
		}
	case 2:
		seed.SeedDemoJobs(repo)
	case 3:
		if n <= 0 {
			slog.Error("please provide a valid shift count")
		} else {
			seed.SeedRandomShifts(repo, n)
		}
	default:
		slog.Error("unknown operation", slog.Int("op", op))
	}
}
