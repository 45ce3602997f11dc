// Command catalog-import loads NDJSON catalog dumps into the database.
// Sets must be imported before the cards that reference them.
//
// Usage:
//
//	catalog-import --sets=sets.ndjson --cards=cards.ndjson
//
// Either flag may be omitted to import only one kind of dump.
// Requires DATABASE_DSN to be set.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pokebinder/pokebinder-backend/internal/adapter/postgres"
	cardrepo "github.com/pokebinder/pokebinder-backend/internal/adapter/postgres/card"
	"github.com/pokebinder/pokebinder-backend/internal/app"
	"github.com/pokebinder/pokebinder-backend/internal/config"
	"github.com/pokebinder/pokebinder-backend/internal/service/catalogimport"
	"github.com/pokebinder/pokebinder-backend/migrations"
)

func main() {
	setsPath := flag.String("sets", "", "path to the sets NDJSON dump")
	cardsPath := flag.String("cards", "", "path to the cards NDJSON dump")
	migrate := flag.Bool("migrate", false, "run database migrations before importing")
	flag.Parse()

	if *setsPath == "" && *cardsPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: catalog-import --sets=sets.ndjson --cards=cards.ndjson")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *migrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, migrations.FS); err != nil {
			log.Fatalf("run migrations: %v", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	svc := catalogimport.NewService(logger, cardrepo.New(pool))

	if *setsPath != "" {
		f, err := os.Open(*setsPath)
		if err != nil {
			log.Fatalf("open sets dump: %v", err)
		}
		report, err := svc.ImportSets(ctx, f)
		f.Close()
		if err != nil {
			log.Fatalf("import sets: %v", err)
		}
		fmt.Printf("Imported %d sets (%d skipped).\n", report.SetsImported, report.Skipped)
	}

	if *cardsPath != "" {
		f, err := os.Open(*cardsPath)
		if err != nil {
			log.Fatalf("open cards dump: %v", err)
		}
		report, err := svc.ImportCards(ctx, f)
		f.Close()
		if err != nil {
			log.Fatalf("import cards: %v", err)
		}
		fmt.Printf("Imported %d cards (%d skipped).\n", report.CardsImported, report.Skipped)
	}
}
