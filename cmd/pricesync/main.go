// Command pricesync pulls current card prices from the external feed and
// merges them into the catalog. Intended to run from cron.
//
// Usage:
//
//	pricesync [--sets=base1,jungle]
//
// Without --sets the configured PRICE_FEED_SYNC_SETS list is used.
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
	"github.com/pokebinder/pokebinder-backend/internal/adapter/provider/pricefeed"
	"github.com/pokebinder/pokebinder-backend/internal/app"
	"github.com/pokebinder/pokebinder-backend/internal/config"
	"github.com/pokebinder/pokebinder-backend/internal/service/pricesync"
)

func main() {
	setsFlag := flag.String("sets", "", "comma-separated set ids to sync (default: configured sync list)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	sets := config.ParseSetList(*setsFlag)
	if len(sets) == 0 {
		sets = cfg.PriceFeed.SyncSets
	}
	if len(sets) == 0 {
		fmt.Fprintln(os.Stderr, "no sets to sync: pass --sets or set PRICE_FEED_SYNC_SETS")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	svc := pricesync.NewService(logger, pricefeed.NewClient(cfg.PriceFeed), cardrepo.New(pool))

	report, err := svc.SyncSets(ctx, sets)
	if err != nil {
		log.Fatalf("sync prices: %v", err)
	}

	fmt.Printf("Synced %d sets, updated %d cards", report.SetsSynced, report.CardsUpdated)
	if len(report.SetsSkipped) > 0 {
		fmt.Printf(", skipped %v", report.SetsSkipped)
	}
	if len(report.Failed) > 0 {
		fmt.Printf(", failed %v", report.Failed)
	}
	fmt.Println(".")
}
