package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/admin"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
)

func main() {

	ctx := context.Background()
	global, command := admin.SplitCommand(os.Args[1:])
	cfg := config.LoadConfig(global)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("config error: %v", err)
	}
	dialect, err := cfg.Dialect()
	if err != nil {
		log.Fatalf("%v", err)
	}
	key, err := cfg.Key()
	if err != nil {
		log.Fatalf("%v", err)
	}

	db, err := dbx.Open(ctx, dialect, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	app := admin.New(db, dialect, key, os.Stdin, os.Stdout, logging.New(cfg.LogLevel, os.Stderr))
	if err := app.Run(ctx, command); err != nil {
		log.Printf("%v", err)
		db.Close()
		os.Exit(1)
	}

}
