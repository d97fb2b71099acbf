// Seed tool: merges a JSON export into the realtime store.
//
//	seed --file seed.json [--dry-run]
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"

	"quickbite/internal/config"
	"quickbite/internal/infra"
	"quickbite/internal/realtime"
	"quickbite/internal/seed"
)

func main() {
	var (
		file   string
		dryRun bool
	)
	pflag.StringVarP(&file, "file", "f", "", "JSON document to import")
	pflag.BoolVar(&dryRun, "dry-run", false, "parse and report without writing")
	pflag.Parse()

	if file == "" {
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	var store realtime.Store
	if dryRun || cfg.Realtime.Driver == "memory" {
		store = realtime.NewMemoryStore()
	} else {
		app, err := infra.NewFirebaseApp(ctx, cfg.Firebase)
		if err != nil {
			log.Fatalf("firebase init: %v", err)
		}
		store = realtime.NewFirebaseStore(app)
	}

	f, err := os.Open(file)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	report, err := seed.Import(ctx, store, f)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	for root, n := range report.Merged {
		fmt.Printf("merged %-14s %d records\n", root, n)
	}
	for _, key := range report.Skipped {
		fmt.Printf("skipped unrecognized key %q\n", key)
	}
	if dryRun {
		fmt.Println("dry run: nothing written to the remote store")
	}
}
