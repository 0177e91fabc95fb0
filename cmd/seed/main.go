package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/namsral/flag"

	"github.com/daniilsolovey/taltos-portal/config"
	"github.com/daniilsolovey/taltos-portal/internal/content"
	"github.com/daniilsolovey/taltos-portal/internal/db"
)

var (
	flConfig = flag.String("config", "config.toml", "path to TOML configuration file")
	flFile   = flag.String("file", "seed.toml", "path to TOML seed file")
	flDebug  = flag.Bool("debug", false, "enable debug mode")
)

func main() {
	_ = godotenv.Load()
	flag.Parse()

	level := slog.LevelInfo
	if *flDebug {
		level = slog.LevelDebug
	}
	lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if err := run(*flConfig, *flFile, lg); err != nil {
		lg.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, seedPath string, lg *slog.Logger) error {
	cfg, err := config.Load(configPath, os.Getenv)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := db.Open(ctx, cfg.StoreOptions(), lg)
	if err != nil {
		return err
	}
	defer store.Close()

	var file seedFile
	if _, err := toml.DecodeFile(seedPath, &file); err != nil {
		return fmt.Errorf("decode seed file %s: %w", seedPath, err)
	}

	res := seed(ctx, content.NewManager(store, cfg.App.MaxLimit, lg), file, lg)
	lg.Info("seed finished", "inserted", res.inserted, "failed", res.failed)

	return nil
}

// seedFile maps a collection name to its records, e.g. [[horse]] tables.
type seedFile map[string][]map[string]any

type result struct {
	inserted int
	failed   int
}

// seed inserts every record of file in kind order. Invalid records and
// unknown collections are logged and skipped.
func seed(ctx context.Context, m *content.Manager, file seedFile, lg *slog.Logger) result {
	var res result

	for name, records := range file {
		if _, ok := content.KindByCollection(name); !ok {
			lg.Warn("skipping unknown collection", "collection", name, "records", len(records))
			res.failed += len(records)
		}
	}

	for _, k := range content.Kinds() {
		for i, fields := range file[k.Collection()] {
			rec, err := content.FromMap(k, fields)
			if err != nil {
				lg.Warn("skipping invalid record", "kind", k, "index", i, "error", err)
				res.failed++
				continue
			}

			id, err := m.CreateOne(ctx, rec)
			if err != nil {
				lg.Error("failed to insert record", "kind", k, "index", i, "error", err)
				res.failed++
				continue
			}

			lg.Debug("record inserted", "kind", k, "id", id)
			res.inserted++
		}
	}

	return res
}
