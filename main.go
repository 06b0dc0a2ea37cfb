package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/agno/worksphere/internal/api"
	"github.com/agno/worksphere/internal/app"
	"github.com/agno/worksphere/internal/credential"
	"github.com/agno/worksphere/internal/model"
	"github.com/agno/worksphere/internal/notify"
	"github.com/agno/worksphere/internal/store"
	"github.com/agno/worksphere/internal/ui/setup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "worksphere: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := model.DefaultConfigPath()
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	token, _ := credential.Get(credential.KeyAPIToken)

	// First run: collect the backend URL and token, then persist them.
	if cfg.API.BaseURL == "" || token == "" {
		values, err := setup.Run()
		if err != nil {
			return err
		}

		cfg.API.BaseURL = values.BaseURL
		if err := model.SaveConfig(configPath, cfg); err != nil {
			return err
		}
		if err := credential.Set(credential.KeyAPIToken, values.Token); err != nil {
			return err
		}
		token = values.Token
	}

	client := api.NewClient(cfg.API.BaseURL, token)
	svc := notify.NewService(client)

	cache, err := openCache()
	if err != nil {
		// The cache is an optimization; run without it.
		log.Printf("opening notification cache: %v", err)
	}

	opts := []notify.ManagerOption{
		notify.WithIntervals(
			time.Duration(cfg.API.RefreshIntervalSec)*time.Second,
			time.Duration(cfg.API.StatsIntervalSec)*time.Second,
		),
	}
	if cache != nil {
		defer cache.Close()
		opts = append(opts, notify.WithStore(cache))
	}

	manager := notify.NewManager(svc, opts...)
	if cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		manager.LoadCached(ctx)
		cancel()
	}

	return app.Run(manager)
}

// openCache opens the local notification cache database under the
// user's config directory.
func openCache() (*store.SQLiteStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}

	dir := filepath.Join(home, ".config", "worksphere")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return store.NewSQLiteStore(filepath.Join(dir, "notifications.db"))
}
