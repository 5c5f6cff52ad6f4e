package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hance08/canopy/internal/config"
	"github.com/hance08/canopy/internal/events"
	"github.com/hance08/canopy/internal/events/kafka"
	"github.com/hance08/canopy/internal/log"
	"github.com/hance08/canopy/internal/service"
	"github.com/hance08/canopy/internal/store"
	"github.com/hance08/canopy/internal/store/memory"
)

type App struct {
	Service   *service.Service
	Store     store.Repository
	Publisher events.Publisher
}

// NewApp opens the configured store and event publisher and builds the
// services on top of them.
func NewApp(cfg *config.Config, migrationFS fs.FS) (*App, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	repo, err := openStore(cfg, migrationFS)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var pub events.Publisher = events.NopPublisher{}
	if len(cfg.Events.Brokers) > 0 {
		pub = kafka.NewPublisher(cfg.Events.Brokers)
	}

	svc, err := service.NewService(repo, cfg, pub)
	if err != nil {
		_ = pub.Close()
		_ = repo.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := pub.Close(); err != nil {
			log.Warnw("failed to close event publisher", "error", err)
		}
		if err := repo.Close(); err != nil {
			fmt.Printf("Error closing DB: %v\n", err)
		}
		_ = log.Sync()
	}

	return &App{
		Service:   svc,
		Store:     repo,
		Publisher: pub,
	}, cleanup, nil
}

func openStore(cfg *config.Config, migrationFS fs.FS) (store.Repository, error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverPostgres:
		return store.NewPostgresStore(cfg.Database.DSN, migrationFS)
	default:
		dbPath, err := DatabasePath(cfg)
		if err != nil {
			return nil, err
		}
		return store.NewStore(dbPath, migrationFS)
	}
}

// DatabasePath resolves the SQLite file location, defaulting to the app
// data directory.
func DatabasePath(cfg *config.Config) (string, error) {
	if cfg.Database.Path != "" {
		return ExpandPath(cfg.Database.Path)
	}
	appDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, "canopy.db"), nil
}

func DataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".canopy"), nil
	}

	return filepath.Join(configDir, "canopy"), nil
}

func ExpandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	if path[1] == '/' || path[1] == '\\' {
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
