package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/LachyC123/bloodline-arena-sub000/internal/config"
	"github.com/LachyC123/bloodline-arena-sub000/internal/constants"
	"github.com/LachyC123/bloodline-arena-sub000/internal/logging"
	"github.com/LachyC123/bloodline-arena-sub000/internal/storage"
)

const defaultConfigPath = "./arena_config.json"

// loadConfigOrExit resolves the server configuration. A missing default
// config file falls back to built-in defaults; an explicitly configured but
// unreadable or invalid file is fatal.
func loadConfigOrExit() *config.LoadedConfig {
	path := os.Getenv(constants.EnvConfigPath)
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			logging.Info("no config file found; using defaults", logging.Fields{"config_path": path})
			return config.Defaults()
		}
		logging.Fatal("Missing or invalid arena configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenDB(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{"db_path": dbPath})
	}
	return storage.NewSQLiteRepository(db)
}
