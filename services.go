package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type LibraryServiceProvider interface {
	Load(ctx context.Context) (*Library, error)
	Save(ctx context.Context, library *Library) error
}

type LibraryService struct {
	logger  *zap.Logger
	config  *Config
	storage LibraryStore
}

func NewLibraryService(logger *zap.Logger, config *Config, storage LibraryStore) LibraryServiceProvider {
	return &LibraryService{
		logger:  logger,
		config:  config,
		storage: storage,
	}
}

// Load restores the library from the storage. It never returns a nil library:
// on failure the previous content is dropped and an empty library comes with the error.
func (ls *LibraryService) Load(ctx context.Context) (*Library, error) {
	books, err := ls.storage.Load(ctx)
	if err != nil {
		ls.logger.Error("service: failed to load library", zap.String("driver", ls.driver()), zap.Error(err))
		return NewLibrary(), fmt.Errorf("failed to load library: %w", err)
	}
	ls.logger.Info("service: library loaded", zap.String("driver", ls.driver()), zap.Int("books", len(books)))
	return NewLibrary(books...), nil
}

// Save persists the whole library.
func (ls *LibraryService) Save(ctx context.Context, library *Library) error {
	books := library.All()
	if err := ls.storage.Save(ctx, books); err != nil {
		ls.logger.Error("service: failed to save library", zap.String("driver", ls.driver()), zap.Error(err))
		return fmt.Errorf("failed to save library: %w", err)
	}
	ls.logger.Info("service: library saved", zap.String("driver", ls.driver()), zap.Int("books", len(books)))
	return nil
}

func (ls *LibraryService) driver() string {
	if ls.config == nil {
		return ""
	}
	return ls.config.Storage.Driver
}
