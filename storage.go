package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// LibraryStore defines the load/save boundary of the whole library.
// Load on a destination that does not exist yet returns no book and no error.
type LibraryStore interface {
	Load(ctx context.Context) ([]Book, error)
	Save(ctx context.Context, books []Book) error
	Close() error
}

// NewLibraryStore provides the storage backend selected by the configuration.
func NewLibraryStore(logger *zap.Logger, config *Config) (LibraryStore, error) {
	switch config.Storage.Driver {
	case FileDriver:
		return NewFileLibraryStore(logger, &config.Storage)
	case BoltDriver:
		client, err := GetBoltDBClient(config)
		if err != nil {
			return nil, err
		}
		return NewBoltLibraryStore(logger, &config.BoltDB, client), nil
	case RedisDriver:
		client, err := GetRedisClient(config)
		if err != nil {
			return nil, err
		}
		return NewRedisLibraryStore(logger, &config.Redis, client), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStorageDriver, config.Storage.Driver)
}

// decodeBookRecord decodes one json book record as written by Save.
// Unknown fields and trailing data are rejected.
func decodeBookRecord(data []byte) (Book, error) {
	var book Book
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&book); err != nil {
		return Book{}, err
	}
	if decoder.More() {
		return Book{}, errors.New("unexpected data after book record")
	}
	return book, nil
}
