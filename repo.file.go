package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type fileLibraryStore struct {
	logger *zap.Logger
	config *StorageConfig
}

// NewFileLibraryStore provides an instance of flat file based library storage.
func NewFileLibraryStore(logger *zap.Logger, config *StorageConfig) (LibraryStore, error) {
	if config.Format != JSONFormat && config.Format != YAMLFormat {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorageFormat, config.Format)
	}
	return &fileLibraryStore{
		logger: logger,
		config: config,
	}, nil
}

// Load reads and decodes the whole library file.
func (fs *fileLibraryStore) Load(_ context.Context) ([]Book, error) {
	data, err := os.ReadFile(fs.config.FilePath)
	if errors.Is(err, os.ErrNotExist) {
		fs.logger.Debug("file store: no library file yet", zap.String("path", fs.config.FilePath))
		return []Book{}, nil
	}
	if err != nil {
		return nil, err
	}

	books, err := fs.decode(data)
	if err != nil {
		return nil, fmt.Errorf("malformed library file %s: %w", fs.config.FilePath, err)
	}
	return books, nil
}

// Save encodes the whole library and replaces the file content.
func (fs *fileLibraryStore) Save(_ context.Context, books []Book) error {
	if books == nil {
		books = []Book{}
	}
	data, err := fs.encode(books)
	if err != nil {
		return err
	}
	return os.WriteFile(fs.config.FilePath, data, 0o644)
}

// Close is a no-op, the file is only open during Load and Save.
func (fs *fileLibraryStore) Close() error {
	return nil
}

func (fs *fileLibraryStore) encode(books []Book) ([]byte, error) {
	if fs.config.Format == YAMLFormat {
		return yaml.Marshal(books)
	}
	return json.Marshal(books)
}

func (fs *fileLibraryStore) decode(data []byte) ([]Book, error) {
	books := []Book{}
	if fs.config.Format == YAMLFormat {
		yd := yaml.NewDecoder(bytes.NewReader(data))
		yd.KnownFields(true)
		if err := yd.Decode(&books); err != nil {
			return nil, err
		}
	} else {
		jd := json.NewDecoder(bytes.NewReader(data))
		jd.DisallowUnknownFields()
		if err := jd.Decode(&books); err != nil {
			return nil, err
		}
		if jd.More() {
			return nil, errors.New("unexpected data after the book list")
		}
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}
