package main

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

type boltLibraryStore struct {
	logger *zap.Logger
	client *bolt.DB
	config *BoltDBConfig
}

// GetBoltDBClient setup the database and the bucket then provides a ready to use client.
func GetBoltDBClient(config *Config) (*bolt.DB, error) {
	db, err := bolt.Open(config.BoltDB.FilePath, 0o600, &bolt.Options{Timeout: config.BoltDB.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open the database, %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, errB := tx.CreateBucketIfNotExists([]byte(config.BoltDB.BucketName)); errB != nil {
			return fmt.Errorf("failed to create %s bucket: %v", config.BoltDB.BucketName, errB)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set up bucket: %v", err)
	}
	return db, nil
}

// NewBoltLibraryStore provides an instance of bolt-based library storage.
func NewBoltLibraryStore(logger *zap.Logger, boltConfig *BoltDBConfig, client *bolt.DB) LibraryStore {
	return &boltLibraryStore{
		logger: logger,
		client: client,
		config: boltConfig,
	}
}

// Close shuts down the bolt-based library storage.
func (bs *boltLibraryStore) Close() error {
	return bs.client.Close()
}

// positionKey encodes a book position so that the cursor
// walks the bucket in insertion order.
func positionKey(pos int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(pos))
	return key
}

// Save replaces the bucket content with the given books in a single transaction.
func (bs *boltLibraryStore) Save(_ context.Context, books []Book) error {
	return bs.client.Update(func(tx *bolt.Tx) error {
		name := []byte(bs.config.BucketName)
		if err := tx.DeleteBucket(name); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		bucket, err := tx.CreateBucket(name)
		if err != nil {
			return err
		}
		for i, book := range books {
			bookBytes, err := json.Marshal(book)
			if err != nil {
				return err
			}
			if err = bucket.Put(positionKey(i), bookBytes); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load retrieves the list of all books stored in the bolt database, in order.
func (bs *boltLibraryStore) Load(_ context.Context) ([]Book, error) {
	tx, err := bs.client.Begin(false)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	books := []Book{}
	bucket := tx.Bucket([]byte(bs.config.BucketName))
	if bucket == nil {
		return books, nil
	}

	// Create a cursor on the books' bucket.
	c := bucket.Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		book, err := decodeBookRecord(v)
		if err != nil {
			return nil, fmt.Errorf("malformed book record at key %x: %w", k, err)
		}
		books = append(books, book)
	}
	return books, nil
}
