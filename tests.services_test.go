package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Ensure the service restores the stored books in order.
func TestLibraryService_Load(t *testing.T) {
	mockRepo := &MockLibraryStore{
		LoadFunc: func(ctx context.Context) ([]Book, error) {
			return testBooks(), nil
		},
	}
	ls := NewLibraryService(zap.NewNop(), DefaultConfig(), mockRepo)

	library, err := ls.Load(context.Background())
	assert.NoError(t, err)
	require.NotNil(t, library)
	assert.Equal(t, testBooks(), library.All())
}

// Ensure a load failure yields an empty library along with the error.
func TestLibraryService_LoadFailure(t *testing.T) {
	storageErr := errors.New("storage failure")
	mockRepo := &MockLibraryStore{
		LoadFunc: func(ctx context.Context) ([]Book, error) {
			return nil, storageErr
		},
	}
	ls := NewLibraryService(zap.NewNop(), nil, mockRepo)

	library, err := ls.Load(context.Background())
	assert.ErrorIs(t, err, storageErr)
	assert.EqualError(t, err, "failed to load library: storage failure")
	require.NotNil(t, library)
	assert.True(t, library.IsEmpty())
}

// Ensure the service hands the whole library to the storage.
func TestLibraryService_Save(t *testing.T) {
	var saved []Book
	mockRepo := &MockLibraryStore{
		SaveFunc: func(ctx context.Context, books []Book) error {
			saved = books
			return nil
		},
	}
	ls := NewLibraryService(zap.NewNop(), DefaultConfig(), mockRepo)

	t.Run("should pass: populated library", func(t *testing.T) {
		err := ls.Save(context.Background(), NewLibrary(testBooks()...))
		assert.NoError(t, err)
		assert.Equal(t, testBooks(), saved)
	})

	t.Run("should pass: empty library", func(t *testing.T) {
		err := ls.Save(context.Background(), NewLibrary())
		assert.NoError(t, err)
		assert.NotNil(t, saved)
		assert.Empty(t, saved)
	})

	t.Run("should fail: storage failure", func(t *testing.T) {
		storageErr := errors.New("disk full")
		mockRepo.SaveFunc = func(ctx context.Context, books []Book) error {
			return storageErr
		}
		err := ls.Save(context.Background(), NewLibrary(testBooks()...))
		assert.ErrorIs(t, err, storageErr)
		assert.EqualError(t, err, "failed to save library: disk full")
	})
}

// Ensure load after save reproduces the library through a real file store.
func TestLibraryService_RoundTrip(t *testing.T) {
	fs, _ := newTestFileStore(t, JSONFormat)
	ls := NewLibraryService(zap.NewNop(), DefaultConfig(), fs)

	for _, books := range [][]Book{testBooks(), {}} {
		require.NoError(t, ls.Save(context.Background(), NewLibrary(books...)))
		library, err := ls.Load(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, books, library.All())
	}
}
