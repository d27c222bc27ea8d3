package main

import (
	"context"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

type MockLibraryStore struct {
	LoadFunc  func(ctx context.Context) ([]Book, error)
	SaveFunc  func(ctx context.Context, books []Book) error
	CloseFunc func() error
}

// Load mocks the behavior of restoring the library by the storage.
func (m *MockLibraryStore) Load(ctx context.Context) ([]Book, error) {
	return m.LoadFunc(ctx)
}

// Save mocks the behavior of persisting the library by the storage.
func (m *MockLibraryStore) Save(ctx context.Context, books []Book) error {
	return m.SaveFunc(ctx, books)
}

// Close mocks the storage shutdown.
func (m *MockLibraryStore) Close() error {
	if m.CloseFunc == nil {
		return nil
	}
	return m.CloseFunc()
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `Sun, 02 Jul 2023 00:00:00 UTC` in time.RFC1123 format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}
