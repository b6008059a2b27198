// Package testutils provides shared testing utilities across the application.
package testutils

import (
	"context"
	"errors"

	"github.com/stretchr/testify/mock"

	"github.com/jonesrussell/newsharvest/internal/domain"
)

var (
	// ErrInvalidResult is returned when a mock result cannot be type asserted
	ErrInvalidResult = errors.New("invalid mock result")
)

// MockArticleStore is a mock implementation of the article repository.
// It satisfies both the crawler's store contract and the read API's.
type MockArticleStore struct {
	mock.Mock
}

// NewMockArticleStore creates a new mock article store instance.
func NewMockArticleStore() *MockArticleStore {
	return &MockArticleStore{}
}

// ExistsBySourceURL reports whether an article with the given source URL is stored.
func (m *MockArticleStore) ExistsBySourceURL(ctx context.Context, sourceURL string) (bool, error) {
	args := m.Called(ctx, sourceURL)
	return args.Bool(0), args.Error(1)
}

// Insert stores a new article.
func (m *MockArticleStore) Insert(ctx context.Context, article *domain.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

// ReadCursor returns the persisted ingested-item count.
func (m *MockArticleStore) ReadCursor(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// WriteCursor persists the ingested-item count.
func (m *MockArticleStore) WriteCursor(ctx context.Context, total int) error {
	args := m.Called(ctx, total)
	return args.Error(0)
}

// List returns a page of stored articles, newest first.
func (m *MockArticleStore) List(ctx context.Context, begin, limit int) ([]*domain.Article, error) {
	args := m.Called(ctx, begin, limit)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	val, ok := args.Get(0).([]*domain.Article)
	if !ok {
		return nil, ErrInvalidResult
	}
	return val, nil
}

// Count returns the number of stored articles.
func (m *MockArticleStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// Filter returns articles matching a whitelisted column equality.
func (m *MockArticleStore) Filter(ctx context.Context, field, value string) ([]*domain.Article, error) {
	args := m.Called(ctx, field, value)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	val, ok := args.Get(0).([]*domain.Article)
	if !ok {
		return nil, ErrInvalidResult
	}
	return val, nil
}

// MockImageStore is a mock implementation of the image store.
type MockImageStore struct {
	mock.Mock
}

// NewMockImageStore creates a new mock image store instance.
func NewMockImageStore() *MockImageStore {
	return &MockImageStore{}
}

// Ensure mocks resolving an image into the asset directory.
func (m *MockImageStore) Ensure(ctx context.Context, assetID, sourceURL string) error {
	args := m.Called(ctx, assetID, sourceURL)
	return args.Error(0)
}
