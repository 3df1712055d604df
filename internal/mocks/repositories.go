package mocks

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/solar-catalog-api/internal/apperr"
	"github.com/solar-catalog-api/internal/models"
	"github.com/solar-catalog-api/internal/repository"
)

// ErrStoreDown simulates an unreachable document store
var ErrStoreDown = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

// Verify interface compliance
var (
	_ repository.ArticleRepository = (*MockArticleRepository)(nil)
	_ repository.ProductRepository = (*MockProductRepository)(nil)
)

// MockArticleRepository is an in-memory articles collection
type MockArticleRepository struct {
	Articles    map[string]*models.Article
	Unreachable bool
	ListError   error
	GetError    error
	WriteError  error
	Writes      int
	ListCalls   int
	GetCalls    int
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[string]*models.Article),
	}
}

func (m *MockArticleRepository) fail(opErr error) error {
	if m.Unreachable {
		return ErrStoreDown
	}
	return opErr
}

func (m *MockArticleRepository) sorted(keep func(*models.Article) bool) []*models.Article {
	out := make([]*models.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		if keep(a) {
			out = append(out, a.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PublishedAt.Equal(out[j].PublishedAt) {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *MockArticleRepository) List(ctx context.Context) ([]*models.Article, error) {
	m.ListCalls++
	if err := m.fail(m.ListError); err != nil {
		return nil, err
	}
	return m.sorted(func(*models.Article) bool { return true }), nil
}

func (m *MockArticleRepository) ListByCategory(ctx context.Context, category string) ([]*models.Article, error) {
	m.ListCalls++
	if err := m.fail(m.ListError); err != nil {
		return nil, err
	}
	return m.sorted(func(a *models.Article) bool { return a.Category == category }), nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	m.GetCalls++
	if err := m.fail(m.GetError); err != nil {
		return nil, err
	}
	if a, ok := m.Articles[id]; ok {
		return a.Clone(), nil
	}
	return nil, nil
}

func (m *MockArticleRepository) Exists(ctx context.Context, id string) (bool, error) {
	if err := m.fail(m.GetError); err != nil {
		return false, err
	}
	_, exists := m.Articles[id]
	return exists, nil
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if err := m.fail(m.WriteError); err != nil {
		return err
	}
	if _, exists := m.Articles[article.ID]; exists {
		return fmt.Errorf("article %s: %w", article.ID, apperr.ErrAlreadyExists)
	}
	m.Articles[article.ID] = article.Clone()
	m.Writes++
	return nil
}

func (m *MockArticleRepository) Update(ctx context.Context, id string, patch *models.ArticleUpdate) error {
	if err := m.fail(m.WriteError); err != nil {
		return err
	}
	a, ok := m.Articles[id]
	if !ok {
		return fmt.Errorf("article %s: %w", id, apperr.ErrNotFound)
	}
	patch.Apply(a)
	m.Writes++
	return nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) error {
	if err := m.fail(m.WriteError); err != nil {
		return err
	}
	if _, ok := m.Articles[id]; !ok {
		return fmt.Errorf("article %s: %w", id, apperr.ErrNotFound)
	}
	delete(m.Articles, id)
	m.Writes++
	return nil
}

func (m *MockArticleRepository) StreamAll(ctx context.Context, callback func(*models.Article) error) error {
	articles, err := m.List(ctx)
	if err != nil {
		return err
	}
	for _, a := range articles {
		if err := callback(a); err != nil {
			return err
		}
	}
	return nil
}

// MockProductRepository is an in-memory products collection
type MockProductRepository struct {
	Products    map[string]*models.Product
	Unreachable bool
	ListError   error
	GetError    error
	WriteError  error
	Writes      int
	ExistsCalls int
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		Products: make(map[string]*models.Product),
	}
}

func (m *MockProductRepository) fail(opErr error) error {
	if m.Unreachable {
		return ErrStoreDown
	}
	return opErr
}

func (m *MockProductRepository) sorted(keep func(*models.Product) bool) []*models.Product {
	out := make([]*models.Product, 0, len(m.Products))
	for _, p := range m.Products {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *MockProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	if err := m.fail(m.ListError); err != nil {
		return nil, err
	}
	return m.sorted(func(*models.Product) bool { return true }), nil
}

func (m *MockProductRepository) ListByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	if err := m.fail(m.ListError); err != nil {
		return nil, err
	}
	return m.sorted(func(p *models.Product) bool { return p.Category == category }), nil
}

func (m *MockProductRepository) ListByAvailability(ctx context.Context, availability string) ([]*models.Product, error) {
	if err := m.fail(m.ListError); err != nil {
		return nil, err
	}
	return m.sorted(func(p *models.Product) bool { return p.Availability == availability }), nil
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if err := m.fail(m.GetError); err != nil {
		return nil, err
	}
	if p, ok := m.Products[id]; ok {
		return p.Clone(), nil
	}
	return nil, nil
}

func (m *MockProductRepository) Exists(ctx context.Context, id string) (bool, error) {
	m.ExistsCalls++
	if err := m.fail(m.GetError); err != nil {
		return false, err
	}
	_, exists := m.Products[id]
	return exists, nil
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := m.fail(m.WriteError); err != nil {
		return err
	}
	if _, exists := m.Products[product.ID]; exists {
		return fmt.Errorf("product %s: %w", product.ID, apperr.ErrAlreadyExists)
	}
	m.Products[product.ID] = product.Clone()
	m.Writes++
	return nil
}

func (m *MockProductRepository) Update(ctx context.Context, id string, patch *models.ProductUpdate) error {
	if err := m.fail(m.WriteError); err != nil {
		return err
	}
	p, ok := m.Products[id]
	if !ok {
		return fmt.Errorf("product %s: %w", id, apperr.ErrNotFound)
	}
	patch.Apply(p)
	m.Writes++
	return nil
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	if err := m.fail(m.WriteError); err != nil {
		return err
	}
	if _, ok := m.Products[id]; !ok {
		return fmt.Errorf("product %s: %w", id, apperr.ErrNotFound)
	}
	delete(m.Products, id)
	m.Writes++
	return nil
}

func (m *MockProductRepository) StreamAll(ctx context.Context, callback func(*models.Product) error) error {
	products, err := m.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		if err := callback(p); err != nil {
			return err
		}
	}
	return nil
}
