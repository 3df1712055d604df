package mocks

import (
	"context"
	"net/http"
	"sync"

	"github.com/solar-catalog-api/internal/apperr"
	"github.com/solar-catalog-api/internal/mailer"
	"github.com/solar-catalog-api/internal/models"
	"github.com/solar-catalog-api/internal/service"
)

// Verify interface compliance
var (
	_ service.ArticleService = (*MockArticleService)(nil)
	_ service.ProductService = (*MockProductService)(nil)
	_ service.ContactService = (*MockContactService)(nil)
	_ service.ExportService  = (*MockExportService)(nil)
	_ mailer.Mailer          = (*MockMailer)(nil)
)

// MockMailer records sent messages. FailAt makes the n-th send (1-based) fail with Err.
type MockMailer struct {
	mu     sync.Mutex
	Sent   []mailer.Message
	FailAt int
	Err    error
}

func NewMockMailer() *MockMailer {
	return &MockMailer{Sent: make([]mailer.Message, 0)}
}

func (m *MockMailer) Send(ctx context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailAt > 0 && len(m.Sent)+1 == m.FailAt {
		m.FailAt = 0
		return m.Err
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

// MockArticleService is a mock implementation of ArticleService
type MockArticleService struct {
	Articles  []*models.Article
	Err       error
	Created   []*models.ArticleInput
	Updated   map[string]*models.ArticleUpdate
	Deleted   []string
	CreateErr error
	UpdateErr error
	DeleteErr error
}

func NewMockArticleService() *MockArticleService {
	return &MockArticleService{
		Articles: make([]*models.Article, 0),
		Updated:  make(map[string]*models.ArticleUpdate),
	}
}

func (m *MockArticleService) List(ctx context.Context) ([]*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Articles, nil
}

func (m *MockArticleService) ListByCategory(ctx context.Context, category string) ([]*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]*models.Article, 0)
	for _, a := range m.Articles {
		if category == "" || category == "all" || a.Category == category {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockArticleService) Get(ctx context.Context, key string) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, a := range m.Articles {
		if a.ID == key {
			return a, nil
		}
	}
	return nil, nil
}

func (m *MockArticleService) Create(ctx context.Context, in *models.ArticleInput) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	m.Created = append(m.Created, in)
	return "test-article-id", nil
}

func (m *MockArticleService) Update(ctx context.Context, id string, patch *models.ArticleUpdate) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.Updated[id] = patch
	return nil
}

func (m *MockArticleService) Delete(ctx context.Context, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Deleted = append(m.Deleted, id)
	return nil
}

func (m *MockArticleService) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Articles), nil
}

// MockProductService is a mock implementation of ProductService.
// Every read reports Source.
type MockProductService struct {
	Products  []*models.Product
	Source    models.Source
	Err       error
	WriteErr  error
	Created   []*models.Product
	Updated   map[string]*models.ProductUpdate
	Deleted   []string
	SeedCalls int
}

func NewMockProductService() *MockProductService {
	return &MockProductService{
		Products: make([]*models.Product, 0),
		Source:   models.SourceStore,
		Updated:  make(map[string]*models.ProductUpdate),
	}
}

func (m *MockProductService) filter(keep func(*models.Product) bool) (*models.ProductSet, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]*models.Product, 0)
	for _, p := range m.Products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return &models.ProductSet{Products: out, Source: m.Source}, nil
}

func (m *MockProductService) List(ctx context.Context) (*models.ProductSet, error) {
	return m.filter(func(*models.Product) bool { return true })
}

func (m *MockProductService) ListByCategory(ctx context.Context, category string) (*models.ProductSet, error) {
	return m.filter(func(p *models.Product) bool {
		return category == "" || category == "all" || p.Category == category
	})
}

func (m *MockProductService) ListByAvailability(ctx context.Context, availability string) (*models.ProductSet, error) {
	return m.filter(func(p *models.Product) bool {
		return availability == "" || availability == "all" || p.Availability == availability
	})
}

func (m *MockProductService) Get(ctx context.Context, id string) (*models.Product, models.Source, error) {
	if m.Err != nil {
		return nil, "", m.Err
	}
	for _, p := range m.Products {
		if p.ID == id {
			return p, m.Source, nil
		}
	}
	return nil, m.Source, nil
}

func (m *MockProductService) Create(ctx context.Context, product *models.Product) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	for _, p := range m.Products {
		if p.ID == product.ID {
			return apperr.ErrAlreadyExists
		}
	}
	m.Created = append(m.Created, product)
	return nil
}

func (m *MockProductService) Update(ctx context.Context, id string, patch *models.ProductUpdate) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Updated[id] = patch
	return nil
}

func (m *MockProductService) Delete(ctx context.Context, id string) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Deleted = append(m.Deleted, id)
	return nil
}

func (m *MockProductService) Seed(ctx context.Context) (*models.SeedReport, error) {
	m.SeedCalls++
	if m.WriteErr != nil {
		return nil, m.WriteErr
	}
	report := &models.SeedReport{Inserted: []string{}, Skipped: []string{}}
	for _, p := range m.Products {
		report.Skipped = append(report.Skipped, p.ID)
	}
	return report, nil
}

func (m *MockProductService) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Products), nil
}

// MockContactService is a mock implementation of ContactService
type MockContactService struct {
	Submitted []*models.ContactRequest
	Err       error
}

func NewMockContactService() *MockContactService {
	return &MockContactService{Submitted: make([]*models.ContactRequest, 0)}
}

func (m *MockContactService) Submit(ctx context.Context, req *models.ContactRequest) error {
	if m.Err != nil {
		return m.Err
	}
	m.Submitted = append(m.Submitted, req)
	return nil
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	StreamArticlesFunc func(ctx context.Context, w http.ResponseWriter, format string) error
	StreamProductsFunc func(ctx context.Context, w http.ResponseWriter, format string) error
	Counts             map[string]int
}

func NewMockExportService() *MockExportService {
	return &MockExportService{
		Counts: map[string]int{
			"articles": 0,
			"products": 0,
		},
	}
}

func (m *MockExportService) StreamArticles(ctx context.Context, w http.ResponseWriter, format string) error {
	if m.StreamArticlesFunc != nil {
		return m.StreamArticlesFunc(ctx, w, format)
	}
	return nil
}

func (m *MockExportService) StreamProducts(ctx context.Context, w http.ResponseWriter, format string) error {
	if m.StreamProductsFunc != nil {
		return m.StreamProductsFunc(ctx, w, format)
	}
	return nil
}

func (m *MockExportService) GetCount(ctx context.Context, resource string) (int, error) {
	return m.Counts[resource], nil
}
