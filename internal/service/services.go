package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/solar-catalog-api/internal/apperr"
	"github.com/solar-catalog-api/internal/config"
	"github.com/solar-catalog-api/internal/mailer"
	"github.com/solar-catalog-api/internal/models"
	"github.com/solar-catalog-api/internal/repository"
	"github.com/solar-catalog-api/internal/seed"
)

// ArticleService is the CRUD and query facade over the articles collection.
// Store failures come back wrapped in apperr.ErrUnavailable so an empty list
// always means an empty collection.
type ArticleService interface {
	List(ctx context.Context) ([]*models.Article, error)
	ListByCategory(ctx context.Context, category string) ([]*models.Article, error)
	Get(ctx context.Context, key string) (*models.Article, error)
	Create(ctx context.Context, in *models.ArticleInput) (string, error)
	Update(ctx context.Context, id string, patch *models.ArticleUpdate) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// ProductService is the CRUD and query facade over the products collection.
// Reads fall back to the seed dataset and report it through models.Source;
// writes only ever go to the store.
type ProductService interface {
	List(ctx context.Context) (*models.ProductSet, error)
	ListByCategory(ctx context.Context, category string) (*models.ProductSet, error)
	ListByAvailability(ctx context.Context, availability string) (*models.ProductSet, error)
	Get(ctx context.Context, id string) (*models.Product, models.Source, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id string, patch *models.ProductUpdate) error
	Delete(ctx context.Context, id string) error
	Seed(ctx context.Context) (*models.SeedReport, error)
	Count(ctx context.Context) (int, error)
}

// ContactService delivers contact-form submissions by email
type ContactService interface {
	Submit(ctx context.Context, req *models.ContactRequest) error
}

// ExportService streams collections for admin backups
type ExportService interface {
	StreamArticles(ctx context.Context, w http.ResponseWriter, format string) error
	StreamProducts(ctx context.Context, w http.ResponseWriter, format string) error
	GetCount(ctx context.Context, resource string) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Article ArticleService
	Product ProductService
	Contact ContactService
	Export  ExportService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, dataset *seed.Dataset, m mailer.Mailer, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Article: NewArticleService(repos.Article, log),
		Product: NewProductService(repos.Product, dataset, log),
		Contact: NewContactService(m, cfg.Email.From, cfg.Email.ContactInbox, log),
		Export:  newExportService(repos, log),
	}
}

// storeError marks a transport failure as apperr.ErrUnavailable.
// Context cancellation is passed through unchanged.
func storeError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, apperr.ErrUnavailable, err)
}

// writeError keeps not-found and duplicate outcomes, anything else is a store failure
func writeError(op string, err error) error {
	if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrAlreadyExists) {
		return err
	}
	return storeError(op, err)
}
