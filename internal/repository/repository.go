package repository

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"github.com/solar-catalog-api/internal/database"
	"github.com/solar-catalog-api/internal/models"
)

// ArticleRepository is the document store client for the articles collection.
// Reads return (nil, nil) for a missing document; writes on a missing
// document return apperr.ErrNotFound.
type ArticleRepository interface {
	List(ctx context.Context) ([]*models.Article, error)
	ListByCategory(ctx context.Context, category string) ([]*models.Article, error)
	GetByID(ctx context.Context, id string) (*models.Article, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, id string, patch *models.ArticleUpdate) error
	Delete(ctx context.Context, id string) error
	StreamAll(ctx context.Context, callback func(*models.Article) error) error
}

// ProductRepository is the document store client for the products collection
type ProductRepository interface {
	List(ctx context.Context) ([]*models.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*models.Product, error)
	ListByAvailability(ctx context.Context, availability string) ([]*models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id string, patch *models.ProductUpdate) error
	Delete(ctx context.Context, id string) error
	StreamAll(ctx context.Context, callback func(*models.Product) error) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article ArticleRepository
	Product ProductRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article: NewArticleRepo(db),
		Product: NewProductRepo(db),
	}
}

// isUniqueViolation reports a postgres unique_violation (23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
