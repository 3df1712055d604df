package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/solar-catalog-api/internal/apperr"
	"github.com/solar-catalog-api/internal/models"
	"github.com/solar-catalog-api/internal/repository"
	"github.com/solar-catalog-api/internal/seed"
	"github.com/solar-catalog-api/internal/validation"
)

type productService struct {
	repo repository.ProductRepository
	seed *seed.Dataset
	log  zerolog.Logger
}

// NewProductService creates a ProductService over repo that falls back to dataset
func NewProductService(repo repository.ProductRepository, dataset *seed.Dataset, log zerolog.Logger) ProductService {
	return &productService{
		repo: repo,
		seed: dataset,
		log:  log.With().Str("service", "product").Logger(),
	}
}

// List returns all products ordered by name
func (s *productService) List(ctx context.Context) (*models.ProductSet, error) {
	products, err := s.repo.List(ctx)
	return s.orSeed(ctx, "list", products, err, func(*models.Product) bool { return true })
}

// ListByCategory returns the products of one category. "all" lists everything.
func (s *productService) ListByCategory(ctx context.Context, category string) (*models.ProductSet, error) {
	if category == "" || category == "all" {
		return s.List(ctx)
	}
	if !models.ValidProductCategories[category] {
		return nil, validation.Errors{{Field: "category", Message: "unknown product category", Value: category}}
	}

	products, err := s.repo.ListByCategory(ctx, category)
	return s.orSeed(ctx, "list by category", products, err, func(p *models.Product) bool {
		return p.Category == category
	})
}

// ListByAvailability returns the products in one availability state
func (s *productService) ListByAvailability(ctx context.Context, availability string) (*models.ProductSet, error) {
	if availability == "" || availability == "all" {
		return s.List(ctx)
	}
	if !models.ValidAvailabilities[availability] {
		return nil, validation.Errors{{Field: "availability", Message: "unknown availability", Value: availability}}
	}

	products, err := s.repo.ListByAvailability(ctx, availability)
	return s.orSeed(ctx, "list by availability", products, err, func(p *models.Product) bool {
		return p.Availability == availability
	})
}

// Get returns the stored product, or the seed product with the same id when
// the store fails or has no such document. A nil product means neither has it.
func (s *productService) Get(ctx context.Context, id string) (*models.Product, models.Source, error) {
	product, err := s.repo.GetByID(ctx, id)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, "", ctxErr
	}
	if err == nil && product != nil {
		return product, models.SourceStore, nil
	}

	if err != nil {
		s.log.Warn().Err(err).Str("id", id).Msg("Product store unavailable, serving seed data")
	}
	return s.seed.Get(id), models.SourceSeed, nil
}

// Create stores a new product. The id is chosen by the caller.
func (s *productService) Create(ctx context.Context, product *models.Product) error {
	if err := validation.ValidateProduct(product); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.log.Error().Err(err).Str("id", product.ID).Msg("Failed to create product")
		return writeError("create product", err)
	}

	s.log.Info().Str("id", product.ID).Msg("Product created")
	return nil
}

// Update checks the product exists in the store and writes the patch there.
// Nothing is queued when the store is down.
func (s *productService) Update(ctx context.Context, id string, patch *models.ProductUpdate) error {
	if err := validation.ValidateProductUpdate(patch); err != nil {
		return err
	}

	if err := s.mustExist(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("Failed to update product")
		return writeError("update product", err)
	}

	s.log.Info().Str("id", id).Msg("Product updated")
	return nil
}

// Delete checks the product exists in the store and removes it
func (s *productService) Delete(ctx context.Context, id string) error {
	if err := s.mustExist(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("Failed to delete product")
		return writeError("delete product", err)
	}

	s.log.Info().Str("id", id).Msg("Product deleted")
	return nil
}

// Seed inserts every seed product whose id is not in the store yet. Each id
// is checked on its own, so running it again inserts nothing.
func (s *productService) Seed(ctx context.Context) (*models.SeedReport, error) {
	report := &models.SeedReport{Inserted: []string{}, Skipped: []string{}}

	for _, product := range s.seed.Products() {
		exists, err := s.repo.Exists(ctx, product.ID)
		if err != nil {
			s.log.Error().Err(err).Str("id", product.ID).Msg("Seed aborted")
			return report, storeError("seed products", err)
		}
		if exists {
			report.Skipped = append(report.Skipped, product.ID)
			continue
		}

		if err := s.repo.Create(ctx, product); err != nil {
			if errors.Is(err, apperr.ErrAlreadyExists) {
				report.Skipped = append(report.Skipped, product.ID)
				continue
			}
			s.log.Error().Err(err).Str("id", product.ID).Msg("Seed aborted")
			return report, storeError("seed products", err)
		}
		report.Inserted = append(report.Inserted, product.ID)
	}

	s.log.Info().
		Int("inserted", len(report.Inserted)).
		Int("skipped", len(report.Skipped)).
		Msg("Products seeded")
	return report, nil
}

// Count is len(List), so it counts seed data when the store is down
func (s *productService) Count(ctx context.Context) (int, error) {
	set, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(set.Products), nil
}

func (s *productService) mustExist(ctx context.Context, id string) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("Failed to check product existence")
		return storeError("check product", err)
	}
	if !exists {
		return fmt.Errorf("product %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// orSeed returns the store result, or the seed products matching keep when
// the store failed or returned nothing
func (s *productService) orSeed(ctx context.Context, op string, products []*models.Product, err error, keep func(*models.Product) bool) (*models.ProductSet, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err == nil && len(products) > 0 {
		return &models.ProductSet{Products: products, Source: models.SourceStore}, nil
	}

	if err != nil {
		s.log.Warn().Err(err).Str("op", op).Msg("Product store unavailable, serving seed data")
	} else {
		s.log.Debug().Str("op", op).Msg("Product store empty, serving seed data")
	}
	return &models.ProductSet{Products: s.seed.Filter(keep), Source: models.SourceSeed}, nil
}
