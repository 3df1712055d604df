package service_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"github.com/solar-catalog-api/internal/apperr"
	"github.com/solar-catalog-api/internal/mocks"
	"github.com/solar-catalog-api/internal/models"
	"github.com/solar-catalog-api/internal/seed"
	"github.com/solar-catalog-api/internal/service"
)

func newProductFixture() (*mocks.MockProductRepository, service.ProductService) {
	repo := mocks.NewMockProductRepository()
	return repo, service.NewProductService(repo, seed.Default(), zerolog.Nop())
}

func TestProductService_SeedListGet(t *testing.T) {
	repo, svc := newProductFixture()
	ctx := context.Background()

	report, err := svc.Seed(ctx)
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if len(report.Inserted) != 3 || len(report.Skipped) != 0 {
		t.Fatalf("Expected 3 inserted, got %+v", report)
	}

	set, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if set.Source != models.SourceStore {
		t.Errorf("Expected store source after seeding, got %s", set.Source)
	}

	wantNames := []string{"Current One", "Helios Array", "Pit Link Telemetry Kit"}
	if len(set.Products) != len(wantNames) {
		t.Fatalf("Expected %d products, got %d", len(wantNames), len(set.Products))
	}
	for i, name := range wantNames {
		if set.Products[i].Name != name {
			t.Errorf("Product %d: expected %q, got %q", i, name, set.Products[i].Name)
		}
	}

	product, source, err := svc.Get(ctx, "current-one")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if source != models.SourceStore {
		t.Errorf("Expected store source, got %s", source)
	}
	if product.Category != models.ProductCategoryControlUnit || product.Availability != models.AvailabilityPreOrder {
		t.Errorf("Unexpected current-one: category=%s availability=%s", product.Category, product.Availability)
	}
	if repo.Writes != 3 {
		t.Errorf("Expected 3 writes, got %d", repo.Writes)
	}
}

func TestProductService_SeedIdempotent(t *testing.T) {
	repo, svc := newProductFixture()
	ctx := context.Background()

	if _, err := svc.Seed(ctx); err != nil {
		t.Fatalf("First seed failed: %v", err)
	}
	report, err := svc.Seed(ctx)
	if err != nil {
		t.Fatalf("Second seed failed: %v", err)
	}

	if len(report.Inserted) != 0 || len(report.Skipped) != 3 {
		t.Errorf("Second seed should skip everything, got %+v", report)
	}
	if len(repo.Products) != 3 {
		t.Errorf("Expected 3 stored products, got %d", len(repo.Products))
	}
	if repo.Writes != 3 {
		t.Errorf("Second seed wrote again: %d writes", repo.Writes)
	}
}

func TestProductService_SeedKeepsExistingDocument(t *testing.T) {
	repo, svc := newProductFixture()
	edited := seed.Default().Get("helios-array")
	edited.Price = "On request"
	repo.Products[edited.ID] = edited

	report, err := svc.Seed(context.Background())
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if !reflect.DeepEqual(report.Skipped, []string{"helios-array"}) {
		t.Errorf("Expected helios-array skipped, got %+v", report.Skipped)
	}
	if repo.Products["helios-array"].Price != "On request" {
		t.Error("Seed overwrote an existing document")
	}
}

func TestProductService_SeedUnavailable(t *testing.T) {
	repo, svc := newProductFixture()
	repo.Unreachable = true

	_, err := svc.Seed(context.Background())
	if !errors.Is(err, apperr.ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
}

func TestProductService_FallbackEquivalence(t *testing.T) {
	repo, svc := newProductFixture()
	repo.Unreachable = true
	ctx := context.Background()

	for _, want := range seed.Default().Products() {
		got, source, err := svc.Get(ctx, want.ID)
		if err != nil {
			t.Fatalf("Get(%s) failed: %v", want.ID, err)
		}
		if source != models.SourceSeed {
			t.Errorf("Get(%s): expected seed source, got %s", want.ID, source)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Get(%s) fallback differs from seed:\n got %+v\nwant %+v", want.ID, got, want)
		}
	}

	set, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if set.Source != models.SourceSeed {
		t.Errorf("Expected seed source, got %s", set.Source)
	}
	if !reflect.DeepEqual(set.Products, seed.Default().Products()) {
		t.Error("List fallback differs from the seed dataset")
	}
}

func TestProductService_EmptyStoreFallsBack(t *testing.T) {
	_, svc := newProductFixture()

	set, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if set.Source != models.SourceSeed || len(set.Products) != 3 {
		t.Errorf("Expected 3 seed products, got %d from %s", len(set.Products), set.Source)
	}

	product, source, err := svc.Get(context.Background(), "pit-link")
	if err != nil || product == nil || source != models.SourceSeed {
		t.Errorf("Expected seed pit-link, got %+v %s %v", product, source, err)
	}
}

func TestProductService_GetUnknown(t *testing.T) {
	_, svc := newProductFixture()

	product, _, err := svc.Get(context.Background(), "flux-capacitor")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if product != nil {
		t.Errorf("Expected nil product, got %+v", product)
	}
}

func TestProductService_GetCancelled(t *testing.T) {
	repo, svc := newProductFixture()
	repo.Unreachable = true
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := svc.Get(ctx, "current-one")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestProductService_ListFilters(t *testing.T) {
	_, svc := newProductFixture()
	ctx := context.Background()
	if _, err := svc.Seed(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	panels, err := svc.ListByCategory(ctx, models.ProductCategorySolarPanel)
	if err != nil {
		t.Fatalf("ListByCategory failed: %v", err)
	}
	if len(panels.Products) != 1 || panels.Products[0].ID != "helios-array" {
		t.Errorf("Unexpected solar panels: %+v", panels.Products)
	}

	available, err := svc.ListByAvailability(ctx, models.AvailabilityAvailable)
	if err != nil {
		t.Fatalf("ListByAvailability failed: %v", err)
	}
	if len(available.Products) != 1 || available.Products[0].ID != "helios-array" {
		t.Errorf("Unexpected available products: %+v", available.Products)
	}

	if _, err := svc.ListByCategory(ctx, "hovercraft"); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("Expected invalid input, got %v", err)
	}
	if _, err := svc.ListByAvailability(ctx, "someday"); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("Expected invalid input, got %v", err)
	}
}

func TestProductService_FilteredFallback(t *testing.T) {
	repo, svc := newProductFixture()
	repo.Unreachable = true

	set, err := svc.ListByAvailability(context.Background(), models.AvailabilityComingSoon)
	if err != nil {
		t.Fatalf("ListByAvailability failed: %v", err)
	}
	if set.Source != models.SourceSeed || len(set.Products) != 1 || set.Products[0].ID != "pit-link" {
		t.Errorf("Unexpected fallback result: %+v", set)
	}
}

func TestProductService_CreateDuplicate(t *testing.T) {
	repo, svc := newProductFixture()
	product := seed.Default().Get("current-one")

	if err := svc.Create(context.Background(), product); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	err := svc.Create(context.Background(), product)
	if !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("Expected ErrAlreadyExists, got %v", err)
	}
	if repo.Writes != 1 {
		t.Errorf("Expected 1 write, got %d", repo.Writes)
	}
}

func TestProductService_CreateInvalid(t *testing.T) {
	_, svc := newProductFixture()

	err := svc.Create(context.Background(), &models.Product{ID: "Not A Slug", Name: "Bad"})
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("Expected invalid input, got %v", err)
	}
}

func TestProductService_UpdateAndDelete(t *testing.T) {
	repo, svc := newProductFixture()
	ctx := context.Background()
	if _, err := svc.Seed(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	availability := models.AvailabilityAvailable
	if err := svc.Update(ctx, "current-one", &models.ProductUpdate{Availability: &availability}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if repo.Products["current-one"].Availability != models.AvailabilityAvailable {
		t.Error("Update not applied")
	}

	if err := svc.Delete(ctx, "pit-link"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := repo.Products["pit-link"]; ok {
		t.Error("pit-link still stored")
	}
}

func TestProductService_UpdateMissingDoesNotWrite(t *testing.T) {
	repo, svc := newProductFixture()
	name := "Renamed"

	err := svc.Update(context.Background(), "current-one", &models.ProductUpdate{Name: &name})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for a seed-only product, got %v", err)
	}
	if repo.Writes != 0 {
		t.Errorf("Expected no writes, got %d", repo.Writes)
	}
}

func TestProductService_WritesFailWhenStoreDown(t *testing.T) {
	repo, svc := newProductFixture()
	repo.Unreachable = true

	if err := svc.Delete(context.Background(), "current-one"); !errors.Is(err, apperr.ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
	if err := svc.Create(context.Background(), seed.Default().Get("pit-link")); !errors.Is(err, apperr.ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
}

func TestProductService_Count(t *testing.T) {
	_, svc := newProductFixture()

	n, err := svc.Count(context.Background())
	if err != nil || n != 3 {
		t.Errorf("Expected 3 (seed), got %d (err %v)", n, err)
	}
}
