package validation

import (
	"errors"
	"testing"

	"github.com/solar-catalog-api/internal/apperr"
	"github.com/solar-catalog-api/internal/models"
)

func strPtr(s string) *string { return &s }

func fieldsOf(err error) []string {
	var verrs Errors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, len(verrs))
	for i, e := range verrs {
		fields[i] = e.Field
	}
	return fields
}

func validArticle() *models.ArticleInput {
	return &models.ArticleInput{
		Title:    "Maximum Power Point Tracking Explained",
		Excerpt:  "How MPPT squeezes every watt out of a solar array.",
		Content:  "Solar cells have a non-linear IV curve.",
		Category: models.CategoryTechnicalGuide,
		Tags:     []string{"mppt", "electronics"},
		Author:   models.Author{ID: "a1", Name: "Ines Moreau", Email: "ines@solar-racing.example"},
	}
}

func TestValidateArticleInput(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(a *models.ArticleInput)
		wantFields []string
	}{
		{"valid article", func(a *models.ArticleInput) {}, nil},
		{"missing title", func(a *models.ArticleInput) { a.Title = "" }, []string{"title"}},
		{"missing content", func(a *models.ArticleInput) { a.Content = "" }, []string{"content"}},
		{"unknown category", func(a *models.ArticleInput) { a.Category = "opinion" }, []string{"category"}},
		{"empty tag", func(a *models.ArticleInput) { a.Tags = []string{"ok", ""} }, []string{"tags.1"}},
		{"author without name", func(a *models.ArticleInput) { a.Author.Name = "" }, []string{"author.name"}},
		{"bad author email", func(a *models.ArticleInput) { a.Author.Email = "nope" }, []string{"author.email"}},
		{
			"several problems sorted by field",
			func(a *models.ArticleInput) { a.Title = ""; a.Category = "" },
			[]string{"category", "title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validArticle()
			tt.mutate(in)

			err := ValidateArticleInput(in)
			if tt.wantFields == nil {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, apperr.ErrInvalidInput) {
				t.Fatalf("Expected ErrInvalidInput, got %v", err)
			}
			got := fieldsOf(err)
			if len(got) != len(tt.wantFields) {
				t.Fatalf("Expected fields %v, got %v", tt.wantFields, got)
			}
			for i := range got {
				if got[i] != tt.wantFields[i] {
					t.Errorf("Expected fields %v, got %v", tt.wantFields, got)
				}
			}
		})
	}
}

func TestValidateArticleUpdate(t *testing.T) {
	if err := ValidateArticleUpdate(&models.ArticleUpdate{}); err == nil {
		t.Error("Expected error for empty update")
	}

	if err := ValidateArticleUpdate(&models.ArticleUpdate{Title: strPtr("New title")}); err != nil {
		t.Errorf("Expected valid update, got %v", err)
	}

	err := ValidateArticleUpdate(&models.ArticleUpdate{Category: strPtr("gossip"), Content: strPtr("")})
	got := fieldsOf(err)
	if len(got) != 2 || got[0] != "category" || got[1] != "content" {
		t.Errorf("Expected category and content errors, got %v", got)
	}
}

func validProduct() *models.Product {
	return &models.Product{
		ID:           "current-one",
		Name:         "Current One",
		Category:     models.ProductCategoryControlUnit,
		Availability: models.AvailabilityPreOrder,
		Features:     []models.Feature{{Title: "MPPT", Icon: "zap"}},
		Specifications: []models.Specification{
			{Label: "Weight", Value: "1.4 kg"},
		},
	}
}

func TestValidateProduct(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *models.Product)
		wantField string
	}{
		{"valid product", func(p *models.Product) {}, ""},
		{"missing id", func(p *models.Product) { p.ID = "" }, "id"},
		{"id not a slug", func(p *models.Product) { p.ID = "Current One" }, "id"},
		{"bad category", func(p *models.Product) { p.Category = "battery" }, "category"},
		{"bad availability", func(p *models.Product) { p.Availability = "sold-out" }, "availability"},
		{"feature without title", func(p *models.Product) { p.Features[0].Title = " " }, "features.0"},
		{"spec without label", func(p *models.Product) { p.Specifications[0].Label = "" }, "specifications.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(p)

			err := ValidateProduct(p)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			got := fieldsOf(err)
			if len(got) != 1 || got[0] != tt.wantField {
				t.Errorf("Expected field %s, got %v (%v)", tt.wantField, got, err)
			}
		})
	}
}

func TestValidateProductUpdate(t *testing.T) {
	if err := ValidateProductUpdate(&models.ProductUpdate{}); err == nil {
		t.Error("Expected error for empty update")
	}
	if err := ValidateProductUpdate(&models.ProductUpdate{Availability: strPtr("available")}); err != nil {
		t.Errorf("Expected valid update, got %v", err)
	}
	err := ValidateProductUpdate(&models.ProductUpdate{Availability: strPtr("gone")})
	if got := fieldsOf(err); len(got) != 1 || got[0] != "availability" {
		t.Errorf("Expected availability error, got %v", got)
	}
}

func TestValidateContact(t *testing.T) {
	valid := models.ContactRequest{
		Name:    "Sam Okafor",
		Email:   "sam@team.example",
		Message: "We would like a quote for two Current One units.",
	}
	if err := ValidateContact(&valid); err != nil {
		t.Fatalf("Expected valid contact, got %v", err)
	}

	bad := valid
	bad.Email = "sam at team"
	bad.Message = "short"
	got := fieldsOf(ValidateContact(&bad))
	if len(got) != 2 || got[0] != "email" || got[1] != "message" {
		t.Errorf("Expected email and message errors, got %v", got)
	}
}

func TestValidCategoryFilter(t *testing.T) {
	if !ValidCategoryFilter("", models.ValidArticleCategories) {
		t.Error("empty category should pass")
	}
	if !ValidCategoryFilter("all", models.ValidArticleCategories) {
		t.Error("'all' should pass")
	}
	if !ValidCategoryFilter("news", models.ValidArticleCategories) {
		t.Error("'news' should pass")
	}
	if ValidCategoryFilter("control-unit", models.ValidArticleCategories) {
		t.Error("product category should not pass article filter")
	}
}

func TestErrors_Error(t *testing.T) {
	err := Errors{{Field: "title", Message: "cannot be blank"}, {Field: "tags.0", Message: "too long"}}
	if err.Error() != "title: cannot be blank; tags.0: too long" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}
