package service_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/solar-catalog-api/internal/models"
	"github.com/solar-catalog-api/internal/seed"
	"github.com/solar-catalog-api/internal/service"
)

func filterArticles() []*models.Article {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := testArticle("1", "Aero Basics", models.CategoryTutorial, base)
	a.Tags = []string{"aerodynamics"}
	b := testArticle("2", "Race Report: Darwin", models.CategorySolarRacing, base)
	b.Excerpt = "Three thousand kilometres of outback aerodynamics."
	c := testArticle("3", "Cell Chemistry", models.CategoryTechnicalGuide, base)
	d := testArticle("4", "AERO Testing in the Wind Tunnel", models.CategorySolarRacing, base)
	return []*models.Article{a, b, c, d}
}

func ids(articles []*models.Article) []string {
	out := make([]string, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.ID)
	}
	return out
}

func TestArticleFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter service.ArticleFilter
		want   []string
	}{
		{"no filter", service.ArticleFilter{}, []string{"1", "2", "3", "4"}},
		{"all category", service.ArticleFilter{Category: "all"}, []string{"1", "2", "3", "4"}},
		{"category", service.ArticleFilter{Category: models.CategorySolarRacing}, []string{"2", "4"}},
		{"query title case-insensitive", service.ArticleFilter{Query: "aero"}, []string{"1", "2", "4"}},
		{"query tag", service.ArticleFilter{Query: "AERODYNAMICS"}, []string{"1", "2"}},
		{"both", service.ArticleFilter{Category: models.CategorySolarRacing, Query: "aero"}, []string{"2", "4"}},
		{"nothing", service.ArticleFilter{Query: "hydrogen"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(tt.filter.Apply(filterArticles()))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestArticleFilter_Commutes(t *testing.T) {
	articles := filterArticles()
	byCategory := service.ArticleFilter{Category: models.CategorySolarRacing}
	byQuery := service.ArticleFilter{Query: "aero"}

	categoryFirst := byQuery.Apply(byCategory.Apply(articles))
	queryFirst := byCategory.Apply(byQuery.Apply(articles))

	if !reflect.DeepEqual(ids(categoryFirst), ids(queryFirst)) {
		t.Errorf("Filters do not commute: %v vs %v", ids(categoryFirst), ids(queryFirst))
	}
}

func TestProductFilter(t *testing.T) {
	products := seed.Default().Products()

	tests := []struct {
		name   string
		filter service.ProductFilter
		want   []string
	}{
		{"no filter", service.ProductFilter{}, []string{"current-one", "helios-array", "pit-link"}},
		{"category", service.ProductFilter{Category: models.ProductCategoryAccessory}, []string{"pit-link"}},
		{"availability", service.ProductFilter{Availability: models.AvailabilityPreOrder}, []string{"current-one"}},
		{"query name", service.ProductFilter{Query: "helios"}, []string{"helios-array"}},
		{"query highlight", service.ProductFilter{Query: "mppt channels"}, []string{"current-one"}},
		{"mismatch", service.ProductFilter{Category: models.ProductCategorySolarPanel, Availability: models.AvailabilityPreOrder}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make([]string, 0)
			for _, p := range tt.filter.Apply(products) {
				got = append(got, p.ID)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestProductFilter_Commutes(t *testing.T) {
	products := seed.Default().Products()
	a := service.ProductFilter{Availability: models.AvailabilityAvailable}
	b := service.ProductFilter{Query: "panel"}

	ab := a.Apply(b.Apply(products))
	ba := b.Apply(a.Apply(products))
	if !reflect.DeepEqual(ab, ba) {
		t.Error("Product filters do not commute")
	}
}

func TestFuzzyMatchArticle_Empty(t *testing.T) {
	if got := service.FuzzyMatchArticle(filterArticles(), "   "); got != nil {
		t.Errorf("Blank key should not match, got %s", got.ID)
	}
	if got := service.FuzzyMatchArticle(nil, "aero"); got != nil {
		t.Error("Expected nil for empty list")
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":              "hello-world",
		"  Race Report: Darwin!  ": "race-report-darwin",
		"MPPT -- 99% efficient":    "mppt-99-efficient",
		"---":                      "",
		"Über Cells":               "ber-cells",
		"already-a-slug":           "already-a-slug",
	}
	for in, want := range tests {
		if got := service.Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
