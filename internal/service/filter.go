package service

import (
	"strings"

	"github.com/solar-catalog-api/internal/models"
)

// ArticleFilter is the list-page view over an in-memory article slice.
// Category matches exactly ("" and "all" pass everything); Query is a
// case-insensitive substring of the title, the excerpt or any tag.
type ArticleFilter struct {
	Category string
	Query    string
}

// Matches reports whether a passes both predicates
func (f ArticleFilter) Matches(a *models.Article) bool {
	if !categoryMatches(f.Category, a.Category) {
		return false
	}
	q := normalizeQuery(f.Query)
	if q == "" {
		return true
	}
	if containsFold(a.Title, q) || containsFold(a.Excerpt, q) {
		return true
	}
	for _, tag := range a.Tags {
		if containsFold(tag, q) {
			return true
		}
	}
	return false
}

// Apply returns the matching articles in their original order
func (f ArticleFilter) Apply(articles []*models.Article) []*models.Article {
	out := make([]*models.Article, 0, len(articles))
	for _, a := range articles {
		if f.Matches(a) {
			out = append(out, a)
		}
	}
	return out
}

// ProductFilter is the list-page view over an in-memory product slice.
// Query is a case-insensitive substring of the name, the description or any highlight.
type ProductFilter struct {
	Category     string
	Availability string
	Query        string
}

// Matches reports whether p passes every predicate
func (f ProductFilter) Matches(p *models.Product) bool {
	if !categoryMatches(f.Category, p.Category) || !categoryMatches(f.Availability, p.Availability) {
		return false
	}
	q := normalizeQuery(f.Query)
	if q == "" {
		return true
	}
	if containsFold(p.Name, q) || containsFold(p.Description, q) {
		return true
	}
	for _, h := range p.Highlights {
		if containsFold(h, q) {
			return true
		}
	}
	return false
}

// Apply returns the matching products in their original order
func (f ProductFilter) Apply(products []*models.Product) []*models.Product {
	out := make([]*models.Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// FuzzyMatchArticle returns the first article whose id contains key or whose
// slugified title contains the slugified key. Order of articles decides ties.
func FuzzyMatchArticle(articles []*models.Article, key string) *models.Article {
	needle := strings.ToLower(strings.TrimSpace(key))
	if needle == "" {
		return nil
	}
	slugNeedle := Slugify(key)

	for _, a := range articles {
		if strings.Contains(strings.ToLower(a.ID), needle) {
			return a
		}
		if slugNeedle != "" && strings.Contains(Slugify(a.Title), slugNeedle) {
			return a
		}
	}
	return nil
}

// Slugify converts a title to a URL-safe slug
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func categoryMatches(want, got string) bool {
	return want == "" || want == "all" || want == got
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// containsFold reports whether lowered q is a substring of s, ignoring case
func containsFold(s, q string) bool {
	return strings.Contains(strings.ToLower(s), q)
}
