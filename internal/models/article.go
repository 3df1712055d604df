package models

import (
	"slices"
	"time"
)

// Article categories
const (
	CategorySolarRacing    = "solar-racing"
	CategoryTechnicalGuide = "technical-guide"
	CategoryNews           = "news"
	CategoryCaseStudy      = "case-study"
	CategoryTutorial       = "tutorial"
)

// ValidArticleCategories defines allowed article categories
var ValidArticleCategories = map[string]bool{
	CategorySolarRacing:    true,
	CategoryTechnicalGuide: true,
	CategoryNews:           true,
	CategoryCaseStudy:      true,
	CategoryTutorial:       true,
}

// WordsPerMinute is the reading speed used for ReadingTime
const WordsPerMinute = 200

// Author is embedded in every article. It is denormalized on purpose and
// never checked against any other record.
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Bio   string `json:"bio,omitempty"`
	Image string `json:"image,omitempty"`
	Email string `json:"email,omitempty"`
}

// Article represents an education/blog article stored in the articles collection
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Author      Author    `json:"author"`
	CoverImage  string    `json:"coverImage,omitempty"`
	Featured    bool      `json:"featured,omitempty"`
	ReadingTime int       `json:"readingTime"`
	PublishedAt time.Time `json:"publishedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ArticleInput holds the fields accepted when creating an article
type ArticleInput struct {
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	Author      Author     `json:"author"`
	CoverImage  string     `json:"coverImage,omitempty"`
	Featured    bool       `json:"featured,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// ArticleUpdate is a partial update. Nil fields are left untouched.
type ArticleUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Excerpt     *string    `json:"excerpt,omitempty"`
	Content     *string    `json:"content,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Tags        *[]string  `json:"tags,omitempty"`
	Author      *Author    `json:"author,omitempty"`
	CoverImage  *string    `json:"coverImage,omitempty"`
	Featured    *bool      `json:"featured,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	UpdatedAt   *time.Time `json:"-"`
	ReadingTime *int       `json:"-"`
}

// IsEmpty reports whether the update carries no client-settable field
func (u *ArticleUpdate) IsEmpty() bool {
	return u.Title == nil && u.Excerpt == nil && u.Content == nil && u.Category == nil &&
		u.Tags == nil && u.Author == nil && u.CoverImage == nil && u.Featured == nil &&
		u.PublishedAt == nil
}

// Apply merges the non-nil fields of u into a
func (u *ArticleUpdate) Apply(a *Article) {
	if u.Title != nil {
		a.Title = *u.Title
	}
	if u.Excerpt != nil {
		a.Excerpt = *u.Excerpt
	}
	if u.Content != nil {
		a.Content = *u.Content
	}
	if u.Category != nil {
		a.Category = *u.Category
	}
	if u.Tags != nil {
		a.Tags = slices.Clone(*u.Tags)
	}
	if u.Author != nil {
		a.Author = *u.Author
	}
	if u.CoverImage != nil {
		a.CoverImage = *u.CoverImage
	}
	if u.Featured != nil {
		a.Featured = *u.Featured
	}
	if u.PublishedAt != nil {
		a.PublishedAt = *u.PublishedAt
	}
	if u.UpdatedAt != nil {
		a.UpdatedAt = *u.UpdatedAt
	}
	if u.ReadingTime != nil {
		a.ReadingTime = *u.ReadingTime
	}
}

// Clone returns a deep copy of the article
func (a *Article) Clone() *Article {
	c := *a
	c.Tags = slices.Clone(a.Tags)
	return &c
}
