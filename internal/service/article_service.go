package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/solar-catalog-api/internal/apperr"
	"github.com/solar-catalog-api/internal/models"
	"github.com/solar-catalog-api/internal/repository"
	"github.com/solar-catalog-api/internal/validation"
)

type articleService struct {
	repo repository.ArticleRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewArticleService creates an ArticleService over repo
func NewArticleService(repo repository.ArticleRepository, log zerolog.Logger) ArticleService {
	return &articleService{
		repo: repo,
		log:  log.With().Str("service", "article").Logger(),
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// List returns all articles, newest first
func (s *articleService) List(ctx context.Context) ([]*models.Article, error) {
	articles, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list articles")
		return nil, storeError("list articles", err)
	}
	return articles, nil
}

// ListByCategory filters by category in the store. "all" lists everything.
func (s *articleService) ListByCategory(ctx context.Context, category string) ([]*models.Article, error) {
	if category == "" || category == "all" {
		return s.List(ctx)
	}
	if !models.ValidArticleCategories[category] {
		return nil, validation.Errors{{Field: "category", Message: "unknown article category", Value: category}}
	}

	articles, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		s.log.Error().Err(err).Str("category", category).Msg("Failed to list articles by category")
		return nil, storeError("list articles by category", err)
	}
	return articles, nil
}

// Get looks the key up as an exact id first. On a miss it scans the full
// list and returns the first article, in newest-first order, whose id
// contains the key or whose slugified title contains the slugified key.
// (nil, nil) means no article matched.
func (s *articleService) Get(ctx context.Context, key string) (*models.Article, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}

	article, err := s.repo.GetByID(ctx, key)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Failed to get article")
		return nil, storeError("get article", err)
	}
	if article != nil {
		return article, nil
	}

	articles, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	match := FuzzyMatchArticle(articles, key)
	if match != nil {
		s.log.Debug().Str("key", key).Str("id", match.ID).Msg("Resolved article by fuzzy match")
	}
	return match, nil
}

// Create stores a new article and returns its id
func (s *articleService) Create(ctx context.Context, in *models.ArticleInput) (string, error) {
	if err := validation.ValidateArticleInput(in); err != nil {
		return "", err
	}

	now := s.now()
	article := &models.Article{
		ID:          newArticleID(now),
		Title:       in.Title,
		Excerpt:     in.Excerpt,
		Content:     in.Content,
		Category:    in.Category,
		Tags:        append(make([]string, 0, len(in.Tags)), in.Tags...),
		Author:      in.Author,
		CoverImage:  in.CoverImage,
		Featured:    in.Featured,
		ReadingTime: ReadingTime(in.Content),
		PublishedAt: now,
		UpdatedAt:   now,
	}
	if in.PublishedAt != nil && !in.PublishedAt.IsZero() {
		article.PublishedAt = in.PublishedAt.UTC()
	}

	if err := s.repo.Create(ctx, article); err != nil {
		s.log.Error().Err(err).Str("id", article.ID).Msg("Failed to create article")
		return "", writeError("create article", err)
	}

	s.log.Info().Str("id", article.ID).Str("category", article.Category).Msg("Article created")
	return article.ID, nil
}

// Update checks the article exists and then writes the patch. The check and
// the write are separate store calls.
func (s *articleService) Update(ctx context.Context, id string, patch *models.ArticleUpdate) error {
	if err := validation.ValidateArticleUpdate(patch); err != nil {
		return err
	}

	if err := s.mustExist(ctx, id); err != nil {
		return err
	}

	p := *patch
	now := s.now()
	p.UpdatedAt = &now
	if p.Content != nil {
		rt := ReadingTime(*p.Content)
		p.ReadingTime = &rt
	} else {
		p.ReadingTime = nil
	}
	if p.PublishedAt != nil {
		utc := p.PublishedAt.UTC()
		p.PublishedAt = &utc
	}

	if err := s.repo.Update(ctx, id, &p); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("Failed to update article")
		return writeError("update article", err)
	}

	s.log.Info().Str("id", id).Msg("Article updated")
	return nil
}

// Delete checks the article exists and then removes it
func (s *articleService) Delete(ctx context.Context, id string) error {
	if err := s.mustExist(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("Failed to delete article")
		return writeError("delete article", err)
	}

	s.log.Info().Str("id", id).Msg("Article deleted")
	return nil
}

// Count is len(List). It fetches every document.
func (s *articleService) Count(ctx context.Context) (int, error) {
	articles, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(articles), nil
}

func (s *articleService) mustExist(ctx context.Context, id string) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("Failed to check article existence")
		return storeError("check article", err)
	}
	if !exists {
		return fmt.Errorf("article %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// ReadingTime is ceil(words / WordsPerMinute)
func ReadingTime(content string) int {
	words := len(strings.Fields(content))
	return (words + models.WordsPerMinute - 1) / models.WordsPerMinute
}

// newArticleID is the creation time in milliseconds plus a random suffix
func newArticleID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.New().String()[:8])
}
