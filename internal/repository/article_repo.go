package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/solar-catalog-api/internal/apperr"
	"github.com/solar-catalog-api/internal/database"
	"github.com/solar-catalog-api/internal/models"
)

// articleRepo stores each article as a JSONB document. The category and
// timestamp columns mirror document fields for filtering and ordering.
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// List returns all articles, newest publishedAt first
func (r *articleRepo) List(ctx context.Context) ([]*models.Article, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT data FROM articles ORDER BY published_at DESC, id COLLATE "C"`)
	if err != nil {
		return nil, err
	}
	return scanArticles(rows)
}

// ListByCategory returns the articles of one category, newest first
func (r *articleRepo) ListByCategory(ctx context.Context, category string) ([]*models.Article, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT data FROM articles WHERE category = $1 ORDER BY published_at DESC, id COLLATE "C"`, category)
	if err != nil {
		return nil, err
	}
	return scanArticles(rows)
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM articles WHERE id = $1`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var article models.Article
	if err := json.Unmarshal(data, &article); err != nil {
		return nil, fmt.Errorf("decode article %s: %w", id, err)
	}
	return &article, nil
}

// Exists checks if an article with the given ID exists
func (r *articleRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM articles WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

// Create inserts a new article document
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	data, err := json.Marshal(article)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO articles (id, category, published_at, updated_at, data)
		VALUES ($1, $2, $3, $4, $5)
	`, article.ID, article.Category, article.PublishedAt, article.UpdatedAt, data)
	if isUniqueViolation(err) {
		return fmt.Errorf("article %s: %w", article.ID, apperr.ErrAlreadyExists)
	}
	return err
}

// Update merges patch into the stored document inside a transaction
func (r *articleRepo) Update(ctx context.Context, id string, patch *models.ArticleUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var data []byte
	err = tx.QueryRowContext(ctx, `SELECT data FROM articles WHERE id = $1 FOR UPDATE`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return fmt.Errorf("article %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return err
	}

	var article models.Article
	if err := json.Unmarshal(data, &article); err != nil {
		return fmt.Errorf("decode article %s: %w", id, err)
	}
	patch.Apply(&article)

	if data, err = json.Marshal(&article); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE articles SET category = $1, published_at = $2, updated_at = $3, data = $4
		WHERE id = $5
	`, article.Category, article.PublishedAt, article.UpdatedAt, data, id)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes an article
func (r *articleRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("article %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// StreamAll streams all articles for export, newest first
func (r *articleRepo) StreamAll(ctx context.Context, callback func(*models.Article) error) error {
	rows, err := r.db.QueryContext(ctx, `SELECT data FROM articles ORDER BY published_at DESC, id COLLATE "C"`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return err
		}
		var article models.Article
		if err := json.Unmarshal(data, &article); err != nil {
			return err
		}
		if err := callback(&article); err != nil {
			return err
		}
	}

	return rows.Err()
}

func scanArticles(rows *sql.Rows) ([]*models.Article, error) {
	defer rows.Close()

	articles := make([]*models.Article, 0)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var article models.Article
		if err := json.Unmarshal(data, &article); err != nil {
			return nil, fmt.Errorf("decode article: %w", err)
		}
		articles = append(articles, &article)
	}
	return articles, rows.Err()
}
