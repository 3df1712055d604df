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

type productRepo struct {
	db *database.DB
}

// NewProductRepo creates a new product repository
func NewProductRepo(db *database.DB) ProductRepository {
	return &productRepo{db: db}
}

// List returns all products ordered by name
func (r *productRepo) List(ctx context.Context) ([]*models.Product, error) {
	return r.query(ctx, `SELECT data FROM products ORDER BY name COLLATE "C", id COLLATE "C"`)
}

// ListByCategory returns the products of one category ordered by name
func (r *productRepo) ListByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	return r.query(ctx, `SELECT data FROM products WHERE category = $1 ORDER BY name COLLATE "C", id COLLATE "C"`, category)
}

// ListByAvailability returns the products in one availability state ordered by name
func (r *productRepo) ListByAvailability(ctx context.Context, availability string) ([]*models.Product, error) {
	return r.query(ctx, `SELECT data FROM products WHERE availability = $1 ORDER BY name COLLATE "C", id COLLATE "C"`, availability)
}

// GetByID retrieves a product by ID
func (r *productRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM products WHERE id = $1`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("decode product %s: %w", id, err)
	}
	return &product, nil
}

// Exists checks if a product with the given ID exists
func (r *productRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

// Create inserts a new product document
func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, category, availability, data)
		VALUES ($1, $2, $3, $4, $5)
	`, product.ID, product.Name, product.Category, product.Availability, data)
	if isUniqueViolation(err) {
		return fmt.Errorf("product %s: %w", product.ID, apperr.ErrAlreadyExists)
	}
	return err
}

// Update merges patch into the stored document inside a transaction
func (r *productRepo) Update(ctx context.Context, id string, patch *models.ProductUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var data []byte
	err = tx.QueryRowContext(ctx, `SELECT data FROM products WHERE id = $1 FOR UPDATE`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return fmt.Errorf("product %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return err
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return fmt.Errorf("decode product %s: %w", id, err)
	}
	patch.Apply(&product)

	if data, err = json.Marshal(&product); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE products SET name = $1, category = $2, availability = $3, data = $4
		WHERE id = $5
	`, product.Name, product.Category, product.Availability, data, id)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a product
func (r *productRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("product %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// StreamAll streams all products for export
func (r *productRepo) StreamAll(ctx context.Context, callback func(*models.Product) error) error {
	products, err := r.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		if err := callback(p); err != nil {
			return err
		}
	}
	return nil
}

func (r *productRepo) query(ctx context.Context, query string, args ...interface{}) ([]*models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]*models.Product, 0)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var product models.Product
		if err := json.Unmarshal(data, &product); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		products = append(products, &product)
	}
	return products, rows.Err()
}
