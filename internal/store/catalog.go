package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iamblessed-asd/order-api/internal/models"
)

// CreateClient inserts a client and fills in its ID
func (s *Store) CreateClient(ctx context.Context, client *models.Client) error {
	return s.db.GetContext(ctx, &client.ID,
		"INSERT INTO clients (name, address) VALUES ($1, $2) RETURNING id",
		client.Name, client.Address)
}

// GetClientByID retrieves a client by ID
func (s *Store) GetClientByID(ctx context.Context, id int64) (*models.Client, error) {
	var client models.Client
	err := s.db.GetContext(ctx, &client, "SELECT * FROM clients WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("client %d: not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// CreateCategory inserts a category and fills in its ID. ParentID may be
// nil for root categories.
func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	return s.db.GetContext(ctx, &category.ID,
		"INSERT INTO categories (name, parent_id) VALUES ($1, $2) RETURNING id",
		category.Name, category.ParentID)
}

// GetCategories retrieves all categories keyed by ID. The parent relation
// stays an ID reference into the map rather than a live pointer.
func (s *Store) GetCategories(ctx context.Context) (map[int64]models.Category, error) {
	var categories []models.Category
	if err := s.db.SelectContext(ctx, &categories, "SELECT * FROM categories ORDER BY id"); err != nil {
		return nil, err
	}

	index := make(map[int64]models.Category, len(categories))
	for _, c := range categories {
		index[c.ID] = c
	}
	return index, nil
}

// CreateNomenclature inserts an inventory item and fills in its ID
func (s *Store) CreateNomenclature(ctx context.Context, item *models.Nomenclature) error {
	return s.db.GetContext(ctx, &item.ID,
		"INSERT INTO nomenclature (name, quantity, price, category_id) VALUES ($1, $2, $3, $4) RETURNING id",
		item.Name, item.Quantity, item.Price, item.CategoryID)
}

// GetNomenclatureByID retrieves an inventory item by ID
func (s *Store) GetNomenclatureByID(ctx context.Context, id int64) (*models.Nomenclature, error) {
	var item models.Nomenclature
	err := s.db.GetContext(ctx, &item, "SELECT * FROM nomenclature WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("nomenclature %d: %w", id, ErrItemNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetNomenclatures retrieves all inventory items
func (s *Store) GetNomenclatures(ctx context.Context) ([]models.Nomenclature, error) {
	var items []models.Nomenclature
	err := s.db.SelectContext(ctx, &items, "SELECT * FROM nomenclature ORDER BY id")
	return items, err
}
