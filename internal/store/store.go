package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Sentinel errors for the domain failure kinds. Handlers match these with
// errors.Is, so a query failure is never mistaken for "no data".
var (
	ErrItemNotFound  = errors.New("item not found")
	ErrOrderNotFound = errors.New("order not found")
	ErrNoClientOrders = errors.New("no orders found for client")
	ErrNoOrders       = errors.New("no orders found")

	ErrInsufficientStock         = errors.New("insufficient stock")
	ErrInsufficientStockIncrease = errors.New("insufficient stock to increase quantity")
)

type Store struct {
	db     *sqlx.DB
	driver string
}

// NewStore opens a database store. Supported drivers are "postgres"
// (production) and "sqlite3" (seed tooling and tests).
func NewStore(driver, databaseURL string) (*Store, error) {
	db, err := sqlx.Connect(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == "sqlite3" {
		// sqlite serializes writers; a single connection also keeps
		// in-memory databases on one handle.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db, driver: driver}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

// lockSuffix returns a row-locking clause where the driver supports it.
// sqlite write transactions already exclude each other.
func (s *Store) lockSuffix() string {
	if s.driver == "postgres" {
		return " FOR UPDATE"
	}
	return ""
}

// InitSchema creates the five tables if they do not exist yet
func (s *Store) InitSchema(ctx context.Context) error {
	ddl := schemaPostgres
	if s.driver == "sqlite3" {
		ddl = schemaSQLite
	}
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
