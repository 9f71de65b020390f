package models

import "time"

// Client represents a customer that owns orders
type Client struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Address string `db:"address" json:"address"`
}

// Category groups nomenclature items; ParentID is nil for root categories
type Category struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	ParentID *int64 `db:"parent_id" json:"parent_id,omitempty"`
}

// Nomenclature is a stock-keeping inventory item
type Nomenclature struct {
	ID         int64   `db:"id" json:"id"`
	Name       string  `db:"name" json:"name"`
	Quantity   int     `db:"quantity" json:"quantity"`
	Price      float64 `db:"price" json:"price"`
	CategoryID int64   `db:"category_id" json:"category_id"`
}

// Order represents a client order; TotalPrice is cached and
// recomputed from the order's items
type Order struct {
	ID         int64     `db:"id" json:"id"`
	ClientID   int64     `db:"client_id" json:"client_id"`
	OrderDate  time.Time `db:"order_date" json:"order_date"`
	TotalPrice float64   `db:"total_price" json:"total_price"`
}

// OrderItem is a line item linking an order to a nomenclature row.
// At most one row exists per (order_id, item_id); repeated additions
// merge by summing quantity.
type OrderItem struct {
	ID       int64 `db:"id" json:"id"`
	OrderID  int64 `db:"order_id" json:"order_id"`
	ItemID   int64 `db:"item_id" json:"item_id"`
	Quantity int   `db:"quantity" json:"quantity"`
}

// ClientOrderSummary is one row of the per-client spend report
type ClientOrderSummary struct {
	Name  string  `db:"name" json:"name"`
	Total float64 `db:"total" json:"total"`
}

// PopularItem is one row of the top-selling-items report
type PopularItem struct {
	NomenclatureName string `db:"nomenclature_name" json:"nomenclature_name"`
	CategoryName     string `db:"category_name" json:"category_name"`
	TotalSold        int    `db:"total_sold" json:"total_sold"`
}
