package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrProductNotFound indicates the product does not exist.
var ErrProductNotFound = errors.New("product not found")

// ErrOrderNotFound indicates the order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// ProductType selects the handling rules applied when an order referencing
// the product is processed. Stored and exchanged as an integer code.
type ProductType int

const (
	TypeNormal    ProductType = 1
	TypeSeasonal  ProductType = 2
	TypeExpirable ProductType = 3
)

// Known reports whether t is one of the recognized product types.
func (t ProductType) Known() bool {
	switch t {
	case TypeNormal, TypeSeasonal, TypeExpirable:
		return true
	}
	return false
}

func (t ProductType) String() string {
	switch t {
	case TypeNormal:
		return "normal"
	case TypeSeasonal:
		return "seasonal"
	case TypeExpirable:
		return "expirable"
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}

// Product represents a stocked product.
type Product struct {
	ID              int64
	Type            ProductType
	Name            string
	Available       int
	LeadTime        int
	ExpiryDate      Date
	SeasonStartDate Date
	SeasonEndDate   Date
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Order represents a customer order with its item set loaded eagerly.
type Order struct {
	ID        int64
	Items     []Product
	CreatedAt time.Time
}

const productColumns = `id, type, name, available, lead_time, expiry_date, season_start_date, season_end_date, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Type, &p.Name, &p.Available, &p.LeadTime,
		&p.ExpiryDate, &p.SeasonStartDate, &p.SeasonEndDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct inserts a new product and returns it with its assigned ID.
func (db *DB) CreateProduct(ctx context.Context, p *Product) (*Product, error) {
	result, err := db.ExecContext(ctx, `
		INSERT INTO products (type, name, available, lead_time, expiry_date, season_start_date, season_end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.Type, p.Name, p.Available, p.LeadTime, p.ExpiryDate, p.SeasonStartDate, p.SeasonEndDate)
	if err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting product id: %w", err)
	}

	return db.GetProductByID(ctx, id)
}

// GetProductByID returns a product by ID.
func (db *DB) GetProductByID(ctx context.Context, id int64) (*Product, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+productColumns+` FROM products WHERE id = ?
	`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying product: %w", err)
	}
	return p, nil
}

// GetProductByName returns the first product with the given name.
func (db *DB) GetProductByName(ctx context.Context, name string) (*Product, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+productColumns+` FROM products WHERE name = ? ORDER BY id LIMIT 1
	`, name)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by name: %w", err)
	}
	return p, nil
}

// SaveProduct writes the product's current state back to its row.
func (db *DB) SaveProduct(ctx context.Context, p *Product) error {
	result, err := db.ExecContext(ctx, `
		UPDATE products
		SET type = ?, name = ?, available = ?, lead_time = ?,
		    expiry_date = ?, season_start_date = ?, season_end_date = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, p.Type, p.Name, p.Available, p.LeadTime,
		p.ExpiryDate, p.SeasonStartDate, p.SeasonEndDate, p.ID)
	if err != nil {
		return fmt.Errorf("saving product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return ErrProductNotFound
	}
	return nil
}

// UpdateProduct overwrites an existing product with the supplied details and
// returns the stored result. Season dates are fixed at creation and are not
// touched by updates.
func (db *DB) UpdateProduct(ctx context.Context, id int64, updated *Product) (*Product, error) {
	p, err := db.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Name = updated.Name
	p.Available = updated.Available
	p.ExpiryDate = updated.ExpiryDate
	p.LeadTime = updated.LeadTime
	p.Type = updated.Type

	if err := db.SaveProduct(ctx, p); err != nil {
		return nil, err
	}
	return db.GetProductByID(ctx, id)
}

// CreateOrder creates an order referencing the given products. Duplicate
// product IDs collapse into a single item.
func (db *DB) CreateOrder(ctx context.Context, productIDs []int64) (*Order, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `INSERT INTO orders DEFAULT VALUES`)
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting order id: %w", err)
	}

	for _, pid := range productIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO order_items (order_id, product_id) VALUES (?, ?)
		`, id, pid)
		if err != nil {
			return nil, fmt.Errorf("adding order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return db.GetOrderByID(ctx, id)
}

// GetOrderByID returns an order with its item set loaded eagerly.
func (db *DB) GetOrderByID(ctx context.Context, orderID int64) (*Order, error) {
	var o Order
	err := db.QueryRowContext(ctx, `
		SELECT id, created_at FROM orders WHERE id = ?
	`, orderID).Scan(&o.ID, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying order: %w", err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT p.id, p.type, p.name, p.available, p.lead_time,
		       p.expiry_date, p.season_start_date, p.season_end_date,
		       p.created_at, p.updated_at
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ?
		ORDER BY p.id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		o.Items = append(o.Items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order items: %w", err)
	}
	return &o, nil
}
