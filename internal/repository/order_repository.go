package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/household-market/internal/model"
)

const orderColumns = "order_id, customer_id, crop_id, quantity, total_price, order_status, created_at"

// OrderRepo reads and writes the `orders` table.
type OrderRepo struct{ DB *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{DB: db} }

func scanOrder(s rowScanner) (model.Order, error) {
	var o model.Order
	err := s.Scan(&o.ID, &o.CustomerID, &o.CropID, &o.Quantity, &o.TotalPrice, &o.OrderStatus, &o.CreatedAt)
	return o, err
}

// Create inserts an order.  order_status is left to the column default.
func (r *OrderRepo) Create(ctx context.Context, o model.Order) (uint64, error) {
	return insertRow(ctx, r.DB,
		"INSERT INTO orders (customer_id, crop_id, quantity, total_price) VALUES (?, ?, ?, ?)",
		o.CustomerID, o.CropID, o.Quantity, o.TotalPrice)
}

func (r *OrderRepo) List(ctx context.Context) ([]model.Order, error) {
	return queryAll(ctx, r.DB, scanOrder, "SELECT "+orderColumns+" FROM orders")
}

func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (model.Order, error) {
	return queryOne(ctx, r.DB, scanOrder, "SELECT "+orderColumns+" FROM orders WHERE order_id = ?", id)
}

// Update rewrites every mutable column, order_status included.  The count
// is of matched rows.
func (r *OrderRepo) Update(ctx context.Context, o model.Order) (int64, error) {
	return execRows(ctx, r.DB,
		"UPDATE orders SET customer_id = ?, crop_id = ?, quantity = ?, total_price = ?, order_status = ? WHERE order_id = ?",
		o.CustomerID, o.CropID, o.Quantity, o.TotalPrice, o.OrderStatus, o.ID)
}

func (r *OrderRepo) Delete(ctx context.Context, id uint64) error {
	_, err := execRows(ctx, r.DB, "DELETE FROM orders WHERE order_id = ?", id)
	return err
}
