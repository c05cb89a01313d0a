package model

import "time"

// OrderStatusPending is the status the database assigns to new orders.
const OrderStatusPending = "pending"

// Order is a customer's purchase of a crop (`orders` table).  TotalPrice is
// stored as submitted; it is not recomputed from the crop price.
type Order struct {
	ID          uint64    `json:"order_id"`
	CustomerID  uint64    `json:"customer_id"`
	CropID      uint64    `json:"crop_id"`
	Quantity    int       `json:"quantity"`
	TotalPrice  float64   `json:"total_price"`
	OrderStatus string    `json:"order_status"`
	CreatedAt   time.Time `json:"created_at"`
}
