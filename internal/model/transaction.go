package model

import "time"

// Transaction records a money movement for a user (`transactions` table).
type Transaction struct {
	ID              uint64    `json:"transaction_id"`
	UserID          uint64    `json:"user_id"`
	Amount          float64   `json:"amount"`
	TransactionType string    `json:"transaction_type"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}
