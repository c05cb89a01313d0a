package model

import "time"

// Crop is a produce listing owned by a farmer (`crops` table).
type Crop struct {
	ID           uint64    `json:"crop_id"`
	FarmerID     uint64    `json:"farmer_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Availability string    `json:"availability"`
	CreatedAt    time.Time `json:"created_at"`
}
