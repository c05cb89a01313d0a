package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/household-market/internal/model"
)

const cropColumns = "crop_id, farmer_id, name, COALESCE(description, ''), price, COALESCE(availability, ''), created_at"

// CropRepo reads and writes the `crops` table.
type CropRepo struct{ DB *sql.DB }

func NewCropRepo(db *sql.DB) *CropRepo { return &CropRepo{DB: db} }

func scanCrop(s rowScanner) (model.Crop, error) {
	var c model.Crop
	err := s.Scan(&c.ID, &c.FarmerID, &c.Name, &c.Description, &c.Price, &c.Availability, &c.CreatedAt)
	return c, err
}

func (r *CropRepo) Create(ctx context.Context, c model.Crop) (uint64, error) {
	return insertRow(ctx, r.DB,
		"INSERT INTO crops (farmer_id, name, description, price, availability) VALUES (?, ?, ?, ?, ?)",
		c.FarmerID, c.Name, c.Description, c.Price, c.Availability)
}

func (r *CropRepo) List(ctx context.Context) ([]model.Crop, error) {
	return queryAll(ctx, r.DB, scanCrop, "SELECT "+cropColumns+" FROM crops")
}

func (r *CropRepo) GetByID(ctx context.Context, id uint64) (model.Crop, error) {
	return queryOne(ctx, r.DB, scanCrop, "SELECT "+cropColumns+" FROM crops WHERE crop_id = ?", id)
}

// Update overwrites the mutable columns by id and reports how many rows
// matched.
func (r *CropRepo) Update(ctx context.Context, c model.Crop) (int64, error) {
	return execRows(ctx, r.DB,
		"UPDATE crops SET farmer_id = ?, name = ?, description = ?, price = ?, availability = ? WHERE crop_id = ?",
		c.FarmerID, c.Name, c.Description, c.Price, c.Availability, c.ID)
}

func (r *CropRepo) Delete(ctx context.Context, id uint64) error {
	_, err := execRows(ctx, r.DB, "DELETE FROM crops WHERE crop_id = ?", id)
	return err
}
