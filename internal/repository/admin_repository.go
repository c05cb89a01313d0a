package repository

// Reports and settings are both admin-scoped tables keyed by admin_id.

import (
	"context"
	"database/sql"

	"github.com/iliyamo/household-market/internal/model"
)

const (
	reportColumns  = "report_id, admin_id, report_type, COALESCE(content, ''), created_at"
	settingColumns = "setting_id, admin_id, setting_name, COALESCE(setting_value, ''), created_at"
)

// ReportRepo reads and writes the `reports` table.  Reports are not
// updated after creation.
type ReportRepo struct{ DB *sql.DB }

func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{DB: db} }

func scanReport(s rowScanner) (model.Report, error) {
	var r model.Report
	err := s.Scan(&r.ID, &r.AdminID, &r.ReportType, &r.Content, &r.CreatedAt)
	return r, err
}

func (r *ReportRepo) Create(ctx context.Context, rep model.Report) (uint64, error) {
	return insertRow(ctx, r.DB,
		"INSERT INTO reports (admin_id, report_type, content) VALUES (?, ?, ?)",
		rep.AdminID, rep.ReportType, rep.Content)
}

func (r *ReportRepo) List(ctx context.Context) ([]model.Report, error) {
	return queryAll(ctx, r.DB, scanReport, "SELECT "+reportColumns+" FROM reports")
}

func (r *ReportRepo) GetByID(ctx context.Context, id uint64) (model.Report, error) {
	return queryOne(ctx, r.DB, scanReport, "SELECT "+reportColumns+" FROM reports WHERE report_id = ?", id)
}

func (r *ReportRepo) Delete(ctx context.Context, id uint64) error {
	_, err := execRows(ctx, r.DB, "DELETE FROM reports WHERE report_id = ?", id)
	return err
}

// SettingRepo reads and writes the `settings` table.
type SettingRepo struct{ DB *sql.DB }

func NewSettingRepo(db *sql.DB) *SettingRepo { return &SettingRepo{DB: db} }

func scanSetting(s rowScanner) (model.Setting, error) {
	var st model.Setting
	err := s.Scan(&st.ID, &st.AdminID, &st.SettingName, &st.SettingValue, &st.CreatedAt)
	return st, err
}

func (r *SettingRepo) Create(ctx context.Context, st model.Setting) (uint64, error) {
	return insertRow(ctx, r.DB,
		"INSERT INTO settings (admin_id, setting_name, setting_value) VALUES (?, ?, ?)",
		st.AdminID, st.SettingName, st.SettingValue)
}

func (r *SettingRepo) List(ctx context.Context) ([]model.Setting, error) {
	return queryAll(ctx, r.DB, scanSetting, "SELECT "+settingColumns+" FROM settings")
}

func (r *SettingRepo) GetByID(ctx context.Context, id uint64) (model.Setting, error) {
	return queryOne(ctx, r.DB, scanSetting, "SELECT "+settingColumns+" FROM settings WHERE setting_id = ?", id)
}

func (r *SettingRepo) Update(ctx context.Context, st model.Setting) (int64, error) {
	return execRows(ctx, r.DB,
		"UPDATE settings SET admin_id = ?, setting_name = ?, setting_value = ? WHERE setting_id = ?",
		st.AdminID, st.SettingName, st.SettingValue, st.ID)
}

func (r *SettingRepo) Delete(ctx context.Context, id uint64) error {
	_, err := execRows(ctx, r.DB, "DELETE FROM settings WHERE setting_id = ?", id)
	return err
}
