package model

import "time"

// Report is an admin-authored document (`reports` table).
type Report struct {
	ID         uint64    `json:"report_id"`
	AdminID    uint64    `json:"admin_id"`
	ReportType string    `json:"report_type"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// Setting is a key/value pair scoped to an admin (`settings` table).
type Setting struct {
	ID           uint64    `json:"setting_id"`
	AdminID      uint64    `json:"admin_id"`
	SettingName  string    `json:"setting_name"`
	SettingValue string    `json:"setting_value"`
	CreatedAt    time.Time `json:"created_at"`
}
