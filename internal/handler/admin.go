package handler

// Admin resources.  Reads are public; the router puts writes behind
// JWTAuth and RequireRole(admin).

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/household-market/internal/middleware"
	"github.com/iliyamo/household-market/internal/model"
)

type AdminHandler struct {
	Reports  Store[model.Report]
	Settings MutableStore[model.Setting]
	Log      logrus.FieldLogger
}

func NewAdminHandler(reports Store[model.Report], settings MutableStore[model.Setting], log logrus.FieldLogger) *AdminHandler {
	return &AdminHandler{Reports: reports, Settings: settings, Log: log}
}

// stampAdmin fills admin_id from the token when the body leaves it out.
func stampAdmin(c echo.Context, id *uint64) {
	if *id == 0 {
		*id = middleware.UserID(c)
	}
}

func (h *AdminHandler) CreateReport(c echo.Context) error {
	_, _, err := createOne(c, h.Log, "reports.create", h.Reports, func(r *model.Report) { stampAdmin(c, &r.AdminID) })
	return err
}

func (h *AdminHandler) ListReports(c echo.Context) error {
	return listAll(c, h.Log, "reports.list", h.Reports)
}

func (h *AdminHandler) GetReport(c echo.Context) error {
	return getOne(c, h.Log, "reports.get", h.Reports)
}

func (h *AdminHandler) DeleteReport(c echo.Context) error {
	_, err := deleteOne(c, h.Log, "reports.delete", "Report", h.Reports)
	return err
}

func (h *AdminHandler) CreateSetting(c echo.Context) error {
	_, _, err := createOne(c, h.Log, "settings.create", h.Settings, func(s *model.Setting) { stampAdmin(c, &s.AdminID) })
	return err
}

func (h *AdminHandler) ListSettings(c echo.Context) error {
	return listAll(c, h.Log, "settings.list", h.Settings)
}

func (h *AdminHandler) GetSetting(c echo.Context) error {
	return getOne(c, h.Log, "settings.get", h.Settings)
}

func (h *AdminHandler) UpdateSetting(c echo.Context) error {
	_, _, err := updateOne(c, h.Log, "settings.update", "Setting", h.Settings, func(s *model.Setting, id uint64) {
		s.ID = id
		stampAdmin(c, &s.AdminID)
	})
	return err
}

func (h *AdminHandler) DeleteSetting(c echo.Context) error {
	_, err := deleteOne(c, h.Log, "settings.delete", "Setting", h.Settings)
	return err
}
