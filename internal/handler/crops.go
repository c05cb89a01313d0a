package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/household-market/internal/model"
)

// Routes whose cached responses go stale when the catalog changes.
const (
	CropsRoute    = "/api/crops"
	CropByIDRoute = "/api/crops/:id"
)

// Invalidator drops cached responses for the given route patterns.
// *middleware.ResponseCache implements it.
type Invalidator interface {
	Invalidate(ctx context.Context, routes ...string) error
}

type CropHandler struct {
	Crops MutableStore[model.Crop]
	Cache Invalidator
	Log   logrus.FieldLogger
}

func NewCropHandler(crops MutableStore[model.Crop], cache Invalidator, log logrus.FieldLogger) *CropHandler {
	return &CropHandler{Crops: crops, Cache: cache, Log: log}
}

func (h *CropHandler) Create(c echo.Context) error {
	_, id, err := createOne(c, h.Log, "crops.create", h.Crops, nil)
	if id != 0 {
		h.invalidate(c)
	}
	return err
}

func (h *CropHandler) List(c echo.Context) error {
	return listAll(c, h.Log, "crops.list", h.Crops)
}

func (h *CropHandler) Get(c echo.Context) error {
	return getOne(c, h.Log, "crops.get", h.Crops)
}

func (h *CropHandler) Update(c echo.Context) error {
	_, matched, err := updateOne(c, h.Log, "crops.update", "Crop", h.Crops, func(cr *model.Crop, id uint64) { cr.ID = id })
	if matched > 0 {
		h.invalidate(c)
	}
	return err
}

func (h *CropHandler) Delete(c echo.Context) error {
	ok, err := deleteOne(c, h.Log, "crops.delete", "Crop", h.Crops)
	if ok {
		h.invalidate(c)
	}
	return err
}

// invalidate is best effort; a stale entry expires with its TTL anyway.
func (h *CropHandler) invalidate(c echo.Context) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Invalidate(c.Request().Context(), CropsRoute, CropByIDRoute); err != nil {
		h.Log.WithError(err).Warn("crop cache invalidation failed")
	}
}
