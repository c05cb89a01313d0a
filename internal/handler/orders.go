package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/household-market/internal/model"
	"github.com/iliyamo/household-market/internal/queue"
	"github.com/iliyamo/household-market/internal/service"
)

// OrderHandler serves /api/orders and announces placed and updated orders
// on the event queue.
type OrderHandler struct {
	Orders MutableStore[model.Order]
	Events service.OrderPublisher
	Log    logrus.FieldLogger
}

func NewOrderHandler(orders MutableStore[model.Order], events service.OrderPublisher, log logrus.FieldLogger) *OrderHandler {
	if events == nil {
		events = service.NopPublisher{}
	}
	return &OrderHandler{Orders: orders, Events: events, Log: log}
}

func (h *OrderHandler) Create(c echo.Context) error {
	o, id, err := createOne(c, h.Log, "orders.create", h.Orders, nil)
	if id != 0 {
		o.ID = id
		// The insert leaves order_status to the column default.
		o.OrderStatus = model.OrderStatusPending
		h.publish(c, queue.OrderPlaced, o)
	}
	return err
}

func (h *OrderHandler) List(c echo.Context) error {
	return listAll(c, h.Log, "orders.list", h.Orders)
}

func (h *OrderHandler) Get(c echo.Context) error {
	return getOne(c, h.Log, "orders.get", h.Orders)
}

func (h *OrderHandler) Update(c echo.Context) error {
	o, matched, err := updateOne(c, h.Log, "orders.update", "Order", h.Orders, func(o *model.Order, id uint64) { o.ID = id })
	if matched > 0 {
		h.publish(c, queue.OrderUpdated, o)
	}
	return err
}

func (h *OrderHandler) Delete(c echo.Context) error {
	_, err := deleteOne(c, h.Log, "orders.delete", "Order", h.Orders)
	return err
}

func (h *OrderHandler) publish(c echo.Context, kind string, o model.Order) {
	ev := queue.OrderEvent{
		Kind:       kind,
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		CropID:     o.CropID,
		Quantity:   o.Quantity,
		TotalPrice: o.TotalPrice,
		Status:     o.OrderStatus,
		At:         time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Events.PublishOrderEvent(c.Request().Context(), ev); err != nil {
		h.Log.WithError(err).WithField("order_id", o.ID).Warn("order event not published")
	}
}
