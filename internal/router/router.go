package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/household-market/internal/handler"
	"github.com/iliyamo/household-market/internal/middleware"
	"github.com/iliyamo/household-market/internal/model"
)

// Handlers bundles everything the route table needs.
type Handlers struct {
	Users        *handler.UserHandler
	Crops        *handler.CropHandler
	Orders       *handler.OrderHandler
	Chat         *handler.ChatHandler
	Transactions *handler.TransactionHandler
	Admin        *handler.AdminHandler
	Health       echo.HandlerFunc
}

// Register wires the full route table.  auth verifies bearer tokens; cache
// may be nil, in which case crop reads are served uncached.
func Register(e *echo.Echo, h Handlers, auth echo.MiddlewareFunc, cache *middleware.ResponseCache) {
	e.GET("/healthz", h.Health)

	api := e.Group("/api")
	RegisterUsers(api, h.Users, auth)
	RegisterMarket(api, h, cache)
	RegisterAdmin(api, h.Admin, auth)
}

// RegisterUsers mounts registration and login publicly; everything else
// under /users requires a token.
func RegisterUsers(api *echo.Group, u *handler.UserHandler, auth echo.MiddlewareFunc) {
	api.POST("/users", u.Register)
	api.POST("/users/login", u.Login)

	g := api.Group("/users", auth)
	g.POST("/logout", u.Logout)
	g.GET("/me", u.Me)
	g.GET("", u.List)
	g.GET("/:id", u.Get)
	g.PUT("/:id", u.Update)
	g.DELETE("/:id", u.Delete)
}

// RegisterMarket mounts crops, orders, chat and transactions.  None of them
// require authentication.
func RegisterMarket(api *echo.Group, h Handlers, cache *middleware.ResponseCache) {
	cached := cache.Middleware()
	api.POST("/crops", h.Crops.Create)
	api.GET("/crops", h.Crops.List, cached)
	api.GET("/crops/:id", h.Crops.Get, cached)
	api.PUT("/crops/:id", h.Crops.Update)
	api.DELETE("/crops/:id", h.Crops.Delete)

	api.POST("/orders", h.Orders.Create)
	api.GET("/orders", h.Orders.List)
	api.GET("/orders/:id", h.Orders.Get)
	api.PUT("/orders/:id", h.Orders.Update)
	api.DELETE("/orders/:id", h.Orders.Delete)

	api.POST("/chat", h.Chat.Create)
	api.GET("/chat", h.Chat.List)
	api.GET("/chat/:id", h.Chat.Get)
	api.DELETE("/chat/:id", h.Chat.Delete)

	api.POST("/transactions", h.Transactions.Create)
	api.GET("/transactions", h.Transactions.List)
	api.GET("/transactions/:id", h.Transactions.Get)
	api.PUT("/transactions/:id", h.Transactions.Update)
	api.DELETE("/transactions/:id", h.Transactions.Delete)
}

// RegisterAdmin exposes reports and settings for reading.  Creating and
// deleting them needs an admin token; replacing a setting is open, like the
// other full-record updates.
func RegisterAdmin(api *echo.Group, a *handler.AdminHandler, auth echo.MiddlewareFunc) {
	adminOnly := []echo.MiddlewareFunc{auth, middleware.RequireRole(model.RoleAdmin)}

	api.GET("/reports", a.ListReports)
	api.GET("/reports/:id", a.GetReport)
	api.POST("/reports", a.CreateReport, adminOnly...)
	api.DELETE("/reports/:id", a.DeleteReport, adminOnly...)

	api.GET("/settings", a.ListSettings)
	api.GET("/settings/:id", a.GetSetting)
	api.POST("/settings", a.CreateSetting, adminOnly...)
	api.PUT("/settings/:id", a.UpdateSetting)
	api.DELETE("/settings/:id", a.DeleteSetting, adminOnly...)
}
