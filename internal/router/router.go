package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/salesgo/backend/api/handler"
)

type Handlers struct {
	Sale   *apiHandler.SaleHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Protected routes
	r.POST("/api/v1/sales", authMiddleware(handlers.Sale.CreateSale))
	r.GET("/api/v1/sales", authMiddleware(handlers.Sale.GetSales))
	r.GET("/api/v1/sales/{id}", authMiddleware(handlers.Sale.GetSale))
	r.POST("/api/v1/sales/{id}/cancel", authMiddleware(handlers.Sale.CancelSale))
	r.POST("/api/v1/sales/{id}/activate", authMiddleware(handlers.Sale.ActivateSale))
	r.DELETE("/api/v1/sales/{id}", authMiddleware(handlers.Sale.DeleteSale))

	return r
}
