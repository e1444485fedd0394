// Package order exposes the order lifecycle over HTTP. Controllers
// parse and bind only; every business decision lives below.
package order

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"huerto/api/middleware"
	"huerto/api/response"
	orderapp "huerto/application/order"
)

const dateLayout = "2006-01-02"

type Controller struct {
	orderService *orderapp.ApplicationService
}

func NewController(orderService *orderapp.ApplicationService) *Controller {
	return &Controller{orderService: orderService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/orders")
	{
		orders.POST("", c.CreateOrder)
		orders.GET("", c.GetAllOrders)
		orders.GET("/:id", c.GetOrder)
		orders.PUT("/:id/status", c.UpdateOrderStatus)
		orders.DELETE("/:id", c.DeleteOrder)
		orders.GET("/user/:userId", c.GetUserOrders)
		orders.GET("/status/:status", c.GetOrdersByStatus)
		orders.GET("/date-range", c.GetOrdersByDateRange)
	}
}

// CreateOrder handles POST /api/v1/orders.
func (c *Controller) CreateOrder(ctx *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.CreateOrder(ctx.Request.Context(), req, middleware.PrincipalFromContext(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, order, "order created")
}

// GetOrder handles GET /api/v1/orders/:id.
func (c *Controller) GetOrder(ctx *gin.Context) {
	order, err := c.orderService.GetOrder(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "")
}

// GetAllOrders handles GET /api/v1/orders.
func (c *Controller) GetAllOrders(ctx *gin.Context) {
	orders, err := c.orderService.GetAllOrders(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders, "")
}

// GetUserOrders handles GET /api/v1/orders/user/:userId.
func (c *Controller) GetUserOrders(ctx *gin.Context) {
	orders, err := c.orderService.GetUserOrders(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders, "")
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status.
func (c *Controller) UpdateOrderStatus(ctx *gin.Context) {
	var req orderapp.UpdateOrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.UpdateOrderStatus(ctx.Request.Context(), ctx.Param("id"), req.Status, middleware.PrincipalFromContext(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "order status updated")
}

// GetOrdersByStatus handles GET /api/v1/orders/status/:status.
func (c *Controller) GetOrdersByStatus(ctx *gin.Context) {
	orders, err := c.orderService.GetOrdersByStatus(ctx.Request.Context(), ctx.Param("status"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders, "")
}

// GetOrdersByDateRange handles GET /api/v1/orders/date-range?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (c *Controller) GetOrdersByDateRange(ctx *gin.Context) {
	start, err := time.Parse(dateLayout, ctx.Query("start"))
	if err != nil {
		response.HandleError(ctx, err, "invalid start date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	end, err := time.Parse(dateLayout, ctx.Query("end"))
	if err != nil {
		response.HandleError(ctx, err, "invalid end date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	// The end date is inclusive: extend it to the last instant of the day.
	orders, err := c.orderService.GetOrdersByDateRange(ctx.Request.Context(), start, end.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders, "")
}

// DeleteOrder handles DELETE /api/v1/orders/:id.
func (c *Controller) DeleteOrder(ctx *gin.Context) {
	err := c.orderService.DeleteOrder(ctx.Request.Context(), ctx.Param("id"), middleware.PrincipalFromContext(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}
