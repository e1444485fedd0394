// Package sale exposes the recorded sales and the sales report over
// HTTP. Read-only: sales are created by the order lifecycle, never
// through this surface.
package sale

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"huerto/api/response"
	saleapp "huerto/application/sale"
)

const dateLayout = "2006-01-02"

type Controller struct {
	saleService *saleapp.ApplicationService
}

func NewController(saleService *saleapp.ApplicationService) *Controller {
	return &Controller{saleService: saleService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	sales := router.Group("/sales")
	{
		sales.GET("", c.GetAllSales)
		sales.GET("/:id", c.GetSale)
		sales.GET("/user/:userId", c.GetUserSales)
		sales.GET("/date-range", c.GetSalesByDateRange)
		sales.GET("/report", c.GetSalesReport)
	}
}

// GetSale handles GET /api/v1/sales/:id.
func (c *Controller) GetSale(ctx *gin.Context) {
	sale, err := c.saleService.GetSale(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, sale, "")
}

// GetAllSales handles GET /api/v1/sales.
func (c *Controller) GetAllSales(ctx *gin.Context) {
	sales, err := c.saleService.GetAllSales(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, sales, "")
}

// GetUserSales handles GET /api/v1/sales/user/:userId.
func (c *Controller) GetUserSales(ctx *gin.Context) {
	sales, err := c.saleService.GetUserSales(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, sales, "")
}

func parseDateRange(ctx *gin.Context) (time.Time, time.Time, bool) {
	start, err := time.Parse(dateLayout, ctx.Query("start"))
	if err != nil {
		response.HandleError(ctx, err, "invalid start date, expected YYYY-MM-DD", http.StatusBadRequest)
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(dateLayout, ctx.Query("end"))
	if err != nil {
		response.HandleError(ctx, err, "invalid end date, expected YYYY-MM-DD", http.StatusBadRequest)
		return time.Time{}, time.Time{}, false
	}
	return start, end.Add(24*time.Hour - time.Nanosecond), true
}

// GetSalesByDateRange handles GET /api/v1/sales/date-range?start=…&end=….
func (c *Controller) GetSalesByDateRange(ctx *gin.Context) {
	start, end, ok := parseDateRange(ctx)
	if !ok {
		return
	}
	sales, err := c.saleService.GetSalesByDateRange(ctx.Request.Context(), start, end)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, sales, "")
}

// GetSalesReport handles GET /api/v1/sales/report?start=…&end=….
func (c *Controller) GetSalesReport(ctx *gin.Context) {
	start, end, ok := parseDateRange(ctx)
	if !ok {
		return
	}
	report, err := c.saleService.GetSalesReport(ctx.Request.Context(), start, end)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, report, "")
}
