// Package product exposes the catalog over HTTP.
package product

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"huerto/api/middleware"
	"huerto/api/response"
	productapp "huerto/application/product"
)

type Controller struct {
	productService *productapp.ApplicationService
}

func NewController(productService *productapp.ApplicationService) *Controller {
	return &Controller{productService: productService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.POST("", c.CreateProduct)
		products.GET("", c.GetAllProducts)
		products.GET("/search", c.SearchProducts)
		products.GET("/new", c.GetNewProducts)
		products.GET("/sale", c.GetSaleProducts)
		products.GET("/category/:category", c.GetProductsByCategory)
		products.GET("/:id", c.GetProduct)
		products.PUT("/:id", c.UpdateProduct)
		products.DELETE("/:id", c.DeleteProduct)
	}
}

// CreateProduct handles POST /api/v1/products.
func (c *Controller) CreateProduct(ctx *gin.Context) {
	var req productapp.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.productService.CreateProduct(ctx.Request.Context(), req, middleware.PrincipalFromContext(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, product, "product created")
}

// UpdateProduct handles PUT /api/v1/products/:id.
func (c *Controller) UpdateProduct(ctx *gin.Context) {
	var req productapp.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.productService.UpdateProduct(ctx.Request.Context(), ctx.Param("id"), req, middleware.PrincipalFromContext(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, product, "product updated")
}

// GetProduct handles GET /api/v1/products/:id.
func (c *Controller) GetProduct(ctx *gin.Context) {
	product, err := c.productService.GetProduct(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, product, "")
}

// GetAllProducts handles GET /api/v1/products.
func (c *Controller) GetAllProducts(ctx *gin.Context) {
	products, err := c.productService.GetAllProducts(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, products, "")
}

// SearchProducts handles GET /api/v1/products/search?q=….
func (c *Controller) SearchProducts(ctx *gin.Context) {
	products, err := c.productService.SearchProducts(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, products, "")
}

// GetProductsByCategory handles GET /api/v1/products/category/:category.
func (c *Controller) GetProductsByCategory(ctx *gin.Context) {
	products, err := c.productService.GetProductsByCategory(ctx.Request.Context(), ctx.Param("category"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, products, "")
}

// GetNewProducts handles GET /api/v1/products/new.
func (c *Controller) GetNewProducts(ctx *gin.Context) {
	products, err := c.productService.GetNewProducts(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, products, "")
}

// GetSaleProducts handles GET /api/v1/products/sale.
func (c *Controller) GetSaleProducts(ctx *gin.Context) {
	products, err := c.productService.GetSaleProducts(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, products, "")
}

// DeleteProduct handles DELETE /api/v1/products/:id.
func (c *Controller) DeleteProduct(ctx *gin.Context) {
	err := c.productService.DeleteProduct(ctx.Request.Context(), ctx.Param("id"), middleware.PrincipalFromContext(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}
