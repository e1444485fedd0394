package product_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	productapp "huerto/application/product"
	"huerto/domain/shared"
	"huerto/infrastructure/persistence/mocks"
	apperrors "huerto/pkg/errors"
)

func newService() (*productapp.ApplicationService, *mocks.ProductRepository) {
	repo := mocks.NewProductRepository()
	return productapp.NewApplicationService(repo, mocks.NewUnitOfWork()), repo
}

func adminPrincipal() shared.Principal {
	return shared.Principal{UserID: "admin-1", Email: "admin@example.com"}
}

func createProduct(t *testing.T, svc *productapp.ApplicationService, name, category string, stock int) *productapp.ProductResponse {
	t.Helper()
	resp, err := svc.CreateProduct(context.Background(), productapp.CreateProductRequest{
		Name:     name,
		Price:    1000,
		Category: category,
		Stock:    stock,
		IsNew:    true,
	}, adminPrincipal())
	require.NoError(t, err)
	return resp
}

func TestCreateProductRequiresPrincipal(t *testing.T) {
	svc, _ := newService()

	_, err := svc.CreateProduct(context.Background(), productapp.CreateProductRequest{Name: "Peras"}, shared.Principal{})

	assert.True(t, apperrors.Is(err, apperrors.CodeUnauthorized))
}

func TestCreateProductRejectsEmptyName(t *testing.T) {
	svc, _ := newService()

	_, err := svc.CreateProduct(context.Background(), productapp.CreateProductRequest{Price: 500}, adminPrincipal())

	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestUpdateProductKeepsStockAndPurchaseCount(t *testing.T) {
	svc, _ := newService()
	created := createProduct(t, svc, "Manzanas", "fruta", 7)

	updated, err := svc.UpdateProduct(context.Background(), created.ID, productapp.UpdateProductRequest{
		Name:  "Manzanas Fuji",
		Price: 1200,
	}, adminPrincipal())

	require.NoError(t, err)
	assert.Equal(t, "Manzanas Fuji", updated.Name)
	assert.Equal(t, int64(1200), updated.Price.Amount)
	assert.Equal(t, 7, updated.Stock, "catalog edits must not touch inventory")
}

func TestSearchProducts(t *testing.T) {
	svc, _ := newService()
	createProduct(t, svc, "Tomates cherry", "verdura", 5)
	createProduct(t, svc, "Naranjas", "fruta", 5)

	found, err := svc.SearchProducts(context.Background(), "tomate")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Tomates cherry", found[0].Name)

	_, err = svc.SearchProducts(context.Background(), "")
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestGetProductsByCategory(t *testing.T) {
	svc, _ := newService()
	createProduct(t, svc, "Tomates", "verdura", 5)
	createProduct(t, svc, "Naranjas", "fruta", 5)

	fruta, err := svc.GetProductsByCategory(context.Background(), "fruta")

	require.NoError(t, err)
	require.Len(t, fruta, 1)
	assert.Equal(t, "Naranjas", fruta[0].Name)
}

func TestDeleteProduct(t *testing.T) {
	svc, _ := newService()
	created := createProduct(t, svc, "Peras", "fruta", 3)

	require.NoError(t, svc.DeleteProduct(context.Background(), created.ID, adminPrincipal()))

	_, err := svc.GetProduct(context.Background(), created.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeProductNotFound))

	err = svc.DeleteProduct(context.Background(), created.ID, adminPrincipal())
	assert.True(t, apperrors.Is(err, apperrors.CodeProductNotFound))
}
