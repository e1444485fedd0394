package product

import (
	"testing"

	"huerto/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, stock int) *Product {
	t.Helper()
	p, err := NewProduct(Details{
		Name:     "Tomates ecológicos",
		Price:    *shared.NewMoney(1000, "EUR"),
		Category: "verduras",
		Stock:    stock,
	})
	require.NoError(t, err)
	return p
}

func TestRegisterPurchaseDecrementsStock(t *testing.T) {
	p := newTestProduct(t, 10)

	require.NoError(t, p.RegisterPurchase(2))

	assert.Equal(t, 8, p.Stock())
	assert.Equal(t, 2, p.PurchaseCount())
}

func TestRegisterPurchaseClampsStockAtZero(t *testing.T) {
	p := newTestProduct(t, 3)

	require.NoError(t, p.RegisterPurchase(5))

	assert.Equal(t, 0, p.Stock(), "oversell clamps, it does not go negative")
	assert.Equal(t, 5, p.PurchaseCount(), "purchase count grows by the full quantity")
}

func TestRegisterPurchaseRejectsNonPositiveQuantity(t *testing.T) {
	p := newTestProduct(t, 3)

	err := p.RegisterPurchase(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	assert.Equal(t, 3, p.Stock())
	assert.Equal(t, 0, p.PurchaseCount())
}

func TestNewProductValidation(t *testing.T) {
	_, err := NewProduct(Details{Price: *shared.NewMoney(100, "EUR")})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = NewProduct(Details{Name: "x", Price: *shared.NewMoney(-1, "EUR")})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = NewProduct(Details{Name: "x", Price: *shared.NewMoney(1, "EUR"), Stock: -1})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestUpdateKeepsPurchaseCount(t *testing.T) {
	p := newTestProduct(t, 10)
	require.NoError(t, p.RegisterPurchase(4))

	require.NoError(t, p.Update(Details{
		Name:  "Tomates ecológicos XL",
		Price: *shared.NewMoney(1200, "EUR"),
		Stock: 50,
	}))

	assert.Equal(t, 50, p.Stock())
	assert.Equal(t, 4, p.PurchaseCount(), "catalog edits never reset the purchase counter")
	assert.Equal(t, "Tomates ecológicos XL", p.Name())
}
