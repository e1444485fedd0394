package sale

import (
	"context"

	"go.uber.org/zap"

	"huerto/domain/order"
	"huerto/domain/product"
	"huerto/domain/sale"
	"huerto/pkg/logger"
)

// Creator records the commercial outcome of a delivery: one stock
// movement per catalog line and one immutable sale snapshot. It always
// runs inside the caller's transaction, so a failure on any line rolls
// the whole delivery back.
type Creator struct {
	saleRepo    sale.Repository
	productRepo product.Repository
}

func NewCreator(saleRepo sale.Repository, productRepo product.Repository) *Creator {
	return &Creator{saleRepo: saleRepo, productRepo: productRepo}
}

// RecordDelivery registers the purchase against every line that
// references a catalog product and saves the sale derived from the
// order. Lines without a product id are commercial facts only and
// touch no inventory. A line referencing an unknown product fails the
// delivery.
func (c *Creator) RecordDelivery(ctx context.Context, o *order.Order) error {
	for _, item := range o.Items() {
		productID := item.ProductID()
		if productID == nil {
			continue
		}

		p, err := c.productRepo.FindByID(ctx, *productID)
		if err != nil {
			return err
		}
		if err := p.RegisterPurchase(item.Quantity()); err != nil {
			return err
		}
		if err := c.productRepo.Save(ctx, p); err != nil {
			return err
		}

		logger.Debug("stock registered for delivered line",
			zap.String("order_id", o.ID()),
			zap.String("product_id", *productID),
			zap.Int("quantity", item.Quantity()),
			zap.Int("stock_after", p.Stock()),
		)
	}

	s, err := sale.NewFromOrder(o)
	if err != nil {
		return err
	}
	if err := c.saleRepo.Save(ctx, s); err != nil {
		return err
	}

	logger.Info("sale recorded",
		zap.String("sale_id", s.ID()),
		zap.String("order_id", o.ID()),
		zap.Int64("total", s.Total().Amount()),
	)
	return nil
}
