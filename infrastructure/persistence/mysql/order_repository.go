package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"huerto/domain/order"
	"huerto/infrastructure/persistence"
	"huerto/infrastructure/persistence/mysql/po"
)

// OrderRepository is the GORM implementation of order.Repository.
// Items and history are managed by hand against the parent id; GORM
// associations are never used so the aggregate boundary stays in code.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// getDB returns the transaction from context when running inside a
// unit of work, otherwise the plain handle.
func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save creates the order when its version is zero and updates it
// otherwise. Updates carry the optimistic-lock check: the UPDATE is
// predicated on the loaded version, and zero affected rows means a
// concurrent writer won.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	orderPO, itemPOs, historyPOs := po.FromOrderDomain(o)

	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, o, orderPO, itemPOs, historyPOs)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, o, orderPO, itemPOs, historyPOs)
	})
}

func (r *OrderRepository) saveWithTx(tx *gorm.DB, o *order.Order, orderPO *po.OrderPO, itemPOs []po.OrderItemPO, historyPOs []po.StatusHistoryPO) error {
	loadedVersion := o.Version()

	if loadedVersion == 0 {
		orderPO.Version = 1
		if err := tx.Create(orderPO).Error; err != nil {
			return err
		}
	} else {
		orderPO.Version = loadedVersion + 1
		result := tx.Model(&po.OrderPO{}).
			Where("id = ? AND version = ?", o.ID(), loadedVersion).
			Updates(map[string]interface{}{
				"status":            orderPO.Status,
				"total_amount":      orderPO.TotalAmount,
				"subtotal_amount":   orderPO.SubtotalAmount,
				"shipping_amount":   orderPO.ShippingAmount,
				"discount_amount":   orderPO.DiscountAmount,
				"currency":          orderPO.Currency,
				"customer_name":     orderPO.CustomerName,
				"customer_email":    orderPO.CustomerEmail,
				"customer_phone":    orderPO.CustomerPhone,
				"shipping_street":   orderPO.ShippingStreet,
				"shipping_city":     orderPO.ShippingCity,
				"shipping_postcode": orderPO.ShippingPostcode,
				"shipping_country":  orderPO.ShippingCountry,
				"payment_method":    orderPO.PaymentMethod,
				"delivered_at":      orderPO.DeliveredAt,
				"updated_at":        orderPO.UpdatedAt,
				"version":           orderPO.Version,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return order.NewConcurrentModificationError(o.ID())
		}
	}

	// Delete-then-insert keeps child rows exactly in sync with the
	// aggregate without diffing.
	if err := tx.Where("order_id = ?", o.ID()).Delete(&po.OrderItemPO{}).Error; err != nil {
		return err
	}
	if len(itemPOs) > 0 {
		if err := tx.Create(&itemPOs).Error; err != nil {
			return err
		}
	}

	if err := tx.Where("order_id = ?", o.ID()).Delete(&po.StatusHistoryPO{}).Error; err != nil {
		return err
	}
	if len(historyPOs) > 0 {
		if err := tx.Create(&historyPOs).Error; err != nil {
			return err
		}
	}

	o.IncrementVersionForSave()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	db := r.getDB(ctx)

	var orderPO po.OrderPO
	result := db.First(&orderPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotFoundError(id)
		}
		return nil, result.Error
	}

	itemPOs, historyPOs, err := r.loadChildren(db, id)
	if err != nil {
		return nil, err
	}
	return orderPO.ToDomain(itemPOs, historyPOs), nil
}

// loadChildren loads items and the history trail for one order.
// Preload is deliberately not used here.
func (r *OrderRepository) loadChildren(db *gorm.DB, orderID string) ([]po.OrderItemPO, []po.StatusHistoryPO, error) {
	var itemPOs []po.OrderItemPO
	if err := db.Where("order_id = ?", orderID).Order("id ASC").Find(&itemPOs).Error; err != nil {
		return nil, nil, err
	}
	var historyPOs []po.StatusHistoryPO
	if err := db.Where("order_id = ?", orderID).Order("seq ASC").Find(&historyPOs).Error; err != nil {
		return nil, nil, err
	}
	return itemPOs, historyPOs, nil
}

func (r *OrderRepository) findWhere(ctx context.Context, query func(db *gorm.DB) *gorm.DB) ([]*order.Order, error) {
	db := r.getDB(ctx)

	var orderPOs []po.OrderPO
	if err := query(db).Order("created_at DESC").Find(&orderPOs).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, len(orderPOs))
	for i, orderPO := range orderPOs {
		itemPOs, historyPOs, err := r.loadChildren(db, orderPO.ID)
		if err != nil {
			return nil, err
		}
		orders[i] = orderPO.ToDomain(itemPOs, historyPOs)
	}
	return orders, nil
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	return r.findWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db
	})
}

func (r *OrderRepository) FindByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	return r.findWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	})
}

func (r *OrderRepository) FindByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	return r.findWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", string(status))
	})
}

func (r *OrderRepository) FindByCreatedAtBetween(ctx context.Context, start, end time.Time) ([]*order.Order, error) {
	return r.findWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("created_at BETWEEN ? AND ?", start, end)
	})
}

func (r *OrderRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.getDB(ctx).Model(&po.OrderPO{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete physically removes the order and its child rows. When called
// outside a unit of work it opens its own transaction so the three
// deletes stay atomic.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.deleteWithTx(tx, id)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.deleteWithTx(tx, id)
	})
}

func (r *OrderRepository) deleteWithTx(tx *gorm.DB, id string) error {
	result := tx.Delete(&po.OrderPO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.NewOrderNotFoundError(id)
	}
	if err := tx.Where("order_id = ?", id).Delete(&po.OrderItemPO{}).Error; err != nil {
		return err
	}
	return tx.Where("order_id = ?", id).Delete(&po.StatusHistoryPO{}).Error
}

var _ order.Repository = (*OrderRepository)(nil)
