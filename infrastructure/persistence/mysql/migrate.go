package mysql

import (
	"gorm.io/gorm"

	"huerto/infrastructure/persistence/mysql/po"
	"huerto/pkg/logger"
)

// AutoMigrate creates or updates the schema for every persistence
// object. Suitable for development and small deployments; production
// schema changes go through reviewed SQL.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&po.OrderPO{},
		&po.OrderItemPO{},
		&po.StatusHistoryPO{},
		&po.SalePO{},
		&po.SaleItemPO{},
		&po.ProductPO{},
	)
	if err != nil {
		return err
	}
	logger.Info("database schema migrated")
	return nil
}
