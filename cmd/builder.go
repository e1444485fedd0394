// Package cmd assembles and runs the application: configuration,
// logger, database, repositories, services, controllers, router,
// HTTP server.
package cmd

import (
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"huerto/api"
	"huerto/api/health"
	apiorder "huerto/api/order"
	apiproduct "huerto/api/product"
	apisale "huerto/api/sale"
	orderapp "huerto/application/order"
	productapp "huerto/application/product"
	saleapp "huerto/application/sale"
	"huerto/config"
	"huerto/infrastructure/persistence/mysql"
	"huerto/infrastructure/persistence/retry"
	"huerto/pkg/logger"
)

// AppBuilder wires every layer together.
type AppBuilder struct {
	cfg *config.Config
}

func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

// Build constructs the App: connects the database, migrates it in
// development, and wires repositories through services to controllers.
func (b *AppBuilder) Build() *App {
	if err := logger.Init(&b.cfg.Log, b.cfg.App.Env); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env))

	db := b.connectDatabase()

	orderRepo := mysql.NewOrderRepository(db)
	saleRepo := mysql.NewSaleRepository(db)
	productRepo := mysql.NewProductRepository(db)

	uow := mysql.NewUnitOfWork(db)
	uow.SetRetryConfig(retry.FromAppConfig(b.cfg.Database.Retry))

	saleCreator := saleapp.NewCreator(saleRepo, productRepo)
	orderService := orderapp.NewApplicationService(orderRepo, saleCreator, uow)
	saleService := saleapp.NewApplicationService(saleRepo)
	productService := productapp.NewApplicationService(productRepo, uow)

	router := api.NewRouter(
		b.cfg,
		health.NewController(b.cfg, db),
		apiorder.NewController(orderService),
		apisale.NewController(saleService),
		apiproduct.NewController(productService),
	)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config: b.cfg,
		router: router,
		server: server,
		db:     db,
	}
}

func (b *AppBuilder) connectDatabase() *gorm.DB {
	db, err := mysql.Connect(b.cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to MySQL", zap.Error(err))
	}

	if b.cfg.IsDevelopment() {
		if err := mysql.AutoMigrate(db); err != nil {
			logger.Fatal("failed to auto migrate", zap.Error(err))
		}
	}
	return db
}
