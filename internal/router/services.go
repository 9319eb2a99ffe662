package router

import (
	"salelog/internal/config"
	"salelog/internal/infra"
	"salelog/internal/repository"
	"salelog/internal/service"
	"salelog/internal/worker"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services is the service layer shared by the HTTP router, the worker pool
// and the CLI.
type Services struct {
	Sales    service.SaleService
	Items    service.ItemService
	Auth     service.AuthService
	Handover service.HandoverService
}

// NewServices wires repositories into services.
// Dependency graph: Service ← Repository ← DB/Redis
func NewServices(cfg *config.Config, db *gorm.DB, rdb *redis.Client, reg prometheus.Registerer) *Services {
	saleRepo := repository.NewSaleRepository(db)
	itemRepo := repository.NewItemRepository(db)
	userRepo := repository.NewUserRepository(db)

	var observer service.Observer
	if reg != nil {
		observer = infra.NewReportMetrics(reg)
	}

	items := service.NewItemService(itemRepo, rdb, cfg.ItemCacheTTL())
	sales := service.NewSaleService(saleRepo, items, cfg, observer)
	return &Services{
		Sales:    sales,
		Items:    items,
		Auth:     service.NewAuthService(userRepo, cfg),
		Handover: service.NewHandoverService(sales, worker.NewDispatcher(rdb), cfg),
	}
}
