package service

import (
	"context"

	"go-commerce-api/internal/repository"
)

// LowStockThreshold is the stock level below which a variant counts as low.
const LowStockThreshold = 5

type DashboardStats struct {
	repository.OrderStats
	LowStockVariants int64 `json:"low_stock_variants"`
}

type DashboardService interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

type dashboardService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

func NewDashboardService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) DashboardService {
	return &dashboardService{orderRepo: orderRepo, productRepo: productRepo}
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	orders, err := s.orderRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.productRepo.CountLowStockVariants(ctx, LowStockThreshold)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{OrderStats: *orders, LowStockVariants: lowStock}, nil
}
