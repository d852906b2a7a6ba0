package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"autoparts/internal/dto"
	"autoparts/internal/model"
	"autoparts/internal/repository"
)

// recentLimit caps the recent alerts and recent sales shown on the dashboard.
const recentLimit = 5

type DashboardService interface {
	Summary(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	store repository.Store
	now   func() time.Time
}

func NewDashboardService(store repository.Store) DashboardService {
	return &dashboardService{store: store, now: time.Now}
}

func (s *dashboardService) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	alerts, err := s.store.ListAlerts(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.store.ListSales(ctx)
	if err != nil {
		return nil, err
	}

	res := &dto.DashboardResponse{
		TotalProducts: len(products),
		TodayRevenue:  decimal.Zero,
		RecentAlerts:  []model.AlertDetail{},
		RecentSales:   []model.SaleDetail{},
	}

	// Alerts arrive newest first.
	for _, a := range alerts {
		if a.Acknowledged {
			continue
		}
		switch a.AlertLevel {
		case model.AlertLow:
			res.LowStockItems++
		case model.AlertCritical:
			res.CriticalStockItems++
		}
		if len(res.RecentAlerts) < recentLimit {
			res.RecentAlerts = append(res.RecentAlerts, a)
		}
	}

	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, sale := range sales {
		if !sale.CreatedAt.Before(midnight) {
			res.TodaySales++
			res.TodayRevenue = res.TodayRevenue.Add(sale.TotalAmount)
		}
		if len(res.RecentSales) < recentLimit {
			res.RecentSales = append(res.RecentSales, sale)
		}
	}
	return res, nil
}
