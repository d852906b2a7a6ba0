package service

import (
	"context"
	"slices"
	"time"

	"autoparts/internal/dto"
	"autoparts/internal/model"
	"autoparts/internal/repository"
)

type AlertService interface {
	List(ctx context.Context, filter dto.AlertFilter) ([]model.AlertDetail, error)
	// Acknowledge is idempotent: acknowledging twice keeps the first stamp.
	Acknowledge(ctx context.Context, id, userID string) (*model.StockAlert, error)
	// ScanRows raises alerts for the given products at shopID. An empty
	// product list means every product at the shop.
	ScanRows(ctx context.Context, shopID string, productIDs []string) (dto.ScanResponse, error)
	ScanAll(ctx context.Context) (dto.ScanResponse, error)
}

type alertService struct {
	store repository.Store
	now   func() time.Time
}

func NewAlertService(store repository.Store) AlertService {
	return &alertService{store: store, now: time.Now}
}

func (s *alertService) List(ctx context.Context, filter dto.AlertFilter) ([]model.AlertDetail, error) {
	all, err := s.store.ListAlerts(ctx)
	if err != nil {
		return nil, err
	}
	return filterSlice(all, func(a *model.AlertDetail) bool {
		if filter.Acknowledged != nil && a.Acknowledged != *filter.Acknowledged {
			return false
		}
		return filter.Level == "" || string(a.AlertLevel) == filter.Level
	}), nil
}

func (s *alertService) Acknowledge(ctx context.Context, id, userID string) (*model.StockAlert, error) {
	return s.store.AcknowledgeAlert(ctx, id, userID, s.now().UTC())
}

func (s *alertService) ScanAll(ctx context.Context) (dto.ScanResponse, error) {
	return s.scan(ctx, func(*model.InventoryDetail) bool { return true })
}

func (s *alertService) ScanRows(ctx context.Context, shopID string, productIDs []string) (dto.ScanResponse, error) {
	return s.scan(ctx, func(r *model.InventoryDetail) bool {
		if shopID != "" && r.ShopID != shopID {
			return false
		}
		return len(productIDs) == 0 || slices.Contains(productIDs, r.ProductID)
	})
}

type stockKey struct{ product, shop string }

// scan creates one alert per selected row that needs one and has no open
// (unacknowledged) alert yet.
func (s *alertService) scan(ctx context.Context, selected func(*model.InventoryDetail) bool) (dto.ScanResponse, error) {
	var res dto.ScanResponse

	rows, err := s.store.ListInventory(ctx)
	if err != nil {
		return res, err
	}
	alerts, err := s.store.ListAlerts(ctx)
	if err != nil {
		return res, err
	}
	open := make(map[stockKey]bool, len(alerts))
	for _, a := range alerts {
		if !a.Acknowledged {
			open[stockKey{a.ProductID, a.ShopID}] = true
		}
	}

	for i := range rows {
		r := &rows[i]
		if !selected(r) {
			continue
		}
		res.Scanned++
		status := model.ClassifyStock(r.Quantity, r.ReorderLevel)
		if !status.NeedsAlert() || open[stockKey{r.ProductID, r.ShopID}] {
			continue
		}
		level := status.AlertLevel()
		alert := &model.StockAlert{
			ProductID:  r.ProductID,
			ShopID:     r.ShopID,
			AlertLevel: level,
			Message:    model.AlertMessage(level, r.ProductName, r.ShopName, r.Quantity),
			CreatedAt:  s.now().UTC(),
		}
		if err := s.store.CreateAlert(ctx, alert); err != nil {
			return res, err
		}
		open[stockKey{r.ProductID, r.ShopID}] = true
		res.Created++
	}
	return res, nil
}
