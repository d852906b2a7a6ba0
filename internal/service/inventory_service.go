package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"autoparts/internal/dto"
	"autoparts/internal/model"
	"autoparts/internal/repository"
	"autoparts/internal/worker"
)

type InventoryService interface {
	List(ctx context.Context, filter dto.InventoryFilter) ([]model.InventoryDetail, error)
	Get(ctx context.Context, id string) (*model.InventoryDetail, error)
	Create(ctx context.Context, req dto.CreateInventoryRequest) (*model.InventoryDetail, error)
	Adjust(ctx context.Context, id string, req dto.AdjustInventoryRequest) (*model.InventoryDetail, error)
	StockStatus(q dto.StockStatusQuery) dto.StockStatusResponse
}

type inventoryService struct {
	store      repository.Store
	dispatcher *worker.Dispatcher
	now        func() time.Time
}

// NewInventoryService wires the inventory service. dispatcher may be nil, in
// which case adjustments do not schedule a stock check.
func NewInventoryService(store repository.Store, dispatcher *worker.Dispatcher) InventoryService {
	return &inventoryService{store: store, dispatcher: dispatcher, now: time.Now}
}

func (s *inventoryService) List(ctx context.Context, filter dto.InventoryFilter) ([]model.InventoryDetail, error) {
	all, err := s.store.ListInventory(ctx)
	if err != nil {
		return nil, err
	}
	return filterSlice(all, func(r *model.InventoryDetail) bool {
		if filter.ShopID != "" && r.ShopID != filter.ShopID {
			return false
		}
		if filter.LowStock && r.Quantity > r.ReorderLevel {
			return false
		}
		return matches(filter.Search, r.ProductName, r.ProductSKU, r.ProductBrand)
	}), nil
}

func (s *inventoryService) Get(ctx context.Context, id string) (*model.InventoryDetail, error) {
	return s.store.GetInventory(ctx, id)
}

func (s *inventoryService) Create(ctx context.Context, req dto.CreateInventoryRequest) (*model.InventoryDetail, error) {
	if _, err := s.store.GetProduct(ctx, req.ProductID); err != nil {
		return nil, notFoundAs(err, "product_id", "unknown product")
	}
	if _, err := s.store.GetShop(ctx, req.ShopID); err != nil {
		return nil, notFoundAs(err, "shop_id", "unknown shop")
	}

	rows, err := s.store.ListInventory(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		if r.ProductID == req.ProductID && r.ShopID == req.ShopID {
			return nil, ErrDuplicateInventory
		}
	}

	now := s.now().UTC()
	inv := &model.Inventory{
		ProductID:       req.ProductID,
		ShopID:          req.ShopID,
		Quantity:        req.Quantity,
		ReorderLevel:    req.ReorderLevel,
		ReorderQuantity: req.ReorderQuantity,
		Location:        nonEmpty(req.Location),
		LastRestocked:   &now,
	}
	if err := s.store.CreateInventory(ctx, inv); err != nil {
		return nil, err
	}
	s.scheduleCheck(ctx, inv.ShopID, inv.ProductID)
	return s.store.GetInventory(ctx, inv.ID)
}

// Adjust applies the fields present in req. Changing the quantity stamps
// last_restocked.
func (s *inventoryService) Adjust(ctx context.Context, id string, req dto.AdjustInventoryRequest) (*model.InventoryDetail, error) {
	cur, err := s.store.GetInventory(ctx, id)
	if err != nil {
		return nil, err
	}
	inv := cur.Inventory
	if req.Quantity != nil {
		inv.Quantity = *req.Quantity
		now := s.now().UTC()
		inv.LastRestocked = &now
	}
	if req.ReorderLevel != nil {
		inv.ReorderLevel = *req.ReorderLevel
	}
	if req.ReorderQuantity != nil {
		inv.ReorderQuantity = *req.ReorderQuantity
	}
	if req.Location != nil {
		inv.Location = nonEmpty(req.Location)
	}
	if err := s.store.UpdateInventory(ctx, &inv); err != nil {
		return nil, err
	}
	s.scheduleCheck(ctx, inv.ShopID, inv.ProductID)
	return s.store.GetInventory(ctx, id)
}

func (s *inventoryService) StockStatus(q dto.StockStatusQuery) dto.StockStatusResponse {
	status := model.ClassifyStock(q.Quantity, q.ReorderLevel)
	return dto.StockStatusResponse{
		Quantity:     q.Quantity,
		ReorderLevel: q.ReorderLevel,
		Status:       status,
		AlertLevel:   status.AlertLevel(),
	}
}

func (s *inventoryService) scheduleCheck(ctx context.Context, shopID string, productIDs ...string) {
	enqueueStockCheck(ctx, s.dispatcher, shopID, productIDs)
}

func enqueueStockCheck(ctx context.Context, d *worker.Dispatcher, shopID string, productIDs []string) {
	if d == nil {
		return
	}
	payload := worker.StockCheckPayload{ShopID: shopID, ProductIDs: productIDs}
	if err := d.EnqueueStockCheck(ctx, payload); err != nil {
		log.Warn().Err(err).Str("shop_id", shopID).Msg("failed to enqueue stock check")
	}
}

// notFoundAs turns a missing reference into a validation error on field.
func notFoundAs(err error, field, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return invalid(field, msg)
	}
	return err
}
