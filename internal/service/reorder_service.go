package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"autoparts/internal/dto"
	"autoparts/internal/model"
	"autoparts/internal/repository"
	"autoparts/internal/worker"
)

type ReorderService interface {
	List(ctx context.Context, filter dto.ReorderFilter) ([]model.ReorderDetail, error)
	Get(ctx context.Context, id string) (*model.ReorderDetail, error)
	// Create opens a pending request. The supplier defaults to the product's.
	Create(ctx context.Context, userID string, req dto.CreateReorderRequest) (*model.ReorderDetail, error)
	// Transition moves the request to next. Entering ordered emails the
	// supplier; entering received restocks the shop.
	Transition(ctx context.Context, id string, next model.ReorderStatus) (*model.ReorderDetail, error)
}

type reorderService struct {
	store      repository.Store
	dispatcher *worker.Dispatcher
	now        func() time.Time
}

func NewReorderService(store repository.Store, dispatcher *worker.Dispatcher) ReorderService {
	return &reorderService{store: store, dispatcher: dispatcher, now: time.Now}
}

func (s *reorderService) List(ctx context.Context, filter dto.ReorderFilter) ([]model.ReorderDetail, error) {
	all, err := s.store.ListReorders(ctx)
	if err != nil {
		return nil, err
	}
	return filterSlice(all, func(r *model.ReorderDetail) bool {
		return filter.Status == "" || string(r.Status) == filter.Status
	}), nil
}

func (s *reorderService) Get(ctx context.Context, id string) (*model.ReorderDetail, error) {
	return s.store.GetReorder(ctx, id)
}

func (s *reorderService) Create(ctx context.Context, userID string, req dto.CreateReorderRequest) (*model.ReorderDetail, error) {
	if req.Quantity <= 0 {
		return nil, invalid("quantity", "must be positive")
	}
	product, err := s.store.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, notFoundAs(err, "product_id", "unknown product")
	}
	if _, err := s.store.GetShop(ctx, req.ShopID); err != nil {
		return nil, notFoundAs(err, "shop_id", "unknown shop")
	}

	supplierID := deref(nonEmpty(req.SupplierID))
	if supplierID == "" {
		supplierID = deref(product.SupplierID)
	}
	if supplierID == "" {
		return nil, invalid("supplier_id", "product has no supplier, one must be given")
	}
	if _, err := s.store.GetSupplier(ctx, supplierID); err != nil {
		return nil, notFoundAs(err, "supplier_id", "unknown supplier")
	}

	r := &model.ReorderRequest{
		ShopID:     req.ShopID,
		ProductID:  req.ProductID,
		SupplierID: supplierID,
		Quantity:   req.Quantity,
		Status:     model.ReorderPending,
		Notes:      nonEmpty(req.Notes),
		CreatedAt:  s.now().UTC(),
	}
	if userID != "" {
		r.RequestedBy = &userID
	}
	if err := s.store.CreateReorder(ctx, r); err != nil {
		return nil, err
	}
	return s.store.GetReorder(ctx, r.ID)
}

func (s *reorderService) Transition(ctx context.Context, id string, next model.ReorderStatus) (*model.ReorderDetail, error) {
	cur, err := s.store.GetReorder(ctx, id)
	if err != nil {
		return nil, err
	}
	from := cur.Status
	if !from.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, next)
	}

	r := cur.ReorderRequest
	r.Apply(next, s.now().UTC())
	if err := s.store.TransitionReorder(ctx, &r, from); err != nil {
		return nil, err
	}

	updated, err := s.store.GetReorder(ctx, id)
	if err != nil {
		return nil, err
	}
	if next == model.ReorderOrdered {
		s.notifySupplier(ctx, updated)
	}
	return updated, nil
}

// notifySupplier enqueues the purchase-order email. Failures are logged only:
// the order is already placed.
func (s *reorderService) notifySupplier(ctx context.Context, r *model.ReorderDetail) {
	if s.dispatcher == nil {
		return
	}
	sup, err := s.store.GetSupplier(ctx, r.SupplierID)
	if err != nil || sup.Email == nil || *sup.Email == "" {
		log.Debug().Str("reorder_id", r.ID).Msg("supplier has no email, purchase order not sent")
		return
	}
	payload := worker.PurchaseOrderPayload{
		ReorderID: r.ID,
		ToEmail:   *sup.Email,
		Subject:   fmt.Sprintf("Purchase order %s: %d x %s", r.ID, r.Quantity, r.ProductSKU),
		Body: fmt.Sprintf("Hello %s,\n\nPlease ship %d units of %s (%s) to %s.\nThe purchase order is attached.\n",
			r.SupplierName, r.Quantity, r.ProductName, r.ProductSKU, r.ShopName),
	}
	if err := s.dispatcher.EnqueuePurchaseOrder(ctx, payload); err != nil {
		log.Warn().Err(err).Str("reorder_id", r.ID).Msg("failed to enqueue purchase order email")
	}
}
