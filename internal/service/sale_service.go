package service

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"autoparts/internal/dto"
	"autoparts/internal/infra"
	"autoparts/internal/model"
	"autoparts/internal/repository"
	"autoparts/internal/worker"
)

type SaleService interface {
	List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	Get(ctx context.Context, id string) (*model.SaleDetail, error)
	// Create prices the cart, records the sale and decrements stock.
	Create(ctx context.Context, userID string, req dto.CreateSaleRequest) (*model.SaleDetail, error)
	// Receipt renders the sale as a PDF receipt.
	Receipt(ctx context.Context, id string) ([]byte, error)
}

type saleService struct {
	store      repository.Store
	dispatcher *worker.Dispatcher
	now        func() time.Time
}

func NewSaleService(store repository.Store, dispatcher *worker.Dispatcher) SaleService {
	return &saleService{store: store, dispatcher: dispatcher, now: time.Now}
}

func (s *saleService) List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	all, err := s.store.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	sales := filterSlice(all, func(sale *model.SaleDetail) bool {
		if filter.ShopID != "" && sale.ShopID != filter.ShopID {
			return false
		}
		if filter.Since != nil && sale.CreatedAt.Before(*filter.Since) {
			return false
		}
		return matches(filter.Search, deref(sale.CustomerName), deref(sale.CustomerPhone), sale.ID)
	})

	revenue := decimal.Zero
	for _, sale := range sales {
		revenue = revenue.Add(sale.TotalAmount)
	}
	average := decimal.Zero
	if len(sales) > 0 {
		average = revenue.Div(decimal.NewFromInt(int64(len(sales)))).Round(2)
	}
	return &dto.SaleListResponse{Data: sales, Count: len(sales), Revenue: revenue, Average: average}, nil
}

func (s *saleService) Get(ctx context.Context, id string) (*model.SaleDetail, error) {
	return s.store.GetSale(ctx, id)
}

func (s *saleService) Create(ctx context.Context, userID string, req dto.CreateSaleRequest) (*model.SaleDetail, error) {
	if _, err := s.store.GetShop(ctx, req.ShopID); err != nil {
		return nil, notFoundAs(err, "shop_id", "unknown shop")
	}

	// ── Price the cart ──────────────────────────────────────────────────────
	items := make([]model.SaleItem, 0, len(req.Items))
	productIDs := make([]string, 0, len(req.Items))
	total := decimal.Zero
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			return nil, invalid("items.quantity", "must be positive")
		}
		p, err := s.store.GetProduct(ctx, it.ProductID)
		if err != nil {
			return nil, notFoundAs(err, "items.product_id", "unknown product "+it.ProductID)
		}
		price := p.UnitPrice
		if it.UnitPrice != nil {
			price = *it.UnitPrice
		}
		price = price.Round(2)
		subtotal := price.Mul(decimal.NewFromInt(int64(it.Quantity))).Round(2)
		total = total.Add(subtotal)

		items = append(items, model.SaleItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: price,
			Subtotal:  subtotal,
		})
		productIDs = append(productIDs, it.ProductID)
	}

	sale := &model.Sale{
		ShopID:        req.ShopID,
		UserID:        userID,
		TotalAmount:   total,
		CustomerName:  nonEmpty(req.CustomerName),
		CustomerPhone: nonEmpty(req.CustomerPhone),
		PaymentMethod: strings.ToLower(req.PaymentMethod),
		CreatedAt:     s.now().UTC(),
	}
	if err := s.store.CreateSale(ctx, sale, items); err != nil {
		return nil, err
	}

	enqueueStockCheck(ctx, s.dispatcher, sale.ShopID, productIDs)
	return s.store.GetSale(ctx, sale.ID)
}

func (s *saleService) Receipt(ctx context.Context, id string) ([]byte, error) {
	sale, err := s.store.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := infra.WriteReceiptPDF(&buf, sale); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
