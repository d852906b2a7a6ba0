package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"autoparts/internal/dto"
)

// StockCheckPayload names the inventory rows touched by a sale or an adjustment.
type StockCheckPayload struct {
	ShopID     string   `json:"shop_id"`
	ProductIDs []string `json:"product_ids"`
}

// StockScanner raises alerts for inventory rows that need one.
type StockScanner interface {
	ScanRows(ctx context.Context, shopID string, productIDs []string) (dto.ScanResponse, error)
	ScanAll(ctx context.Context) (dto.ScanResponse, error)
}

// StockCheckWorker re-evaluates alerts after stock moves.
type StockCheckWorker struct {
	scanner StockScanner
}

func NewStockCheckWorker(scanner StockScanner) *StockCheckWorker {
	return &StockCheckWorker{scanner: scanner}
}

func (w *StockCheckWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload StockCheckPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("stock_check: invalid payload: %w", err)
	}
	res, err := w.scanner.ScanRows(ctx, payload.ShopID, payload.ProductIDs)
	if err != nil {
		return err
	}
	if res.Created > 0 {
		log.Info().
			Str("shop_id", payload.ShopID).
			Int("created", res.Created).
			Msg("stock_check: alerts raised")
	}
	return nil
}
