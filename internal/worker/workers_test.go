package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts/internal/dto"
	"autoparts/internal/infra"
	"autoparts/internal/model"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubScanner struct {
	shopID     string
	productIDs []string
	sweeps     atomic.Int32
	err        error
}

func (s *stubScanner) ScanRows(_ context.Context, shopID string, productIDs []string) (dto.ScanResponse, error) {
	s.shopID, s.productIDs = shopID, productIDs
	return dto.ScanResponse{Scanned: len(productIDs), Created: 1}, s.err
}

func (s *stubScanner) ScanAll(context.Context) (dto.ScanResponse, error) {
	s.sweeps.Add(1)
	return dto.ScanResponse{}, nil
}

type stubSender struct {
	to          string
	subject     string
	attachments []infra.Attachment
	err         error
}

func (s *stubSender) Send(to, subject, _ string, attachments ...infra.Attachment) error {
	s.to, s.subject, s.attachments = to, subject, attachments
	return s.err
}

type stubOrders map[string]*model.ReorderDetail

func (o stubOrders) GetReorder(_ context.Context, id string) (*model.ReorderDetail, error) {
	r, ok := o[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return r, nil
}

func sampleOrder() *model.ReorderDetail {
	return &model.ReorderDetail{
		ReorderRequest: model.ReorderRequest{
			ID: "reorder-1", ProductID: "prod-1", ShopID: "shop-1",
			Quantity: 24, Status: model.ReorderOrdered, CreatedAt: time.Now(),
		},
		ProductName:  "Oil Filter",
		ProductSKU:   "FLT-001",
		SupplierName: "AutoZone Wholesale",
		ShopName:     "Downtown",
	}
}

func rawJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

// ── Stock check ──────────────────────────────────────────────────────────────

func TestStockCheckWorker_Process(t *testing.T) {
	sc := &stubScanner{}
	w := NewStockCheckWorker(sc)

	err := w.Process(context.Background(), rawJSON(t, StockCheckPayload{ShopID: "shop-2", ProductIDs: []string{"prod-3", "prod-4"}}))
	require.NoError(t, err)
	assert.Equal(t, "shop-2", sc.shopID)
	assert.Equal(t, []string{"prod-3", "prod-4"}, sc.productIDs)
}

func TestStockCheckWorker_ScannerErrorIsReturned(t *testing.T) {
	w := NewStockCheckWorker(&stubScanner{err: errors.New("boom")})
	assert.Error(t, w.Process(context.Background(), rawJSON(t, StockCheckPayload{ShopID: "shop-1"})))
	assert.Error(t, w.Process(context.Background(), json.RawMessage(`[`)))
}

// ── Email ────────────────────────────────────────────────────────────────────

func TestEmailWorker_SendsPurchaseOrderPDF(t *testing.T) {
	sender := &stubSender{}
	w := NewEmailWorker(sender, stubOrders{"reorder-1": sampleOrder()})

	err := w.Process(context.Background(), rawJSON(t, PurchaseOrderPayload{
		ReorderID: "reorder-1", ToEmail: "orders@supplier.test", Subject: "Purchase order", Body: "Please ship",
	}))
	require.NoError(t, err)

	assert.Equal(t, "orders@supplier.test", sender.to)
	require.Len(t, sender.attachments, 1)
	att := sender.attachments[0]
	assert.Equal(t, "purchase-order-reorder-1.pdf", att.Name)
	assert.Equal(t, "application/pdf", att.ContentType)
	assert.True(t, len(att.Data) > 4 && string(att.Data[:5]) == "%PDF-")
}

func TestEmailWorker_SkipsWithoutRecipientOrMailer(t *testing.T) {
	payload := rawJSON(t, PurchaseOrderPayload{ReorderID: "reorder-1", ToEmail: "orders@supplier.test"})

	assert.NoError(t, NewEmailWorker(nil, stubOrders{}).Process(context.Background(), payload))

	sender := &stubSender{}
	empty := rawJSON(t, PurchaseOrderPayload{ReorderID: "reorder-1"})
	assert.NoError(t, NewEmailWorker(sender, stubOrders{}).Process(context.Background(), empty))
	assert.Empty(t, sender.to)
}

func TestEmailWorker_FailuresAreRetryable(t *testing.T) {
	payload := rawJSON(t, PurchaseOrderPayload{ReorderID: "reorder-1", ToEmail: "orders@supplier.test"})

	err := NewEmailWorker(&stubSender{}, stubOrders{}).Process(context.Background(), payload)
	assert.Error(t, err, "missing reorder")

	err = NewEmailWorker(&stubSender{err: errors.New("dial tcp: refused")}, stubOrders{"reorder-1": sampleOrder()}).
		Process(context.Background(), payload)
	assert.Error(t, err)
}

// ── Alert sweep ──────────────────────────────────────────────────────────────

func TestStartAlertSweep_Ticks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sc := &stubScanner{}
	StartAlertSweep(ctx, sc, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return sc.sweeps.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
}

func TestStartAlertSweep_DisabledInterval(t *testing.T) {
	sc := &stubScanner{}
	StartAlertSweep(context.Background(), sc, 0)
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, sc.sweeps.Load())
}

