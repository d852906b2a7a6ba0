package worker

// email_worker.go
// Sends purchase orders to suppliers when a reorder request is placed.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"autoparts/internal/infra"
	"autoparts/internal/model"
)

// PurchaseOrderPayload is the job envelope sent to QueueEmail.
type PurchaseOrderPayload struct {
	ReorderID string `json:"reorder_id"`
	ToEmail   string `json:"to_email"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// Sender delivers one message. *infra.Mailer satisfies it.
type Sender interface {
	Send(to, subject, body string, attachments ...infra.Attachment) error
}

// ReorderSource loads the request rendered into the attached PDF.
type ReorderSource interface {
	GetReorder(ctx context.Context, id string) (*model.ReorderDetail, error)
}

// EmailWorker processes purchase-order jobs from QueueEmail.
type EmailWorker struct {
	mailer Sender
	orders ReorderSource
}

// NewEmailWorker creates an EmailWorker. A nil mailer turns every job into
// a logged no-op.
func NewEmailWorker(mailer Sender, orders ReorderSource) *EmailWorker {
	return &EmailWorker{mailer: mailer, orders: orders}
}

// Process renders the purchase order PDF and mails it to the supplier.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload PurchaseOrderPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("email_worker: invalid payload: %w", err)
	}
	if payload.ToEmail == "" {
		log.Warn().Str("reorder_id", payload.ReorderID).Msg("email_worker: empty to_email, skipping")
		return nil
	}
	if w.mailer == nil {
		log.Warn().Str("reorder_id", payload.ReorderID).Msg("email_worker: SMTP not configured, skipping")
		return nil
	}

	order, err := w.orders.GetReorder(ctx, payload.ReorderID)
	if err != nil {
		return fmt.Errorf("email_worker: load reorder %s: %w", payload.ReorderID, err)
	}
	var buf bytes.Buffer
	if err := infra.WritePurchaseOrderPDF(&buf, order); err != nil {
		return fmt.Errorf("email_worker: render purchase order: %w", err)
	}

	att := infra.Attachment{
		Name:        "purchase-order-" + order.ID + ".pdf",
		ContentType: "application/pdf",
		Data:        buf.Bytes(),
	}
	if err := w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body, att); err != nil {
		return fmt.Errorf("email_worker: send to %s: %w", payload.ToEmail, err)
	}
	log.Info().Str("to", payload.ToEmail).Str("reorder_id", order.ID).Msg("email_worker: purchase order sent")
	return nil
}
