package service

import (
	"context"
	"io"

	"leadflow_backend/internal/adapters/storage"
	"leadflow_backend/internal/events"
	"leadflow_backend/internal/payments/transport"
	"leadflow_backend/internal/records"
	"leadflow_backend/platform/apperr"

	"github.com/google/uuid"
)

// ReceiptStore is the object storage used for receipt files.
type ReceiptStore = storage.ReceiptStore

const receiptFolder = "payments"

// ReceiptUpload is one file received from a client.
type ReceiptUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// AttachReceipt stores the file and points the payment at it. A previous
// receipt is removed once the new one is recorded.
func (s *Service) AttachReceipt(ctx context.Context, id uuid.UUID, up ReceiptUpload) (records.Payment, error) {
	if s.receipts == nil {
		return records.Payment{}, apperr.New(apperr.KindUpstream, "receipt storage is not configured")
	}
	if err := s.receipts.ValidateUpload(up.ContentType, up.Size); err != nil {
		return records.Payment{}, apperr.Validation(err.Error())
	}

	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return records.Payment{}, apperr.AsUpstream("failed to load payment", err)
	}

	key, err := s.receipts.Upload(ctx, receiptFolder+"/"+id.String(), up.FileName, up.ContentType, up.Body, up.Size)
	if err != nil {
		return records.Payment{}, apperr.Upstream("failed to store receipt", err)
	}

	updated, err := s.store.SetReceipt(ctx, id, key)
	if err != nil {
		if delErr := s.receipts.Delete(ctx, key); delErr != nil {
			s.log.Warn("orphaned receipt", "key", key, "error", delErr)
		}
		return records.Payment{}, apperr.AsUpstream("failed to record receipt", err)
	}

	if current.ReceiptKey != nil && *current.ReceiptKey != key {
		if err := s.receipts.Delete(ctx, *current.ReceiptKey); err != nil {
			s.log.Warn("receipt cleanup failed", "paymentId", id, "key", *current.ReceiptKey, "error", err)
		}
	}

	s.changed(ctx, id, events.ActionUpdated)
	return updated, nil
}

// ReceiptURL returns a short-lived download link for the payment's receipt.
func (s *Service) ReceiptURL(ctx context.Context, id uuid.UUID) (transport.ReceiptURLResponse, error) {
	if s.receipts == nil {
		return transport.ReceiptURLResponse{}, apperr.New(apperr.KindUpstream, "receipt storage is not configured")
	}

	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		return transport.ReceiptURLResponse{}, apperr.AsUpstream("failed to load payment", err)
	}
	if p.ReceiptKey == nil {
		return transport.ReceiptURLResponse{}, apperr.NotFound("payment has no receipt")
	}

	link, err := s.receipts.DownloadURL(ctx, *p.ReceiptKey)
	if err != nil {
		return transport.ReceiptURLResponse{}, apperr.Upstream("failed to sign receipt url", err)
	}
	return transport.ReceiptURLResponse{URL: link.URL, ExpiresAt: link.ExpiresAt}, nil
}
