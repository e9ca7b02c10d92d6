package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"leadflow_backend/internal/adapters/storage"
	"leadflow_backend/internal/events"
	"leadflow_backend/internal/payments/reconcile"
	"leadflow_backend/internal/payments/repository"
	"leadflow_backend/internal/payments/transport"
	"leadflow_backend/internal/records"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPayments struct {
	rows map[uuid.UUID]records.Payment
}

func newMemPayments(ps ...records.Payment) *memPayments {
	m := &memPayments{rows: make(map[uuid.UUID]records.Payment)}
	for _, p := range ps {
		m.rows[p.ID] = p
	}
	return m
}

func (m *memPayments) Create(_ context.Context, p records.Payment) (records.Payment, error) {
	m.rows[p.ID] = p
	return p, nil
}

func (m *memPayments) GetByID(_ context.Context, id uuid.UUID) (records.Payment, error) {
	p, ok := m.rows[id]
	if !ok {
		return records.Payment{}, apperr.NotFound("payment not found")
	}
	return p, nil
}

func (m *memPayments) LockByID(ctx context.Context, id uuid.UUID) (records.Payment, error) {
	return m.GetByID(ctx, id)
}

func (m *memPayments) List(context.Context, repository.ListParams) ([]records.Payment, int, error) {
	out := make([]records.Payment, 0, len(m.rows))
	for _, p := range m.rows {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (m *memPayments) Update(_ context.Context, p records.Payment) (records.Payment, error) {
	if _, ok := m.rows[p.ID]; !ok {
		return records.Payment{}, apperr.NotFound("payment not found")
	}
	m.rows[p.ID] = p
	return p, nil
}

func (m *memPayments) SetReceipt(_ context.Context, id uuid.UUID, key string) (records.Payment, error) {
	p, ok := m.rows[id]
	if !ok {
		return records.Payment{}, apperr.NotFound("payment not found")
	}
	p.ReceiptKey = &key
	m.rows[id] = p
	return p, nil
}

func (m *memPayments) Delete(_ context.Context, id uuid.UUID) (records.Payment, error) {
	p, ok := m.rows[id]
	if !ok {
		return records.Payment{}, apperr.NotFound("payment not found")
	}
	delete(m.rows, id)
	return p, nil
}

func (m *memPayments) WithTx(_ context.Context, fn func(repository.Repository) error) error {
	return fn(m)
}

type memHandover struct {
	byPayment map[uuid.UUID]records.TechTask
}

func (h *memHandover) CreateTask(_ context.Context, t records.TechTask) (records.TechTask, error) {
	if _, ok := h.byPayment[*t.PaymentID]; ok {
		return records.TechTask{}, apperr.Conflict("payment already handed over")
	}
	h.byPayment[*t.PaymentID] = t
	return t, nil
}

type memReceipts struct {
	objects map[string][]byte
	deleted []string
}

func (r *memReceipts) Upload(_ context.Context, folder, fileName, _ string, reader io.Reader, _ int64) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	key := folder + "/" + uuid.NewString() + "_" + fileName
	r.objects[key] = data
	return key, nil
}

func (r *memReceipts) DownloadURL(_ context.Context, key string) (*storage.PresignedURL, error) {
	return &storage.PresignedURL{URL: "https://files.example/" + key, FileKey: key, ExpiresAt: time.Now().Add(time.Minute)}, nil
}

func (r *memReceipts) Delete(_ context.Context, key string) error {
	delete(r.objects, key)
	r.deleted = append(r.deleted, key)
	return nil
}

func (r *memReceipts) ValidateUpload(contentType string, size int64) error {
	if err := storage.ValidateContentType(contentType); err != nil {
		return err
	}
	if size <= 0 {
		return errors.New("file size must be greater than 0")
	}
	return nil
}

type nopBus struct{ names []string }

func (b *nopBus) Publish(_ context.Context, e events.Event) { b.names = append(b.names, e.EventName()) }

func newTestService(store *memPayments, receipts ReceiptStore) (*Service, *memHandover, *nopBus) {
	handover := &memHandover{byPayment: make(map[uuid.UUID]records.TechTask)}
	bus := &nopBus{}
	svc := New(store, handover, receipts, bus, logger.Discard())
	svc.now = func() time.Time { return time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC) }
	return svc, handover, bus
}

func storedPayment(amount, advance string) records.Payment {
	a, adv := records.MustAmount(amount), records.MustAmount(advance)
	return records.Payment{
		ID:        uuid.New(),
		Company:   "Acme Traders",
		Amount:    a,
		Advance:   adv,
		Remaining: reconcile.ComputeRemaining(a, adv),
	}
}

func TestCreateDerivesRemaining(t *testing.T) {
	svc, _, bus := newTestService(newMemPayments(), nil)
	bogus := records.MustAmount("999")

	p, err := svc.Create(context.Background(), transport.CreatePaymentRequest{
		Company:   "Acme",
		Amount:    records.MustAmount("100.005"),
		Advance:   records.MustAmount("150"),
		Remaining: &bogus,
	})
	require.NoError(t, err)
	assert.Equal(t, "100.01", p.Amount.String())
	assert.Equal(t, "-49.99", p.Remaining.String())
	assert.True(t, reconcile.Consistent(p))
	assert.Equal(t, []string{"payments.changed"}, bus.names)
}

func TestCreateRejectsNegativeInputs(t *testing.T) {
	svc, _, _ := newTestService(newMemPayments(), nil)

	_, err := svc.Create(context.Background(), transport.CreatePaymentRequest{
		Company: "Acme",
		Amount:  records.MustAmount("-1"),
	})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.Create(context.Background(), transport.CreatePaymentRequest{Company: "  "})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestUpdateRecomputesFromMergedValues(t *testing.T) {
	p := storedPayment("1000", "400")
	store := newMemPayments(p)
	svc, _, _ := newTestService(store, nil)

	advance := records.MustAmount("250.50")
	bogus := records.MustAmount("1")
	invoice := "INV-7"
	updated, err := svc.Update(context.Background(), p.ID, transport.UpdatePaymentRequest{
		Advance:   &advance,
		Remaining: &bogus,
		Invoice:   &invoice,
	})
	require.NoError(t, err)
	assert.Equal(t, "1000.00", updated.Amount.String())
	assert.Equal(t, "749.50", updated.Remaining.String())
	assert.Equal(t, "INV-7", updated.Invoice)
	assert.True(t, reconcile.Consistent(store.rows[p.ID]))
}

func TestUpdateRejectsNegativeAdvance(t *testing.T) {
	p := storedPayment("1000", "400")
	store := newMemPayments(p)
	svc, _, _ := newTestService(store, nil)

	negative := records.MustAmount("-5")
	_, err := svc.Update(context.Background(), p.ID, transport.UpdatePaymentRequest{Advance: &negative})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, "600.00", store.rows[p.ID].Remaining.String())
}

func TestUpdateUnknownPayment(t *testing.T) {
	svc, _, _ := newTestService(newMemPayments(), nil)
	_, err := svc.Update(context.Background(), uuid.New(), transport.UpdatePaymentRequest{})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestGoThruCreatesTechTaskOnce(t *testing.T) {
	p := storedPayment("500", "0")
	svc, handover, bus := newTestService(newMemPayments(p), nil)

	resp, err := svc.GoThru(context.Background(), p.ID, transport.GoThruRequest{ClientName: "Ravi"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Traders", resp.Task.CompanyName)
	assert.Equal(t, "Auto Created Task", resp.Task.TaskName)
	assert.Equal(t, records.PriorityMedium, resp.Task.Priority)
	assert.Equal(t, "Pending", resp.Task.Status)
	assert.Len(t, handover.byPayment, 1)
	assert.Equal(t, []string{"payments.handed_over"}, bus.names)

	_, err = svc.GoThru(context.Background(), p.ID, transport.GoThruRequest{})
	assert.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestGoThruValidation(t *testing.T) {
	p := storedPayment("500", "0")
	svc, _, _ := newTestService(newMemPayments(p), nil)

	_, err := svc.GoThru(context.Background(), p.ID, transport.GoThruRequest{Deadline: "31/12/2025"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.GoThru(context.Background(), uuid.New(), transport.GoThruRequest{})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestReceiptLifecycle(t *testing.T) {
	p := storedPayment("500", "0")
	store := newMemPayments(p)
	receipts := &memReceipts{objects: make(map[string][]byte)}
	svc, _, _ := newTestService(store, receipts)

	_, err := svc.ReceiptURL(context.Background(), p.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	first, err := svc.AttachReceipt(context.Background(), p.ID, ReceiptUpload{
		FileName: "r1.pdf", ContentType: "application/pdf", Size: 3, Body: bytes.NewReader([]byte("abc")),
	})
	require.NoError(t, err)
	require.NotNil(t, first.ReceiptKey)

	second, err := svc.AttachReceipt(context.Background(), p.ID, ReceiptUpload{
		FileName: "r2.png", ContentType: "image/png", Size: 3, Body: bytes.NewReader([]byte("xyz")),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{*first.ReceiptKey}, receipts.deleted)

	link, err := svc.ReceiptURL(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Contains(t, link.URL, *second.ReceiptKey)

	_, err = svc.AttachReceipt(context.Background(), p.ID, ReceiptUpload{
		FileName: "x.html", ContentType: "text/html", Size: 3, Body: bytes.NewReader([]byte("<a>")),
	})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	require.NoError(t, svc.Delete(context.Background(), p.ID))
	assert.Contains(t, receipts.deleted, *second.ReceiptKey)
}

func TestReceiptsWithoutStorage(t *testing.T) {
	p := storedPayment("500", "0")
	svc, _, _ := newTestService(newMemPayments(p), nil)

	_, err := svc.AttachReceipt(context.Background(), p.ID, ReceiptUpload{ContentType: "application/pdf", Size: 1})
	assert.True(t, apperr.Is(err, apperr.KindUpstream))
	require.NoError(t, svc.Delete(context.Background(), p.ID))
}
