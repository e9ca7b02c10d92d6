package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leadflow_backend/internal/events"
	"leadflow_backend/internal/payments/repository"
	"leadflow_backend/internal/payments/service"
	"leadflow_backend/internal/records"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/httpkit"
	"leadflow_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeStore struct {
	repository.Repository
	rows map[uuid.UUID]records.Payment
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (records.Payment, error) {
	p, ok := f.rows[id]
	if !ok {
		return records.Payment{}, apperr.NotFound("payment not found")
	}
	return p, nil
}

func (f *fakeStore) Create(_ context.Context, p records.Payment) (records.Payment, error) {
	f.rows[p.ID] = p
	return p, nil
}

func (f *fakeStore) WithTx(_ context.Context, fn func(repository.Repository) error) error {
	return fn(f)
}

type fakeHandover struct{ created int }

func (h *fakeHandover) CreateTask(_ context.Context, t records.TechTask) (records.TechTask, error) {
	h.created++
	return t, nil
}

type nopBus struct{}

func (nopBus) Publish(context.Context, events.Event) {}

func newRouter(store *fakeStore, handover *fakeHandover, roles ...string) *gin.Engine {
	svc := service.New(store, handover, nil, nopBus{}, logger.Discard())
	h := New(svc, records.NewValidator(), 1<<20)

	r := gin.New()
	g := r.Group("/payments")
	g.Use(func(c *gin.Context) {
		httpkit.SetIdentity(c, uuid.New(), roles)
		c.Next()
	})
	h.RegisterRoutes(g)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTechMayOnlyHandOver(t *testing.T) {
	p := records.Payment{ID: uuid.New(), Company: "Acme"}
	store := &fakeStore{rows: map[uuid.UUID]records.Payment{p.ID: p}}
	handover := &fakeHandover{}
	r := newRouter(store, handover, "Tech")

	w := do(r, http.MethodPost, "/payments", `{"company":"Acme","amount":10}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodDelete, "/payments/"+p.ID.String(), "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodPost, "/payments/"+p.ID.String()+"/go-thru", `{"client_name":"Ravi"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 1, handover.created)

	w = do(r, http.MethodPost, "/payments/"+p.ID.String()+"/go-thru", "")
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCreateReturnsDerivedRemaining(t *testing.T) {
	store := &fakeStore{rows: map[uuid.UUID]records.Payment{}}
	r := newRouter(store, &fakeHandover{}, "Sales")

	w := do(r, http.MethodPost, "/payments", `{"company":"Acme","amount":"1000","advance":1200.5,"remaining":0}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"remaining":-200.50`)
}

func TestReceiptWithoutStorage(t *testing.T) {
	p := records.Payment{ID: uuid.New(), Company: "Acme"}
	store := &fakeStore{rows: map[uuid.UUID]records.Payment{p.ID: p}}
	r := newRouter(store, &fakeHandover{}, "Sales")

	w := do(r, http.MethodGet, "/payments/"+p.ID.String()+"/receipt", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = do(r, http.MethodGet, "/payments/nope/receipt", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
