package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"leadflow_backend/internal/events"
	"leadflow_backend/internal/leads/repository"
	"leadflow_backend/internal/leads/service"
	"leadflow_backend/internal/leads/transport"
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

type stubRepo struct {
	leads map[uuid.UUID]records.Lead
}

func (r *stubRepo) GetByID(_ context.Context, id uuid.UUID) (records.Lead, error) {
	l, ok := r.leads[id]
	if !ok {
		return records.Lead{}, apperr.NotFound("lead not found")
	}
	return l, nil
}

func (r *stubRepo) List(context.Context, repository.ListParams) ([]records.Lead, int, error) {
	out := make([]records.Lead, 0, len(r.leads))
	for _, l := range r.leads {
		out = append(out, l)
	}
	return out, len(out), nil
}

func (r *stubRepo) Create(_ context.Context, p repository.CreateParams) (records.Lead, error) {
	l := records.Lead{ID: p.ID, Company: p.Company, Name: p.Name, Contact: p.Contact, Status: p.Status}
	r.leads[l.ID] = l
	return l, nil
}

func (r *stubRepo) Update(_ context.Context, id uuid.UUID, p repository.UpdateParams) (records.Lead, error) {
	l, ok := r.leads[id]
	if !ok {
		return records.Lead{}, apperr.NotFound("lead not found")
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	r.leads[id] = l
	return l, nil
}

func (r *stubRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.leads[id]; !ok {
		return apperr.NotFound("lead not found")
	}
	delete(r.leads, id)
	return nil
}

func (r *stubRepo) BulkDelete(_ context.Context, ids []uuid.UUID) (int, error) {
	return len(ids), nil
}

func (r *stubRepo) BulkCreate(ctx context.Context, params []repository.CreateParams) (int, error) {
	for _, p := range params {
		_, _ = r.Create(ctx, p)
	}
	return len(params), nil
}

func (r *stubRepo) LockByID(ctx context.Context, id uuid.UUID) (records.Lead, error) {
	return r.GetByID(ctx, id)
}

func (r *stubRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status records.LeadStatus) (records.Lead, error) {
	return r.Update(ctx, id, repository.UpdateParams{Status: &status})
}

type stubTx struct{ repo *stubRepo }

func (t stubTx) LockLead(ctx context.Context, id uuid.UUID) (records.Lead, error) {
	return t.repo.LockByID(ctx, id)
}

func (t stubTx) UpdateLeadStatus(ctx context.Context, id uuid.UUID, s records.LeadStatus) (records.Lead, error) {
	return t.repo.UpdateStatus(ctx, id, s)
}

func (t stubTx) CreateFollowUpTask(_ context.Context, task records.FollowUpTask) (records.FollowUpTask, error) {
	task.ID = uuid.New()
	return task, nil
}

func (t stubTx) CreatePayment(_ context.Context, p records.Payment) (records.Payment, error) {
	p.ID = uuid.New()
	return p, nil
}

func (t stubTx) WithTx(ctx context.Context, fn func(context.Context, service.LifecycleTx) error) error {
	return fn(ctx, t)
}

type nopBus struct{}

func (nopBus) Publish(context.Context, events.Event) {}

func newRouter(repo *stubRepo, roles ...string) *gin.Engine {
	svc := service.New(repo, stubTx{repo: repo}, nopBus{}, records.NewValidator(), logger.Discard(), service.Options{
		Now: func() time.Time { return time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC) },
	})
	h := New(svc, records.NewValidator())

	r := gin.New()
	g := r.Group("/leads")
	if roles != nil {
		g.Use(func(c *gin.Context) {
			httpkit.SetIdentity(c, uuid.New(), roles)
			c.Next()
		})
	}
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

func seeded() (*stubRepo, records.Lead) {
	lead := records.Lead{ID: uuid.New(), Company: "Acme", Name: "Ravi", Contact: "9876543210", Status: records.LeadNew}
	return &stubRepo{leads: map[uuid.UUID]records.Lead{lead.ID: lead}}, lead
}

func TestMutationsRequireCapability(t *testing.T) {
	repo, lead := seeded()
	tech := newRouter(repo, "Tech")

	tests := []struct {
		method, path, body string
	}{
		{http.MethodPost, "/leads", `{"company":"Globex"}`},
		{http.MethodPatch, "/leads/" + lead.ID.String(), `{"name":"x"}`},
		{http.MethodDelete, "/leads/" + lead.ID.String(), ""},
		{http.MethodPost, "/leads/bulk-import", `[{"company":"Globex"}]`},
		{http.MethodPost, "/leads/bulk-delete", `{"ids":["` + lead.ID.String() + `"]}`},
		{http.MethodPost, "/leads/" + lead.ID.String() + "/to-sales-task", `{"next_follow_up":"2025-03-20"}`},
		{http.MethodPost, "/leads/" + lead.ID.String() + "/convert", `{"amount":1000,"advance":0}`},
		{http.MethodPatch, "/leads/" + lead.ID.String() + "/status", `{"status":"Closed"}`},
	}
	for _, tt := range tests {
		w := do(tech, tt.method, tt.path, tt.body)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", tt.method, tt.path)
	}
	assert.Equal(t, records.LeadNew, repo.leads[lead.ID].Status)
}

func TestUnauthenticatedIsRejected(t *testing.T) {
	repo, _ := seeded()
	w := do(newRouter(repo), http.MethodGet, "/leads", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListMasksContactForTech(t *testing.T) {
	repo, _ := seeded()

	w := do(newRouter(repo, "Tech"), http.MethodGet, "/leads?page=1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp transport.LeadListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "98765*****", resp.Items[0].Contact)
	assert.Equal(t, 20, resp.PageSize)
}

func TestCreateAndConvert(t *testing.T) {
	repo, lead := seeded()
	r := newRouter(repo, "Sales")

	w := do(r, http.MethodPost, "/leads", `{"company":"Globex","contact":"+91 98765-43210"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created transport.LeadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "919876543210", created.Contact)
	assert.Equal(t, records.LeadNew, created.Status)

	w = do(r, http.MethodPost, "/leads/"+lead.ID.String()+"/convert", `{"amount":"1000","advance":400,"remaining":5}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"remaining":600.00`)
	assert.Equal(t, records.LeadConverted, repo.leads[lead.ID].Status)
}

func TestCreateValidationFailure(t *testing.T) {
	repo, _ := seeded()
	w := do(newRouter(repo, "Admin"), http.MethodPost, "/leads", `{"company":"","email":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvalidIDAndMissingLead(t *testing.T) {
	repo, _ := seeded()
	r := newRouter(repo, "Sales")

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/leads/not-a-uuid", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/leads/"+uuid.NewString(), "").Code)
}

func TestBulkImportReturnsRowErrors(t *testing.T) {
	repo, _ := seeded()
	w := do(newRouter(repo, "Sales"), http.MethodPost, "/leads/bulk-import",
		`[{"company":"A"},{"company":""},{"company":"C"}]`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp transport.BulkImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.CreatedCount)
	require.Len(t, resp.PerRowErrors, 1)
	assert.Equal(t, 1, resp.PerRowErrors[0].Index)
}

func TestImportFileUpload(t *testing.T) {
	repo := &stubRepo{leads: map[uuid.UUID]records.Lead{}}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "converted.csv")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("Company,Mobile\nAcme,9876543210\n"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/leads/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	newRouter(repo, "Sales").ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp transport.ImportFileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.CreatedCount)
	assert.Equal(t, "converted", resp.Intent)
	for _, l := range repo.leads {
		assert.Equal(t, records.LeadConverted, l.Status)
	}
}

func TestImportFileRequiresFile(t *testing.T) {
	repo, _ := seeded()
	w := do(newRouter(repo, "Sales"), http.MethodPost, "/leads/import", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
