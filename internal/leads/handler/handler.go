package handler

import (
	"net/http"

	"leadflow_backend/internal/access"
	"leadflow_backend/internal/leads/service"
	"leadflow_backend/internal/leads/transport"
	"leadflow_backend/internal/records"
	"leadflow_backend/platform/httpkit"
	"leadflow_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid lead id"
	msgMissingFile      = "file is required"

	maxUploadBytes = 10 << 20
)

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", guard(access.Create), h.Create)
	rg.POST("/bulk-import", guard(access.Import), h.BulkImport)
	rg.POST("/import", guard(access.Import), h.ImportFile)
	rg.POST("/bulk-delete", guard(access.BulkDelete), h.BulkDelete)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id", guard(access.Update), h.Update)
	rg.DELETE("/:id", guard(access.Delete), h.Delete)
	rg.PATCH("/:id/status", guard(access.SetStatus), h.SetStatus)
	rg.POST("/:id/to-sales-task", guard(access.FollowUp), h.ScheduleFollowUp)
	rg.POST("/:id/convert", guard(access.Convert), h.Convert)
}

func guard(verb access.Verb) gin.HandlerFunc {
	return httpkit.RequirePermission(access.Allows(access.Action{Resource: access.Leads, Verb: verb}))
}

func (h *Handler) List(c *gin.Context) {
	var req transport.ListLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	result, err := h.svc.List(c.Request.Context(), req, access.FromRoles(id.Roles()))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) GetByID(c *gin.Context) {
	leadID, ok := parseID(c)
	if !ok {
		return
	}
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	lead, err := h.svc.GetByID(c.Request.Context(), leadID, access.FromRoles(id.Roles()))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	lead, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, lead)
}

func (h *Handler) Update(c *gin.Context) {
	leadID, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	lead, err := h.svc.Update(c.Request.Context(), leadID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

func (h *Handler) Delete(c *gin.Context) {
	leadID, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), leadID); httpkit.HandleError(c, err) {
		return
	}
	httpkit.NoContent(c)
}

func (h *Handler) BulkDelete(c *gin.Context) {
	var req transport.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.BulkDelete(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// BulkImport accepts a JSON array of lead payloads.
func (h *Handler) BulkImport(c *gin.Context) {
	var rows []records.LeadInput
	if err := c.ShouldBindJSON(&rows); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.BulkImport(c.Request.Context(), rows)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ImportFile accepts a multipart CSV or .xlsx upload in the "file" field and an
// optional "intent" form value.
func (h *Handler) ImportFile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	header, err := c.FormFile("file")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgMissingFile, nil)
		return
	}
	file, err := header.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgMissingFile, nil)
		return
	}
	defer file.Close()

	result, err := h.svc.ImportFile(c.Request.Context(), file, header.Filename, c.PostForm("intent"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) SetStatus(c *gin.Context) {
	leadID, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	lead, err := h.svc.SetStatus(c.Request.Context(), leadID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

func (h *Handler) ScheduleFollowUp(c *gin.Context) {
	leadID, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.FollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.ScheduleFollowUp(c.Request.Context(), leadID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

func (h *Handler) Convert(c *gin.Context) {
	leadID, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.Convert(c.Request.Context(), leadID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}
