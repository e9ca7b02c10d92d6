package handler

import (
	"net/http"

	"leadflow_backend/internal/access"
	"leadflow_backend/internal/payments/service"
	"leadflow_backend/internal/payments/transport"
	"leadflow_backend/platform/httpkit"
	"leadflow_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	svc      *service.Service
	val      *validator.Validator
	maxBytes int64
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid payment id"
	msgMissingFile      = "file is required"

	// multipart overhead allowed on top of the file size limit
	formOverheadBytes = 1 << 20
)

func New(svc *service.Service, val *validator.Validator, maxFileBytes int64) *Handler {
	return &Handler{svc: svc, val: val, maxBytes: maxFileBytes}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", guard(access.Create), h.Create)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id", guard(access.Update), h.Update)
	rg.DELETE("/:id", guard(access.Delete), h.Delete)
	rg.POST("/:id/go-thru", guard(access.Handover), h.GoThru)
	rg.POST("/:id/receipt", guard(access.Upload), h.UploadReceipt)
	rg.GET("/:id/receipt", h.ReceiptURL)
}

func guard(verb access.Verb) gin.HandlerFunc {
	return httpkit.RequirePermission(access.Allows(access.Action{Resource: access.Payments, Verb: verb}))
}

func (h *Handler) List(c *gin.Context) {
	var req transport.ListPaymentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, p)
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	p, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, p)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	p, err := h.svc.Update(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, p)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.NoContent(c)
}

func (h *Handler) GoThru(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.GoThruRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.GoThru(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// UploadReceipt accepts a multipart file in the "file" field.
func (h *Handler) UploadReceipt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+formOverheadBytes)
	}

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

	p, err := h.svc.AttachReceipt(c.Request.Context(), id, service.ReceiptUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, p)
}

func (h *Handler) ReceiptURL(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	link, err := h.svc.ReceiptURL(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, link)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}
