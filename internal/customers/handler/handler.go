package handler

import (
	"net/http"

	"leadflow_backend/internal/access"
	"leadflow_backend/internal/customers/service"
	"leadflow_backend/internal/customers/transport"
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
	msgInvalidID        = "invalid customer id"
)

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", guard(access.Create), h.Create)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id", guard(access.Update), h.Update)
	rg.DELETE("/:id", guard(access.Delete), h.Delete)
}

func guard(verb access.Verb) gin.HandlerFunc {
	return httpkit.RequirePermission(access.Allows(access.Action{Resource: access.Customers, Verb: verb}))
}

func (h *Handler) List(c *gin.Context) {
	var req transport.ListCustomersRequest
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
	customerID, ok := parseID(c)
	if !ok {
		return
	}
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	customer, err := h.svc.Get(c.Request.Context(), customerID, access.FromRoles(id.Roles()))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, customer)
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	customer, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, customer)
}

func (h *Handler) Update(c *gin.Context) {
	customerID, ok := parseID(c)
	if !ok {
		return
	}
	var req transport.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	customer, err := h.svc.Update(c.Request.Context(), customerID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, customer)
}

func (h *Handler) Delete(c *gin.Context) {
	customerID, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), customerID); httpkit.HandleError(c, err) {
		return
	}
	httpkit.NoContent(c)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}
