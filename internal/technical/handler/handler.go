package handler

import (
	"net/http"

	"leadflow_backend/internal/access"
	"leadflow_backend/internal/technical/service"
	"leadflow_backend/internal/technical/transport"
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
	msgInvalidID        = "invalid id"
)

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterTaskRoutes mounts /tasks.
func (h *Handler) RegisterTaskRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListTasks)
	rg.POST("", guard(access.TechTasks, access.Create), h.CreateTask)
	rg.PATCH("/:id", guard(access.TechTasks, access.Update), h.SetTaskStatus)
	rg.DELETE("/:id", guard(access.TechTasks, access.Delete), h.DeleteTask)
}

// RegisterTenderRoutes mounts /tenders.
func (h *Handler) RegisterTenderRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListTenders)
	rg.POST("", guard(access.Tenders, access.Create), h.CreateTender)
	rg.DELETE("/:id", guard(access.Tenders, access.Delete), h.DeleteTender)
}

// RegisterTechDataRoutes mounts /tech-data.
func (h *Handler) RegisterTechDataRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListTechData)
	rg.POST("", guard(access.TechData, access.Create), h.CreateTechData)
	rg.PATCH("/:id", guard(access.TechData, access.Update), h.UpdateTechData)
	rg.DELETE("/:id", guard(access.TechData, access.Delete), h.DeleteTechData)
}

func guard(r access.Resource, v access.Verb) gin.HandlerFunc {
	return httpkit.RequirePermission(access.Allows(access.Action{Resource: r, Verb: v}))
}

// bindJSON decodes and validates a request body, answering 400 itself.
func (h *Handler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return false
	}
	return true
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) bindList(c *gin.Context) (transport.ListRequest, bool) {
	var req transport.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return req, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return req, false
	}
	return req, true
}

func (h *Handler) ListTasks(c *gin.Context) {
	req, ok := h.bindList(c)
	if !ok {
		return
	}
	result, err := h.svc.ListTasks(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) CreateTask(c *gin.Context) {
	var req transport.CreateTechTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	task, err := h.svc.CreateTask(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, task)
}

func (h *Handler) ListTenders(c *gin.Context) {
	req, ok := h.bindList(c)
	if !ok {
		return
	}
	result, err := h.svc.ListTenders(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) CreateTender(c *gin.Context) {
	var req transport.CreateTenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	tender, err := h.svc.CreateTender(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, tender)
}

func (h *Handler) SetTaskStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req transport.TaskStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	task, err := h.svc.SetTaskStatus(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, task)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteTask(c.Request.Context(), id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.NoContent(c)
}

func (h *Handler) DeleteTender(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteTender(c.Request.Context(), id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.NoContent(c)
}

func (h *Handler) ListTechData(c *gin.Context) {
	req, ok := h.bindList(c)
	if !ok {
		return
	}
	result, err := h.svc.ListTechData(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) CreateTechData(c *gin.Context) {
	var req transport.TechDataRequest
	if !h.bindJSON(c, &req) {
		return
	}
	d, err := h.svc.CreateTechData(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, d)
}

func (h *Handler) UpdateTechData(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req transport.UpdateTechDataRequest
	if !h.bindJSON(c, &req) {
		return
	}
	d, err := h.svc.UpdateTechData(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, d)
}

func (h *Handler) DeleteTechData(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteTechData(c.Request.Context(), id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.NoContent(c)
}
