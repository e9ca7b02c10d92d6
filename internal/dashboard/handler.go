package dashboard

import (
	"leadflow_backend/internal/access"
	"leadflow_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/summary", h.Summary)
}

func (h *Handler) Summary(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	summary, err := h.svc.Summary(c.Request.Context(), access.FromRoles(id.Roles()))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, summary)
}
