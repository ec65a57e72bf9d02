package api

import (
	"context"
	"net/http"
	"strconv"

	"fraudconfig/internal/dto/resp"

	"github.com/gin-gonic/gin"
)

type AuditProvider interface {
	List(ctx context.Context, entity string, offset, limit int) (*resp.AuditLogPage, error)
}

type AuditHandler struct {
	service AuditProvider
}

func NewAuditHandler(service AuditProvider) *AuditHandler {
	return &AuditHandler{service: service}
}

func (h *AuditHandler) ListAudits(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	page, err := h.service.List(c.Request.Context(), c.Query("entity"), offset, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
