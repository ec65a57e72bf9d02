package api

import (
	"context"
	"net/http"
	"strconv"

	"fraudconfig/internal/dto/req"
	"fraudconfig/internal/dto/resp"
	"fraudconfig/internal/service"

	"github.com/gin-gonic/gin"
)

type FeatureProvider interface {
	List(ctx context.Context, search string) ([]resp.FeatureItem, error)
	Get(ctx context.Context, id uint64) (*resp.FeatureItem, error)
	Toggle(ctx context.Context, id uint64, operator string) (bool, error)
	Update(ctx context.Context, id uint64, r req.FeatureUpdateRequest, operator string) error
	Audits(ctx context.Context, id uint64) ([]resp.AuditLogItem, error)
	Health(ctx context.Context) error
}

type FeatureHandler struct {
	service FeatureProvider
}

func NewFeatureHandler(service FeatureProvider) *FeatureHandler {
	return &FeatureHandler{service: service}
}

func pathID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *FeatureHandler) ListFeatures(c *gin.Context) {
	features, err := h.service.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, features)
}

func (h *FeatureHandler) GetFeature(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	feature, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, feature)
}

func (h *FeatureHandler) ToggleFeature(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	operator := service.GetOperator(c.Request.Context())
	enabled, err := h.service.Toggle(c.Request.Context(), id, operator)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.ToggleFeatureResponse{Success: true, Enabled: enabled})
}

func (h *FeatureHandler) UpdateFeature(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var r req.FeatureUpdateRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON format error"})
		return
	}
	operator := service.GetOperator(c.Request.Context())
	if err := h.service.Update(c.Request.Context(), id, r, operator); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.SuccessResponse{Success: true})
}

func (h *FeatureHandler) GetFeatureAudits(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	audits, err := h.service.Audits(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, audits)
}

func (h *FeatureHandler) HealthCheck(c *gin.Context) {
	if err := h.service.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
