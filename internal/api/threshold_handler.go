package api

import (
	"context"
	"net/http"

	"fraudconfig/internal/dto/req"
	"fraudconfig/internal/dto/resp"
	"fraudconfig/internal/service"

	"github.com/gin-gonic/gin"
)

type ThresholdProvider interface {
	List(ctx context.Context, search string) ([]resp.ThresholdItem, error)
	Get(ctx context.Context, id uint64) (*resp.ThresholdItem, error)
	Update(ctx context.Context, id uint64, r req.ThresholdUpdateRequest, operator string) error
}

type ThresholdHandler struct {
	service ThresholdProvider
}

func NewThresholdHandler(service ThresholdProvider) *ThresholdHandler {
	return &ThresholdHandler{service: service}
}

func (h *ThresholdHandler) ListThresholds(c *gin.Context) {
	thresholds, err := h.service.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, thresholds)
}

func (h *ThresholdHandler) GetThreshold(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	threshold, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, threshold)
}

func (h *ThresholdHandler) UpdateThreshold(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var r req.ThresholdUpdateRequest
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
