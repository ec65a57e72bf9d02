package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"fraudconfig/internal/dto/req"
	"fraudconfig/internal/dto/resp"
	"fraudconfig/internal/service"

	"github.com/gin-gonic/gin"
)

type SchedulerProvider interface {
	Get(ctx context.Context) (*resp.SchedulerItem, error)
	Update(ctx context.Context, r req.SchedulerUpdateRequest, operator string) (*resp.SchedulerItem, error)
	MarkRun(ctx context.Context, runAt time.Time, operator string) (*resp.SchedulerItem, error)
}

type SchedulerHandler struct {
	service SchedulerProvider
}

func NewSchedulerHandler(service SchedulerProvider) *SchedulerHandler {
	return &SchedulerHandler{service: service}
}

func (h *SchedulerHandler) GetScheduler(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *SchedulerHandler) UpdateScheduler(c *gin.Context) {
	var r req.SchedulerUpdateRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON format error"})
		return
	}
	operator := service.GetOperator(c.Request.Context())
	item, err := h.service.Update(c.Request.Context(), r, operator)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// MarkRun is called by the retraining pipeline after a run completes.
func (h *SchedulerHandler) MarkRun(c *gin.Context) {
	var r req.MarkRunRequest
	// An empty body is fine: the run time defaults to now.
	if err := c.ShouldBindJSON(&r); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON format error"})
		return
	}
	runAt := time.Now()
	if r.RunAt != nil {
		runAt = *r.RunAt
	}
	operator := service.GetOperator(c.Request.Context())
	item, err := h.service.MarkRun(c.Request.Context(), runAt, operator)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
